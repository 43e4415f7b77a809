package exercises

import (
	"fmt"
	"strings"

	"github.com/xvierd/calm-cli/internal/countdown"
	"github.com/xvierd/calm-cli/internal/flow"
)

func fixedTimer(p countdown.Pattern) func(flow.Inputs) *countdown.Pattern {
	return func(flow.Inputs) *countdown.Pattern {
		q := p
		return &q
	}
}

// numbered renders "1. a\n2. b".
func numbered(items []string) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = fmt.Sprintf("%d. %s", i+1, it)
	}
	return strings.Join(lines, "\n")
}

func itemTexts(items []flow.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Text
	}
	return out
}

func options(labels ...string) []flow.Option {
	out := make([]flow.Option, len(labels))
	for i, l := range labels {
		out[i] = flow.Option{Label: l}
	}
	return out
}

func grouped(group string, labels ...string) []flow.Option {
	out := options(labels...)
	for i := range out {
		out[i].Group = group
	}
	return out
}
