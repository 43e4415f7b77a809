package emotions

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/xvierd/calm-cli/internal/exercises"
	"github.com/xvierd/calm-cli/internal/flow"
)

// CopingFlow builds the outer flow of an emotion: acknowledgement, one step
// per exercise stage, then a closing step. Next on the closing step exits to
// the emotion overview.
func CopingFlow(cat *exercises.Catalog, id string) (*flow.Definition, error) {
	g, err := ForEmotion(id)
	if err != nil {
		return nil, err
	}
	e := g.Emotion()
	ack, closing := g.Acknowledgement(), g.Closing()

	steps := []flow.Step{{
		Key:    "acknowledgement",
		Title:  "Acknowledgement",
		Prompt: ack.Heading,
		Detail: joinNonEmpty(ack.Body, ack.Note),
	}}
	for _, st := range g.Stages() {
		def, err := cat.Lookup(st.Exercise)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s flow: %w", id, err)
		}
		steps = append(steps, flow.Step{
			Key:      st.Exercise,
			Title:    st.Title,
			Prompt:   def.Description,
			Exercise: st.Exercise,
		})
	}
	steps = append(steps, flow.Step{
		Key:    "complete",
		Title:  "Complete",
		Prompt: closing.Heading,
		Detail: joinNonEmpty(closing.Body, closing.Note),
	})

	return &flow.Definition{
		ID:           "coping-" + e.ID,
		Title:        e.Name,
		Description:  e.Description,
		Label:        e.Name,
		Steps:        steps,
		ExitOnFinish: true,
	}, nil
}

// Suggest returns emotion ids whose id or name fuzzy-matches query, best
// match first.
func Suggest(query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	targets := make([]string, 0, len(catalog)*2)
	owners := make([]string, 0, len(catalog)*2)
	for _, e := range catalog {
		targets = append(targets, e.ID, strings.ToLower(e.Name))
		owners = append(owners, e.ID, e.ID)
	}

	seen := make(map[string]bool)
	var out []string
	for _, m := range fuzzy.Find(query, targets) {
		id := owners[m.Index]
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func joinNonEmpty(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}
