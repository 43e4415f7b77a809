package flow

import "strings"

// Rule is a validation predicate gating forward navigation from a step.
type Rule func(Inputs) bool

// Always is the rule of a non-gated step.
func Always(Inputs) bool { return true }

// Filled holds when every named field is completely filled.
func Filled(keys ...string) Rule {
	return func(in Inputs) bool {
		for _, k := range keys {
			if !in[k].Filled() {
				return false
			}
		}
		return true
	}
}

// AnyFilled holds when the named field has at least one non-blank part.
func AnyFilled(key string) Rule {
	return func(in Inputs) bool {
		return in[key].AnyFilled()
	}
}

// Selected holds when at least one option of the named field is chosen.
func Selected(key string) Rule {
	return func(in Inputs) bool {
		v := in[key]
		return len(v.Items) > 0 || strings.TrimSpace(v.Text) != ""
	}
}

// Confirmed holds when the named confirm field was acknowledged.
func Confirmed(key string) Rule {
	return func(in Inputs) bool {
		return in[key].Text == confirmedText
	}
}

// All holds when every rule holds.
func All(rules ...Rule) Rule {
	return func(in Inputs) bool {
		for _, r := range rules {
			if !r(in) {
				return false
			}
		}
		return true
	}
}

// AnyOf holds when at least one rule holds.
func AnyOf(rules ...Rule) Rule {
	return func(in Inputs) bool {
		for _, r := range rules {
			if r(in) {
				return true
			}
		}
		return false
	}
}

const confirmedText = "yes"
