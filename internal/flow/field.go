package flow

import "strings"

// FieldKind identifies how a field collects input.
type FieldKind int

const (
	// FieldText is a single free-text answer.
	FieldText FieldKind = iota
	// FieldTextList is Count free-text answers.
	FieldTextList
	// FieldChoice selects exactly one option.
	FieldChoice
	// FieldMulti selects any number of options, optionally rated 1-10.
	FieldMulti
	// FieldChecklist is a list of text items that can be ticked off.
	FieldChecklist
	// FieldConfirm is a single acknowledgement button.
	FieldConfirm
	// FieldScale is a number between Min and Max.
	FieldScale
)

// Option is a selectable value. Group labels related options for display.
type Option struct {
	Label string
	Group string
	Hint  string
}

// Field describes one input on a step.
type Field struct {
	Key         string
	Label       string
	Placeholder string
	Kind        FieldKind
	Count       int
	Options     []Option
	Rated       bool
	Min         int
	Max         int
	Default     int
	Initial     string
	Extendable  bool
}

// Item is one entry of a list-valued field.
type Item struct {
	Text   string
	Rating int
	Done   bool
}

// Value is the collected input of one field.
type Value struct {
	Text   string
	Number int
	Items  []Item
}

// Filled reports whether every part of the value is non-blank. A list value
// needs all of its items filled.
func (v Value) Filled() bool {
	if len(v.Items) > 0 {
		for _, it := range v.Items {
			if strings.TrimSpace(it.Text) == "" {
				return false
			}
		}
		return true
	}
	return strings.TrimSpace(v.Text) != ""
}

// AnyFilled reports whether at least one part of the value is non-blank.
func (v Value) AnyFilled() bool {
	for _, it := range v.Items {
		if strings.TrimSpace(it.Text) != "" {
			return true
		}
	}
	return strings.TrimSpace(v.Text) != ""
}

// NonBlank returns the item texts that are not blank, in order.
func (v Value) NonBlank() []string {
	var out []string
	for _, it := range v.Items {
		if strings.TrimSpace(it.Text) != "" {
			out = append(out, it.Text)
		}
	}
	return out
}

// Has reports whether an item with the given text is present.
func (v Value) Has(text string) bool {
	for _, it := range v.Items {
		if it.Text == text {
			return true
		}
	}
	return false
}

func (v Value) clone() Value {
	c := v
	if v.Items != nil {
		c.Items = append([]Item(nil), v.Items...)
	}
	return c
}

// Inputs holds every field value of a session keyed by field key.
type Inputs map[string]Value

// Text returns the text of a field.
func (in Inputs) Text(key string) string { return in[key].Text }

// Number returns the numeric value of a field.
func (in Inputs) Number(key string) int { return in[key].Number }

// Items returns the items of a list field.
func (in Inputs) Items(key string) []Item { return in[key].Items }

// Clone returns a deep copy.
func (in Inputs) Clone() Inputs {
	out := make(Inputs, len(in))
	for k, v := range in {
		out[k] = v.clone()
	}
	return out
}

// initial returns the starting value for a field.
func (f Field) initial() Value {
	switch f.Kind {
	case FieldTextList, FieldChecklist:
		n := f.Count
		if n <= 0 {
			n = 1
		}
		return Value{Items: make([]Item, n)}
	case FieldScale:
		return Value{Number: f.Default}
	case FieldChoice:
		return Value{Text: f.Initial}
	default:
		return Value{}
	}
}

// ratingDefault is the intensity assigned to a newly selected rated option.
const ratingDefault = 5
