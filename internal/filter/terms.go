package filter

import "strings"

// Terms is the ordered, user-editable list of exclusion terms.
type Terms struct {
	items []string
}

// NewTerms seeds a list. Blank and duplicate entries are skipped.
func NewTerms(seed []string) *Terms {
	t := &Terms{}
	for _, s := range seed {
		t.Add(s)
	}
	return t
}

// Add appends term after trimming it. It reports false for a blank term or
// one already present (compared case-insensitively).
func (t *Terms) Add(term string) bool {
	term = strings.TrimSpace(term)
	if term == "" || t.index(term) >= 0 {
		return false
	}
	t.items = append(t.items, term)
	return true
}

// Remove deletes the term equal to term. Unlike Add it does not fold case.
func (t *Terms) Remove(term string) bool {
	for i, s := range t.items {
		if s == term {
			t.items = append(t.items[:i:i], t.items[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveAt deletes the i-th term.
func (t *Terms) RemoveAt(i int) bool {
	if i < 0 || i >= len(t.items) {
		return false
	}
	return t.Remove(t.items[i])
}

// List returns a copy of the terms in order.
func (t *Terms) List() []string {
	out := make([]string, len(t.items))
	copy(out, t.items)
	return out
}

func (t *Terms) Len() int { return len(t.items) }

func (t *Terms) index(term string) int {
	for i, s := range t.items {
		if strings.EqualFold(s, term) {
			return i
		}
	}
	return -1
}
