package boundary

import (
	"encoding/json"

	"github.com/notargets/foamcase/caseerr"
)

// Registry holds processed boundaries in input order, looked up by label.
type Registry struct {
	order   []string
	byLabel map[string]Settings
}

func NewRegistry() *Registry {
	return &Registry{byLabel: make(map[string]Settings)}
}

func (r *Registry) add(s Settings) {
	if _, ok := r.byLabel[s.Label]; !ok {
		r.order = append(r.order, s.Label)
	}
	r.byLabel[s.Label] = s
}

func (r *Registry) Len() int { return len(r.order) }

func (r *Registry) Labels() []string {
	return append([]string(nil), r.order...)
}

func (r *Registry) Get(label string) (s Settings, ok bool) {
	s, ok = r.byLabel[label]
	return
}

// Lookup is Get for a label that must exist.
func (r *Registry) Lookup(label string) (Settings, error) {
	s, ok := r.byLabel[label]
	if !ok {
		return s, caseerr.New(caseerr.ErrUnknownBoundary, label, "no boundary with this label")
	}
	return s, nil
}

// All returns the boundaries in input order.
func (r *Registry) All() []Settings {
	all := make([]Settings, len(r.order))
	for i, l := range r.order {
		all[i] = r.byLabel[l]
	}
	return all
}

// BafflesPresent reports whether any boundary is a baffle.
func (r *Registry) BafflesPresent() bool {
	for _, s := range r.byLabel {
		if s.BoundaryType == Baffle {
			return true
		}
	}
	return false
}

// MarshalJSON writes the boundaries as an object keyed by label.
func (r *Registry) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(r.byLabel)
}
