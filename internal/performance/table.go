package performance

import (
	"bytes"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Table maps engine names to their stats, preserving first-seen order.
// The order survives a JSON round trip.
type Table struct {
	m *orderedmap.OrderedMap[string, *EngineStats]
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{m: orderedmap.New[string, *EngineStats]()}
}

// Get returns the stats for name.
func (t *Table) Get(name string) (*EngineStats, bool) {
	if t == nil || t.m == nil {
		return nil, false
	}
	return t.m.Get(name)
}

// Set stores s under name, keeping the position of an existing entry.
func (t *Table) Set(name string, s *EngineStats) {
	if t.m == nil {
		t.m = orderedmap.New[string, *EngineStats]()
	}
	t.m.Set(name, s)
}

// Len returns the number of engines in the table.
func (t *Table) Len() int {
	if t == nil || t.m == nil {
		return 0
	}
	return t.m.Len()
}

// Names returns the engine names in insertion order.
func (t *Table) Names() []string {
	names := make([]string, 0, t.Len())
	t.Each(func(name string, _ *EngineStats) {
		names = append(names, name)
	})
	return names
}

// Each calls fn for every engine in insertion order.
func (t *Table) Each(fn func(name string, s *EngineStats)) {
	if t == nil || t.m == nil {
		return
	}
	for pair := t.m.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// MarshalJSON encodes the table as a JSON object in insertion order.
func (t *Table) MarshalJSON() ([]byte, error) {
	if t == nil || t.m == nil {
		return []byte("{}"), nil
	}
	return t.m.MarshalJSON()
}

// UnmarshalJSON decodes a JSON object, keeping key order.
func (t *Table) UnmarshalJSON(data []byte) error {
	t.m = orderedmap.New[string, *EngineStats]()
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	if err := t.m.UnmarshalJSON(data); err != nil {
		return err
	}
	// Replace null entries so callers never see a nil value.
	for pair := t.m.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value == nil {
			pair.Value = &EngineStats{}
		}
	}
	return nil
}

func (t *Table) ensure(name string) *EngineStats {
	if t.m == nil {
		t.m = orderedmap.New[string, *EngineStats]()
	}
	if s, ok := t.m.Get(name); ok {
		return s
	}
	s := &EngineStats{}
	t.m.Set(name, s)
	return s
}

func (t *Table) recompute() {
	t.Each(func(_ string, s *EngineStats) {
		s.Recompute()
	})
}
