package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

const FactUserName = "identity.name"

// Facts is the long-term memory, keyed by dotted category path.
type Facts map[string]string

func (f Facts) UserName() string { return f[FactUserName] }

// Keys returns the fact keys in sorted order.
func (f Facts) Keys() []string {
	return slices.Sorted(maps.Keys(f))
}

// FactStore persists facts across runs.
type FactStore interface {
	Load(ctx context.Context) (Facts, error)
	Merge(ctx context.Context, update map[string]any) error
}

// Flatten turns a nested memory update into dotted keys. A trailing
// "value" segment is dropped so {"identity":{"name":{"value":"Ana"}}}
// becomes "identity.name" = "Ana".
func Flatten(update map[string]any) Facts {
	facts := Facts{}
	flattenInto(facts, "", update)
	return facts
}

func flattenInto(facts Facts, prefix string, value any) {
	switch v := value.(type) {
	case map[string]any:
		for key, nested := range v {
			path := key
			if prefix != "" {
				path = prefix + "." + key
			}
			if key == "value" && prefix != "" {
				path = prefix
			}
			flattenInto(facts, path, nested)
		}
	case nil:
	default:
		if prefix == "" {
			return
		}
		text := strings.TrimSpace(fmt.Sprint(v))
		if text != "" {
			facts[prefix] = text
		}
	}
}

// InMemoryFacts is a FactStore that does not outlive the process.
type InMemoryFacts struct {
	mu    sync.RWMutex
	facts Facts
}

func NewInMemoryFacts(initial Facts) *InMemoryFacts {
	return &InMemoryFacts{facts: maps.Clone(initial)}
}

func (m *InMemoryFacts) Load(context.Context) (Facts, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	facts := maps.Clone(m.facts)
	if facts == nil {
		facts = Facts{}
	}
	return facts, nil
}

func (m *InMemoryFacts) Merge(_ context.Context, update map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.facts == nil {
		m.facts = Facts{}
	}
	maps.Copy(m.facts, Flatten(update))
	return nil
}
