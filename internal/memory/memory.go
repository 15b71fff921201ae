// Package memory owns the concept space: lazy concept creation for terms and
// their components, and the bounded search for semantically related concepts.
package memory

import (
	"math/rand/v2"

	"github.com/Harshitk-cp/nars/internal/bag"
	"github.com/Harshitk-cp/nars/internal/table"
)

const (
	DefaultCapacity        = 50000
	DefaultRelatedAttempts = 10
)

type Options struct {
	Capacity        int
	Buckets         int
	TableCapacity   int
	RelatedAttempts int
	DefaultBudget   *bag.Budget
	Rand            *rand.Rand
}

// Memory is owned by the cycle worker and is not safe for concurrent use.
type Memory struct {
	concepts map[uint64]*Concept
	byTerm   map[string]uint64
	// super-term ids waiting for an evicted component to be re-created
	orphans map[string][]uint64
	bag     *bag.Bag[*Concept]
	ids     uint64

	tableCapacity   int
	relatedAttempts int
	rng             *rand.Rand
}

func New(opts Options) *Memory {
	if opts.Capacity <= 0 {
		opts.Capacity = DefaultCapacity
	}
	if opts.TableCapacity <= 0 {
		opts.TableCapacity = table.DefaultCapacity
	}
	if opts.RelatedAttempts <= 0 {
		opts.RelatedAttempts = DefaultRelatedAttempts
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	m := &Memory{
		concepts:        make(map[uint64]*Concept),
		byTerm:          make(map[string]uint64),
		orphans:         make(map[string][]uint64),
		tableCapacity:   opts.TableCapacity,
		relatedAttempts: opts.RelatedAttempts,
		rng:             opts.Rand,
	}
	m.bag = bag.New[*Concept](bag.Options{
		Capacity:      opts.Capacity,
		Buckets:       opts.Buckets,
		DefaultBudget: opts.DefaultBudget,
		Rand:          opts.Rand,
	})
	m.bag.OnEvict(func(it *bag.Item[*Concept]) { m.forget(it.Object) })
	return m
}

// Count is the number of live concepts.
func (m *Memory) Count() int { return len(m.concepts) }

// Concept resolves a concept id.
func (m *Memory) Concept(id uint64) (*Concept, bool) {
	c, ok := m.concepts[id]
	return c, ok
}

// Take draws a concept item with priority bias. The caller must return it
// with Put before the next draw can see it.
func (m *Memory) Take() (*bag.Item[*Concept], bool) { return m.bag.Take() }

func (m *Memory) Put(item *bag.Item[*Concept]) { m.bag.Put(item) }

// Top returns up to n concept items in priority order for display.
func (m *Memory) Top(n int) []*bag.Item[*Concept] { return m.bag.Top(n) }
