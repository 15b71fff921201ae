// Package bag implements the capacity-bounded probabilistic priority container
// that decides which task or concept receives attention each cycle.
package bag

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Defaults from the reference configuration.
const (
	DefaultCapacity = 5000
	DefaultBuckets  = 100
)

// DefaultItemBudget is given to objects inserted with PutNew.
var DefaultItemBudget = Budget{Priority: 0.9, Durability: 0.9, Quality: 0.9}

// Keyed objects expose the immutable identifier they are stored under.
type Keyed interface {
	Key() uint64
}

// Item wraps an object stored in a Bag with its budget.
type Item[T Keyed] struct {
	Object T
	Budget Budget

	bucket int
	pos    int
}

func (it *Item[T]) Key() uint64 { return it.Object.Key() }

// Decay multiplies the item's priority by multiplier. Call it only while the
// item is taken out of its bag.
func (it *Item[T]) Decay(multiplier float64) {
	it.Budget.Decay(multiplier)
}

type Options struct {
	Capacity      int
	Buckets       int
	DefaultBudget *Budget
	Rand          *rand.Rand
}

// Bag stores items in priority buckets. It is not safe for concurrent use; one
// worker owns it.
type Bag[T Keyed] struct {
	capacity      int
	buckets       [][]*Item[T]
	lookup        map[uint64]*Item[T]
	cursor        int
	defaultBudget Budget
	rng           *rand.Rand
	onEvict       func(*Item[T])
}

func New[T Keyed](opts Options) *Bag[T] {
	if opts.Capacity <= 0 {
		opts.Capacity = DefaultCapacity
	}
	if opts.Buckets <= 0 {
		opts.Buckets = DefaultBuckets
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	def := DefaultItemBudget
	if opts.DefaultBudget != nil {
		def = *opts.DefaultBudget
	}
	return &Bag[T]{
		capacity:      opts.Capacity,
		buckets:       make([][]*Item[T], opts.Buckets),
		lookup:        make(map[uint64]*Item[T]),
		defaultBudget: def,
		rng:           opts.Rand,
	}
}

// OnEvict registers a callback invoked for every item dropped by overflow.
func (b *Bag[T]) OnEvict(fn func(*Item[T])) {
	b.onEvict = fn
}

func (b *Bag[T]) Count() int    { return len(b.lookup) }
func (b *Bag[T]) Capacity() int { return b.capacity }

// PutNew wraps object in a fresh item with the bag's default budget. It is a
// no-op returning false when an item with the same key is already stored.
func (b *Bag[T]) PutNew(object T) bool {
	return b.PutNewWithBudget(object, b.defaultBudget)
}

func (b *Bag[T]) PutNewWithBudget(object T, budget Budget) bool {
	if _, ok := b.lookup[object.Key()]; ok {
		return false
	}
	b.insert(&Item[T]{Object: object, Budget: budget})
	return true
}

// Put reinserts a taken item. It is a no-op returning false when the key is
// already present.
func (b *Bag[T]) Put(item *Item[T]) bool {
	if item == nil {
		panic("bag: put of nil item")
	}
	if _, ok := b.lookup[item.Key()]; ok {
		return false
	}
	b.insert(item)
	return true
}

// Peek returns the item stored under key without removing it.
func (b *Bag[T]) Peek(key uint64) (*Item[T], bool) {
	it, ok := b.lookup[key]
	return it, ok
}

// Take removes an item chosen with a bias toward high priority. It returns
// false when the bag is empty.
func (b *Bag[T]) Take() (*Item[T], bool) {
	if len(b.lookup) == 0 {
		return nil, false
	}
	b.nextNonEmptyBucket()
	for b.rng.Float64() >= b.acceptance(b.cursor) {
		b.nextNonEmptyBucket()
	}
	bucket := b.buckets[b.cursor]
	it := bucket[b.rng.IntN(len(bucket))]
	b.remove(it)
	return it, true
}

// TakeKey removes the item stored under key. A missing key is a caller bug.
func (b *Bag[T]) TakeKey(key uint64) *Item[T] {
	it, ok := b.lookup[key]
	if !ok {
		panic(fmt.Sprintf("bag: take of missing key %d", key))
	}
	b.remove(it)
	return it
}

// Top returns up to n items from the highest buckets down, without removing them.
func (b *Bag[T]) Top(n int) []*Item[T] {
	out := make([]*Item[T], 0, min(n, len(b.lookup)))
	for i := len(b.buckets) - 1; i >= 0 && len(out) < n; i-- {
		for _, it := range b.buckets[i] {
			if len(out) == n {
				break
			}
			out = append(out, it)
		}
	}
	return out
}

// BucketOf returns the bucket index a priority maps to.
func (b *Bag[T]) BucketOf(priority float64) int {
	n := len(b.buckets)
	idx := int(math.Round(priority * float64(n)))
	if idx < 0 {
		return 0
	}
	if idx > n-1 {
		return n - 1
	}
	return idx
}

// acceptance is the probability of settling on bucket idx; the top bucket is
// always accepted.
func (b *Bag[T]) acceptance(idx int) float64 {
	n := len(b.buckets)
	if n == 1 {
		return 1
	}
	return float64(max(idx, 1)) / float64(n-1)
}

func (b *Bag[T]) nextNonEmptyBucket() {
	b.cursor = (b.cursor + 1) % len(b.buckets)
	for len(b.buckets[b.cursor]) == 0 {
		b.cursor = (b.cursor + 1) % len(b.buckets)
	}
}

func (b *Bag[T]) insert(it *Item[T]) {
	if len(b.lookup) >= b.capacity {
		b.evictLowest()
	}
	it.bucket = b.BucketOf(it.Budget.Priority)
	it.pos = len(b.buckets[it.bucket])
	b.buckets[it.bucket] = append(b.buckets[it.bucket], it)
	b.lookup[it.Key()] = it
}

func (b *Bag[T]) evictLowest() {
	for i := range b.buckets {
		if len(b.buckets[i]) == 0 {
			continue
		}
		lowest := b.buckets[i][0]
		for _, it := range b.buckets[i][1:] {
			if it.Budget.Priority < lowest.Budget.Priority {
				lowest = it
			}
		}
		b.remove(lowest)
		if b.onEvict != nil {
			b.onEvict(lowest)
		}
		return
	}
}

func (b *Bag[T]) remove(it *Item[T]) {
	bucket := b.buckets[it.bucket]
	last := len(bucket) - 1
	if it.pos != last {
		moved := bucket[last]
		bucket[it.pos] = moved
		moved.pos = it.pos
	}
	bucket[last] = nil
	b.buckets[it.bucket] = bucket[:last]
	delete(b.lookup, it.Key())
}
