package bag

import "github.com/Harshitk-cp/nars/internal/nal"

// DefaultEpsilon is the smallest step a budget value stays below 1 by.
const DefaultEpsilon = 0.01

// Budget is the (priority, durability, quality) triple of an item.
type Budget struct {
	Priority   float64 `json:"priority" yaml:"priority"`
	Durability float64 `json:"durability" yaml:"durability"`
	Quality    float64 `json:"quality" yaml:"quality"`
}

func NewBudget(priority, durability, quality float64) Budget {
	return Budget{
		Priority:   bound(priority),
		Durability: bound(durability),
		Quality:    bound(quality),
	}
}

// IncreasePriority combines priority with v by bounded OR.
func (b *Budget) IncreasePriority(v float64) {
	b.Priority = bound(nal.Or(b.Priority, v))
}

// DecreasePriority combines priority with v by AND.
func (b *Budget) DecreasePriority(v float64) {
	b.Priority = bound(nal.And(b.Priority, v))
}

func (b *Budget) IncreaseDurability(v float64) {
	b.Durability = bound(nal.Or(b.Durability, v))
}

func (b *Budget) DecreaseDurability(v float64) {
	b.Durability = bound(nal.And(b.Durability, v))
}

// Decay multiplies priority by multiplier.
func (b *Budget) Decay(multiplier float64) {
	b.Priority = bound(b.Priority * multiplier)
}

func bound(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v >= 1 {
		return 1 - DefaultEpsilon
	}
	return v
}
