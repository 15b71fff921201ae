package bag

import "testing"

func TestBudget_Bounds(t *testing.T) {
	tests := []struct {
		name string
		op   func(b *Budget)
		get  func(b Budget) float64
		want float64
	}{
		{"increase priority", func(b *Budget) { b.IncreasePriority(0.5) }, func(b Budget) float64 { return b.Priority }, 0.75},
		{"decrease priority", func(b *Budget) { b.DecreasePriority(0.5) }, func(b Budget) float64 { return b.Priority }, 0.25},
		{"increase durability", func(b *Budget) { b.IncreaseDurability(0.5) }, func(b Budget) float64 { return b.Durability }, 0.75},
		{"decrease durability", func(b *Budget) { b.DecreaseDurability(0.5) }, func(b Budget) float64 { return b.Durability }, 0.25},
		{"decay", func(b *Budget) { b.Decay(0.95) }, func(b Budget) float64 { return b.Priority }, 0.475},
		{"saturates below one", func(b *Budget) { b.IncreasePriority(1) }, func(b Budget) float64 { return b.Priority }, 1 - DefaultEpsilon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBudget(0.5, 0.5, 0.5)
			tt.op(&b)
			got := tt.get(b)
			if got < tt.want-1e-9 || got > tt.want+1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewBudget_Clamps(t *testing.T) {
	b := NewBudget(2, -1, 0.3)
	if b.Priority != 1-DefaultEpsilon {
		t.Errorf("priority = %v", b.Priority)
	}
	if b.Durability != 0 {
		t.Errorf("durability = %v", b.Durability)
	}
}
