package domain

import (
	"context"
	"time"
)

type OutputKind string

const (
	OutputAnswer  OutputKind = "answer"
	OutputDerived OutputKind = "derived"
	OutputInput   OutputKind = "input"
)

// OutputEvent is a formatted line leaving the core. Verdict is set on answers only.
type OutputEvent struct {
	ID        string     `json:"id"`
	RunID     string     `json:"run_id"`
	Kind      OutputKind `json:"kind"`
	Cycle     uint64     `json:"cycle"`
	Text      string     `json:"text"`
	Verdict   Verdict    `json:"verdict,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ItemView is a read-only rendering of a bag item.
type ItemView struct {
	Text     string  `json:"text"`
	Priority float64 `json:"priority"`
}

// Snapshot is an immutable summary published by the cycle worker for display.
type Snapshot struct {
	RunID        string     `json:"run_id"`
	Cycle        uint64     `json:"cycle"`
	TaskCount    int        `json:"task_count"`
	ConceptCount int        `json:"concept_count"`
	Tasks        []ItemView `json:"tasks"`
	Concepts     []ItemView `json:"concepts"`
	TakenAt      time.Time  `json:"taken_at"`
}

// OutputStore journals output events outside the core.
type OutputStore interface {
	Append(ctx context.Context, ev *OutputEvent) error
	Recent(ctx context.Context, limit int) ([]OutputEvent, error)
}
