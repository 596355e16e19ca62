package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRunStart   EventType = "run_start"
	EventRunEnd     EventType = "run_end"
	EventStageEnter EventType = "stage_enter"
	EventStageLeave EventType = "stage_leave"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Location  string    `json:"location"`
}

// RunEvent marks the beginning or the end of a pipeline run.
type RunEvent struct {
	EventBase
	Duration time.Duration `json:"duration,omitempty"`
	Score    float64       `json:"score,omitempty"`
	Err      error         `json:"-"`
}

// StageEvent represents entry into or exit from a stage.
type StageEvent struct {
	EventBase
	Stage    Stage         `json:"stage"`
	Duration time.Duration `json:"duration,omitempty"`
	Err      error         `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnRunStart   func(context.Context, *RunEvent)
	OnStageEnter func(context.Context, *StageEvent)
	OnStageLeave func(context.Context, *StageEvent)
	OnRunEnd     func(context.Context, *RunEvent)
}
