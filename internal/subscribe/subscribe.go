// Package subscribe runs the push subscription workflow.
//
// The workflow gates on client capability, tears down any stale push
// subscription, registers the service worker script, starts a Beams client
// bound to the configured instance and registers a single interest. Every
// collaborator is injected through the interfaces below; the package holds no
// global state.
//
// Stages run strictly in order, each behind its own error boundary. A failing
// stage is logged and stops the pipeline; the result keeps the state reached
// by the last successful stage. Nothing is retried.
package subscribe

import (
	"context"
	"fmt"
)

const (
	// DefaultWorkerPath is the well-known service worker location at the site root
	DefaultWorkerPath = "/service-worker.js"
	// DefaultInterest is the interest topic registered after the client starts
	DefaultInterest = "hello"
)

// WorkerContainer registers worker scripts and exposes the active registration
type WorkerContainer interface {
	// Ready returns the active registration, blocking until one is available
	Ready(ctx context.Context) (Registration, error)

	// Register installs the worker script served at scriptPath
	Register(ctx context.Context, scriptPath string) error
}

// Registration is an installed worker with its push manager
type Registration interface {
	// Subscription returns the current push subscription, or nil when there is none
	Subscription(ctx context.Context) (Subscription, error)
}

// Subscription is an existing push subscription
type Subscription interface {
	Unsubscribe(ctx context.Context) error
}

// Client is the vendor push client contract
type Client interface {
	Start(ctx context.Context) error
	AddDeviceInterest(ctx context.Context, interest string) error
}

// ClientFactory constructs a vendor client for an instance identifier.
// The identifier is passed through as configured, including when empty.
type ClientFactory func(instanceID string) Client

// State is the progress of a workflow run
type State int

const (
	// Unsupported means the client cannot use web push; the workflow did not run
	Unsupported State = iota
	// Idle means the client is capable and any stale subscription is gone
	Idle
	// Registering means the worker script is registered
	Registering
	// Subscribing means the vendor client has started
	Subscribing
	// Subscribed means the interest is registered
	Subscribed
)

// String returns the lowercase state name
func (s State) String() string {
	switch s {
	case Unsupported:
		return "unsupported"
	case Idle:
		return "idle"
	case Registering:
		return "registering"
	case Subscribing:
		return "subscribing"
	case Subscribed:
		return "subscribed"
	default:
		return "unknown"
	}
}

// MarshalText renders the state by name in JSON and YAML output
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a state name written by MarshalText
func (s *State) UnmarshalText(text []byte) error {
	for candidate := Unsupported; candidate <= Subscribed; candidate++ {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown workflow state %q", text)
}

// StageInfo identifies a stage within a run
type StageInfo struct {
	Name   string
	Number int
	Total  int
}

// Observer receives stage lifecycle events
type Observer interface {
	StageStarted(stage StageInfo)
	StageCompleted(stage StageInfo)
	StageFailed(stage StageInfo, err error)
}

type noopObserver struct{}

func (noopObserver) StageStarted(StageInfo)       {}
func (noopObserver) StageCompleted(StageInfo)     {}
func (noopObserver) StageFailed(StageInfo, error) {}
