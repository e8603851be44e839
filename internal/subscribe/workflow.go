package subscribe

import (
	"context"
	"fmt"

	"github.com/ariel-frischer/beamscheck/internal/capability"
	"github.com/rs/zerolog"
)

// Config carries the values the workflow binds at run time
type Config struct {
	// InstanceID is handed to the client factory unvalidated
	InstanceID string
	Interest   string
	WorkerPath string
}

// Platform describes the client the workflow runs for
type Platform struct {
	UserAgent string
	Features  capability.Features
}

// Result is the outcome of a run
type Result struct {
	State      State             `json:"state" yaml:"state"`
	Capability capability.Result `json:"capability" yaml:"capability"`
	// Unsubscribed is true when a stale subscription was torn down
	Unsubscribed bool   `json:"unsubscribed" yaml:"unsubscribed"`
	FailedStage  string `json:"failed_stage,omitempty" yaml:"failed_stage,omitempty"`
	Err          error  `json:"-" yaml:"-"`
}

// Subscribed reports whether the run reached the final state
func (r Result) Subscribed() bool {
	return r.State == Subscribed
}

// Option configures a Workflow
type Option func(*Workflow)

// WithLogger sets the diagnostic logger
func WithLogger(l zerolog.Logger) Option {
	return func(w *Workflow) { w.logger = l }
}

// WithObserver sets the stage observer
func WithObserver(o Observer) Option {
	return func(w *Workflow) {
		if o != nil {
			w.observer = o
		}
	}
}

// Workflow is the staged subscription pipeline
type Workflow struct {
	container WorkerContainer
	newClient ClientFactory
	cfg       Config
	logger    zerolog.Logger
	observer  Observer
}

// New creates a workflow. Empty Interest and WorkerPath fall back to the defaults.
func New(container WorkerContainer, newClient ClientFactory, cfg Config, opts ...Option) *Workflow {
	if cfg.Interest == "" {
		cfg.Interest = DefaultInterest
	}
	if cfg.WorkerPath == "" {
		cfg.WorkerPath = DefaultWorkerPath
	}

	w := &Workflow{
		container: container,
		newClient: newClient,
		cfg:       cfg,
		logger:    zerolog.Nop(),
		observer:  noopObserver{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// run holds values handed between stages
type run struct {
	client       Client
	unsubscribed bool
}

// stage is one named step. reached is the state recorded when it succeeds.
type stage struct {
	name    string
	reached State
	exec    func(ctx context.Context, r *run) error
}

func (w *Workflow) stages() []stage {
	return []stage{
		{name: "cleanup", reached: Idle, exec: w.cleanup},
		{name: "register", reached: Registering, exec: w.register},
		{name: "start", reached: Subscribing, exec: w.start},
		{name: "interest", reached: Subscribed, exec: w.addInterest},
	}
}

// Run executes the workflow for platform p.
// An unsupported platform is a result, not an error: Err stays nil.
func (w *Workflow) Run(ctx context.Context, p Platform) Result {
	res := Result{
		State:      Unsupported,
		Capability: capability.Evaluate(p.UserAgent, p.Features),
	}

	if !res.Capability.Supported {
		w.logger.Info().
			Str("reason", string(res.Capability.Reason)).
			Msg("web push is not supported on this client")
		return res
	}
	res.State = Idle

	stages := w.stages()
	r := &run{}
	for i, s := range stages {
		info := StageInfo{Name: s.name, Number: i + 1, Total: len(stages)}
		if err := w.runStage(ctx, info, s, r); err != nil {
			res.FailedStage = s.name
			res.Err = err
			res.Unsubscribed = r.unsubscribed
			return res
		}
		res.State = s.reached
	}

	res.Unsubscribed = r.unsubscribed
	w.logger.Info().
		Str("interest", w.cfg.Interest).
		Msg("Successfully registered and subscribed!")
	return res
}

// runStage is the error boundary for a single stage
func (w *Workflow) runStage(ctx context.Context, info StageInfo, s stage, r *run) error {
	w.observer.StageStarted(info)
	w.logger.Debug().Str("stage", s.name).Msg("stage started")

	err := ctx.Err()
	if err == nil {
		err = s.exec(ctx, r)
	}
	if err != nil {
		err = fmt.Errorf("%s: %w", s.name, err)
		w.logger.Error().Err(err).Str("stage", s.name).Msg("subscription workflow stopped")
		w.observer.StageFailed(info, err)
		return err
	}

	w.logger.Debug().Str("stage", s.name).Msg("stage completed")
	w.observer.StageCompleted(info)
	return nil
}

// cleanup removes any existing subscription so the device re-subscribes from scratch
func (w *Workflow) cleanup(ctx context.Context, r *run) error {
	reg, err := w.container.Ready(ctx)
	if err != nil {
		return fmt.Errorf("worker not ready: %w", err)
	}

	sub, err := reg.Subscription(ctx)
	if err != nil {
		return fmt.Errorf("look up subscription: %w", err)
	}
	if sub == nil {
		return nil
	}

	if err := sub.Unsubscribe(ctx); err != nil {
		return fmt.Errorf("unsubscribe: %w", err)
	}
	r.unsubscribed = true
	w.logger.Info().Msg("Unsubscribed from existing push notification.")
	return nil
}

func (w *Workflow) register(ctx context.Context, _ *run) error {
	if err := w.container.Register(ctx, w.cfg.WorkerPath); err != nil {
		return fmt.Errorf("service worker registration failed: %w", err)
	}
	return nil
}

func (w *Workflow) start(ctx context.Context, r *run) error {
	if w.cfg.InstanceID == "" {
		w.logger.Warn().Msg("no instance id configured; passing it to the client unset")
	}

	r.client = w.newClient(w.cfg.InstanceID)
	if r.client == nil {
		return fmt.Errorf("client factory returned no client")
	}
	return r.client.Start(ctx)
}

func (w *Workflow) addInterest(ctx context.Context, r *run) error {
	return r.client.AddDeviceInterest(ctx, w.cfg.Interest)
}
