// Package subscribe_test provides recording fakes for the workflow collaborators.
// Related: internal/subscribe/subscribe.go
// Tags: subscribe, mocks, testing
package subscribe

import (
	"context"
	"sync"
)

// callLog records collaborator calls across all fakes in order
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(call string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, call)
}

func (l *callLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

type mockSubscription struct {
	log *callLog
	err error
}

func (s *mockSubscription) Unsubscribe(_ context.Context) error {
	s.log.add("unsubscribe")
	return s.err
}

type mockRegistration struct {
	log    *callLog
	sub    Subscription
	subErr error
}

func (r *mockRegistration) Subscription(_ context.Context) (Subscription, error) {
	r.log.add("subscription")
	return r.sub, r.subErr
}

type mockContainer struct {
	log         *callLog
	reg         *mockRegistration
	readyErr    error
	registerErr error
	registered  []string
}

func (c *mockContainer) Ready(_ context.Context) (Registration, error) {
	c.log.add("ready")
	if c.readyErr != nil {
		return nil, c.readyErr
	}
	return c.reg, nil
}

func (c *mockContainer) Register(_ context.Context, scriptPath string) error {
	c.log.add("register " + scriptPath)
	c.registered = append(c.registered, scriptPath)
	return c.registerErr
}

type mockClient struct {
	log         *callLog
	startErr    error
	interestErr error
	interests   []string
}

func (c *mockClient) Start(_ context.Context) error {
	c.log.add("start")
	return c.startErr
}

func (c *mockClient) AddDeviceInterest(_ context.Context, interest string) error {
	c.log.add("interest " + interest)
	c.interests = append(c.interests, interest)
	return c.interestErr
}

// fixture bundles a wired set of fakes
type fixture struct {
	log         *callLog
	container   *mockContainer
	client      *mockClient
	instanceIDs []string
}

func newFixture(existing bool) *fixture {
	log := &callLog{}
	reg := &mockRegistration{log: log}
	if existing {
		reg.sub = &mockSubscription{log: log}
	}
	f := &fixture{
		log:       log,
		container: &mockContainer{log: log, reg: reg},
		client:    &mockClient{log: log},
	}
	return f
}

func (f *fixture) factory(instanceID string) Client {
	f.log.add("new client")
	f.instanceIDs = append(f.instanceIDs, instanceID)
	return f.client
}

type recordingObserver struct {
	started   []string
	completed []string
	failed    []string
}

func (o *recordingObserver) StageStarted(s StageInfo)   { o.started = append(o.started, s.Name) }
func (o *recordingObserver) StageCompleted(s StageInfo) { o.completed = append(o.completed, s.Name) }
func (o *recordingObserver) StageFailed(s StageInfo, _ error) {
	o.failed = append(o.failed, s.Name)
}
