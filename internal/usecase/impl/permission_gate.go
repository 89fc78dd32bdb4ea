// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"locator/internal/domain/entity"
	"locator/internal/domain/lifecycle"
	"locator/internal/domain/service"
	"locator/internal/usecase"

	"golang.org/x/sync/singleflight"
)

const (
	promptFlightKey      = "permission-prompt"
	subscriberBufferSize = 16
)

// permissionGate implements the PermissionGate interface.
// state is written only while mu is held; the prompt in flight is shared through group.
type permissionGate struct {
	prompter service.PermissionPrompter
	timeout  time.Duration
	metrics  service.RoutingMetrics
	logger   *slog.Logger

	group singleflight.Group

	mu          sync.Mutex
	state       entity.PermissionState
	subscribers *broadcaster[entity.PermissionState]
	closed      bool
}

// PermissionGateParams holds dependencies for a PermissionGate.
type PermissionGateParams struct {
	Prompter service.PermissionPrompter
	Timeout  time.Duration
	Metrics  service.RoutingMetrics
	Logger   *slog.Logger
}

// NewPermissionGate creates a gate in the Unknown state.
func NewPermissionGate(params PermissionGateParams) usecase.PermissionGate {
	timeout := params.Timeout
	if timeout <= 0 {
		timeout = lifecycle.DefaultExternalCallTimeout
	}

	metrics := params.Metrics
	if metrics == nil {
		metrics = service.NopMetrics{}
	}

	return &permissionGate{
		prompter:    params.Prompter,
		timeout:     timeout,
		metrics:     metrics,
		logger:      loggerOrDiscard(params.Logger),
		state:       entity.PermissionUnknown,
		subscribers: newBroadcaster[entity.PermissionState](subscriberBufferSize),
	}
}

// RequestPermission starts or joins the prompt and waits for its answer.
func (g *permissionGate) RequestPermission(ctx context.Context) entity.PermissionState {
	ch, _ := g.start()
	if ch == nil {
		return g.CurrentState()
	}

	select {
	case res := <-ch:
		if state, ok := res.Val.(entity.PermissionState); ok {
			return state
		}

		return g.CurrentState()
	case <-ctx.Done():
		return g.CurrentState()
	}
}

// BeginRequest starts or joins the prompt without waiting for it.
func (g *permissionGate) BeginRequest() entity.PermissionState {
	_, state := g.start()

	return state
}

func (g *permissionGate) CurrentState() entity.PermissionState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state
}

func (g *permissionGate) Subscribe() (<-chan entity.PermissionState, func()) {
	return g.subscribers.subscribe()
}

// Close stops publishing. A prompt in flight still resolves but its answer is not broadcast.
func (g *permissionGate) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return
	}
	g.closed = true
	g.subscribers.close()
}

// start transitions to Requesting when no prompt is in flight and returns the shared result channel.
func (g *permissionGate) start() (<-chan singleflight.Result, entity.PermissionState) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return nil, g.state
	}

	if g.state != entity.PermissionRequesting {
		g.transitionLocked(entity.PermissionRequesting)
	}

	// Forget runs under mu in prompt, so a Requesting state always has a live call to join
	ch := g.group.DoChan(promptFlightKey, g.prompt)

	return ch, g.state
}

func (g *permissionGate) prompt() (any, error) {
	ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
	defer cancel()

	granted, err := g.prompter.RequestForegroundPermission(ctx)

	next := entity.PermissionDenied
	switch {
	case err != nil:
		g.logger.Warn("Permission prompt failed, treating as denied", slog.Any("error", err))
	case granted:
		next = entity.PermissionGranted
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.group.Forget(promptFlightKey)
	g.transitionLocked(next)

	return next, nil
}

func (g *permissionGate) transitionLocked(next entity.PermissionState) {
	if !g.state.CanTransitionTo(next) {
		g.logger.Error("Rejected permission transition",
			slog.String("from", g.state.String()),
			slog.String("to", next.String()),
		)

		return
	}

	g.state = next
	g.metrics.IncPermissionTransition(next)
	if !g.closed {
		g.subscribers.publish(next)
	}
}
