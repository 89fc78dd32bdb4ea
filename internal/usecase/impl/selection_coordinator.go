package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"locator/internal/domain/entity"
	domainerrors "locator/internal/domain/errors"
	"locator/internal/domain/service"
	"locator/internal/errors"
	"locator/internal/usecase"
)

// selectionCoordinator implements the SelectionCoordinator interface.
//
// Every trigger (selection, origin, clear, locate failure, close) bumps seq while mu is held.
// A resolution carries the seq it was started with and is applied only if seq has not moved since.
// A replacement of the catalog re-checks the selection against the new set.
type selectionCoordinator struct {
	catalog  usecase.ClinicCatalog
	resolver usecase.RouteResolver
	fitter   usecase.ViewportFitter
	location usecase.LocationSource
	padding  entity.Padding
	metrics  service.RoutingMetrics
	logger   *slog.Logger
	now      func() time.Time

	mu      sync.Mutex
	state   entity.SelectionState
	seq     uint64
	cancel  context.CancelFunc
	camera  *entity.CameraCommand
	closed  bool
	events  *broadcaster[usecase.SelectionEvent]
	pending sync.WaitGroup

	// destination of the route currently held or being resolved, nil when none
	destination *entity.Coordinate
	unwatch     func()
}

// SelectionCoordinatorParams holds dependencies for a SelectionCoordinator.
type SelectionCoordinatorParams struct {
	Catalog  usecase.ClinicCatalog
	Resolver usecase.RouteResolver
	Fitter   usecase.ViewportFitter
	Location usecase.LocationSource
	Padding  entity.Padding
	Metrics  service.RoutingMetrics
	Logger   *slog.Logger
}

// NewSelectionCoordinator creates a coordinator with an empty selection
func NewSelectionCoordinator(params SelectionCoordinatorParams) usecase.SelectionCoordinator {
	metrics := params.Metrics
	if metrics == nil {
		metrics = service.NopMetrics{}
	}

	c := &selectionCoordinator{
		catalog:  params.Catalog,
		resolver: params.Resolver,
		fitter:   params.Fitter,
		location: params.Location,
		padding:  params.Padding,
		metrics:  metrics,
		logger:   loggerOrDiscard(params.Logger),
		now:      time.Now,
		events:   newBroadcaster[usecase.SelectionEvent](subscriberBufferSize),
	}
	c.unwatch = params.Catalog.OnChange(c.catalogChanged)

	return c
}

// SetSelectedClinic looks the id up while holding mu, ordered with catalogChanged.
func (c *selectionCoordinator) SetSelectedClinic(clinicID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	if _, ok := c.catalog.Lookup(clinicID); !ok {
		return errors.Wrapf(domainerrors.ErrClinicNotFound, "clinic %q", clinicID)
	}

	id := clinicID
	c.state.SelectedClinicID = &id
	c.retriggerLocked()

	return nil
}

func (c *selectionCoordinator) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.state.SelectedClinicID = nil
	c.retriggerLocked()
}

func (c *selectionCoordinator) SetOrigin(origin entity.Coordinate) error {
	if !origin.Valid() {
		return errors.Wrap(domainerrors.ErrValidationFailed, "origin is out of range")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.applyOriginLocked(origin)

	return nil
}

// LocateOrigin is a trigger issued at call time: a later trigger made while the
// position is being acquired wins over whatever the acquisition returns.
func (c *selectionCoordinator) LocateOrigin(ctx context.Context) error {
	if c.location == nil {
		return errors.WithStack(domainerrors.ErrLocationUnavailable)
	}

	c.mu.Lock()
	startSeq := c.seq
	c.mu.Unlock()

	origin, err := c.location.CurrentCoordinate(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.seq != startSeq {
		c.metrics.IncStaleResult()

		return err
	}

	if err != nil {
		c.seq++
		c.cancelInFlightLocked()

		kind := entity.ErrorKindLocationUnavailable
		c.camera = nil
		c.destination = nil
		c.state.Route = nil
		c.state.LoadingRoute = false
		c.state.RouteError = &kind
		c.publishStateLocked()

		return err
	}

	c.applyOriginLocked(origin)

	return nil
}

func (c *selectionCoordinator) DismissError() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.state.RouteError == nil {
		return
	}

	c.state.RouteError = nil
	c.publishStateLocked()
}

func (c *selectionCoordinator) Snapshot() entity.SelectionState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state.Clone()
}

func (c *selectionCoordinator) TakeCameraCommand() (*entity.CameraCommand, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cmd := c.camera
	c.camera = nil

	return cmd, cmd != nil
}

func (c *selectionCoordinator) Subscribe() (<-chan usecase.SelectionEvent, func()) {
	return c.events.subscribe()
}

// Close waits for resolutions already started to observe the cancellation before returning.
func (c *selectionCoordinator) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()

		return
	}

	c.closed = true
	c.seq++
	c.cancelInFlightLocked()
	c.camera = nil
	c.events.close()
	unwatch := c.unwatch
	c.mu.Unlock()

	if unwatch != nil {
		unwatch()
	}

	c.pending.Wait()
}

func (c *selectionCoordinator) applyOriginLocked(origin entity.Coordinate) {
	c.state.Origin = &origin
	c.retriggerLocked()
}

// retriggerLocked clears the route synchronously and starts a resolution when both ends are known.
func (c *selectionCoordinator) retriggerLocked() {
	c.seq++
	c.cancelInFlightLocked()

	c.state.Route = nil
	c.state.RouteError = nil
	c.state.LoadingRoute = false
	c.camera = nil
	c.destination = nil

	destination, ok := c.destinationLocked()
	if ok && c.state.Origin != nil {
		key := entity.RouteKey{Origin: *c.state.Origin, Destination: destination, Seq: c.seq}
		c.destination = &destination

		ctx, cancel := context.WithCancel(context.Background())
		c.cancel = cancel
		c.state.LoadingRoute = true

		c.pending.Add(1)
		go c.resolve(ctx, key)
	}

	c.publishStateLocked()
}

// catalogChanged drops a selection the new set no longer holds and re-resolves when the
// selected clinic's location differs from the one the current route was resolved for.
func (c *selectionCoordinator) catalogChanged() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.state.SelectedClinicID == nil {
		return
	}

	if _, ok := c.catalog.Lookup(*c.state.SelectedClinicID); !ok {
		c.logger.Info("Selected clinic left the catalog, clearing selection",
			slog.String("clinic_id", *c.state.SelectedClinicID))
		c.state.SelectedClinicID = nil
		c.retriggerLocked()

		return
	}

	destination, ok := c.destinationLocked()
	resolvable := ok && c.state.Origin != nil

	switch {
	case !resolvable && c.destination == nil:
		return
	case resolvable && c.destination != nil && *c.destination == destination:
		return
	}

	c.retriggerLocked()
}

func (c *selectionCoordinator) destinationLocked() (entity.Coordinate, bool) {
	if c.state.SelectedClinicID == nil {
		return entity.Coordinate{}, false
	}

	clinic, ok := c.catalog.Lookup(*c.state.SelectedClinicID)
	if !ok || !clinic.Mappable() {
		return entity.Coordinate{}, false
	}

	return *clinic.Location, true
}

func (c *selectionCoordinator) resolve(ctx context.Context, key entity.RouteKey) {
	defer c.pending.Done()

	started := c.now()
	route, err := c.resolver.Resolve(ctx, key.Origin, key.Destination)

	outcome := service.OutcomeSuccess
	if err != nil {
		outcome = service.OutcomeFailure
	}
	c.metrics.ObserveResolution(outcome, c.now().Sub(started))

	c.apply(key, route, err)
}

func (c *selectionCoordinator) apply(key entity.RouteKey, route *entity.RouteResult, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || key.Seq != c.seq {
		c.metrics.IncStaleResult()
		c.logger.Debug("Discarding stale route result", slog.Uint64("seq", key.Seq), slog.Uint64("current_seq", c.seq))

		return
	}

	c.cancel = nil
	c.state.LoadingRoute = false

	if err != nil {
		kind := domainerrors.Kind(err)
		if kind == "" {
			kind = entity.ErrorKindRouteResolutionFailed
		}

		c.state.Route = nil
		c.state.RouteError = &kind
		c.logger.Warn("Route resolution failed",
			slog.String("origin", key.Origin.String()),
			slog.String("destination", key.Destination.String()),
			slog.Any("error", err),
		)
		c.publishStateLocked()

		return
	}

	c.state.Route = route.Clone()
	c.state.RouteError = nil
	c.publishStateLocked()

	region, fitErr := c.fitter.Fit(route.Polyline, c.padding)
	if fitErr != nil {
		c.logger.Error("Viewport fit failed for a resolved route", slog.Any("error", fitErr))

		return
	}

	cmd := &entity.CameraCommand{Region: region, Seq: key.Seq, IssuedAt: c.now()}
	c.camera = cmd
	c.events.publish(usecase.SelectionEvent{Type: usecase.EventTypeCamera, Camera: cmd})
}

func (c *selectionCoordinator) cancelInFlightLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *selectionCoordinator) publishStateLocked() {
	state := c.state.Clone()
	c.events.publish(usecase.SelectionEvent{Type: usecase.EventTypeState, State: &state})
}
