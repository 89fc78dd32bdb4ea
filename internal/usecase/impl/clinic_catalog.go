package impl

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"locator/internal/domain/entity"
	domainerrors "locator/internal/domain/errors"
	"locator/internal/domain/lifecycle"
	"locator/internal/domain/repository"
	"locator/internal/domain/service"
	"locator/internal/usecase"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"
)

const catalogFlightKey = "catalog"

var catalogTracer = otel.Tracer("locator/usecase/catalog")

// clinicCatalog implements the ClinicCatalog interface.
type clinicCatalog struct {
	directory service.ClinicDirectory
	snapshots repository.CatalogSnapshotRepository
	timeout   time.Duration
	metrics   service.RoutingMetrics
	logger    *slog.Logger

	group singleflight.Group

	mu        sync.RWMutex
	clinics   []entity.Clinic
	byID      map[string]int
	listeners map[int]func()
	nextID    int
}

// ClinicCatalogParams holds dependencies for a ClinicCatalog.
type ClinicCatalogParams struct {
	Directory service.ClinicDirectory
	Snapshots repository.CatalogSnapshotRepository // optional
	Timeout   time.Duration
	Metrics   service.RoutingMetrics
	Logger    *slog.Logger
}

// NewClinicCatalog creates an empty catalog. Nothing is fetched until FetchAll or Refresh.
func NewClinicCatalog(params ClinicCatalogParams) usecase.ClinicCatalog {
	timeout := params.Timeout
	if timeout <= 0 {
		timeout = lifecycle.DefaultExternalCallTimeout
	}

	metrics := params.Metrics
	if metrics == nil {
		metrics = service.NopMetrics{}
	}

	return &clinicCatalog{
		directory: params.Directory,
		snapshots: params.Snapshots,
		timeout:   timeout,
		metrics:   metrics,
		logger:    loggerOrDiscard(params.Logger),
		byID:      map[string]int{},
		listeners: map[int]func(){},
	}
}

func (c *clinicCatalog) FetchAll(ctx context.Context) ([]entity.Clinic, error) {
	return c.fetch(ctx)
}

func (c *clinicCatalog) Refresh(ctx context.Context) ([]entity.Clinic, error) {
	return c.fetch(ctx)
}

func (c *clinicCatalog) Clinics() []entity.Clinic {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Clone(c.clinics)
}

func (c *clinicCatalog) Mappable() []entity.Clinic {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return entity.FilterMappable(c.clinics)
}

// OnChange registers fn to run after every replacement of the held set
func (c *clinicCatalog) OnChange(fn func()) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.listeners[id] = fn

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

func (c *clinicCatalog) Lookup(id string) (entity.Clinic, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	idx, ok := c.byID[id]
	if !ok {
		return entity.Clinic{}, false
	}

	return c.clinics[idx], true
}

// fetch joins the fetch in flight or starts one. The shared fetch is detached from the
// caller's cancellation so a caller leaving early does not fail the others.
func (c *clinicCatalog) fetch(ctx context.Context) ([]entity.Clinic, error) {
	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(catalogFlightKey, func() (any, error) {
		return nil, c.load(detached)
	})

	select {
	case res := <-ch:
		return c.Clinics(), res.Err
	case <-ctx.Done():
		return c.Clinics(), domainerrors.ErrCatalogFetchFailed.WithCause(ctx.Err())
	}
}

func (c *clinicCatalog) load(ctx context.Context) error {
	ctx, span := catalogTracer.Start(ctx, "ClinicCatalog.Fetch")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	clinics, err := c.directory.ListClinics(ctx)
	if err != nil {
		span.RecordError(err)
		c.metrics.IncCatalogFetch(service.OutcomeFailure)
		c.logger.WarnContext(ctx, "Clinic directory fetch failed, keeping previous catalog", slog.Any("error", err))

		c.seedFromSnapshot(ctx)

		return domainerrors.ErrCatalogFetchFailed.WithCause(err)
	}

	c.replace(clinics)
	c.metrics.IncCatalogFetch(service.OutcomeSuccess)
	span.SetAttributes(attribute.Int("clinics.count", len(clinics)))

	c.saveSnapshot(ctx, clinics)

	return nil
}

// replace swaps the held set wholesale. Duplicate ids keep their first occurrence.
func (c *clinicCatalog) replace(clinics []entity.Clinic) {
	next := make([]entity.Clinic, 0, len(clinics))
	byID := make(map[string]int, len(clinics))

	for _, clinic := range clinics {
		if _, dup := byID[clinic.ID]; dup {
			continue
		}
		byID[clinic.ID] = len(next)
		next = append(next, clinic)
	}

	c.mu.Lock()
	c.clinics = next
	c.byID = byID
	listeners := make([]func(), 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

func (c *clinicCatalog) saveSnapshot(ctx context.Context, clinics []entity.Clinic) {
	if c.snapshots == nil {
		return
	}

	snapshot := &repository.CatalogSnapshot{Clinics: clinics, FetchedAt: time.Now().UTC()}
	if err := c.snapshots.SaveSnapshot(ctx, snapshot); err != nil {
		c.logger.WarnContext(ctx, "Failed to save catalog snapshot", slog.Any("error", err))
	}
}

// seedFromSnapshot fills an empty catalog with the last saved snapshot
func (c *clinicCatalog) seedFromSnapshot(ctx context.Context) {
	if c.snapshots == nil {
		return
	}

	c.mu.RLock()
	empty := len(c.clinics) == 0
	c.mu.RUnlock()
	if !empty {
		return
	}

	snapshot, err := c.snapshots.LoadSnapshot(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "Failed to load catalog snapshot", slog.Any("error", err))

		return
	}
	if snapshot == nil || len(snapshot.Clinics) == 0 {
		return
	}

	c.replace(snapshot.Clinics)
	c.metrics.IncCatalogFetch(service.OutcomeSnapshot)
	c.logger.InfoContext(ctx, "Seeded catalog from snapshot",
		slog.Int("clinics", len(snapshot.Clinics)),
		slog.Time("fetched_at", snapshot.FetchedAt),
	)
}
