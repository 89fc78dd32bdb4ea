package impl

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"locator/internal/domain/entity"
	"locator/internal/domain/service"
	"locator/internal/geo"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakePrompter answers every prompt with the value sent on answers
type fakePrompter struct {
	answers chan bool
	calls   atomic.Int32
}

func newFakePrompter() *fakePrompter {
	return &fakePrompter{answers: make(chan bool)}
}

func (p *fakePrompter) RequestForegroundPermission(ctx context.Context) (bool, error) {
	p.calls.Add(1)

	select {
	case granted := <-p.answers:
		return granted, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// staticGate is a PermissionGate fixed to one state
type staticGate struct {
	state entity.PermissionState
}

func (g staticGate) RequestPermission(context.Context) entity.PermissionState { return g.state }
func (g staticGate) BeginRequest() entity.PermissionState                      { return g.state }
func (g staticGate) CurrentState() entity.PermissionState                      { return g.state }
func (g staticGate) Close()                                                    {}
func (g staticGate) Subscribe() (<-chan entity.PermissionState, func()) {
	ch := make(chan entity.PermissionState)
	close(ch)

	return ch, func() {}
}

// scriptedDirections returns a response per destination, each released when its gate channel closes
type scriptedDirections struct {
	mu        sync.Mutex
	responses map[entity.Coordinate]*service.DirectionsResponse
	errs      map[entity.Coordinate]error
	gates     map[entity.Coordinate]chan struct{}
	calls     atomic.Int32
}

func newScriptedDirections() *scriptedDirections {
	return &scriptedDirections{
		responses: map[entity.Coordinate]*service.DirectionsResponse{},
		errs:      map[entity.Coordinate]error{},
		gates:     map[entity.Coordinate]chan struct{}{},
	}
}

func (d *scriptedDirections) respond(destination entity.Coordinate, resp *service.DirectionsResponse) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.responses[destination] = resp
}

func (d *scriptedDirections) fail(destination entity.Coordinate, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.errs[destination] = err
}

// hold makes requests for destination block until the returned func is called
func (d *scriptedDirections) hold(destination entity.Coordinate) func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	gate := make(chan struct{})
	d.gates[destination] = gate

	var once sync.Once

	return func() { once.Do(func() { close(gate) }) }
}

// Directions ignores ctx while held so that a late answer to a superseded request can be observed
func (d *scriptedDirections) Directions(ctx context.Context, _ entity.Coordinate, destination entity.Coordinate) (*service.DirectionsResponse, error) {
	d.calls.Add(1)

	d.mu.Lock()
	gate := d.gates[destination]
	d.mu.Unlock()

	if gate != nil {
		<-gate
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.errs[destination]; err != nil {
		return nil, err
	}

	return d.responses[destination], nil
}

func lineResponse(distanceMeters, durationSeconds float64, points ...entity.Coordinate) *service.DirectionsResponse {
	coords := make([][2]float64, 0, len(points))
	for _, p := range points {
		coords = append(coords, [2]float64{p.Longitude, p.Latitude})
	}

	raw, _ := json.Marshal(map[string]any{"type": "LineString", "coordinates": coords})

	return &service.DirectionsResponse{
		Format: geo.FormatGeoJSON,
		Routes: []service.DirectionsRoute{{
			Geometry:        raw,
			DistanceMeters:  distanceMeters,
			DurationSeconds: durationSeconds,
		}},
	}
}

// recordingMetrics counts observations for assertions
type recordingMetrics struct {
	service.NopMetrics

	stale       atomic.Int32
	resolutions atomic.Int32
}

func (m *recordingMetrics) IncStaleResult() { m.stale.Add(1) }

func (m *recordingMetrics) ObserveResolution(string, time.Duration) { m.resolutions.Add(1) }
