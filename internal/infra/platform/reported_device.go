package platform

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"locator/internal/domain/entity"
	domainerrors "locator/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var errDeviceClosed = errors.New("device closed")

type positionFix struct {
	coordinate entity.Coordinate
	at         time.Time
}

// reportedDevice is fed by the mobile client: prompts wait for AnswerPrompt and
// position requests wait for a fix no older than maxFixAge.
type reportedDevice struct {
	userID    uuid.UUID
	maxFixAge time.Duration
	logger    *slog.Logger
	now       func() time.Time

	mu      sync.Mutex
	pending chan bool
	fix     *positionFix
	fixed   chan struct{}
	done    chan struct{}
	closed  bool
}

func newReportedDevice(userID uuid.UUID, maxFixAge time.Duration, logger *slog.Logger) *reportedDevice {
	return &reportedDevice{
		userID:    userID,
		maxFixAge: maxFixAge,
		logger:    logger,
		now:       time.Now,
		fixed:     make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// RequestForegroundPermission blocks until the client answers. Concurrent prompts share one answer.
func (d *reportedDevice) RequestForegroundPermission(ctx context.Context) (bool, error) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()

		return false, errDeviceClosed
	}
	answer := d.pending
	if answer == nil {
		answer = make(chan bool, 1)
		d.pending = answer
	}
	d.mu.Unlock()

	d.logger.DebugContext(ctx, "Waiting for permission answer", slog.String("user_id", d.userID.String()))

	select {
	case granted := <-answer:
		// re-offer for any other waiter on the same prompt
		select {
		case answer <- granted:
		default:
		}

		return granted, nil
	case <-ctx.Done():
		d.clearPending(answer)

		return false, errors.WithStack(ctx.Err())
	case <-d.done:
		return false, errDeviceClosed
	}
}

func (d *reportedDevice) clearPending(answer chan bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending == answer {
		d.pending = nil
	}
}

// AnswerPrompt resolves the pending prompt
func (d *reportedDevice) AnswerPrompt(granted bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending == nil {
		return domainerrors.ErrNoPendingPrompt
	}

	d.pending <- granted
	d.pending = nil

	return nil
}

// ReportPosition records a fix and wakes position requests
func (d *reportedDevice) ReportPosition(coordinate entity.Coordinate) error {
	if !coordinate.Valid() {
		return errors.Wrap(domainerrors.ErrValidationFailed, "reported position is out of range")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return errDeviceClosed
	}

	d.fix = &positionFix{coordinate: coordinate, at: d.now()}
	close(d.fixed)
	d.fixed = make(chan struct{})

	return nil
}

// CurrentPosition returns a fresh fix, waiting for the client to report one if needed
func (d *reportedDevice) CurrentPosition(ctx context.Context) (entity.Coordinate, error) {
	for {
		d.mu.Lock()
		if d.closed {
			d.mu.Unlock()

			return entity.Coordinate{}, errDeviceClosed
		}
		if d.fix != nil && d.now().Sub(d.fix.at) <= d.maxFixAge {
			coordinate := d.fix.coordinate
			d.mu.Unlock()

			return coordinate, nil
		}
		fixed := d.fixed
		d.mu.Unlock()

		select {
		case <-fixed:
		case <-ctx.Done():
			return entity.Coordinate{}, errors.Wrap(ctx.Err(), "no position reported in time")
		case <-d.done:
			return entity.Coordinate{}, errDeviceClosed
		}
	}
}

// Close releases every waiter
func (d *reportedDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true
	d.pending = nil
	close(d.done)

	return nil
}
