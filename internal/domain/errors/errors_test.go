package errors

import (
	"context"
	"net/http"
	"testing"

	"locator/internal/domain/entity"
	"locator/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithCause_KeepsIdentityAndCause(t *testing.T) {
	err := ErrRouteResolutionFailed.WithCause(context.DeadlineExceeded)

	assert.ErrorIs(t, err, ErrRouteResolutionFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "No route is available to this clinic")
	assert.Contains(t, err.Error(), context.DeadlineExceeded.Error())

	var appErr AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusBadGateway, appErr.HTTPCode())
	assert.Equal(t, "ROUTE_RESOLUTION_FAILED", appErr.ErrorCode())
}

func TestWithCause_NilCause(t *testing.T) {
	err := ErrLocationUnavailable.WithCause(nil)

	assert.ErrorIs(t, err, ErrLocationUnavailable)
	assert.Equal(t, entity.ErrorKindLocationUnavailable, Kind(err))
}

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want entity.ErrorKind
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain error", err: errors.New("boom"), want: ""},
		{name: "non taxonomy app error", err: ErrViewNotFound, want: ""},
		{name: "route failure", err: ErrRouteResolutionFailed, want: entity.ErrorKindRouteResolutionFailed},
		{name: "wrapped catalog failure", err: errors.Wrap(ErrCatalogFetchFailed, "refresh"), want: entity.ErrorKindCatalogFetchFailed},
		{
			name: "outermost kind wins",
			err:  ErrLocationUnavailable.WithCause(ErrPermissionDenied),
			want: entity.ErrorKindLocationUnavailable,
		},
		{name: "empty set", err: ErrEmptyCoordinateSet, want: entity.ErrorKindEmptyCoordinateSet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Kind(tt.err))
		})
	}
}

func TestWithDetails_DoesNotMutateOriginal(t *testing.T) {
	detailed := ErrValidationFailed.WithDetails("latitude out of range")

	assert.Equal(t, "latitude out of range", detailed.Details())
	assert.Empty(t, ErrValidationFailed.Details())
	assert.Equal(t, ErrValidationFailed.ErrorCode(), detailed.ErrorCode())
}
