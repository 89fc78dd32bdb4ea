package impl

import (
	"context"
	"math"
	"testing"
	"time"

	"locator/internal/domain/entity"
	domainerrors "locator/internal/domain/errors"
	mockService "locator/internal/mocks/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLocationSource_CurrentCoordinate_Success(t *testing.T) {
	device := mockService.NewMockDevice(t)
	want := entity.Coordinate{Latitude: 13.621, Longitude: 123.194}
	device.EXPECT().CurrentPosition(mock.Anything).Return(want, nil).Twice()

	source := NewLocationSource(staticGate{state: entity.PermissionGranted}, device, time.Second, discardLogger())

	got, err := source.CurrentCoordinate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// every call reaches the platform
	_, err = source.CurrentCoordinate(context.Background())
	require.NoError(t, err)
}

func TestLocationSource_CurrentCoordinate_NotGranted(t *testing.T) {
	for _, state := range []entity.PermissionState{
		entity.PermissionUnknown,
		entity.PermissionRequesting,
		entity.PermissionDenied,
	} {
		t.Run(state.String(), func(t *testing.T) {
			device := mockService.NewMockDevice(t)
			source := NewLocationSource(staticGate{state: state}, device, time.Second, discardLogger())

			_, err := source.CurrentCoordinate(context.Background())

			assert.ErrorIs(t, err, domainerrors.ErrLocationUnavailable)
			assert.Equal(t, entity.ErrorKindLocationUnavailable, domainerrors.Kind(err))
			device.AssertNotCalled(t, "CurrentPosition", mock.Anything)
		})
	}
}

func TestLocationSource_CurrentCoordinate_Failures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(device *mockService.MockDevice)
	}{
		{
			name: "platform error",
			setup: func(device *mockService.MockDevice) {
				device.EXPECT().CurrentPosition(mock.Anything).Return(entity.Coordinate{}, errors.New("gps off"))
			},
		},
		{
			name: "timeout",
			setup: func(device *mockService.MockDevice) {
				device.EXPECT().CurrentPosition(mock.Anything).RunAndReturn(func(ctx context.Context) (entity.Coordinate, error) {
					<-ctx.Done()
					return entity.Coordinate{}, ctx.Err()
				})
			},
		},
		{
			name: "invalid coordinate",
			setup: func(device *mockService.MockDevice) {
				device.EXPECT().CurrentPosition(mock.Anything).Return(entity.Coordinate{Latitude: 120, Longitude: 10}, nil)
			},
		},
		{
			name: "non finite coordinate",
			setup: func(device *mockService.MockDevice) {
				device.EXPECT().CurrentPosition(mock.Anything).Return(entity.Coordinate{Latitude: math.NaN(), Longitude: 10}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			device := mockService.NewMockDevice(t)
			tt.setup(device)

			source := NewLocationSource(staticGate{state: entity.PermissionGranted}, device, 20*time.Millisecond, discardLogger())

			_, err := source.CurrentCoordinate(context.Background())
			assert.ErrorIs(t, err, domainerrors.ErrLocationUnavailable)
		})
	}
}
