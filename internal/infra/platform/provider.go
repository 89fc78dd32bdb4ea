// Package platform provides the location platform each user session talks to.
package platform

import (
	"log/slog"
	"time"

	"locator/config"
	"locator/internal/domain/entity"
	"locator/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type staticFactory struct {
	device *staticDevice
}

func (f *staticFactory) NewDevice(uuid.UUID) service.Device {
	return f.device
}

type reportedFactory struct {
	maxFixAge time.Duration
	logger    *slog.Logger
}

func (f *reportedFactory) NewDevice(userID uuid.UUID) service.Device {
	return newReportedDevice(userID, f.maxFixAge, f.logger)
}

// FactoryParams holds dependencies for DeviceFactory, injected by Fx
type FactoryParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewDeviceFactory creates a DeviceFactory based on configuration
func NewDeviceFactory(params FactoryParams) (service.DeviceFactory, error) {
	cfg := params.Config.Platform
	logger := params.Logger

	if cfg == nil || cfg.Provider == "" {
		logger.Info("Platform not configured, using reported devices")

		return &reportedFactory{maxFixAge: config.DefaultMaxFixAge, logger: logger}, nil
	}

	switch cfg.Provider {
	case config.PlatformProviderStatic:
		coordinate, err := entity.NewCoordinate(cfg.Static.Latitude, cfg.Static.Longitude)
		if err != nil {
			return nil, errors.Wrap(err, "invalid static platform position")
		}
		logger.Info("Using static location platform",
			slog.String("position", coordinate.String()),
			slog.Bool("granted", cfg.Static.Granted),
		)

		return &staticFactory{device: &staticDevice{granted: cfg.Static.Granted, coordinate: coordinate}}, nil

	case config.PlatformProviderReported:
		maxFixAge := cfg.MaxFixAge
		if maxFixAge <= 0 {
			maxFixAge = config.DefaultMaxFixAge
		}
		logger.Info("Using client-reported location platform", slog.Duration("max_fix_age", maxFixAge))

		return &reportedFactory{maxFixAge: maxFixAge, logger: logger}, nil

	default:
		return nil, errors.Errorf("unknown platform provider: %s", cfg.Provider)
	}
}

// Module provides the platform FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewDeviceFactory),
)
