package service

import (
	"time"

	"locator/internal/domain/entity"
)

// Outcome labels shared by the routing metrics
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeSnapshot = "snapshot"
)

// RoutingMetrics records routing engine activity
type RoutingMetrics interface {
	ObserveResolution(outcome string, elapsed time.Duration)
	IncStaleResult()
	IncCatalogFetch(outcome string)
	IncPermissionTransition(state entity.PermissionState)
}

// NopMetrics discards every observation
type NopMetrics struct{}

func (NopMetrics) ObserveResolution(string, time.Duration)         {}
func (NopMetrics) IncStaleResult()                                 {}
func (NopMetrics) IncCatalogFetch(string)                          {}
func (NopMetrics) IncPermissionTransition(entity.PermissionState) {}
