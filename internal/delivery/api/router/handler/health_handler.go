package handler

import (
	"net/http"

	"locator/internal/delivery/api/response"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthCheck answers liveness probes
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}

// MetricsHandler serves the registry in the Prometheus exposition format
func MetricsHandler(gatherer prometheus.Gatherer) echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}
