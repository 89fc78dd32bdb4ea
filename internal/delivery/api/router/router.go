// Package router wires the API routes to their handlers.
package router

import (
	"locator/internal/delivery/api/middleware"
	"locator/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	SessionHandler *handler.SessionHandler
	ViewHandler    *handler.ViewHandler
	EventHandler   *handler.EventHandler
	AuthMiddleware *middleware.AuthMiddleware
	Gatherer       prometheus.Gatherer
}

// router holds all the handlers that need to be registered.
type router struct {
	sessionHandler *handler.SessionHandler
	viewHandler    *handler.ViewHandler
	eventHandler   *handler.EventHandler
	authMiddleware *middleware.AuthMiddleware
	gatherer       prometheus.Gatherer
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		sessionHandler: params.SessionHandler,
		viewHandler:    params.ViewHandler,
		eventHandler:   params.EventHandler,
		authMiddleware: params.AuthMiddleware,
		gatherer:       params.Gatherer,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler(r.gatherer))

	apiV1 := e.Group("/api/v1")
	apiV1.Use(r.authMiddleware.Authenticate)

	sessionGroup := apiV1.Group("/session")
	{
		sessionGroup.POST("", r.sessionHandler.OpenSession)
		sessionGroup.DELETE("", r.sessionHandler.CloseSession)
		sessionGroup.GET("/permission", r.sessionHandler.GetPermission)
		sessionGroup.POST("/permission/request", r.sessionHandler.RequestPermission)
		sessionGroup.POST("/permission/answer", r.sessionHandler.AnswerPermission)
		sessionGroup.PUT("/position", r.sessionHandler.ReportPosition)
	}

	viewsGroup := apiV1.Group("/views")
	{
		viewsGroup.POST("", r.viewHandler.MountView)
		viewsGroup.DELETE("/:id", r.viewHandler.UnmountView)

		viewsGroup.GET("/:id/clinics", r.viewHandler.ListClinics)
		viewsGroup.POST("/:id/clinics/refresh", r.viewHandler.RefreshClinics)

		viewsGroup.PUT("/:id/selection", r.viewHandler.SetSelection)
		viewsGroup.DELETE("/:id/selection", r.viewHandler.ClearSelection)

		viewsGroup.PUT("/:id/origin", r.viewHandler.SetOrigin)
		viewsGroup.POST("/:id/origin/locate", r.viewHandler.LocateOrigin)

		viewsGroup.GET("/:id/state", r.viewHandler.GetState)
		viewsGroup.DELETE("/:id/error", r.viewHandler.DismissError)
		viewsGroup.GET("/:id/camera", r.viewHandler.TakeCamera)
		viewsGroup.GET("/:id/events", r.eventHandler.Stream)
	}
}
