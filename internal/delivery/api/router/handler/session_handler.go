package handler

import (
	"log/slog"
	"net/http"
	"time"

	"locator/internal/delivery/api/middleware"
	"locator/internal/delivery/api/response"
	"locator/internal/domain/entity"
	domainerrors "locator/internal/domain/errors"
	"locator/internal/domain/service"
	"locator/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// SessionHandlerParams holds dependencies for SessionHandler, injected by Fx.
type SessionHandlerParams struct {
	fx.In

	SessionUC usecase.SessionUsecase
	Logger    *slog.Logger
}

// SessionHandler serves the user session and its location platform
type SessionHandler struct {
	sessionUC usecase.SessionUsecase
	logger    *slog.Logger
}

// NewSessionHandler is the constructor for SessionHandler
func NewSessionHandler(params SessionHandlerParams) *SessionHandler {
	return &SessionHandler{
		sessionUC: params.SessionUC,
		logger:    params.Logger,
	}
}

// SessionResponse describes an open user session
type SessionResponse struct {
	UserID     uuid.UUID              `json:"user_id"`
	Permission entity.PermissionState `json:"permission"`
	OpenedAt   time.Time              `json:"opened_at"`
}

// PermissionResponse carries the permission state of a session
type PermissionResponse struct {
	Permission entity.PermissionState `json:"permission"`
}

// AnswerPermissionRequest answers a pending permission prompt
type AnswerPermissionRequest struct {
	Granted *bool `json:"granted" validate:"required"`
}

func (h *SessionHandler) session(c echo.Context) (*usecase.UserSession, bool, error) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return nil, true, response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	session, err := h.sessionUC.Session(userID)
	if err != nil {
		return nil, true, response.HandleAppError(c, err)
	}

	return session, false, nil
}

// reportingDevice returns the session device when it accepts client reports
func reportingDevice(session *usecase.UserSession) (service.ReportingDevice, error) {
	device, ok := session.Device.(service.ReportingDevice)
	if !ok {
		return nil, domainerrors.ErrReportingUnsupported
	}

	return device, nil
}

// OpenSession opens the caller's session, returning the open one if it exists
func (h *SessionHandler) OpenSession(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	session, err := h.sessionUC.OpenSession(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, SessionResponse{
		UserID:     session.UserID,
		Permission: session.Gate.CurrentState(),
		OpenedAt:   session.OpenedAt,
	})
}

// CloseSession logs out, unmounting every view of the session
func (h *SessionHandler) CloseSession(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	if err := h.sessionUC.CloseSession(c.Request().Context(), userID); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetPermission returns the current permission state
func (h *SessionHandler) GetPermission(c echo.Context) error {
	session, done, err := h.session(c)
	if done {
		return err
	}

	return response.Success(c, http.StatusOK, PermissionResponse{Permission: session.Gate.CurrentState()})
}

// RequestPermission starts the permission prompt without waiting for its answer
func (h *SessionHandler) RequestPermission(c echo.Context) error {
	session, done, err := h.session(c)
	if done {
		return err
	}

	state := session.Gate.BeginRequest()

	return response.Success(c, http.StatusAccepted, PermissionResponse{Permission: state})
}

// AnswerPermission resolves the pending prompt of a reported device
func (h *SessionHandler) AnswerPermission(c echo.Context) error {
	session, done, err := h.session(c)
	if done {
		return err
	}

	var req AnswerPermissionRequest
	if done, err := bindAndValidate(c, &req); done {
		return err
	}

	device, err := reportingDevice(session)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := device.AnswerPrompt(*req.Granted); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, PermissionResponse{Permission: session.Gate.CurrentState()})
}

// ReportPosition records a position fix from a reported device
func (h *SessionHandler) ReportPosition(c echo.Context) error {
	session, done, err := h.session(c)
	if done {
		return err
	}

	var req PositionRequest
	if done, err := bindAndValidate(c, &req); done {
		return err
	}

	device, err := reportingDevice(session)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := device.ReportPosition(req.Coordinate()); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
