package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"locator/internal/delivery/api/middleware"
	"locator/internal/delivery/api/response"
	"locator/internal/domain/entity"
	"locator/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ViewHandlerParams holds dependencies for ViewHandler, injected by Fx.
type ViewHandlerParams struct {
	fx.In

	SessionUC usecase.SessionUsecase
	Logger    *slog.Logger
}

// ViewHandler serves mounted map views: clinics, selection, origin and camera
type ViewHandler struct {
	sessionUC usecase.SessionUsecase
	logger    *slog.Logger
}

// NewViewHandler is the constructor for ViewHandler
func NewViewHandler(params ViewHandlerParams) *ViewHandler {
	return &ViewHandler{
		sessionUC: params.SessionUC,
		logger:    params.Logger,
	}
}

// ViewResponse describes a mounted map view
type ViewResponse struct {
	ID           uuid.UUID             `json:"id"`
	MountedAt    time.Time             `json:"mounted_at"`
	CatalogError *entity.ErrorKind     `json:"catalog_error"`
	ClinicCount  int                   `json:"clinic_count"`
	State        entity.SelectionState `json:"state"`
}

// ClinicsResponse lists the clinics of a view
type ClinicsResponse struct {
	Clinics []entity.Clinic `json:"clinics"`
}

// SelectionRequest selects a clinic as the route destination
type SelectionRequest struct {
	ClinicID string `json:"clinic_id" validate:"required"`
}

// MountView mounts a map view and runs its initial catalog fetch
func (h *ViewHandler) MountView(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	view, err := h.sessionUC.MountView(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, ViewResponse{
		ID:           view.ID,
		MountedAt:    view.MountedAt,
		CatalogError: view.CatalogError,
		ClinicCount:  len(view.Catalog.Clinics()),
		State:        view.Coordinator.Snapshot(),
	})
}

// UnmountView unmounts a map view, discarding its in-flight work
func (h *ViewHandler) UnmountView(c echo.Context) error {
	view, done, err := currentView(c, h.sessionUC)
	if done {
		return err
	}

	if err := h.sessionUC.UnmountView(c.Request().Context(), view.UserID, view.ID); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListClinics returns the held clinics; mappable=true keeps only clinics with a location
func (h *ViewHandler) ListClinics(c echo.Context) error {
	view, done, err := currentView(c, h.sessionUC)
	if done {
		return err
	}

	mappableOnly := false
	if raw := c.QueryParam("mappable"); raw != "" {
		mappableOnly, err = strconv.ParseBool(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_QUERY", "mappable must be a boolean")
		}
	}

	clinics := view.Catalog.Clinics()
	if mappableOnly {
		clinics = view.Catalog.Mappable()
	}

	return response.Success(c, http.StatusOK, ClinicsResponse{Clinics: clinics})
}

// RefreshClinics refetches the catalog, joining a refresh already in flight
func (h *ViewHandler) RefreshClinics(c echo.Context) error {
	view, done, err := currentView(c, h.sessionUC)
	if done {
		return err
	}

	clinics, err := view.Catalog.Refresh(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, ClinicsResponse{Clinics: clinics})
}

// SetSelection selects the destination clinic
func (h *ViewHandler) SetSelection(c echo.Context) error {
	view, done, err := currentView(c, h.sessionUC)
	if done {
		return err
	}

	var req SelectionRequest
	if done, err := bindAndValidate(c, &req); done {
		return err
	}

	if err := view.Coordinator.SetSelectedClinic(req.ClinicID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, view.Coordinator.Snapshot())
}

// ClearSelection clears the destination and the route
func (h *ViewHandler) ClearSelection(c echo.Context) error {
	view, done, err := currentView(c, h.sessionUC)
	if done {
		return err
	}

	view.Coordinator.ClearSelection()

	return response.Success(c, http.StatusOK, view.Coordinator.Snapshot())
}

// SetOrigin sets an explicit origin
func (h *ViewHandler) SetOrigin(c echo.Context) error {
	view, done, err := currentView(c, h.sessionUC)
	if done {
		return err
	}

	var req PositionRequest
	if done, err := bindAndValidate(c, &req); done {
		return err
	}

	if err := view.Coordinator.SetOrigin(req.Coordinate()); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, view.Coordinator.Snapshot())
}

// LocateOrigin uses the device position as the origin
func (h *ViewHandler) LocateOrigin(c echo.Context) error {
	view, done, err := currentView(c, h.sessionUC)
	if done {
		return err
	}

	if err := view.Coordinator.LocateOrigin(c.Request().Context()); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, view.Coordinator.Snapshot())
}

// GetState returns the current selection state
func (h *ViewHandler) GetState(c echo.Context) error {
	view, done, err := currentView(c, h.sessionUC)
	if done {
		return err
	}

	return response.Success(c, http.StatusOK, view.Coordinator.Snapshot())
}

// DismissError clears the route error
func (h *ViewHandler) DismissError(c echo.Context) error {
	view, done, err := currentView(c, h.sessionUC)
	if done {
		return err
	}

	view.Coordinator.DismissError()

	return response.Success(c, http.StatusOK, view.Coordinator.Snapshot())
}

// TakeCamera consumes the pending camera command; 204 when there is none
func (h *ViewHandler) TakeCamera(c echo.Context) error {
	view, done, err := currentView(c, h.sessionUC)
	if done {
		return err
	}

	camera, ok := view.Coordinator.TakeCameraCommand()
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}

	return response.Success(c, http.StatusOK, camera)
}
