// Package handler contains the HTTP handlers of the map API.
package handler

import (
	"locator/internal/delivery/api/middleware"
	"locator/internal/delivery/api/response"
	"locator/internal/delivery/api/validator"
	"locator/internal/domain/entity"
	domainerrors "locator/internal/domain/errors"
	"locator/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// PositionRequest is a latitude/longitude pair in a request body
type PositionRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

// Coordinate converts a validated request to a coordinate
func (r PositionRequest) Coordinate() entity.Coordinate {
	return entity.Coordinate{Latitude: *r.Latitude, Longitude: *r.Longitude}
}

// bindAndValidate writes the 400 response itself when the body is unusable; done reports that case
func bindAndValidate(c echo.Context, req any) (done bool, err error) {
	if err := c.Bind(req); err != nil {
		return true, response.BadRequest(c, "INVALID_INPUT", "Request body is not valid JSON")
	}

	if err := c.Validate(req); err != nil {
		return true, response.BadRequestWithDetails(c, domainerrors.ErrValidationFailed.ErrorCode(),
			domainerrors.ErrValidationFailed.Message(), validator.FieldErrors(err))
	}

	return false, nil
}

// currentView resolves the :id view of the authenticated user.
// When done is true the response has been written and err is what the handler returns.
func currentView(c echo.Context, sessionUC usecase.SessionUsecase) (view *usecase.MapView, done bool, err error) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return nil, true, response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	viewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, true, response.BadRequest(c, "INVALID_ID", "Invalid view ID")
	}

	view, err = sessionUC.View(userID, viewID)
	if err != nil {
		return nil, true, response.HandleAppError(c, err)
	}

	return view, false, nil
}
