package middleware

import (
	"log/slog"
	"strings"

	"locator/internal/delivery/api/response"
	deliverycontext "locator/internal/delivery/context"
	"locator/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AuthMiddleware authenticates requests with a bearer access token
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the token and stores its user ID on the context.
// The websocket route may pass the token as the access_token query parameter instead.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, ok := bearerToken(c)
		if !ok {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing or not a Bearer token")
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), slog.Default()).
				Debug("Rejected access token", slog.Any("error", err))

			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		deliverycontext.SetUserID(c, claims.UserID)

		ctx := c.Request().Context()
		if logger := deliverycontext.GetLogger(ctx); logger != nil {
			ctx = deliverycontext.WithLogger(ctx, logger.With(slog.String("user_id", claims.UserID.String())))
			c.SetRequest(c.Request().WithContext(ctx))
		}

		return next(c)
	}
}

func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		if token := c.QueryParam("access_token"); token != "" && isWebsocketUpgrade(c) {
			return token, true
		}

		return "", false
	}

	tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
	if !found || strings.TrimSpace(tokenString) == "" {
		return "", false
	}

	return strings.TrimSpace(tokenString), true
}

func isWebsocketUpgrade(c echo.Context) bool {
	return strings.EqualFold(c.Request().Header.Get(echo.HeaderUpgrade), "websocket")
}

// GetUserID returns the user ID stored by Authenticate
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	return deliverycontext.GetUserID(c)
}
