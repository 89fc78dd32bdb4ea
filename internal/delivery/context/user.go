package context

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// KeyUserID is the key for storing the authenticated user ID in echo.Context.
const KeyUserID ContextKey = "user_id"

// SetUserID sets the authenticated user ID in echo.Context.
func SetUserID(c echo.Context, userID uuid.UUID) {
	c.Set(string(KeyUserID), userID)
}

// GetUserID extracts the authenticated user ID from echo.Context.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(string(KeyUserID)).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}

	return userID, true
}
