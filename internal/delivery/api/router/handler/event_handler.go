package handler

import (
	"log/slog"
	"net/http"
	"time"

	"locator/internal/delivery/api/response"
	deliverycontext "locator/internal/delivery/context"
	"locator/internal/domain/entity"
	"locator/internal/usecase"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	eventWriteWait  = 10 * time.Second
	eventPongWait   = 60 * time.Second
	eventPingPeriod = eventPongWait * 9 / 10
)

// EventHandlerParams holds dependencies for EventHandler, injected by Fx.
type EventHandlerParams struct {
	fx.In

	SessionUC usecase.SessionUsecase
	Logger    *slog.Logger
}

// EventHandler streams a view's state, camera and permission events over a websocket
type EventHandler struct {
	sessionUC usecase.SessionUsecase
	logger    *slog.Logger
	upgrader  websocket.Upgrader
}

// NewEventHandler is the constructor for EventHandler
func NewEventHandler(params EventHandlerParams) *EventHandler {
	return &EventHandler{
		sessionUC: params.SessionUC,
		logger:    params.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Stream upgrades the request and sends the current state and permission, then every change.
// The stream ends when the view is unmounted or the client goes away.
func (h *EventHandler) Stream(c echo.Context) error {
	view, done, err := currentView(c, h.sessionUC)
	if done {
		return err
	}

	session, err := h.sessionUC.Session(view.UserID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	// subscribe before the snapshot so no change between the two is lost
	events, unsubscribeEvents := view.Coordinator.Subscribe()
	defer unsubscribeEvents()
	permissions, unsubscribePermissions := session.Gate.Subscribe()
	defer unsubscribePermissions()

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader has already written the error response
		return nil
	}
	defer conn.Close()

	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).
		With(slog.String("view_id", view.ID.String()))
	logger.Debug("Event stream opened")

	closed := make(chan struct{})
	go readUntilClosed(conn, closed)

	state := view.Coordinator.Snapshot()
	permission := session.Gate.CurrentState()
	if err := writeEvent(conn, usecase.SelectionEvent{Type: usecase.EventTypeState, State: &state}); err != nil {
		return nil
	}
	if err := writeEvent(conn, permissionEvent(permission)); err != nil {
		return nil
	}

	ticker := time.NewTicker(eventPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "view unmounted"),
					time.Now().Add(eventWriteWait))
				logger.Debug("Event stream closed by view")

				return nil
			}
			if err := writeEvent(conn, event); err != nil {
				logger.Debug("Event stream write failed", slog.Any("error", err))

				return nil
			}

		case state, ok := <-permissions:
			if !ok {
				// session closed; the view is torn down with it
				permissions = nil

				continue
			}
			if err := writeEvent(conn, permissionEvent(state)); err != nil {
				return nil
			}

		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(eventWriteWait)); err != nil {
				return nil
			}

		case <-closed:
			logger.Debug("Event stream closed by client")

			return nil
		}
	}
}

func permissionEvent(state entity.PermissionState) usecase.SelectionEvent {
	return usecase.SelectionEvent{Type: usecase.EventTypePermission, Permission: &state}
}

func writeEvent(conn *websocket.Conn, event usecase.SelectionEvent) error {
	if err := conn.SetWriteDeadline(time.Now().Add(eventWriteWait)); err != nil {
		return err
	}

	return conn.WriteJSON(event)
}

// readUntilClosed discards client messages and closes done when the connection ends
func readUntilClosed(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	_ = conn.SetReadDeadline(time.Now().Add(eventPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(eventPongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
