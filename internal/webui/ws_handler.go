package webui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"launchdash.dev/internal/charts"
	"launchdash.dev/internal/dashboard"
	"launchdash.dev/internal/logging"
	"launchdash.dev/internal/models"
	"launchdash.dev/internal/utils"
)

const (
	wsPingInterval = 30 * time.Second
	wsPongWait     = 60 * time.Second
	wsWriteWait    = 10 * time.Second
	wsReadLimit    = 4096
)

var errPayloadArity = errors.New("payload-slider must hold exactly two values")

// clientEvent is one control change sent by the browser. A nil input keeps the
// session's current value.
type clientEvent struct {
	Changed []string     `json:"changed"`
	Inputs  clientInputs `json:"inputs"`
}

type clientInputs struct {
	Site    *string   `json:"site-dropdown"`
	Payload []float64 `json:"payload-slider"`
}

type errorMessage struct {
	Error string `json:"error"`
}

// apply returns state with the event's inputs merged in.
func (event clientEvent) apply(state dashboard.State) (dashboard.State, error) {
	if event.Inputs.Site != nil {
		site := *event.Inputs.Site
		if err := utils.ValidateSite(site); err != nil {
			return state, err
		}
		state.Site = site
	}

	if event.Inputs.Payload != nil {
		if len(event.Inputs.Payload) != 2 {
			return state, errPayloadArity
		}
		for _, kg := range event.Inputs.Payload {
			if err := utils.ValidatePayloadBound(kg); err != nil {
				return state, err
			}
		}
		state.Payload = models.PayloadRange{Low: event.Inputs.Payload[0], High: event.Inputs.Payload[1]}
	}

	return state, nil
}

type wsSession struct {
	conn   *websocket.Conn
	logger *slog.Logger
	state  dashboard.State
}

func (s *wsSession) writeJSON(v interface{}) error {
	if err := s.conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
		return err
	}
	return s.conn.WriteJSON(v)
}

func (webUI *WebUI) websocketHandler(w http.ResponseWriter, r *http.Request) {
	if webUI.RequestHasInvalidAPIKey(r) {
		http.Error(w, "permission denied", http.StatusUnauthorized)
		return
	}

	conn, err := webUI.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.LogError(webUI.Logger, "websocket upgrade failed", err,
			slog.String("component", "webui"))
		return
	}

	session := &wsSession{
		conn: conn,
		logger: webUI.Logger.With(
			slog.String("session", uuid.NewString()),
			slog.String("remote_addr", r.RemoteAddr),
			slog.String("component", "webui")),
		state: webUI.InitialState(),
	}
	defer logging.SafeCloseWithLogging(conn, session.logger, "websocket connection")

	session.logger.Info("websocket session opened")
	defer session.logger.Info("websocket session closed")

	ctx := logging.WithLogger(r.Context(), session.logger)

	if err := webUI.push(ctx, session, nil); err != nil {
		return
	}

	conn.SetReadLimit(wsReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	events := make(chan []byte)
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					session.logger.Warn("websocket read failed", slog.String("error", err.Error()))
				}
				return
			}
			select {
			case events <- data:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case data := <-events:
			if err := webUI.handleEvent(ctx, session, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-readDone:
			return
		case <-ctx.Done():
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
			return
		}
	}
}

// handleEvent applies one client event and pushes the figures it affects. Bad input is
// reported to the client and leaves the session open; only write failures end it.
func (webUI *WebUI) handleEvent(ctx context.Context, session *wsSession, data []byte) error {
	var event clientEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return session.writeJSON(errorMessage{Error: "malformed event"})
	}

	state, err := event.apply(session.state)
	if err != nil {
		return session.writeJSON(errorMessage{Error: err.Error()})
	}
	if event.Inputs.Site != nil && !webUI.KnownSite(state.Site) {
		session.logger.Debug("unknown site selected", slog.String("site", state.Site))
	}
	session.state = state

	if len(event.Changed) == 0 {
		return nil
	}
	return webUI.push(ctx, session, event.Changed)
}

// push renders the outputs affected by changed, or every output when changed is empty,
// and writes one message per figure.
func (webUI *WebUI) push(ctx context.Context, session *wsSession, changed []string) error {
	updates, err := webUI.Dispatcher.Dispatch(ctx, session.state, changed)

	for _, update := range updates {
		option, optErr := charts.EChartsOption(update.Figure)
		if optErr != nil {
			return session.writeJSON(errorMessage{Error: optErr.Error()})
		}
		if werr := session.writeJSON(models.RenderedFigure{
			Output: update.Output,
			Figure: update.Figure,
			Option: option,
		}); werr != nil {
			return werr
		}
	}

	if err != nil {
		session.logger.Error("dispatch failed", slog.String("error", err.Error()))
		return session.writeJSON(errorMessage{Error: fmt.Sprintf("failed to update charts: %v", err)})
	}
	return nil
}
