package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/antigone-study/backend/internal/kvstore"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	eventsBuffer      = 32
	heartbeatInterval = 25 * time.Second
)

// ChangeFeed is the interface that wraps subscription to store changes
type ChangeFeed interface {
	// Method Subscribe registers "fn" for every change and returns the function removing it.
	Subscribe(fn func(kvstore.Change)) func()
}

// EventsHandler streams the store changes of the calling device as server-sent events
type EventsHandler struct {
	BaseHandler
	feed      ChangeFeed
	heartbeat time.Duration
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(feed ChangeFeed, logger *zap.Logger) *EventsHandler {
	return &EventsHandler{
		BaseHandler: newBaseHandler(logger),
		feed:        feed,
		heartbeat:   heartbeatInterval,
	}
}

// RegisterRoutes registers all events handler routes
func (h *EventsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/events", h.Stream)
}

// Stream handles GET /events
// @Summary Stream record changes
// @Description Server-sent events, one "change" event per write to a record of the calling device. Data is {key, value, deleted, at}.
// @Tags events
// @Produce text/event-stream
// @Success 200 {object} kvstore.Change
// @Failure 401 {object} map[string]string
// @Router /events [get]
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	// the server write timeout would cut the stream
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		h.Logger.Debug("write deadline not supported", zap.Error(err))
	}

	scope := kvstore.ScopeFrom(r.Context())
	changes := make(chan kvstore.Change, eventsBuffer)
	unsubscribe := h.feed.Subscribe(func(c kvstore.Change) {
		if c.Scope != scope {
			return
		}
		select {
		case changes <- c:
		default:
			h.Logger.Warn("dropping change event for slow client", zap.String("key", c.Key))
		}
	})
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		h.Logger.Error("streaming not supported", zap.Error(err))
		return
	}

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
		case c := <-changes:
			c.Scope = ""
			data, err := json.Marshal(c)
			if err != nil {
				h.Logger.Error("failed to encode change event", zap.Error(err))
				continue
			}
			if _, err := fmt.Fprintf(w, "event: change\ndata: %s\n\n", data); err != nil {
				return
			}
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}
