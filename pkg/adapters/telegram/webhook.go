package telegram

import (
	"encoding/json"
	"net/http"
	"strconv"

	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/mohammaddehghani/fuelrep/internal/logging"
	"github.com/mohammaddehghani/fuelrep/pkg/domain"
	"github.com/mohammaddehghani/fuelrep/pkg/ports"
)

// NewWebhookHandler builds the HTTP surface for inbound updates: POST on the
// given path plus a /healthz liveness route.
//
// The handler always answers 200 once the payload is syntactically readable;
// Telegram re-delivers updates on non-2xx responses, and re-delivering an
// update the machine already rejected would only repeat the failure.
func NewWebhookHandler(path string, handler ports.UpdateHandler, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = logging.NewNop()
	}

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Post(path, func(w http.ResponseWriter, req *http.Request) {
		var update Update
		if err := json.NewDecoder(req.Body).Decode(&update); err != nil {
			logger.Warn("dropping malformed update", "err", err)
			http.Error(w, "invalid update body", http.StatusBadRequest)
			return
		}

		up, ok := mapUpdate(update)
		if ok {
			if err := handler.HandleUpdate(req.Context(), up); err != nil {
				logger.Error("update handling failed",
					"update_id", update.UpdateID,
					"session_id", up.SessionID,
					"err", err,
				)
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

// mapUpdate converts the wire update into the domain event. Updates without
// a message map to (zero, false) and are dropped here; messages without a
// usable body still flow through so the dispatcher can count them.
func mapUpdate(update Update) (domain.Update, bool) {
	msg := update.Message
	if msg == nil {
		return domain.Update{}, false
	}
	up := domain.Update{
		SessionID: strconv.FormatInt(msg.Chat.ID, 10),
		Text:      msg.Text,
	}
	if msg.Document != nil {
		up.Document = &domain.DocumentRef{
			ID:       msg.Document.FileID,
			FileName: msg.Document.FileName,
		}
	}
	return up, true
}
