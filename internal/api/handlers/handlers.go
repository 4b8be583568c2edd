package handlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/dacarsoft/finance-bot/internal/api/middleware"
	"github.com/dacarsoft/finance-bot/internal/bot"
)

// BotStatus exposes the pieces of the running bot the API reports on.
type BotStatus interface {
	Running() bool
	WhoAmI() (bot.Identity, error)
}

// StatusHandler serves the small REST surface next to the bot: a root
// descriptor, a health check and the bot identity.
type StatusHandler struct {
	name     string
	username string
	version  string
	bot      BotStatus
	log      zerolog.Logger
}

// NewStatusHandler creates a status handler.
func NewStatusHandler(name, username, version string, botStatus BotStatus, log zerolog.Logger) *StatusHandler {
	return &StatusHandler{
		name:     name,
		username: username,
		version:  version,
		bot:      botStatus,
		log:      log,
	}
}

// Root handles GET /
func (h *StatusHandler) Root(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]string{
		"name":     h.name,
		"username": h.username,
		"status":   "running",
		"version":  h.version,
	})
}

// Health handles GET /health
func (h *StatusHandler) Health(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "healthy",
		"bot_running": h.bot.Running(),
		"time":        time.Now().Format(time.RFC3339),
	})
}

// Info handles GET /info
func (h *StatusHandler) Info(w http.ResponseWriter, r *http.Request) {
	identity, err := h.bot.WhoAmI()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch bot identity")
		middleware.WriteError(w, http.StatusBadGateway, "Failed to fetch bot info")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, identity)
}
