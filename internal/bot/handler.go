package bot

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dacarsoft/finance-bot/internal/domain"
	"github.com/dacarsoft/finance-bot/internal/parser"
)

// Classifier turns one free-text message into at most one record.
type Classifier interface {
	Parse(ctx context.Context, message string) parser.Result
}

// Store persists validated records.
type Store interface {
	SaveTransaction(ctx context.Context, tx *domain.Transaction) error
	SaveCapitalMovement(ctx context.Context, cm *domain.CapitalMovement) error
}

// Reply is outbound text plus its styling mode.
type Reply struct {
	Text     string
	Markdown bool
}

// Handler implements the conversational flow: classify, persist, reply.
// Every message is processed independently; there is no session state
// and no multi-turn memory.
type Handler struct {
	classifier Classifier
	store      Store // nil when the persistence path failed to start
	log        zerolog.Logger
}

// NewHandler wires the classifier and store into a Handler. A nil store
// means persistence was disabled at startup; messages still get parsed
// but every save is answered with the failure message.
func NewHandler(classifier Classifier, store Store, log zerolog.Logger) *Handler {
	return &Handler{classifier: classifier, store: store, log: log}
}

// Command answers a slash command. Unknown commands point at /help.
func (h *Handler) Command(name string) Reply {
	switch name {
	case "start":
		return Reply{Text: welcomeMessage}
	case "help":
		return Reply{Text: helpMessage, Markdown: true}
	case "stats":
		return Reply{Text: statsMessage, Markdown: true}
	default:
		return Reply{Text: "Comando desconocido. Usa /help para ver los comandos disponibles."}
	}
}

// HandleText processes one free-text message end to end and returns the
// reply to send. It never returns an error: every failure maps to one of
// the fixed user-facing messages.
func (h *Handler) HandleText(ctx context.Context, userID int64, text string) Reply {
	h.log.Info().Int64("user_id", userID).Str("message", text).Msg("Received message")

	res := h.classifier.Parse(ctx, text)
	if res.Empty() {
		return Reply{Text: clarificationMessage}
	}

	if h.store == nil {
		h.log.Error().Int64("user_id", userID).Msg("Persistence disabled; record not saved")
		return Reply{Text: saveFailedMessage}
	}

	if res.Capital != nil {
		if err := h.store.SaveCapitalMovement(ctx, res.Capital); err != nil {
			h.log.Error().Err(err).Int64("user_id", userID).Msg("Failed to save capital movement")
			return Reply{Text: saveFailedMessage}
		}
		return Reply{Text: capitalConfirmation(res.Capital), Markdown: true}
	}

	if err := h.store.SaveTransaction(ctx, res.Transaction); err != nil {
		h.log.Error().Err(err).Int64("user_id", userID).Msg("Failed to save transaction")
		return Reply{Text: saveFailedMessage}
	}
	return Reply{Text: transactionConfirmation(res.Transaction), Markdown: true}
}
