package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dacarsoft/finance-bot/internal/domain"
)

// Result is the outcome of classifying one message. At most one of the
// two records is set; an empty Result means the message was unparsable
// and the caller should ask the user to rephrase.
type Result struct {
	Transaction *domain.Transaction
	Capital     *domain.CapitalMovement
}

// Empty reports whether classification produced no record.
func (r Result) Empty() bool {
	return r.Transaction == nil && r.Capital == nil
}

// Parser turns one free-text Spanish finance message into exactly one
// validated record, or nothing. It is stateless and safe for concurrent
// use; every call is one model round trip with no retry and no cache.
type Parser struct {
	model TextModel
	log   zerolog.Logger
}

// New creates a Parser around the given model capability.
func New(model TextModel, log zerolog.Logger) *Parser {
	return &Parser{model: model, log: log}
}

// Parse classifies message. Failures never propagate to the caller: a
// model fault, a malformed response, an explicit error object or a
// record that fails its construction invariants all yield an empty
// Result, logged with the raw response for offline inspection.
func (p *Parser) Parse(ctx context.Context, message string) Result {
	raw, err := p.model.Generate(ctx, systemPrompt, message)
	if err != nil {
		p.log.Error().Err(err).Str("message", message).Msg("Model call failed")
		return Result{}
	}

	obj, err := decodeModelJSON(raw)
	if err != nil {
		p.log.Warn().Err(err).Str("message", message).Str("raw_response", raw).Msg("Unparsable model response")
		return Result{}
	}

	if errMsg, ok := obj["error"].(string); ok {
		p.log.Warn().Str("message", message).Str("model_error", errMsg).Msg("Model declined to classify")
		return Result{}
	}

	res, err := buildRecord(obj, message)
	if err != nil {
		p.log.Warn().Err(err).Str("message", message).Str("raw_response", raw).Msg("Model output failed validation")
		return Result{}
	}
	return res
}

// buildRecord validates the decoded model output against the closed
// schema for its kind and constructs the record. Capital kinds build a
// CapitalMovement; everything else builds a Transaction and lets the
// domain constructor reject unknown kinds.
func buildRecord(obj map[string]interface{}, message string) (Result, error) {
	kindStr, err := getStringField(obj, "kind", true)
	if err != nil {
		return Result{}, err
	}
	kind := domain.TransactionKind(strings.ToLower(strings.TrimSpace(kindStr)))

	amount, err := getNumberField(obj, "amount", true)
	if err != nil {
		return Result{}, err
	}

	description := getOptionalStringField(obj, "description")
	if description == "" {
		description = message
	}

	if kind.IsCapital() {
		institution := getOptionalStringField(obj, "institution")
		if institution == "" {
			institution = "general"
		}
		cm, err := domain.NewCapitalMovement(kind, decimal.NewFromFloat(amount), institution, description, time.Now())
		if err != nil {
			return Result{}, err
		}
		return Result{Capital: cm}, nil
	}

	category, err := getStringField(obj, "category", true)
	if err != nil {
		return Result{}, err
	}
	tx, err := domain.NewTransaction(kind, decimal.NewFromFloat(amount), category, description, time.Now())
	if err != nil {
		return Result{}, err
	}
	return Result{Transaction: tx}, nil
}

// decodeModelJSON strips the Markdown fences the model sometimes adds
// despite the instructions and decodes the remaining text as a single
// JSON object.
func decodeModelJSON(raw string) (map[string]interface{}, error) {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		// Drop the first line (``` or ```json).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	// If there is still junk around the object, keep only the first '{'
	// through the last '}'.
	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end > start {
			s = s[start : end+1]
		}
	}

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, fmt.Errorf("decodeModelJSON: unmarshal: %w", err)
	}
	return obj, nil
}
