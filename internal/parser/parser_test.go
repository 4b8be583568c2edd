package parser

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacarsoft/finance-bot/internal/domain"
	"github.com/dacarsoft/finance-bot/internal/logger"
)

// mockModel returns a canned response (or error) for every message.
type mockModel struct {
	response string
	err      error

	lastInstructions string
	lastMessage      string
}

func (m *mockModel) Generate(ctx context.Context, instructions, message string) (string, error) {
	m.lastInstructions = instructions
	m.lastMessage = message
	return m.response, m.err
}

func newTestParser(model TextModel) *Parser {
	return New(model, logger.NewWithWriter(io.Discard))
}

func TestParse_Expense(t *testing.T) {
	model := &mockModel{response: `{"kind": "expense", "amount": 50000, "category": "comida", "description": "Gasté 50 mil en comida"}`}
	p := newTestParser(model)

	res := p.Parse(context.Background(), "Gasté 50 mil en comida")

	require.NotNil(t, res.Transaction)
	assert.Nil(t, res.Capital)
	assert.Equal(t, domain.KindExpense, res.Transaction.Kind)
	assert.Equal(t, "50000", res.Transaction.Amount.String())
	assert.Equal(t, "comida", res.Transaction.Category)
	assert.Equal(t, "Gasté 50 mil en comida", res.Transaction.Description)
	assert.False(t, res.Transaction.OccurredAt.IsZero())

	assert.Equal(t, "Gasté 50 mil en comida", model.lastMessage)
	assert.Contains(t, model.lastInstructions, `"kind"`)
}

func TestParse_Investment(t *testing.T) {
	model := &mockModel{response: `{"kind": "investment", "amount": 500000, "institution": "cdt", "description": "Invertí 500 mil en CDT"}`}
	p := newTestParser(model)

	res := p.Parse(context.Background(), "Invertí 500 mil en CDT")

	require.NotNil(t, res.Capital)
	assert.Nil(t, res.Transaction)
	assert.Equal(t, domain.KindInvestment, res.Capital.Kind)
	assert.Equal(t, "500000", res.Capital.Principal.String())
	assert.Equal(t, "cdt", res.Capital.Institution)
	assert.Equal(t, domain.StatusActive, res.Capital.Status)
	assert.True(t, res.Capital.Returns.IsZero())
}

func TestParse_SavingDefaultsInstitution(t *testing.T) {
	model := &mockModel{response: `{"kind": "saving", "amount": 50000, "description": "Ahorré 50 mil para emergencias"}`}
	p := newTestParser(model)

	res := p.Parse(context.Background(), "Ahorré 50 mil para emergencias")

	require.NotNil(t, res.Capital)
	assert.Equal(t, "general", res.Capital.Institution)
}

func TestParse_DescriptionDefaultsToMessage(t *testing.T) {
	model := &mockModel{response: `{"kind": "expense", "amount": 15000, "category": "transporte"}`}
	p := newTestParser(model)

	res := p.Parse(context.Background(), "Pagué 15000 en Uber")

	require.NotNil(t, res.Transaction)
	assert.Equal(t, "Pagué 15000 en Uber", res.Transaction.Description)
}

func TestParse_FencedResponse(t *testing.T) {
	model := &mockModel{response: "```json\n{\"kind\": \"budget\", \"amount\": 300000, \"category\": \"transporte\", \"description\": \"Presupuesto de 300 mil para transporte\"}\n```"}
	p := newTestParser(model)

	res := p.Parse(context.Background(), "Presupuesto de 300 mil para transporte")

	require.NotNil(t, res.Transaction)
	assert.Equal(t, domain.KindBudget, res.Transaction.Kind)
	assert.Equal(t, "300000", res.Transaction.Amount.String())
}

func TestParse_NoResult(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
	}{
		{name: "model error", err: errors.New("transport fault")},
		{name: "explicit error object", response: `{"error": "mensaje ambiguo"}`},
		{name: "malformed json", response: `no soy json`},
		{name: "missing kind", response: `{"amount": 100, "category": "comida"}`},
		{name: "missing amount", response: `{"kind": "expense", "category": "comida"}`},
		{name: "amount as string", response: `{"kind": "expense", "amount": "50000", "category": "comida"}`},
		{name: "non-positive amount", response: `{"kind": "expense", "amount": -5, "category": "comida"}`},
		{name: "zero amount", response: `{"kind": "expense", "amount": 0, "category": "comida"}`},
		{name: "missing category", response: `{"kind": "expense", "amount": 100}`},
		{name: "unknown kind", response: `{"kind": "loan", "amount": 100, "category": "comida"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParser(&mockModel{response: tt.response, err: tt.err})
			res := p.Parse(context.Background(), "hola, ¿cómo estás?")
			assert.True(t, res.Empty())
		})
	}
}

func TestDecodeModelJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "plain object", raw: `{"kind": "expense"}`},
		{name: "fenced with language", raw: "```json\n{\"kind\": \"expense\"}\n```"},
		{name: "fenced without language", raw: "```\n{\"kind\": \"expense\"}\n```"},
		{name: "surrounding prose", raw: "Claro, aquí tienes: {\"kind\": \"expense\"} espero que sirva"},
		{name: "not json", raw: "hola", wantErr: true},
		{name: "array instead of object", raw: `[1, 2]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := decodeModelJSON(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "expense", obj["kind"])
		})
	}
}
