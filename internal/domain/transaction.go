package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SheetTimeFormat is the textual timestamp layout used in every sheet row.
const SheetTimeFormat = "2006-01-02 15:04:05"

// TransactionKind discriminates the record shapes produced by the
// classifier. The saving/investment values overlap with CapitalMovement
// on purpose: the model may still emit them on the transaction shape, and
// the sheets service rejects that combination instead of guessing.
type TransactionKind string

const (
	KindExpense    TransactionKind = "expense"
	KindIncome     TransactionKind = "income"
	KindBudget     TransactionKind = "budget"
	KindSaving     TransactionKind = "saving"
	KindInvestment TransactionKind = "investment"
)

// Valid reports whether k is one of the known kinds.
func (k TransactionKind) Valid() bool {
	switch k {
	case KindExpense, KindIncome, KindBudget, KindSaving, KindInvestment:
		return true
	}
	return false
}

// IsCapital reports whether k belongs to the capital-movement shape.
func (k TransactionKind) IsCapital() bool {
	return k == KindSaving || k == KindInvestment
}

// Transaction is one operational financial event: an expense, an income
// or a budget allocation. Instances are normalized and validated at
// construction and immutable afterwards; the spreadsheet is the system
// of record, so there is no update or delete.
type Transaction struct {
	Kind        TransactionKind
	Amount      decimal.Decimal
	Category    string
	Description string
	OccurredAt  time.Time
}

// NewTransaction validates and normalizes the fields into a Transaction.
// The amount must be strictly positive and is rounded to two decimals;
// the category is lower-cased and trimmed and must not end up empty.
// A zero occurredAt defaults to the current time.
func NewTransaction(kind TransactionKind, amount decimal.Decimal, category, description string, occurredAt time.Time) (*Transaction, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("NewTransaction: unknown kind %q", kind)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("NewTransaction: amount must be positive, got %s", amount)
	}
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return nil, fmt.Errorf("NewTransaction: category must not be empty")
	}
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}
	return &Transaction{
		Kind:        kind,
		Amount:      amount.Round(2),
		Category:    category,
		Description: strings.TrimSpace(description),
		OccurredAt:  occurredAt,
	}, nil
}

// IsIncome reports the value of the Es Ingreso column.
func (t *Transaction) IsIncome() bool {
	return t.Kind == KindIncome
}

// SheetRow maps the transaction to the unified Transacciones row:
// Fecha, Monto, Categoría, Descripción, Es Ingreso.
func (t *Transaction) SheetRow() []interface{} {
	return []interface{}{
		t.OccurredAt.Format(SheetTimeFormat),
		t.Amount.InexactFloat64(),
		t.Category,
		t.Description,
		t.IsIncome(),
	}
}

// BudgetRow maps the transaction to the Presupuestos row, which carries
// no income flag: Fecha, Monto, Categoría, Descripción.
func (t *Transaction) BudgetRow() []interface{} {
	return []interface{}{
		t.OccurredAt.Format(SheetTimeFormat),
		t.Amount.InexactFloat64(),
		t.Category,
		t.Description,
	}
}
