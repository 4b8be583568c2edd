package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CapitalStatus is the lifecycle state of a capital movement. The values
// are the Spanish tokens written to the Estado column.
type CapitalStatus string

const (
	StatusActive    CapitalStatus = "activo"
	StatusWithdrawn CapitalStatus = "retirado"
)

// CapitalMovement is a store-of-value event: money placed into a saving
// or an investment. Unlike Transaction it tracks where the money is held
// and what it has returned, not cash flow. Movements always start active
// with zero accrued returns; Withdraw and AddReturn exist for
// maintenance tooling and are not called from the conversational path.
type CapitalMovement struct {
	Kind        TransactionKind
	Principal   decimal.Decimal
	Institution string
	Status      CapitalStatus
	OpenedAt    time.Time
	ClosedAt    time.Time // zero until withdrawn
	Returns     decimal.Decimal
	Notes       string
}

// NewCapitalMovement validates and normalizes the fields into an active
// CapitalMovement with zero returns. The principal must be strictly
// positive and is rounded to two decimals; the institution is
// lower-cased and trimmed and must not end up empty. A zero openedAt
// defaults to the current time.
func NewCapitalMovement(kind TransactionKind, principal decimal.Decimal, institution, notes string, openedAt time.Time) (*CapitalMovement, error) {
	if !kind.IsCapital() {
		return nil, fmt.Errorf("NewCapitalMovement: kind %q is not a capital kind", kind)
	}
	if !principal.IsPositive() {
		return nil, fmt.Errorf("NewCapitalMovement: principal must be positive, got %s", principal)
	}
	institution = strings.ToLower(strings.TrimSpace(institution))
	if institution == "" {
		return nil, fmt.Errorf("NewCapitalMovement: institution must not be empty")
	}
	if openedAt.IsZero() {
		openedAt = time.Now()
	}
	return &CapitalMovement{
		Kind:        kind,
		Principal:   principal.Round(2),
		Institution: institution,
		Status:      StatusActive,
		OpenedAt:    openedAt,
		Returns:     decimal.Zero,
		Notes:       strings.TrimSpace(notes),
	}, nil
}

// IsActive reports whether the movement has not been withdrawn.
func (c *CapitalMovement) IsActive() bool {
	return c.Status == StatusActive
}

// Withdraw marks the movement as withdrawn. A zero at defaults to the
// current time.
func (c *CapitalMovement) Withdraw(at time.Time) {
	if at.IsZero() {
		at = time.Now()
	}
	c.Status = StatusWithdrawn
	c.ClosedAt = at
}

// AddReturn accrues earned interest or gains onto the movement.
// Non-positive increments are rejected, so Returns never decreases.
func (c *CapitalMovement) AddReturn(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("AddReturn: amount must be positive, got %s", amount)
	}
	c.Returns = c.Returns.Add(amount.Round(2))
	return nil
}

// CurrentValue is the principal plus accrued returns.
func (c *CapitalMovement) CurrentValue() decimal.Decimal {
	return c.Principal.Add(c.Returns)
}

// SheetRow maps the movement to the Ahorros e Inversiones row:
// Fecha, Tipo, Monto, Institución, Estado, Fecha Retiro, Retorno, Descripción.
func (c *CapitalMovement) SheetRow() []interface{} {
	closed := ""
	if !c.ClosedAt.IsZero() {
		closed = c.ClosedAt.Format(SheetTimeFormat)
	}
	return []interface{}{
		c.OpenedAt.Format(SheetTimeFormat),
		string(c.Kind),
		c.Principal.InexactFloat64(),
		c.Institution,
		string(c.Status),
		closed,
		c.Returns.InexactFloat64(),
		c.Notes,
	}
}
