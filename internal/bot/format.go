package bot

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dacarsoft/finance-bot/internal/domain"
)

// Display labels and emoji per kind, in the user's language.
var kindLabels = map[domain.TransactionKind]string{
	domain.KindExpense:    "Gasto",
	domain.KindIncome:     "Ingreso",
	domain.KindBudget:     "Presupuesto",
	domain.KindSaving:     "Ahorro",
	domain.KindInvestment: "Inversión",
}

var kindEmoji = map[domain.TransactionKind]string{
	domain.KindExpense:    "💸",
	domain.KindIncome:     "💰",
	domain.KindBudget:     "📊",
	domain.KindSaving:     "🏦",
	domain.KindInvestment: "📈",
}

const confirmationTimeFormat = "2006-01-02 15:04"

func transactionConfirmation(tx *domain.Transaction) string {
	var b strings.Builder
	b.WriteString("✅ ¡Registrado!\n\n")
	fmt.Fprintf(&b, "%s *%s*\n", emojiFor(tx.Kind, "📝"), kindLabels[tx.Kind])
	fmt.Fprintf(&b, "💵 Monto: $%s\n", formatMoney(tx.Amount))
	fmt.Fprintf(&b, "📁 Categoría: %s\n", tx.Category)
	fmt.Fprintf(&b, "📝 Descripción: %s\n", orNA(tx.Description))
	fmt.Fprintf(&b, "📅 Fecha: %s", tx.OccurredAt.Format(confirmationTimeFormat))
	return b.String()
}

func capitalConfirmation(cm *domain.CapitalMovement) string {
	var b strings.Builder
	b.WriteString("✅ ¡Registrado!\n\n")
	fmt.Fprintf(&b, "%s *%s*\n", emojiFor(cm.Kind, "💰"), kindLabels[cm.Kind])
	fmt.Fprintf(&b, "💵 Monto: $%s\n", formatMoney(cm.Principal))
	fmt.Fprintf(&b, "🏢 Institución: %s\n", cm.Institution)
	fmt.Fprintf(&b, "📝 Descripción: %s\n", orNA(cm.Notes))
	fmt.Fprintf(&b, "📅 Fecha: %s\n", cm.OpenedAt.Format(confirmationTimeFormat))
	fmt.Fprintf(&b, "✅ Estado: %s", cm.Status)
	return b.String()
}

func emojiFor(kind domain.TransactionKind, fallback string) string {
	if e, ok := kindEmoji[kind]; ok {
		return e
	}
	return fallback
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// formatMoney renders d with two decimals and thousands grouping,
// e.g. 500000 -> "500,000.00". Amounts in this system are positive.
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	dot := strings.Index(s, ".")
	intPart, frac := s[:dot], s[dot:]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String() + frac
}
