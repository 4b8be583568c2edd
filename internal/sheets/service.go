package sheets

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dacarsoft/finance-bot/internal/domain"
)

// Destination sheet names. These must match whatever existing
// spreadsheets already use, so they stay in Spanish.
const (
	TransaccionesSheet = "Transacciones"
	CapitalSheet       = "Ahorros e Inversiones"
	PresupuestosSheet  = "Presupuestos"
)

var (
	transaccionesHeader = []string{"Fecha", "Monto", "Categoría", "Descripción", "Es Ingreso"}
	capitalHeader       = []string{"Fecha", "Tipo", "Monto", "Institución", "Estado", "Fecha Retiro", "Retorno", "Descripción"}
	presupuestosHeader  = []string{"Fecha", "Monto", "Categoría", "Descripción"}
)

// Backend is the narrow slice of the spreadsheet API the service needs.
// GoogleBackend implements it against Sheets v4; tests substitute a fake.
type Backend interface {
	SheetTitles(ctx context.Context) ([]string, error)
	AddSheet(ctx context.Context, title string, rows, cols int64) error
	HeaderRow(ctx context.Context, sheet string) ([]string, error)
	InsertHeader(ctx context.Context, sheet string, header []string) error
	AppendRow(ctx context.Context, sheet string, row []interface{}) error
	Rows(ctx context.Context, sheet string) ([][]string, error)
}

// Service routes validated records to their destination sheet and
// appends them as new rows. It never updates or deletes existing rows;
// every backend fault is caught here and returned as an error for the
// caller to translate into a user-facing message.
type Service struct {
	api Backend
	log zerolog.Logger
}

// NewService creates a Service on top of a Backend.
func NewService(api Backend, log zerolog.Logger) *Service {
	return &Service{api: api, log: log}
}

// Initialize ensures the three destination sheets exist and carry the
// expected header row: missing sheets are created with their header, and
// an existing sheet whose first row differs (or is empty) gets the
// correct header inserted at the top. Runs on every cold start.
func (s *Service) Initialize(ctx context.Context) error {
	titles, err := s.api.SheetTitles(ctx)
	if err != nil {
		return fmt.Errorf("Initialize: list sheets: %w", err)
	}
	existing := make(map[string]bool, len(titles))
	for _, t := range titles {
		existing[t] = true
	}

	targets := []struct {
		name   string
		header []string
		rows   int64
		cols   int64
	}{
		{TransaccionesSheet, transaccionesHeader, 1000, 5},
		{CapitalSheet, capitalHeader, 500, 8},
		{PresupuestosSheet, presupuestosHeader, 100, 4},
	}

	for _, tgt := range targets {
		if !existing[tgt.name] {
			if err := s.api.AddSheet(ctx, tgt.name, tgt.rows, tgt.cols); err != nil {
				return fmt.Errorf("Initialize: create sheet %s: %w", tgt.name, err)
			}
			if err := s.api.AppendRow(ctx, tgt.name, headerRow(tgt.header)); err != nil {
				return fmt.Errorf("Initialize: write header for %s: %w", tgt.name, err)
			}
			s.log.Info().Str("sheet", tgt.name).Msg("Created sheet")
			continue
		}

		first, err := s.api.HeaderRow(ctx, tgt.name)
		if err != nil {
			return fmt.Errorf("Initialize: read header of %s: %w", tgt.name, err)
		}
		if !equalHeader(first, tgt.header) {
			if err := s.api.InsertHeader(ctx, tgt.name, tgt.header); err != nil {
				return fmt.Errorf("Initialize: repair header of %s: %w", tgt.name, err)
			}
			s.log.Info().Str("sheet", tgt.name).Msg("Repaired sheet header")
		}
	}
	return nil
}

// SaveTransaction appends tx to its destination sheet. Budgets go to
// Presupuestos; expense and income share the unified Transacciones
// sheet. Saving/investment kinds belong to the capital shape and are
// refused here rather than silently rerouted.
func (s *Service) SaveTransaction(ctx context.Context, tx *domain.Transaction) error {
	var sheet string
	var row []interface{}

	switch {
	case tx.Kind == domain.KindBudget:
		sheet, row = PresupuestosSheet, tx.BudgetRow()
	case tx.Kind.IsCapital():
		s.log.Warn().Str("kind", string(tx.Kind)).Msg("Capital kind routed as transaction; refusing")
		return fmt.Errorf("SaveTransaction: kind %q must be saved as a capital movement", tx.Kind)
	default:
		sheet, row = TransaccionesSheet, tx.SheetRow()
	}

	if err := s.api.AppendRow(ctx, sheet, row); err != nil {
		return fmt.Errorf("SaveTransaction: append to %s: %w", sheet, err)
	}
	s.log.Info().
		Str("sheet", sheet).
		Str("kind", string(tx.Kind)).
		Str("category", tx.Category).
		Msg("Saved transaction")
	return nil
}

// SaveCapitalMovement appends cm to the Ahorros e Inversiones sheet.
func (s *Service) SaveCapitalMovement(ctx context.Context, cm *domain.CapitalMovement) error {
	if err := s.api.AppendRow(ctx, CapitalSheet, cm.SheetRow()); err != nil {
		return fmt.Errorf("SaveCapitalMovement: append to %s: %w", CapitalSheet, err)
	}
	s.log.Info().
		Str("sheet", CapitalSheet).
		Str("kind", string(cm.Kind)).
		Str("institution", cm.Institution).
		Msg("Saved capital movement")
	return nil
}

// CapitalMovements returns the capital rows without the header,
// optionally filtered to the active ones (Estado == "activo").
func (s *Service) CapitalMovements(ctx context.Context, onlyActive bool) ([][]string, error) {
	rows, err := s.api.Rows(ctx, CapitalSheet)
	if err != nil {
		return nil, fmt.Errorf("CapitalMovements: read %s: %w", CapitalSheet, err)
	}
	rows = skipHeader(rows)
	if !onlyActive {
		return rows, nil
	}

	active := make([][]string, 0, len(rows))
	for _, r := range rows {
		if len(r) > 4 && r[4] == string(domain.StatusActive) {
			active = append(active, r)
		}
	}
	return active, nil
}

// Transactions returns operational rows without headers, filtered by
// kind: budget reads Presupuestos, income and expense read the unified
// sheet filtered on the Es Ingreso column, and the empty kind returns
// the rows of both sheets.
func (s *Service) Transactions(ctx context.Context, kind domain.TransactionKind) ([][]string, error) {
	switch kind {
	case domain.KindBudget:
		rows, err := s.api.Rows(ctx, PresupuestosSheet)
		if err != nil {
			return nil, fmt.Errorf("Transactions: read %s: %w", PresupuestosSheet, err)
		}
		return skipHeader(rows), nil

	case domain.KindIncome, domain.KindExpense:
		rows, err := s.api.Rows(ctx, TransaccionesSheet)
		if err != nil {
			return nil, fmt.Errorf("Transactions: read %s: %w", TransaccionesSheet, err)
		}
		rows = skipHeader(rows)
		wantIncome := kind == domain.KindIncome

		filtered := make([][]string, 0, len(rows))
		for _, r := range rows {
			if len(r) > 4 && isTruthy(r[4]) == wantIncome {
				filtered = append(filtered, r)
			}
		}
		return filtered, nil

	default:
		all := make([][]string, 0)
		for _, name := range []string{TransaccionesSheet, PresupuestosSheet} {
			rows, err := s.api.Rows(ctx, name)
			if err != nil {
				return nil, fmt.Errorf("Transactions: read %s: %w", name, err)
			}
			all = append(all, skipHeader(rows)...)
		}
		return all, nil
	}
}

func headerRow(header []string) []interface{} {
	row := make([]interface{}, len(header))
	for i, h := range header {
		row[i] = h
	}
	return row
}

func equalHeader(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func skipHeader(rows [][]string) [][]string {
	if len(rows) == 0 {
		return rows
	}
	return rows[1:]
}

// isTruthy matches the boolean renderings the Sheets API hands back for
// the Es Ingreso column ("TRUE"/"FALSE" from the grid, "true"/"false"
// from raw appends).
func isTruthy(cell string) bool {
	return strings.EqualFold(strings.TrimSpace(cell), "true")
}
