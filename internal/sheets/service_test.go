package sheets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacarsoft/finance-bot/internal/domain"
	"github.com/dacarsoft/finance-bot/internal/logger"
)

// fakeBackend keeps sheets in memory. Rows renders every cell through
// fmt.Sprint, matching how the service sees values coming back from the
// real grid.
type fakeBackend struct {
	sheets    map[string][][]interface{}
	order     []string
	failAll   bool
	appendErr error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{sheets: make(map[string][][]interface{})}
}

func (f *fakeBackend) addExisting(title string, rows ...[]interface{}) {
	f.sheets[title] = rows
	f.order = append(f.order, title)
}

func (f *fakeBackend) SheetTitles(ctx context.Context) ([]string, error) {
	if f.failAll {
		return nil, errors.New("backend unavailable")
	}
	return append([]string(nil), f.order...), nil
}

func (f *fakeBackend) AddSheet(ctx context.Context, title string, rows, cols int64) error {
	if f.failAll {
		return errors.New("backend unavailable")
	}
	f.sheets[title] = nil
	f.order = append(f.order, title)
	return nil
}

func (f *fakeBackend) HeaderRow(ctx context.Context, sheet string) ([]string, error) {
	if f.failAll {
		return nil, errors.New("backend unavailable")
	}
	rows := f.sheets[sheet]
	if len(rows) == 0 {
		return nil, nil
	}
	return toStrings(rows[0]), nil
}

func (f *fakeBackend) InsertHeader(ctx context.Context, sheet string, header []string) error {
	if f.failAll {
		return errors.New("backend unavailable")
	}
	f.sheets[sheet] = append([][]interface{}{headerRow(header)}, f.sheets[sheet]...)
	return nil
}

func (f *fakeBackend) AppendRow(ctx context.Context, sheet string, row []interface{}) error {
	if f.failAll {
		return errors.New("backend unavailable")
	}
	if f.appendErr != nil {
		return f.appendErr
	}
	if _, ok := f.sheets[sheet]; !ok {
		return fmt.Errorf("sheet %q not found", sheet)
	}
	f.sheets[sheet] = append(f.sheets[sheet], row)
	return nil
}

func (f *fakeBackend) Rows(ctx context.Context, sheet string) ([][]string, error) {
	if f.failAll {
		return nil, errors.New("backend unavailable")
	}
	rows := make([][]string, 0, len(f.sheets[sheet]))
	for _, r := range f.sheets[sheet] {
		rows = append(rows, toStrings(r))
	}
	return rows, nil
}

func newTestService(f *fakeBackend) *Service {
	return NewService(f, logger.NewWithWriter(io.Discard))
}

func mustTransaction(t *testing.T, kind domain.TransactionKind, amount int64, category string) *domain.Transaction {
	t.Helper()
	tx, err := domain.NewTransaction(kind, decimal.NewFromInt(amount), category, "", time.Now())
	require.NoError(t, err)
	return tx
}

func TestInitialize_CreatesMissingSheets(t *testing.T) {
	f := newFakeBackend()
	svc := newTestService(f)

	require.NoError(t, svc.Initialize(context.Background()))

	for sheet, header := range map[string][]string{
		TransaccionesSheet: transaccionesHeader,
		CapitalSheet:       capitalHeader,
		PresupuestosSheet:  presupuestosHeader,
	} {
		rows := f.sheets[sheet]
		require.Len(t, rows, 1, "sheet %s should have exactly the header row", sheet)
		assert.Equal(t, header, toStrings(rows[0]))
	}
}

func TestInitialize_RepairsWrongHeader(t *testing.T) {
	f := newFakeBackend()
	f.addExisting(TransaccionesSheet, []interface{}{"Fecha", "Monto"}, []interface{}{"2025-01-01 00:00:00", 10.0, "comida", "", false})
	f.addExisting(CapitalSheet, headerRow(capitalHeader))
	f.addExisting(PresupuestosSheet) // present but empty

	svc := newTestService(f)
	require.NoError(t, svc.Initialize(context.Background()))

	// Broken header gets the correct one inserted on top; data rows survive.
	rows := f.sheets[TransaccionesSheet]
	require.Len(t, rows, 3)
	assert.Equal(t, transaccionesHeader, toStrings(rows[0]))

	// Correct header is left alone.
	assert.Len(t, f.sheets[CapitalSheet], 1)

	// Empty sheet gets a header.
	require.Len(t, f.sheets[PresupuestosSheet], 1)
	assert.Equal(t, presupuestosHeader, toStrings(f.sheets[PresupuestosSheet][0]))
}

func TestInitialize_BackendFailure(t *testing.T) {
	f := newFakeBackend()
	f.failAll = true
	svc := newTestService(f)

	assert.Error(t, svc.Initialize(context.Background()))
}

func TestSaveTransaction_Routing(t *testing.T) {
	tests := []struct {
		name      string
		kind      domain.TransactionKind
		wantSheet string
		wantCols  int
		wantErr   bool
	}{
		{name: "expense goes to unified sheet", kind: domain.KindExpense, wantSheet: TransaccionesSheet, wantCols: 5},
		{name: "income goes to unified sheet", kind: domain.KindIncome, wantSheet: TransaccionesSheet, wantCols: 5},
		{name: "budget goes to presupuestos", kind: domain.KindBudget, wantSheet: PresupuestosSheet, wantCols: 4},
		{name: "saving is refused", kind: domain.KindSaving, wantErr: true},
		{name: "investment is refused", kind: domain.KindInvestment, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeBackend()
			svc := newTestService(f)
			require.NoError(t, svc.Initialize(context.Background()))

			tx := mustTransaction(t, tt.kind, 50000, "comida")
			err := svc.SaveTransaction(context.Background(), tx)

			if tt.wantErr {
				assert.Error(t, err)
				// Nothing appended anywhere.
				for sheet, rows := range f.sheets {
					assert.Len(t, rows, 1, "sheet %s should only hold its header", sheet)
				}
				return
			}

			require.NoError(t, err)
			rows := f.sheets[tt.wantSheet]
			require.Len(t, rows, 2)
			assert.Len(t, rows[1], tt.wantCols)
		})
	}
}

func TestSaveTransaction_NoIdempotence(t *testing.T) {
	f := newFakeBackend()
	svc := newTestService(f)
	require.NoError(t, svc.Initialize(context.Background()))

	tx := mustTransaction(t, domain.KindExpense, 50000, "comida")
	require.NoError(t, svc.SaveTransaction(context.Background(), tx))
	require.NoError(t, svc.SaveTransaction(context.Background(), tx))

	// Two identical submissions produce two independent rows.
	assert.Len(t, f.sheets[TransaccionesSheet], 3)
}

func TestSaveCapitalMovement(t *testing.T) {
	f := newFakeBackend()
	svc := newTestService(f)
	require.NoError(t, svc.Initialize(context.Background()))

	at := time.Date(2025, 3, 14, 9, 26, 53, 0, time.Local)
	cm, err := domain.NewCapitalMovement(domain.KindInvestment, decimal.NewFromInt(500000), "CDT", "Invertí 500 mil en CDT", at)
	require.NoError(t, err)

	require.NoError(t, svc.SaveCapitalMovement(context.Background(), cm))

	rows := f.sheets[CapitalSheet]
	require.Len(t, rows, 2)
	assert.Equal(t, []interface{}{
		"2025-03-14 09:26:53", "investment", 500000.0, "cdt", "activo", "", 0.0, "Invertí 500 mil en CDT",
	}, rows[1])
}

func TestSaveCapitalMovement_AppendFailure(t *testing.T) {
	f := newFakeBackend()
	svc := newTestService(f)
	require.NoError(t, svc.Initialize(context.Background()))
	f.appendErr = errors.New("quota exceeded")

	cm, err := domain.NewCapitalMovement(domain.KindSaving, decimal.NewFromInt(100000), "banco", "", time.Now())
	require.NoError(t, err)

	assert.Error(t, svc.SaveCapitalMovement(context.Background(), cm))
}

func TestCapitalMovements_ActiveFilter(t *testing.T) {
	f := newFakeBackend()
	svc := newTestService(f)
	require.NoError(t, svc.Initialize(context.Background()))

	active, err := domain.NewCapitalMovement(domain.KindSaving, decimal.NewFromInt(100000), "banco", "", time.Now())
	require.NoError(t, err)
	withdrawn, err := domain.NewCapitalMovement(domain.KindInvestment, decimal.NewFromInt(500000), "cdt", "", time.Now())
	require.NoError(t, err)
	withdrawn.Withdraw(time.Now())

	require.NoError(t, svc.SaveCapitalMovement(context.Background(), active))
	require.NoError(t, svc.SaveCapitalMovement(context.Background(), withdrawn))

	all, err := svc.CapitalMovements(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// A written row comes back through the active filter iff it was
	// active at write time.
	onlyActive, err := svc.CapitalMovements(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, onlyActive, 1)
	assert.Equal(t, "banco", onlyActive[0][3])
	assert.Equal(t, "activo", onlyActive[0][4])
}

func TestTransactions_Filters(t *testing.T) {
	f := newFakeBackend()
	svc := newTestService(f)
	require.NoError(t, svc.Initialize(context.Background()))

	ctx := context.Background()
	require.NoError(t, svc.SaveTransaction(ctx, mustTransaction(t, domain.KindExpense, 50000, "comida")))
	require.NoError(t, svc.SaveTransaction(ctx, mustTransaction(t, domain.KindIncome, 100000, "salario")))
	require.NoError(t, svc.SaveTransaction(ctx, mustTransaction(t, domain.KindBudget, 300000, "transporte")))

	incomes, err := svc.Transactions(ctx, domain.KindIncome)
	require.NoError(t, err)
	require.Len(t, incomes, 1)
	assert.Equal(t, "salario", incomes[0][2])

	expenses, err := svc.Transactions(ctx, domain.KindExpense)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "comida", expenses[0][2])

	budgets, err := svc.Transactions(ctx, domain.KindBudget)
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.Equal(t, "transporte", budgets[0][2])

	all, err := svc.Transactions(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestIsTruthy(t *testing.T) {
	tests := []struct {
		cell string
		want bool
	}{
		{"TRUE", true},
		{"true", true},
		{" True ", true},
		{"FALSE", false},
		{"false", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			assert.Equal(t, tt.want, isTruthy(tt.cell))
		})
	}
}
