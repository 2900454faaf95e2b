// internal/service/export_test.go
package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"salapi-backend/internal/domain"
	"salapi-backend/internal/repository/memory"
	"salapi-backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterByRangeIsDayInclusive(t *testing.T) {
	transactions := []domain.Transaction{
		tx(domain.TransactionTypeIncome, "1", time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)),
		tx(domain.TransactionTypeIncome, "2", time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)),
		tx(domain.TransactionTypeIncome, "3", time.Date(2026, time.March, 31, 23, 59, 0, 0, time.UTC)),
		tx(domain.TransactionTypeIncome, "4", time.Date(2026, time.February, 28, 23, 59, 0, 0, time.UTC)),
		tx(domain.TransactionTypeIncome, "5", time.Date(2026, time.April, 1, 0, 0, 1, 0, time.UTC)),
	}

	// Mid-day bounds still cover the whole first and last day.
	start := time.Date(2026, time.March, 1, 18, 30, 0, 0, time.UTC)
	end := time.Date(2026, time.March, 31, 6, 0, 0, 0, time.UTC)

	filtered := FilterByRange(transactions, start, end)
	require.Len(t, filtered, 3)
}

func TestToCSVFormat(t *testing.T) {
	lunch := tx(domain.TransactionTypeExpense, "45.50", time.Date(2026, time.March, 2, 13, 0, 0, 0, time.UTC))
	lunch.Category = "dining"
	lunch.Description = "Lunch, with friends"

	salary := tx(domain.TransactionTypeIncome, "1000", time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC))

	csv := ToCSV([]domain.Transaction{lunch, salary})
	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "Date,Type,Category,Description,Amount", lines[0])
	// Commas inside the description are replaced, so every row splits into
	// exactly five fields.
	assert.Equal(t, "2026-03-02,Expense,dining,Lunch; with friends,45.50", lines[1])
	assert.Equal(t, "2026-03-01,Income,Uncategorized,-,1000.00", lines[2])
	for _, line := range lines[1:] {
		assert.Len(t, strings.Split(line, ","), 5)
	}
}

func TestToCSVPrefersCustomCategory(t *testing.T) {
	other := tx(domain.TransactionTypeExpense, "12.00", time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC))
	other.Category = "others"
	other.CustomCategory = "Pet food"

	csv := ToCSV([]domain.Transaction{other})
	assert.Contains(t, csv, "2026-03-02,Expense,Pet food,-,12.00")
}

func TestStatementHTMLEscapesUserContent(t *testing.T) {
	hostile := tx(domain.TransactionTypeExpense, "10.00", time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC))
	hostile.Description = `<script>alert("pwned")</script>`
	hostile.CustomCategory = `<b>bold</b>`

	html, err := BuildStatementHTML([]domain.Transaction{hostile}, `Maria <img src=x>`, "2026-03-01 to 2026-03-31", statsNow)
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>alert")
	assert.NotContains(t, html, "<b>bold</b>")
	assert.NotContains(t, html, "<img src=x>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "Salapi")
	assert.Contains(t, html, "March 4, 2026")
}

func TestStatementHTMLEmptyState(t *testing.T) {
	html, err := BuildStatementHTML(nil, "Maria", "2026-03-01 to 2026-03-31", statsNow)
	require.NoError(t, err)
	assert.Contains(t, html, "No transactions found for this period.")
}

func TestClipTextKeepsRunesIntact(t *testing.T) {
	assert.Equal(t, "short", clipText("short", 28))

	long := strings.Repeat("日", 40)
	clipped := clipText(long, 28)
	assert.Equal(t, strings.Repeat("日", 25)+"...", clipped)
	assert.True(t, utf8.ValidString(clipped), "clipping must not split a multibyte rune")
}

func TestExportCSVWritesNamedFile(t *testing.T) {
	ctx := context.Background()
	transactions := memory.NewTransactionRepository()
	seedTransaction(t, transactions, "u1", "w1", domain.TransactionTypeIncome, "100.00", date(2026, time.March, 10))

	dir := t.TempDir()
	svc := NewExportService(transactions, memory.NewUserRepository(), dir, testLogger())

	path, err := svc.ExportCSV(ctx, "u1", date(2026, time.March, 1), date(2026, time.March, 31))
	require.NoError(t, err)
	assert.Equal(t, "salapi_transactions_2026-03-01_to_2026-03-31.csv", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "2026-03-10,Income,Uncategorized,-,100.00")
}

func TestExportEmptyRangeFails(t *testing.T) {
	ctx := context.Background()
	transactions := memory.NewTransactionRepository()
	seedTransaction(t, transactions, "u1", "w1", domain.TransactionTypeIncome, "100.00", date(2026, time.January, 1))

	dir := t.TempDir()
	svc := NewExportService(transactions, memory.NewUserRepository(), dir, testLogger())

	_, err := svc.ExportCSV(ctx, "u1", date(2026, time.March, 1), date(2026, time.March, 31))
	assert.ErrorIs(t, err, util.ErrNoDataInRange)

	_, err = svc.ExportPDF(ctx, "u1", date(2026, time.March, 1), date(2026, time.March, 31))
	assert.ErrorIs(t, err, util.ErrNoDataInRange)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "a failed export must not leave files behind")
}

func TestExportPDFWritesReport(t *testing.T) {
	ctx := context.Background()
	transactions := memory.NewTransactionRepository()
	seedTransaction(t, transactions, "u1", "w1", domain.TransactionTypeExpense, "45.00", date(2026, time.March, 10))

	dir := t.TempDir()
	svc := NewExportService(transactions, memory.NewUserRepository(), dir, testLogger())

	path, err := svc.ExportPDF(ctx, "u1", date(2026, time.March, 1), date(2026, time.March, 31))
	require.NoError(t, err)
	assert.Equal(t, "salapi_report_2026-03-01_to_2026-03-31.pdf", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"), "output must be a PDF document")
}

func TestDateRange(t *testing.T) {
	ctx := context.Background()
	transactions := memory.NewTransactionRepository()
	svc := NewExportService(transactions, memory.NewUserRepository(), t.TempDir(), testLogger())

	_, _, has, err := svc.DateRange(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, has)

	seedTransaction(t, transactions, "u1", "w1", domain.TransactionTypeIncome, "1.00", date(2026, time.January, 5))
	seedTransaction(t, transactions, "u1", "w1", domain.TransactionTypeIncome, "1.00", date(2026, time.March, 20))

	earliest, latest, has, err := svc.DateRange(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, has)
	assert.Equal(t, "2026-01-05", earliest.Format("2006-01-02"))
	assert.Equal(t, "2026-03-20", latest.Format("2006-01-02"))
}
