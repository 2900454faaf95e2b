// internal/service/export.go
package service

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"salapi-backend/internal/domain"
	"salapi-backend/internal/repository"
	"salapi-backend/internal/util"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"
)

const (
	brandName    = "Salapi"
	brandTagline = "Personal Finance Manager"

	// The peso sign is not part of the PDF core fonts, so the PDF spells
	// the currency out while the HTML statement uses the symbol.
	currencyHTML = "₱"
	currencyPDF  = "PHP "
)

// FilterByRange keeps the transactions dated within [start, end], with start
// widened back to midnight and end forward to the last instant of its day.
func FilterByRange(transactions []domain.Transaction, start, end time.Time) []domain.Transaction {
	loc := start.Location()
	from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	to := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 999999999, end.Location())

	var filtered []domain.Transaction
	for _, t := range transactions {
		d := t.Date.In(loc)
		if d.Before(from) || d.After(to) {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

// ToCSV renders transactions as CSV text. Values are joined verbatim without
// quoting, so commas inside descriptions are replaced with semicolons; an
// empty description becomes "-".
func ToCSV(transactions []domain.Transaction) string {
	var b strings.Builder
	b.WriteString("Date,Type,Category,Description,Amount\n")
	for _, t := range transactions {
		description := strings.ReplaceAll(t.Description, ",", ";")
		if description == "" {
			description = "-"
		}
		b.WriteString(t.Date.Format("2006-01-02"))
		b.WriteByte(',')
		b.WriteString(titleType(t.Type))
		b.WriteByte(',')
		b.WriteString(t.DisplayCategory())
		b.WriteByte(',')
		b.WriteString(description)
		b.WriteByte(',')
		b.WriteString(t.Amount.StringFixed(2))
		b.WriteByte('\n')
	}
	return b.String()
}

func titleType(t domain.TransactionType) string {
	if t == domain.TransactionTypeIncome {
		return "Income"
	}
	return "Expense"
}

// statementData feeds the HTML statement template. All string fields are
// plain text; html/template escapes them on render.
type statementData struct {
	Brand        string
	Tagline      string
	Holder       string
	Period       string
	Generated    string
	Currency     string
	TotalIncome  string
	TotalExpense string
	Net          string
	Rows         []statementRow
}

type statementRow struct {
	Date        string
	Type        string
	Category    string
	Description string
	Amount      string
	Expense     bool
}

var statementTemplate = template.Must(template.New("statement").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Brand}} Report</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; color: #222; margin: 32px; }
h1 { margin-bottom: 0; }
.tagline { color: #777; margin-top: 2px; }
.meta { color: #555; font-size: 13px; margin: 12px 0 20px; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 6px 10px; font-size: 13px; text-align: left; }
th { background: #f5f5f5; }
td.amount { text-align: right; }
td.expense { color: #b00020; }
.summary td { font-weight: bold; background: #fafafa; }
.empty { color: #777; font-style: italic; margin-top: 24px; }
</style>
</head>
<body>
<h1>{{.Brand}}</h1>
<p class="tagline">{{.Tagline}}</p>
<p class="meta">{{if .Holder}}Account holder: {{.Holder}}<br>{{end}}Period: {{.Period}}<br>Generated: {{.Generated}}</p>
<table class="summary">
<tr><td>Total Income</td><td class="amount">{{.Currency}}{{.TotalIncome}}</td></tr>
<tr><td>Total Expenses</td><td class="amount">{{.Currency}}{{.TotalExpense}}</td></tr>
<tr><td>Net</td><td class="amount">{{.Currency}}{{.Net}}</td></tr>
</table>
{{if .Rows}}
<table>
<tr><th>Date</th><th>Type</th><th>Category</th><th>Description</th><th>Amount</th></tr>
{{range .Rows}}
<tr><td>{{.Date}}</td><td>{{.Type}}</td><td>{{.Category}}</td><td>{{.Description}}</td><td class="amount{{if .Expense}} expense{{end}}">{{.Amount}}</td></tr>
{{end}}
</table>
{{else}}
<p class="empty">No transactions found for this period.</p>
{{end}}
</body>
</html>
`))

// BuildStatementHTML renders the report as a standalone HTML document.
// Transaction descriptions, categories and the holder name are
// user-supplied, so everything flows through html/template escaping.
func BuildStatementHTML(transactions []domain.Transaction, holder, period string, generated time.Time) (string, error) {
	data := buildStatementData(transactions, holder, period, generated)
	var b strings.Builder
	if err := statementTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render statement: %w", err)
	}
	return b.String(), nil
}

func buildStatementData(transactions []domain.Transaction, holder, period string, generated time.Time) statementData {
	income, expense := sumByType(transactions)
	data := statementData{
		Brand:        brandName,
		Tagline:      brandTagline,
		Holder:       holder,
		Period:       period,
		Generated:    generated.Format("January 2, 2006"),
		Currency:     currencyHTML,
		TotalIncome:  income.StringFixed(2),
		TotalExpense: expense.StringFixed(2),
		Net:          income.Sub(expense).StringFixed(2),
	}
	for _, t := range transactions {
		description := t.Description
		if description == "" {
			description = "-"
		}
		amount := currencyHTML + t.Amount.StringFixed(2)
		if t.Type == domain.TransactionTypeExpense {
			amount = "-" + amount
		}
		data.Rows = append(data.Rows, statementRow{
			Date:        t.Date.Format("2006-01-02"),
			Type:        titleType(t.Type),
			Category:    t.DisplayCategory(),
			Description: description,
			Amount:      amount,
			Expense:     t.Type == domain.TransactionTypeExpense,
		})
	}
	return data
}

func sumByType(transactions []domain.Transaction) (income, expense decimal.Decimal) {
	income, expense = decimal.Zero, decimal.Zero
	for _, t := range transactions {
		if t.Type == domain.TransactionTypeIncome {
			income = income.Add(t.Amount)
		} else {
			expense = expense.Add(t.Amount)
		}
	}
	return income, expense
}

// renderStatementPDF builds the A4 report document.
func renderStatementPDF(transactions []domain.Transaction, holder, period string, generated time.Time) *gofpdf.Fpdf {
	income, expense := sumByType(transactions)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(20, 20, 20)
	pdf.Cell(0, 10, brandName+" Report")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(110, 110, 110)
	pdf.Cell(0, 6, brandTagline)
	pdf.Ln(6)
	pdf.SetTextColor(80, 80, 80)
	if holder != "" {
		pdf.Cell(0, 6, "Account holder: "+holder)
		pdf.Ln(5)
	}
	pdf.Cell(0, 6, "Period: "+period)
	pdf.Ln(5)
	pdf.Cell(0, 6, "Generated: "+generated.Format("January 2, 2006"))
	pdf.Ln(10)

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFillColor(248, 248, 248)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 11)

	sumW := []float64{62, 62, 62}
	pdf.CellFormat(sumW[0], 10, "Total Income", "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW[1], 10, "Total Expenses", "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW[2], 10, "Net", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(sumW[0], 10, currencyPDF+income.StringFixed(2), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW[1], 10, currencyPDF+expense.StringFixed(2), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW[2], 10, currencyPDF+income.Sub(expense).StringFixed(2), "1", 1, "C", false, 0, "")
	pdf.Ln(6)

	if len(transactions) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.SetTextColor(120, 120, 120)
		pdf.Cell(0, 8, "No transactions found for this period.")
		return pdf
	}

	colW := []float64{24, 22, 40, 66, 30}
	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(245, 245, 245)
		pdf.SetTextColor(20, 20, 20)
		pdf.CellFormat(colW[0], 8, "DATE", "1", 0, "C", true, 0, "")
		pdf.CellFormat(colW[1], 8, "TYPE", "1", 0, "C", true, 0, "")
		pdf.CellFormat(colW[2], 8, "CATEGORY", "1", 0, "L", true, 0, "")
		pdf.CellFormat(colW[3], 8, "DESCRIPTION", "1", 0, "L", true, 0, "")
		pdf.CellFormat(colW[4], 8, "AMOUNT", "1", 1, "R", true, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(30, 30, 30)
	}
	writeHeader()

	for _, t := range transactions {
		if pdf.GetY() > 270 {
			pdf.AddPage()
			writeHeader()
		}

		description := t.Description
		if description == "" {
			description = "-"
		}
		amount := currencyPDF + t.Amount.StringFixed(2)
		if t.Type == domain.TransactionTypeExpense {
			amount = "-" + amount
		}

		pdf.CellFormat(colW[0], 8, t.Date.Format("2006-01-02"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[1], 8, titleType(t.Type), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[2], 8, clipText(t.DisplayCategory(), 28), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[3], 8, clipText(description, 50), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[4], 8, amount, "1", 1, "R", false, 0, "")
	}

	pdf.SetY(-18)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 10, "Generated by "+brandName, "", 0, "C", false, 0, "")

	return pdf
}

func clipText(s string, max int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-3]) + "..."
}

// ExportService writes a user's transactions to CSV and PDF files under a
// configured export directory.
type ExportService struct {
	transactions repository.TransactionRepository
	users        repository.UserRepository
	exportDir    string
	logger       *slog.Logger
	now          func() time.Time
}

// NewExportService creates a new ExportService writing into exportDir.
func NewExportService(
	transactions repository.TransactionRepository,
	users repository.UserRepository,
	exportDir string,
	logger *slog.Logger,
) *ExportService {
	return &ExportService{
		transactions: transactions,
		users:        users,
		exportDir:    exportDir,
		logger:       logger,
		now:          time.Now,
	}
}

// holderName resolves the statement's account-holder line. A missing profile
// only degrades the header, never the export.
func (s *ExportService) holderName(ctx context.Context, uid string) string {
	profile, err := s.users.GetByUID(ctx, uid)
	if err != nil {
		return ""
	}
	return profile.Name
}

// ExportCSV writes the user's transactions within [start, end] to a CSV file
// and returns its path. An empty range is an error rather than an empty file.
func (s *ExportService) ExportCSV(ctx context.Context, uid string, start, end time.Time) (string, error) {
	transactions, err := s.fetchRange(ctx, uid, start, end)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("salapi_transactions_%s_to_%s.csv", start.Format("2006-01-02"), end.Format("2006-01-02"))
	return s.writeFile(name, []byte(ToCSV(transactions)))
}

// ExportPDF writes the user's transactions within [start, end] to a PDF
// report and returns its path.
func (s *ExportService) ExportPDF(ctx context.Context, uid string, start, end time.Time) (string, error) {
	transactions, err := s.fetchRange(ctx, uid, start, end)
	if err != nil {
		return "", err
	}
	period := start.Format("2006-01-02") + " to " + end.Format("2006-01-02")
	name := fmt.Sprintf("salapi_report_%s_to_%s.pdf", start.Format("2006-01-02"), end.Format("2006-01-02"))
	return s.writePDF(name, transactions, s.holderName(ctx, uid), period)
}

// ExportAllCSV writes the user's entire transaction history to a CSV file
// named by the generation date.
func (s *ExportService) ExportAllCSV(ctx context.Context, uid string) (string, error) {
	transactions, err := s.fetchAll(ctx, uid)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("salapi_transactions_all_%s.csv", s.now().Format("2006-01-02"))
	return s.writeFile(name, []byte(ToCSV(transactions)))
}

// ExportAllPDF writes the user's entire transaction history to a PDF report
// named by the generation date.
func (s *ExportService) ExportAllPDF(ctx context.Context, uid string) (string, error) {
	transactions, err := s.fetchAll(ctx, uid)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("salapi_report_all_%s.pdf", s.now().Format("2006-01-02"))
	return s.writePDF(name, transactions, s.holderName(ctx, uid), "All time")
}

// StatementHTML renders the user's transactions within [start, end] as an
// HTML report for in-app viewing.
func (s *ExportService) StatementHTML(ctx context.Context, uid string, start, end time.Time) (string, error) {
	transactions, err := s.fetchRange(ctx, uid, start, end)
	if err != nil {
		return "", err
	}
	period := start.Format("2006-01-02") + " to " + end.Format("2006-01-02")
	return BuildStatementHTML(transactions, s.holderName(ctx, uid), period, s.now())
}

// DateRange returns the earliest and latest transaction dates for uid. ok is
// false when the user has no transactions at all.
func (s *ExportService) DateRange(ctx context.Context, uid string) (earliest, latest time.Time, ok bool, err error) {
	transactions, err := s.transactions.ListByUID(ctx, uid)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("fetch export range: %w", err)
	}
	if len(transactions) == 0 {
		return time.Time{}, time.Time{}, false, nil
	}
	earliest, latest = transactions[0].Date, transactions[0].Date
	for _, t := range transactions[1:] {
		if t.Date.Before(earliest) {
			earliest = t.Date
		}
		if t.Date.After(latest) {
			latest = t.Date
		}
	}
	return earliest, latest, true, nil
}

func (s *ExportService) fetchRange(ctx context.Context, uid string, start, end time.Time) ([]domain.Transaction, error) {
	transactions, err := s.transactions.ListByUID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("fetch export transactions: %w", err)
	}
	filtered := FilterByRange(transactions, start, end)
	if len(filtered) == 0 {
		return nil, util.ErrNoDataInRange
	}
	return filtered, nil
}

func (s *ExportService) fetchAll(ctx context.Context, uid string) ([]domain.Transaction, error) {
	transactions, err := s.transactions.ListByUID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("fetch export transactions: %w", err)
	}
	if len(transactions) == 0 {
		return nil, util.ErrNoDataInRange
	}
	return transactions, nil
}

func (s *ExportService) writeFile(name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(s.exportDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export %s: %w", name, err)
	}
	s.logger.Info("Export written", "file", path)
	return path, nil
}

func (s *ExportService) writePDF(name string, transactions []domain.Transaction, holder, period string) (string, error) {
	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(s.exportDir, name)
	pdf := renderStatementPDF(transactions, holder, period, s.now())
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write export %s: %w", name, err)
	}
	s.logger.Info("Export written", "file", path)
	return path, nil
}
