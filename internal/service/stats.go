// internal/service/stats.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"salapi-backend/internal/domain"
	"salapi-backend/internal/repository"

	"github.com/shopspring/decimal"
)

// StatBucket is a fixed time window with income/expense sums. Buckets with
// no matching transactions stay at zero rather than being omitted.
type StatBucket struct {
	Label   string          `json:"label"`
	Date    time.Time       `json:"date"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// Weekday bucket labels, Sunday through Saturday.
var dayLabels = map[time.Weekday]string{
	time.Sunday:    "S",
	time.Monday:    "M",
	time.Tuesday:   "T",
	time.Wednesday: "W",
	time.Thursday:  "TH",
	time.Friday:    "F",
	time.Saturday:  "S",
}

// WeeklyBuckets folds transactions into 7 calendar-day buckets for the
// trailing 7 days including today, oldest first. Bucket boundaries are
// derived from now once; the fold is pure, so the same transactions and the
// same now always produce identical output.
func WeeklyBuckets(now time.Time, transactions []domain.Transaction) []StatBucket {
	loc := now.Location()
	buckets := make([]StatBucket, 0, 7)
	index := make(map[time.Time]int, 7)
	for i := 6; i >= 0; i-- {
		day := truncateToDay(now.AddDate(0, 0, -i), loc)
		index[day] = len(buckets)
		buckets = append(buckets, StatBucket{
			Label:   dayLabels[day.Weekday()],
			Date:    day,
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		})
	}

	for _, t := range transactions {
		day := truncateToDay(t.Date, loc)
		if i, ok := index[day]; ok {
			addToBucket(&buckets[i], t)
		}
	}
	return buckets
}

// MonthlyBuckets folds transactions into 12 calendar-month buckets for the
// trailing 12 months including the current one, oldest first, labeled
// "Mon YY".
func MonthlyBuckets(now time.Time, transactions []domain.Transaction) []StatBucket {
	loc := now.Location()
	buckets := make([]StatBucket, 0, 12)
	index := make(map[string]int, 12)
	// Stepping back from the first of the month never normalizes; subtracting
	// months from day 29-31 would skip short months.
	first := truncateToMonth(now, loc)
	for i := 11; i >= 0; i-- {
		month := first.AddDate(0, -i, 0)
		key := month.Format("Jan 06")
		index[key] = len(buckets)
		buckets = append(buckets, StatBucket{
			Label:   key,
			Date:    month,
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		})
	}

	for _, t := range transactions {
		key := t.Date.In(loc).Format("Jan 06")
		if i, ok := index[key]; ok {
			addToBucket(&buckets[i], t)
		}
	}
	return buckets
}

// YearlyBuckets folds transactions into 5 year buckets spanning
// [currentYear-4, currentYear], oldest first.
func YearlyBuckets(now time.Time, transactions []domain.Transaction) []StatBucket {
	loc := now.Location()
	startYear := now.Year() - 4
	buckets := make([]StatBucket, 0, 5)
	for year := startYear; year <= now.Year(); year++ {
		buckets = append(buckets, StatBucket{
			Label:   strconv.Itoa(year),
			Date:    time.Date(year, time.January, 1, 0, 0, 0, 0, loc),
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		})
	}

	for _, t := range transactions {
		year := t.Date.In(loc).Year()
		if year < startYear || year > now.Year() {
			continue
		}
		addToBucket(&buckets[year-startYear], t)
	}
	return buckets
}

func addToBucket(b *StatBucket, t domain.Transaction) {
	if t.Type == domain.TransactionTypeIncome {
		b.Income = b.Income.Add(t.Amount)
	} else {
		b.Expense = b.Expense.Add(t.Amount)
	}
}

func truncateToDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func truncateToMonth(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
}

// StatsService buckets a user's full transaction set into fixed time
// windows. It fetches with a single broad query and buckets client-side.
type StatsService struct {
	transactions repository.TransactionRepository
	logger       *slog.Logger
	now          func() time.Time
}

// NewStatsService creates a new StatsService.
func NewStatsService(transactions repository.TransactionRepository, logger *slog.Logger) *StatsService {
	return &StatsService{transactions: transactions, logger: logger, now: time.Now}
}

// Weekly returns the trailing-7-day buckets for uid.
func (s *StatsService) Weekly(ctx context.Context, uid string) ([]StatBucket, error) {
	transactions, err := s.fetch(ctx, uid)
	if err != nil {
		return nil, err
	}
	return WeeklyBuckets(s.now(), transactions), nil
}

// Monthly returns the trailing-12-month buckets for uid.
func (s *StatsService) Monthly(ctx context.Context, uid string) ([]StatBucket, error) {
	transactions, err := s.fetch(ctx, uid)
	if err != nil {
		return nil, err
	}
	return MonthlyBuckets(s.now(), transactions), nil
}

// Yearly returns the trailing-5-year buckets for uid.
func (s *StatsService) Yearly(ctx context.Context, uid string) ([]StatBucket, error) {
	transactions, err := s.fetch(ctx, uid)
	if err != nil {
		return nil, err
	}
	return YearlyBuckets(s.now(), transactions), nil
}

func (s *StatsService) fetch(ctx context.Context, uid string) ([]domain.Transaction, error) {
	transactions, err := s.transactions.ListByUID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("fetch stats transactions: %w", err)
	}
	return transactions, nil
}
