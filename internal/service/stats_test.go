// internal/service/stats_test.go
package service

import (
	"testing"
	"time"

	"salapi-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday, 2026-03-04 15:00 UTC.
var statsNow = time.Date(2026, time.March, 4, 15, 0, 0, 0, time.UTC)

func tx(txType domain.TransactionType, amount string, on time.Time) domain.Transaction {
	return domain.Transaction{
		ID:     on.Format("01-02-2006") + string(txType) + amount,
		UID:    "u1",
		Type:   txType,
		Amount: dec(amount),
		Date:   on,
	}
}

func TestWeeklyBuckets(t *testing.T) {
	transactions := []domain.Transaction{
		tx(domain.TransactionTypeIncome, "100", statsNow),                                 // today (Wed)
		tx(domain.TransactionTypeExpense, "30", statsNow.AddDate(0, 0, -1)),               // Tue
		tx(domain.TransactionTypeExpense, "20", statsNow.AddDate(0, 0, -6)),               // oldest bucket (Thu)
		tx(domain.TransactionTypeIncome, "999", statsNow.AddDate(0, 0, -7)),               // out of range
		tx(domain.TransactionTypeIncome, "999", statsNow.AddDate(0, 0, 1)),                // tomorrow, out of range
		tx(domain.TransactionTypeIncome, "5", time.Date(2026, time.March, 4, 0, 0, 1, 0, time.UTC)), // same day, midnight-ish
	}

	buckets := WeeklyBuckets(statsNow, transactions)
	require.Len(t, buckets, 7)

	// Oldest first: Thu Feb 26 through Wed Mar 4.
	assert.Equal(t, []string{"TH", "F", "S", "S", "M", "T", "W"}, bucketLabels(buckets))
	assert.True(t, buckets[0].Date.Before(buckets[6].Date))

	assert.True(t, buckets[0].Expense.Equal(dec("20")), "oldest bucket expense: %s", buckets[0].Expense)
	assert.True(t, buckets[5].Expense.Equal(dec("30")))
	assert.True(t, buckets[6].Income.Equal(dec("105")), "today income: %s", buckets[6].Income)

	// Untouched buckets stay zeroed, not omitted.
	assert.True(t, buckets[1].Income.IsZero())
	assert.True(t, buckets[1].Expense.IsZero())
}

func TestMonthlyBuckets(t *testing.T) {
	transactions := []domain.Transaction{
		tx(domain.TransactionTypeIncome, "400", statsNow),
		tx(domain.TransactionTypeExpense, "75", statsNow.AddDate(0, -11, 0)), // oldest bucket
		tx(domain.TransactionTypeIncome, "999", statsNow.AddDate(-1, -1, 0)), // out of range
	}

	buckets := MonthlyBuckets(statsNow, transactions)
	require.Len(t, buckets, 12)

	assert.Equal(t, "Apr 25", buckets[0].Label)
	assert.Equal(t, "Mar 26", buckets[11].Label)
	assert.True(t, buckets[0].Expense.Equal(dec("75")))
	assert.True(t, buckets[11].Income.Equal(dec("400")))
}

// Month arithmetic from day 29-31 normalizes into the next month, which
// used to duplicate some buckets and drop others entirely.
func TestMonthlyBucketsMonthEnd(t *testing.T) {
	now := time.Date(2026, time.March, 31, 15, 0, 0, 0, time.UTC)
	transactions := []domain.Transaction{
		tx(domain.TransactionTypeExpense, "10", time.Date(2026, time.February, 14, 12, 0, 0, 0, time.UTC)),
	}

	buckets := MonthlyBuckets(now, transactions)
	require.Len(t, buckets, 12)

	assert.Equal(t, []string{
		"Apr 25", "May 25", "Jun 25", "Jul 25", "Aug 25", "Sep 25",
		"Oct 25", "Nov 25", "Dec 25", "Jan 26", "Feb 26", "Mar 26",
	}, bucketLabels(buckets))
	assert.True(t, buckets[10].Expense.Equal(dec("10")), "Feb expense: %s", buckets[10].Expense)
}

func TestYearlyBuckets(t *testing.T) {
	transactions := []domain.Transaction{
		tx(domain.TransactionTypeIncome, "1000", statsNow),
		tx(domain.TransactionTypeExpense, "250", statsNow.AddDate(-4, 0, 0)),
		tx(domain.TransactionTypeIncome, "999", statsNow.AddDate(-5, 0, 0)), // out of range
	}

	buckets := YearlyBuckets(statsNow, transactions)
	require.Len(t, buckets, 5)

	assert.Equal(t, []string{"2022", "2023", "2024", "2025", "2026"}, bucketLabels(buckets))
	assert.True(t, buckets[0].Expense.Equal(dec("250")))
	assert.True(t, buckets[4].Income.Equal(dec("1000")))
}

// Bucketing is a pure fold: the same inputs must always produce the same
// buckets, regardless of how often or in what order it runs.
func TestBucketsAreDeterministic(t *testing.T) {
	transactions := []domain.Transaction{
		tx(domain.TransactionTypeIncome, "10", statsNow),
		tx(domain.TransactionTypeExpense, "4", statsNow.AddDate(0, 0, -2)),
		tx(domain.TransactionTypeIncome, "7", statsNow.AddDate(0, -3, 0)),
	}
	reversed := []domain.Transaction{transactions[2], transactions[1], transactions[0]}

	assertBucketsEqual(t, WeeklyBuckets(statsNow, transactions), WeeklyBuckets(statsNow, reversed))
	assertBucketsEqual(t, MonthlyBuckets(statsNow, transactions), MonthlyBuckets(statsNow, transactions))
	assertBucketsEqual(t, YearlyBuckets(statsNow, transactions), YearlyBuckets(statsNow, reversed))
}

func bucketLabels(buckets []StatBucket) []string {
	labels := make([]string, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Label
	}
	return labels
}

func assertBucketsEqual(t *testing.T, a, b []StatBucket) {
	t.Helper()
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Label, b[i].Label)
		assert.True(t, a[i].Date.Equal(b[i].Date))
		assert.True(t, a[i].Income.Equal(b[i].Income))
		assert.True(t, a[i].Expense.Equal(b[i].Expense))
	}
}

func TestBucketsZeroWithoutTransactions(t *testing.T) {
	buckets := WeeklyBuckets(statsNow, nil)
	require.Len(t, buckets, 7)
	for _, b := range buckets {
		assert.True(t, b.Income.Equal(decimal.Zero))
		assert.True(t, b.Expense.Equal(decimal.Zero))
	}
}
