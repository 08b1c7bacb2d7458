package application

import (
	"context"
	"time"

	"github.com/rkhatri/LedgerManager/internal/ledger/domain"
)

const topExpenseCategoriesLimit = 5

// SummaryService aggregates entries for the dashboard.
type SummaryService struct {
	repo domain.EntryRepository
}

func NewSummaryService(repo domain.EntryRepository) *SummaryService {
	return &SummaryService{repo: repo}
}

type LedgerSummary struct {
	Year         int                     `json:"year"`
	IncomeTotal  domain.Money            `json:"income_total"`
	ExpenseTotal domain.Money            `json:"expense_total"`
	Months       map[string]MonthSummary `json:"months"`
}

type MonthSummary struct {
	IncomeTotal  domain.Money `json:"income_total"`
	ExpenseTotal domain.Money `json:"expense_total"`
}

// GetLedgerSummary buckets the user's entries in the date range by year and
// month, totalling incomes and expenses separately.
func (s *SummaryService) GetLedgerSummary(ctx context.Context, userID string, startDate, endDate time.Time) (map[int]LedgerSummary, error) {
	entries, err := s.repo.FindByUser(ctx, userID, "", startDate, endDate)
	if err != nil {
		return nil, err
	}

	summary := make(map[int]LedgerSummary)

	for _, entry := range entries {
		year := entry.Date.Year()
		month := entry.Date.Month().String()

		if _, exists := summary[year]; !exists {
			summary[year] = LedgerSummary{
				Year:   year,
				Months: make(map[string]MonthSummary),
			}
		}

		yearSummary := summary[year]
		monthSummary := yearSummary.Months[month]

		if entry.Type == domain.EntryTypeIncome {
			yearSummary.IncomeTotal += entry.Amount
			monthSummary.IncomeTotal += entry.Amount
		} else if entry.Type == domain.EntryTypeExpense {
			yearSummary.ExpenseTotal += entry.Amount
			monthSummary.ExpenseTotal += entry.Amount
		}

		yearSummary.Months[month] = monthSummary
		summary[year] = yearSummary
	}

	return summary, nil
}

// GetTopExpenseCategories returns the categories with the highest expense
// totals in the range, the data behind the dashboard chart.
func (s *SummaryService) GetTopExpenseCategories(ctx context.Context, userID string, startDate, endDate time.Time) ([]domain.CategorySummary, error) {
	summaries, err := s.repo.SummaryByCategory(ctx, userID, domain.EntryTypeExpense, startDate, endDate, topExpenseCategoriesLimit)
	if err != nil {
		return nil, err
	}
	if summaries == nil {
		return []domain.CategorySummary{}, nil
	}
	return summaries, nil
}
