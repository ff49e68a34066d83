package internal

import "math"

type BudgetStatus string

const (
	BudgetNone    BudgetStatus = "no-budget"
	BudgetGood    BudgetStatus = "good"
	BudgetWarning BudgetStatus = "warning"
	BudgetDanger  BudgetStatus = "danger"
)

const (
	goodThreshold    = 70.0
	warningThreshold = 90.0
)

// BudgetResult compares an actual amount with a budget.
// Percentage is uncapped; use Bounded for progress indicators.
type BudgetResult struct {
	Actual     float64
	Budget     float64
	Percentage float64
	Status     BudgetStatus
}

// EvaluateBudget classifies actual spend against budget. A zero budget is unset.
func EvaluateBudget(actual, budget float64) BudgetResult {
	r := BudgetResult{Actual: actual, Budget: budget}
	if budget == 0 {
		r.Status = BudgetNone
		return r
	}
	r.Percentage = actual / budget * 100
	switch {
	case r.Percentage <= goodThreshold:
		r.Status = BudgetGood
	case r.Percentage <= warningThreshold:
		r.Status = BudgetWarning
	default:
		r.Status = BudgetDanger
	}
	return r
}

// Bounded returns the percentage clamped to [0, 100]
func (r BudgetResult) Bounded() float64 {
	return math.Max(0, math.Min(r.Percentage, 100))
}

// Overage is how far actual exceeds the budget, 0 when within or unset
func (r BudgetResult) Overage() float64 {
	if r.Budget == 0 || r.Actual <= r.Budget {
		return 0
	}
	return r.Actual - r.Budget
}

// Remaining is the unspent budget, 0 when exceeded or unset
func (r BudgetResult) Remaining() float64 {
	if r.Budget == 0 || r.Actual >= r.Budget {
		return 0
	}
	return r.Budget - r.Actual
}

type CategoryBudgetResult struct {
	Category Category
	Count    int
	BudgetResult
}

type BudgetReport struct {
	Monthly    BudgetResult
	Yearly     BudgetResult
	Categories []CategoryBudgetResult
}

// EvaluateAll applies the evaluator to the monthly total, the yearly total
// (monthly x 12) and every category that has spend or a budget.
func EvaluateAll(subs []Subscription, cfg BudgetConfig, classifier Classifier) BudgetReport {
	monthly := TotalMonthly(subs)
	report := BudgetReport{
		Monthly: EvaluateBudget(monthly, cfg.MonthlyBudget),
		Yearly:  EvaluateBudget(monthly*12, cfg.YearlyBudget),
	}

	totals := make(map[Category]CategoryTotal)
	for _, ct := range ByCategory(subs, classifier) {
		totals[ct.Category] = ct
	}
	for _, cat := range Categories {
		ct, spent := totals[cat]
		budget := cfg.CategoryBudget(cat)
		if !spent && budget == 0 {
			continue
		}
		report.Categories = append(report.Categories, CategoryBudgetResult{
			Category:     cat,
			Count:        ct.Count,
			BudgetResult: EvaluateBudget(ct.Monthly, budget),
		})
	}
	return report
}
