package internal

import (
	"math"
	"testing"
)

func TestEvaluateBudget(t *testing.T) {
	tests := []struct {
		name       string
		actual     float64
		budget     float64
		wantStatus BudgetStatus
		wantPct    float64
	}{
		{"no budget", 5000, 0, BudgetNone, 0},
		{"no budget no spend", 0, 0, BudgetNone, 0},
		{"well within", 500, 1000, BudgetGood, 50},
		{"exactly 70 is good", 700, 1000, BudgetGood, 70},
		{"just above 70 is warning", 701, 1000, BudgetWarning, 70.1},
		{"exactly 90 is warning", 900, 1000, BudgetWarning, 90},
		{"above 90 is danger", 950, 1000, BudgetDanger, 95},
		{"over budget", 1050, 1000, BudgetDanger, 105},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateBudget(tt.actual, tt.budget)
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", got.Status, tt.wantStatus)
			}
			if math.Abs(got.Percentage-tt.wantPct) > 1e-9 {
				t.Errorf("Percentage = %v, want %v", got.Percentage, tt.wantPct)
			}
		})
	}
}

func TestBudgetResult_Overage(t *testing.T) {
	r := EvaluateBudget(1050, 1000)
	if got := r.Overage(); got != 50 {
		t.Errorf("Overage = %v, want 50", got)
	}
	if got := r.Remaining(); got != 0 {
		t.Errorf("Remaining = %v, want 0", got)
	}
	if got := r.Bounded(); got != 100 {
		t.Errorf("Bounded = %v, want 100", got)
	}

	within := EvaluateBudget(600, 1000)
	if within.Overage() != 0 || within.Remaining() != 400 || within.Bounded() != 60 {
		t.Errorf("within = overage %v, remaining %v, bounded %v", within.Overage(), within.Remaining(), within.Bounded())
	}

	unset := EvaluateBudget(600, 0)
	if unset.Overage() != 0 || unset.Remaining() != 0 {
		t.Errorf("unset budget: overage %v, remaining %v", unset.Overage(), unset.Remaining())
	}
}

func TestEvaluateAll(t *testing.T) {
	subs := []Subscription{
		{Name: "Netflix", Price: 1490, BillingCycle: CycleMonthly},
		{Name: "Spotify", Price: 980, BillingCycle: CycleMonthly},
		{Name: "Gym", Price: 12000, BillingCycle: CycleYearly},
	}
	cfg := BudgetConfig{
		MonthlyBudget: 5000,
		YearlyBudget:  30000,
		CategoryBudgets: map[Category]float64{
			CategoryEntertainment: 1000,
			CategoryCloudStorage:  500,
		},
	}

	report := EvaluateAll(subs, cfg, DefaultClassifier())

	if report.Monthly.Actual != 3470 || report.Monthly.Status != BudgetGood {
		t.Errorf("Monthly = %+v", report.Monthly)
	}
	if report.Yearly.Actual != 41640 || report.Yearly.Status != BudgetDanger {
		t.Errorf("Yearly = %+v", report.Yearly)
	}

	// Display order of Categories; categories without spend or budget are skipped
	want := []struct {
		cat    Category
		status BudgetStatus
		count  int
	}{
		{CategoryEntertainment, BudgetDanger, 1},
		{CategoryCloudStorage, BudgetGood, 0},
		{CategoryMusicVideo, BudgetNone, 1},
		{CategoryOther, BudgetNone, 1},
	}
	if len(report.Categories) != len(want) {
		t.Fatalf("got %d category results, want %d: %+v", len(report.Categories), len(want), report.Categories)
	}
	for i, w := range want {
		got := report.Categories[i]
		if got.Category != w.cat || got.Status != w.status || got.Count != w.count {
			t.Errorf("category %d = %s/%s/%d, want %s/%s/%d", i, got.Category, got.Status, got.Count, w.cat, w.status, w.count)
		}
	}
}
