package internal

import "time"

// DateLayout is the ISO 8601 calendar date format used for nextBilling
const DateLayout = "2006-01-02"

type BillingCycle string

const (
	CycleMonthly BillingCycle = "monthly"
	CycleYearly  BillingCycle = "yearly"
)

// Valid reports whether c is one of the recognized billing cycles
func (c BillingCycle) Valid() bool {
	return c == CycleMonthly || c == CycleYearly
}

// Label returns the localized label used in exports and tables
func (c BillingCycle) Label() string {
	if c == CycleYearly {
		return "年額"
	}
	return "月額"
}

type Subscription struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name" validate:"required"`
	Price        float64      `json:"price" validate:"gt=0"`
	BillingCycle BillingCycle `json:"billingCycle" validate:"oneof=monthly yearly"`
	NextBilling  string       `json:"nextBilling,omitempty"`
}

// MonthlyEquivalent normalizes the price to a monthly amount.
// No rounding happens here; callers round for display only.
func (s Subscription) MonthlyEquivalent() float64 {
	if s.BillingCycle == CycleYearly {
		return s.Price / 12
	}
	return s.Price
}

// NextBillingDate parses NextBilling as a calendar date in loc.
// ok is false when unset or malformed.
func (s Subscription) NextBillingDate(loc *time.Location) (t time.Time, ok bool) {
	if s.NextBilling == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout, s.NextBilling, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// BudgetConfig holds the user's budgets. Zero means unset.
type BudgetConfig struct {
	MonthlyBudget   float64              `json:"monthlyBudget"`
	YearlyBudget    float64              `json:"yearlyBudget"`
	CategoryBudgets map[Category]float64 `json:"categories"`
}

// CategoryBudget returns the budget for a category, 0 if unset
func (b BudgetConfig) CategoryBudget(c Category) float64 {
	if b.CategoryBudgets == nil {
		return 0
	}
	return b.CategoryBudgets[c]
}

type NotificationKind string

const (
	KindBilling NotificationKind = "billing"
	KindBudget  NotificationKind = "budget"
	KindInfo    NotificationKind = "info"
)

type Notification struct {
	ID        string           `json:"id"`
	Kind      NotificationKind `json:"kind"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"createdAt"`
	IsRead    bool             `json:"isRead"`
}
