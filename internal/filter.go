package internal

import (
	"cmp"
	"fmt"
	"sort"
	"strings"
)

type CycleFilter string

const (
	CycleAll         CycleFilter = "all"
	CycleOnlyMonthly CycleFilter = "monthly"
	CycleOnlyYearly  CycleFilter = "yearly"
)

type SortKey string

const (
	SortByName        SortKey = "name"
	SortByPrice       SortKey = "price"
	SortByNextBilling SortKey = "nextBilling"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// FilterSpec selects subscriptions. Zero values disable the respective filter.
type FilterSpec struct {
	NameSubstring   string
	MaxMonthlyPrice *float64
	Cycle           CycleFilter
}

type SortSpec struct {
	Key       SortKey
	Direction SortDirection
}

// DefaultSortSpec sorts by name ascending
var DefaultSortSpec = SortSpec{Key: SortByName, Direction: SortAsc}

// Apply filters and sorts subs into a new slice, leaving the input untouched.
// Filters run in a fixed order: name, max monthly price, billing cycle; then a
// stable sort.
func Apply(subs []Subscription, filter FilterSpec, order SortSpec) []Subscription {
	result := make([]Subscription, 0, len(subs))

	term := strings.ToLower(strings.TrimSpace(filter.NameSubstring))
	for _, sub := range subs {
		if term != "" && !strings.Contains(strings.ToLower(sub.Name), term) {
			continue
		}
		if filter.MaxMonthlyPrice != nil && sub.MonthlyEquivalent() > *filter.MaxMonthlyPrice {
			continue
		}
		if filter.Cycle != "" && filter.Cycle != CycleAll && string(sub.BillingCycle) != string(filter.Cycle) {
			continue
		}
		result = append(result, sub)
	}

	compare := comparator(order.Key)
	desc := order.Direction == SortDesc
	sort.SliceStable(result, func(i, j int) bool {
		c := compare(result[i], result[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
	return result
}

func comparator(key SortKey) func(a, b Subscription) int {
	switch key {
	case SortByPrice:
		return func(a, b Subscription) int {
			return cmp.Compare(a.MonthlyEquivalent(), b.MonthlyEquivalent())
		}
	case SortByNextBilling:
		// Missing dates compare as the empty string and sort first ascending
		return func(a, b Subscription) int {
			return strings.Compare(a.NextBilling, b.NextBilling)
		}
	default: // name
		return func(a, b Subscription) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	}
}

// ParseSortKey accepts "name", "price" or "nextBilling" (also "next-billing")
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "name":
		return SortByName, nil
	case "price":
		return SortByPrice, nil
	case "nextbilling", "next-billing", "next_billing":
		return SortByNextBilling, nil
	}
	return "", fmt.Errorf("unknown sort key: %s (available: name, price, nextBilling)", s)
}

func ParseDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc":
		return SortAsc, nil
	case "desc":
		return SortDesc, nil
	}
	return "", fmt.Errorf("unknown sort direction: %s (available: asc, desc)", s)
}

func ParseCycleFilter(s string) (CycleFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return CycleAll, nil
	case "monthly":
		return CycleOnlyMonthly, nil
	case "yearly":
		return CycleOnlyYearly, nil
	}
	return "", fmt.Errorf("unknown billing cycle filter: %s (available: all, monthly, yearly)", s)
}
