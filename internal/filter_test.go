package internal

import (
	"reflect"
	"testing"
)

func ids(subs []Subscription) []int64 {
	out := make([]int64, len(subs))
	for i, s := range subs {
		out[i] = s.ID
	}
	return out
}

func TestApply(t *testing.T) {
	subs := []Subscription{
		{ID: 1, Name: "Netflix", Price: 1490, BillingCycle: CycleMonthly, NextBilling: "2025-07-15"},
		{ID: 2, Name: "Spotify", Price: 980, BillingCycle: CycleMonthly, NextBilling: "2025-07-05"},
		{ID: 3, Name: "Microsoft 365", Price: 12984, BillingCycle: CycleYearly, NextBilling: "2026-03-15"},
		{ID: 4, Name: "amazon prime", Price: 4900, BillingCycle: CycleYearly},
	}
	limit := 1200.0

	tests := []struct {
		name   string
		filter FilterSpec
		order  SortSpec
		want   []int64
	}{
		{"default sort by name", FilterSpec{}, DefaultSortSpec, []int64{4, 3, 1, 2}},
		{"name desc", FilterSpec{}, SortSpec{Key: SortByName, Direction: SortDesc}, []int64{2, 1, 3, 4}},
		{"price uses monthly equivalent", FilterSpec{}, SortSpec{Key: SortByPrice, Direction: SortAsc}, []int64{4, 2, 3, 1}},
		{"next billing, missing first", FilterSpec{}, SortSpec{Key: SortByNextBilling, Direction: SortAsc}, []int64{4, 2, 1, 3}},
		{"name substring case-insensitive", FilterSpec{NameSubstring: "PRIME"}, DefaultSortSpec, []int64{4}},
		{"max monthly price", FilterSpec{MaxMonthlyPrice: &limit}, DefaultSortSpec, []int64{4, 3, 2}},
		{"yearly only", FilterSpec{Cycle: CycleOnlyYearly}, DefaultSortSpec, []int64{4, 3}},
		{"monthly only", FilterSpec{Cycle: CycleOnlyMonthly}, DefaultSortSpec, []int64{1, 2}},
		{"combined", FilterSpec{NameSubstring: "i", MaxMonthlyPrice: &limit, Cycle: CycleOnlyMonthly}, DefaultSortSpec, []int64{2}},
		{"no match", FilterSpec{NameSubstring: "hulu"}, DefaultSortSpec, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Apply(subs, tt.filter, tt.order))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Apply() ids = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApply_Stable(t *testing.T) {
	subs := []Subscription{
		{ID: 1, Name: "b", Price: 500, BillingCycle: CycleMonthly},
		{ID: 2, Name: "a", Price: 500, BillingCycle: CycleMonthly},
		{ID: 3, Name: "c", Price: 6000, BillingCycle: CycleYearly},
		{ID: 4, Name: "d", Price: 100, BillingCycle: CycleMonthly},
	}

	asc := ids(Apply(subs, FilterSpec{}, SortSpec{Key: SortByPrice, Direction: SortAsc}))
	if want := []int64{4, 1, 2, 3}; !reflect.DeepEqual(asc, want) {
		t.Errorf("asc = %v, want %v", asc, want)
	}
	desc := ids(Apply(subs, FilterSpec{}, SortSpec{Key: SortByPrice, Direction: SortDesc}))
	if want := []int64{1, 2, 3, 4}; !reflect.DeepEqual(desc, want) {
		t.Errorf("desc = %v, want %v", desc, want)
	}
}

func TestApply_Idempotent(t *testing.T) {
	limit := 5000.0
	filter := FilterSpec{NameSubstring: "o", MaxMonthlyPrice: &limit}
	order := SortSpec{Key: SortByNextBilling, Direction: SortDesc}

	once := Apply(DefaultSubscriptions, filter, order)
	twice := Apply(once, filter, order)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second application changed the result:\n%v\n%v", ids(once), ids(twice))
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	subs := []Subscription{
		{ID: 1, Name: "b", Price: 1, BillingCycle: CycleMonthly},
		{ID: 2, Name: "a", Price: 1, BillingCycle: CycleMonthly},
	}
	Apply(subs, FilterSpec{}, DefaultSortSpec)
	if subs[0].ID != 1 || subs[1].ID != 2 {
		t.Errorf("input reordered: %v", ids(subs))
	}
}

func TestParseSortSpecParts(t *testing.T) {
	if k, err := ParseSortKey("next-billing"); err != nil || k != SortByNextBilling {
		t.Errorf("ParseSortKey(next-billing) = %q, %v", k, err)
	}
	if k, err := ParseSortKey("nextBilling"); err != nil || k != SortByNextBilling {
		t.Errorf("ParseSortKey(nextBilling) = %q, %v", k, err)
	}
	if _, err := ParseSortKey("category"); err == nil {
		t.Error("expected unknown sort key to fail")
	}
	if d, err := ParseDirection("DESC"); err != nil || d != SortDesc {
		t.Errorf("ParseDirection(DESC) = %q, %v", d, err)
	}
	if _, err := ParseDirection("up"); err == nil {
		t.Error("expected unknown direction to fail")
	}
	if c, err := ParseCycleFilter(""); err != nil || c != CycleAll {
		t.Errorf("ParseCycleFilter(\"\") = %q, %v", c, err)
	}
	if _, err := ParseCycleFilter("weekly"); err == nil {
		t.Error("expected weekly filter to fail")
	}
}
