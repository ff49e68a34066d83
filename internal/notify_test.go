package internal

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2025, 7, 1, 21, 30, 0, 0, time.FixedZone("JST", 9*3600))

func inDays(n int) string {
	return testNow.AddDate(0, 0, n).Format(DateLayout)
}

func notificationIDs(list []Notification) []string {
	out := make([]string, len(list))
	for i, n := range list {
		out[i] = n.ID
	}
	return out
}

func TestGenerateNotifications_ThreeDaysAhead(t *testing.T) {
	subs := []Subscription{{ID: 42, Name: "Netflix", Price: 1490, BillingCycle: CycleMonthly, NextBilling: inDays(3)}}

	got := GenerateNotifications(subs, testNow, 0, TotalMonthly(subs))
	if len(got) != 1 {
		t.Fatalf("got %d notifications, want 1: %v", len(got), notificationIDs(got))
	}
	n := got[0]
	if n.ID != "billing-42-7d" {
		t.Errorf("ID = %q, want billing-42-7d", n.ID)
	}
	if n.Kind != KindBilling {
		t.Errorf("Kind = %q, want billing", n.Kind)
	}
	if !strings.Contains(n.Message, "Netflix") || !strings.Contains(n.Message, "¥1,490") {
		t.Errorf("Message = %q, want name and price", n.Message)
	}
	if n.IsRead {
		t.Error("new notification should be unread")
	}
}

func TestGenerateNotifications_Windows(t *testing.T) {
	subs := []Subscription{
		{ID: 1, Name: "today", Price: 100, BillingCycle: CycleMonthly, NextBilling: inDays(0)},
		{ID: 2, Name: "seven", Price: 100, BillingCycle: CycleMonthly, NextBilling: inDays(7)},
		{ID: 3, Name: "eight", Price: 100, BillingCycle: CycleMonthly, NextBilling: inDays(8)},
		{ID: 4, Name: "thirty", Price: 100, BillingCycle: CycleMonthly, NextBilling: inDays(30)},
		{ID: 5, Name: "thirty-one", Price: 100, BillingCycle: CycleMonthly, NextBilling: inDays(31)},
		{ID: 6, Name: "yesterday", Price: 100, BillingCycle: CycleMonthly, NextBilling: inDays(-1)},
		{ID: 7, Name: "unset", Price: 100, BillingCycle: CycleMonthly},
		{ID: 8, Name: "garbage", Price: 100, BillingCycle: CycleMonthly, NextBilling: "next week"},
	}

	got := notificationIDs(GenerateNotifications(subs, testNow, 0, 0))
	want := []string{"billing-1-7d", "billing-2-7d", "billing-3-30d", "billing-4-30d"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}
}

func TestGenerateNotifications_CustomWindows(t *testing.T) {
	subs := []Subscription{{ID: 9, Name: "x", Price: 100, BillingCycle: CycleMonthly, NextBilling: inDays(2)}}
	got := NotifyWindows{Soon: 1, Upcoming: 3}.Generate(subs, testNow, 0, 0)
	if len(got) != 1 || got[0].ID != "billing-9-3d" {
		t.Errorf("ids = %v, want [billing-9-3d]", notificationIDs(got))
	}
}

func TestGenerateNotifications_Budget(t *testing.T) {
	tests := []struct {
		name   string
		budget float64
		actual float64
		want   []string
	}{
		{"no budget", 0, 5000, []string{}},
		{"well within", 1000, 500, []string{}},
		{"exactly 90 percent", 1000, 900, []string{}},
		{"above 90 percent", 1000, 950, []string{"budget-warning-2025-07-01"}},
		{"exactly at budget", 1000, 1000, []string{"budget-warning-2025-07-01"}},
		{"exceeded", 1000, 1050, []string{"budget-exceeded-2025-07-01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := notificationIDs(GenerateNotifications(nil, testNow, tt.budget, tt.actual))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ids = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGenerateNotifications_ExceededMessage(t *testing.T) {
	got := GenerateNotifications(nil, testNow, 1000, 1050)
	if len(got) != 1 {
		t.Fatalf("got %d notifications, want 1", len(got))
	}
	if got[0].Kind != KindBudget || !strings.Contains(got[0].Message, "¥50") {
		t.Errorf("notification = %+v, want budget kind mentioning the ¥50 overage", got[0])
	}
}

func TestMergeNotifications_Idempotent(t *testing.T) {
	subs := []Subscription{
		{ID: 1, Name: "A", Price: 1000, BillingCycle: CycleMonthly, NextBilling: inDays(3)},
		{ID: 2, Name: "B", Price: 1000, BillingCycle: CycleMonthly, NextBilling: inDays(20)},
	}

	first := MergeNotifications(nil, GenerateNotifications(subs, testNow, 1500, 2000))
	second := MergeNotifications(first, GenerateNotifications(subs, testNow, 1500, 2000))

	if !reflect.DeepEqual(first, second) {
		t.Errorf("second merge changed the state:\n%v\n%v", notificationIDs(first), notificationIDs(second))
	}
	seen := map[string]bool{}
	for _, id := range notificationIDs(second) {
		if seen[id] {
			t.Errorf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestMergeNotifications_PrependsNewAndKeepsReadFlag(t *testing.T) {
	existing := []Notification{{ID: "old", IsRead: true}}
	generated := []Notification{{ID: "new"}, {ID: "old"}}

	merged := MergeNotifications(existing, generated)
	if got := notificationIDs(merged); !reflect.DeepEqual(got, []string{"new", "old"}) {
		t.Fatalf("ids = %v, want [new old]", got)
	}
	if !merged[1].IsRead {
		t.Error("existing entry lost its read flag")
	}
}

func TestMarkRead(t *testing.T) {
	list := []Notification{{ID: "a"}, {ID: "b"}, {ID: "c", IsRead: true}}

	updated, found := MarkRead(list, "b")
	if !found {
		t.Fatal("expected b to be found")
	}
	if !updated[1].IsRead {
		t.Error("b not marked read")
	}
	if list[1].IsRead {
		t.Error("input was mutated")
	}
	if UnreadCount(updated) != 1 {
		t.Errorf("UnreadCount = %d, want 1", UnreadCount(updated))
	}

	if _, found := MarkRead(list, "zzz"); found {
		t.Error("expected unknown id to report found=false")
	}

	all := MarkAllRead(list)
	if UnreadCount(all) != 0 {
		t.Errorf("UnreadCount after MarkAllRead = %d, want 0", UnreadCount(all))
	}
	if UnreadCount(list) != 2 {
		t.Error("MarkAllRead mutated its input")
	}
}
