package internal

import (
	"fmt"
	"time"
)

// NotifyWindows are the look-ahead windows (in days) for billing reminders
type NotifyWindows struct {
	Soon     int `yaml:"soon"`
	Upcoming int `yaml:"upcoming"`
}

var DefaultNotifyWindows = NotifyWindows{Soon: 7, Upcoming: 30}

// budgetWarningRatio triggers the warning notification above 90% of budget
const budgetWarningRatio = 0.9

// GenerateNotifications derives alerts using the default 7/30 day windows
func GenerateNotifications(subs []Subscription, now time.Time, monthlyBudget, actual float64) []Notification {
	return DefaultNotifyWindows.Generate(subs, now, monthlyBudget, actual)
}

// Generate derives billing and budget alerts. Ids are deterministic so a
// repeated call with unchanged inputs yields the same ids: billing alerts are
// keyed by subscription and window, budget alerts by the current date.
func (w NotifyWindows) Generate(subs []Subscription, now time.Time, monthlyBudget, actual float64) []Notification {
	var result []Notification

	today := startOfDay(now)
	soon := today.AddDate(0, 0, w.Soon)
	upcoming := today.AddDate(0, 0, w.Upcoming)

	for _, sub := range subs {
		billing, ok := sub.NextBillingDate(now.Location())
		if !ok || billing.Before(today) {
			continue
		}
		switch {
		case !billing.After(soon):
			result = append(result, Notification{
				ID:    fmt.Sprintf("billing-%d-%dd", sub.ID, w.Soon),
				Kind:  KindBilling,
				Title: "請求予定",
				Message: fmt.Sprintf("%sの請求が%d日以内（%s）に予定されています。金額: %s",
					sub.Name, w.Soon, sub.NextBilling, FormatYen(sub.Price)),
				CreatedAt: now,
			})
		case !billing.After(upcoming):
			result = append(result, Notification{
				ID:    fmt.Sprintf("billing-%d-%dd", sub.ID, w.Upcoming),
				Kind:  KindBilling,
				Title: "今月の請求予定",
				Message: fmt.Sprintf("%sの請求が%d日以内（%s）に予定されています。金額: %s",
					sub.Name, w.Upcoming, sub.NextBilling, FormatYen(sub.Price)),
				CreatedAt: now,
			})
		}
	}

	dateKey := today.Format(DateLayout)
	if monthlyBudget > 0 && actual > monthlyBudget {
		result = append(result, Notification{
			ID:    "budget-exceeded-" + dateKey,
			Kind:  KindBudget,
			Title: "予算超過アラート",
			Message: fmt.Sprintf("月額予算（%s）を%s超過しています。現在の合計: %s",
				FormatYen(monthlyBudget), FormatYen(actual-monthlyBudget), FormatYen(actual)),
			CreatedAt: now,
		})
	} else if monthlyBudget > 0 && actual > monthlyBudget*budgetWarningRatio {
		result = append(result, Notification{
			ID:    "budget-warning-" + dateKey,
			Kind:  KindBudget,
			Title: "予算警告",
			Message: fmt.Sprintf("月額予算の90%%に達しました。予算: %s、現在: %s",
				FormatYen(monthlyBudget), FormatYen(actual)),
			CreatedAt: now,
		})
	}

	return result
}

// MergeNotifications prepends generated entries whose id is not already in
// existing. Existing entries, including their read flag, are kept as is.
func MergeNotifications(existing, generated []Notification) []Notification {
	seen := make(map[string]bool, len(existing))
	for _, n := range existing {
		seen[n.ID] = true
	}

	var fresh []Notification
	for _, n := range generated {
		if seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		fresh = append(fresh, n)
	}
	if len(fresh) == 0 {
		return existing
	}

	merged := make([]Notification, 0, len(fresh)+len(existing))
	merged = append(merged, fresh...)
	return append(merged, existing...)
}

// MarkRead returns a copy of list with the notification id marked as read.
// found is false when no entry has that id.
func MarkRead(list []Notification, id string) (result []Notification, found bool) {
	result = make([]Notification, len(list))
	copy(result, list)
	for i := range result {
		if result[i].ID == id {
			result[i].IsRead = true
			found = true
		}
	}
	return result, found
}

// MarkAllRead returns a copy of list with every entry marked as read
func MarkAllRead(list []Notification) []Notification {
	result := make([]Notification, len(list))
	copy(result, list)
	for i := range result {
		result[i].IsRead = true
	}
	return result
}

func UnreadCount(list []Notification) int {
	count := 0
	for _, n := range list {
		if !n.IsRead {
			count++
		}
	}
	return count
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
