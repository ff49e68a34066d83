package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// JSONOutput is the root JSON output object of the list command
type JSONOutput struct {
	Subscriptions []JSONSubscription `json:"subscriptions"`
	Summary       JSONSummary        `json:"summary"`
}

// JSONSummary contains aggregate statistics
type JSONSummary struct {
	Count        int     `json:"count"`
	MonthlyTotal float64 `json:"monthly_total"`
	YearlyTotal  float64 `json:"yearly_total"`
	Average      float64 `json:"average"`
	Currency     string  `json:"currency"`
}

// JSONSubscription is the JSON output format for a subscription
type JSONSubscription struct {
	Subscription
	Category          Category `json:"category"`
	MonthlyEquivalent float64  `json:"monthlyEquivalent"`
}

// PrintSubscriptionsJSON outputs subscriptions and their totals in JSON format
func PrintSubscriptionsJSON(w io.Writer, subs []Subscription, classifier Classifier, cur Currency) error {
	subscriptions := make([]JSONSubscription, 0, len(subs))
	for _, sub := range subs {
		subscriptions = append(subscriptions, JSONSubscription{
			Subscription:      sub,
			Category:          classifier.Classify(sub.Name),
			MonthlyEquivalent: sub.MonthlyEquivalent(),
		})
	}

	output := JSONOutput{
		Subscriptions: subscriptions,
		Summary: JSONSummary{
			Count:        len(subs),
			MonthlyTotal: TotalMonthly(subs),
			YearlyTotal:  TotalYearly(subs),
			Average:      AveragePerService(subs),
			Currency:     cur.Code,
		},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// PrintSubscriptionsTable outputs subscriptions as a formatted table.
// total is the size of the unfiltered list, shown in the summary line.
func PrintSubscriptionsTable(w io.Writer, subs []Subscription, total int, classifier Classifier, cur Currency) {
	if len(subs) == total {
		fmt.Fprintf(w, "%d subscriptions\n\n", total)
	} else {
		fmt.Fprintf(w, "Showing %d of %d subscriptions\n\n", len(subs), total)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ID", "Name", "Category", "Cycle", "Price", "Monthly", "Next Billing"})

	for _, sub := range subs {
		next := sub.NextBilling
		if next == "" {
			next = text.FgHiBlack.Sprint("-")
		}
		t.AppendRow(table.Row{
			sub.ID,
			sub.Name,
			classifier.Classify(sub.Name).Label(),
			sub.BillingCycle.Label(),
			cur.Format(sub.Price),
			cur.Format(sub.MonthlyEquivalent()),
			next,
		})
	}

	t.AppendSeparator()
	monthly := TotalMonthly(subs)
	t.AppendFooter(table.Row{"", "", "", "", text.Bold.Sprint("Total"),
		text.Bold.Sprint(cur.Format(monthly)),
		text.Bold.Sprint(cur.Format(monthly*12) + " / yr")})

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})

	t.Render()
}

// PrintDashboard outputs the summary cards and the per-category breakdown
func PrintDashboard(w io.Writer, stats Stats, categories []CategoryTotal, cur Currency) {
	fmt.Fprintf(w, "Subscriptions:      %d (%d monthly, %d yearly)\n", stats.Count, stats.MonthlyCount, stats.YearlyCount)
	fmt.Fprintf(w, "Monthly total:      %s\n", cur.Format(stats.Monthly))
	fmt.Fprintf(w, "Yearly total:       %s\n", cur.Format(stats.Yearly))
	fmt.Fprintf(w, "Average per service: %s\n", cur.Format(stats.Average))
	if stats.MostExpensive != nil {
		fmt.Fprintf(w, "Most expensive:     %s (%s / month)\n", stats.MostExpensive.Name, cur.Format(stats.MostExpensive.MonthlyEquivalent()))
	}
	fmt.Fprintln(w)

	if len(categories) == 0 {
		fmt.Fprintln(w, "No subscriptions registered.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Category", "Services", "Monthly", "Share"})
	for _, ct := range categories {
		share := 0.0
		if stats.Monthly > 0 {
			share = ct.Monthly / stats.Monthly * 100
		}
		t.AppendRow(table.Row{ct.Category.Label(), ct.Count, cur.Format(ct.Monthly), fmt.Sprintf("%.1f%%", share)})
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	t.Render()
}

// PrintBudgetReport outputs monthly, yearly and per-category budget status
func PrintBudgetReport(w io.Writer, report BudgetReport, cur Currency) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Scope", "Actual", "Budget", "Used", "Status", ""})

	addRow := func(scope string, r BudgetResult) {
		budget := text.FgHiBlack.Sprint("-")
		used := text.FgHiBlack.Sprint("-")
		if r.Budget > 0 {
			budget = cur.Format(r.Budget)
			used = fmt.Sprintf("%.1f%%", r.Percentage)
		}
		t.AppendRow(table.Row{scope, cur.Format(r.Actual), budget, used, statusText(r.Status), progressBar(r, 20)})
	}

	addRow("月額", report.Monthly)
	addRow("年額", report.Yearly)
	if len(report.Categories) > 0 {
		t.AppendSeparator()
	}
	for _, c := range report.Categories {
		addRow(c.Category.Label(), c.BudgetResult)
	}

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	t.Render()

	if over := report.Monthly.Overage(); over > 0 {
		fmt.Fprintf(w, "\nMonthly budget exceeded by %s\n", cur.Format(over))
	} else if report.Monthly.Budget > 0 {
		fmt.Fprintf(w, "\nRemaining this month: %s\n", cur.Format(report.Monthly.Remaining()))
	}
}

func statusText(s BudgetStatus) string {
	switch s {
	case BudgetGood:
		return text.FgGreen.Sprint("GOOD")
	case BudgetWarning:
		return text.FgYellow.Sprint("WARNING")
	case BudgetDanger:
		return text.FgRed.Sprint("DANGER")
	default:
		return text.FgHiBlack.Sprint("NO BUDGET")
	}
}

// progressBar renders the clamped percentage as a fixed width bar
func progressBar(r BudgetResult, width int) string {
	if r.Status == BudgetNone {
		return ""
	}
	filled := int(r.Bounded() / 100 * float64(width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

// PrintNotifications outputs the notification list, newest first
func PrintNotifications(w io.Writer, list []Notification) {
	unread := UnreadCount(list)
	fmt.Fprintf(w, "%d notifications (%d unread)\n", len(list), unread)
	if len(list) == 0 {
		return
	}
	fmt.Fprintln(w)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"", "ID", "Kind", "Title", "Message", "Created"})
	for _, n := range list {
		mark := text.FgRed.Sprint("●")
		if n.IsRead {
			mark = " "
		}
		t.AppendRow(table.Row{mark, n.ID, string(n.Kind), n.Title, n.Message, n.CreatedAt.Format("2006-01-02 15:04")})
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, WidthMax: 60},
	})
	t.Render()
}

// PrintTemplates outputs the template catalogue grouped by category
func PrintTemplates(w io.Writer, templates []Template, cur Currency) {
	if len(templates) == 0 {
		fmt.Fprintln(w, "No templates found.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Template", "Name", "Group", "Cycle", "Price", "Description"})
	var group string
	for i, tmpl := range sortTemplatesByGroup(templates) {
		if i > 0 && tmpl.Group != group {
			t.AppendSeparator()
		}
		group = tmpl.Group
		t.AppendRow(table.Row{tmpl.ID, tmpl.Name, tmpl.Group, tmpl.BillingCycle.Label(), cur.Format(tmpl.Price), tmpl.Description})
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight},
	})
	t.Render()
}

// FormatID renders an id for messages
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
