package internal

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ExportFormat names an export target
type ExportFormat string

const (
	ExportFormatJSON    ExportFormat = "json"
	ExportFormatCSV     ExportFormat = "csv"
	ExportFormatSummary ExportFormat = "txt"
	ExportFormatXLSX    ExportFormat = "xlsx"
	ExportFormatBackup  ExportFormat = "backup"
)

var ExportFormats = []ExportFormat{ExportFormatJSON, ExportFormatCSV, ExportFormatSummary, ExportFormatXLSX, ExportFormatBackup}

func ParseExportFormat(s string) (ExportFormat, error) {
	for _, f := range ExportFormats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format: %s (available: %v)", s, ExportFormats)
}

// DefaultFileName returns the conventional download name for the format
func (f ExportFormat) DefaultFileName(now time.Time) string {
	day := now.Format(DateLayout)
	switch f {
	case ExportFormatSummary:
		return "subscription_summary_" + day + ".txt"
	case ExportFormatBackup:
		return "subscription_backup_" + day + ".json"
	default:
		return "subscriptions_" + day + "." + string(f)
	}
}

// CSVHeader is the first line of the CSV export
const CSVHeader = "サービス名,料金,請求サイクル,次回請求日,月換算料金"

// ExportJSON renders the list exactly as it is persisted, pretty-printed
func ExportJSON(subs []Subscription) ([]byte, error) {
	if subs == nil {
		subs = []Subscription{}
	}
	data, err := json.MarshalIndent(subs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling subscriptions: %w", err)
	}
	return data, nil
}

// ExportBackup renders a backup payload for later import
func ExportBackup(subs []Subscription, now time.Time) ([]byte, error) {
	data, err := json.MarshalIndent(NewBackup(subs, now), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling backup: %w", err)
	}
	return data, nil
}

// ExportCSV renders one quoted row per subscription below CSVHeader.
// Prices carry the ¥ glyph; the monthly equivalent is rounded to whole yen.
func ExportCSV(subs []Subscription) string {
	var b strings.Builder
	b.WriteString(CSVHeader)
	b.WriteString("\n")
	rows := make([]string, 0, len(subs))
	for _, sub := range subs {
		rows = append(rows, strings.Join([]string{
			csvQuote(sub.Name),
			csvQuote("¥" + plainAmount(sub.Price)),
			csvQuote(sub.BillingCycle.Label()),
			csvQuote(sub.NextBilling),
			csvQuote("¥" + plainAmount(math.Round(sub.MonthlyEquivalent()))),
		}, ","))
	}
	b.WriteString(strings.Join(rows, "\n"))
	return b.String()
}

func csvQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// plainAmount prints a number without grouping or trailing zeros
func plainAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ExportSummary renders the plain-text report: a header block with totals
// followed by a numbered detail entry per subscription.
func ExportSummary(subs []Subscription, now time.Time) string {
	monthly := TotalMonthly(subs)

	var b strings.Builder
	b.WriteString("サブスクリプション一覧\n")
	fmt.Fprintf(&b, "生成日: %s\n", now.Format("2006/1/2"))
	b.WriteString("\n【概要】\n")
	fmt.Fprintf(&b, "登録サービス数: %d件\n", len(subs))
	fmt.Fprintf(&b, "月額合計: %s\n", FormatYen(monthly))
	fmt.Fprintf(&b, "年額合計: %s\n", FormatYen(monthly*12))
	b.WriteString("\n【詳細】\n")

	details := make([]string, 0, len(subs))
	for i, sub := range subs {
		next := sub.NextBilling
		if next == "" {
			next = "未設定"
		}
		details = append(details, fmt.Sprintf("%d. %s\n   料金: %s (%s)\n   月換算: %s\n   次回請求: %s",
			i+1, sub.Name,
			FormatYen(sub.Price), sub.BillingCycle.Label(),
			FormatYen(sub.MonthlyEquivalent()),
			next))
	}
	b.WriteString(strings.Join(details, "\n\n"))
	b.WriteString("\n")
	return b.String()
}
