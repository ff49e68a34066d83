package internal

import (
	"sort"
	"strings"
)

// Template is a preset for a common subscription service
type Template struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Price        float64      `json:"price"`
	BillingCycle BillingCycle `json:"billingCycle"`
	Group        string       `json:"group"`
	Description  string       `json:"description,omitempty"`
}

// Templates is the built-in catalogue, grouped for display
var Templates = []Template{
	{ID: "netflix", Name: "Netflix", Price: 1490, BillingCycle: CycleMonthly, Group: "エンターテイメント", Description: "動画ストリーミングサービス"},
	{ID: "netflix-premium", Name: "Netflix プレミアム", Price: 1980, BillingCycle: CycleMonthly, Group: "エンターテイメント", Description: "4K対応プレミアムプラン"},
	{ID: "spotify", Name: "Spotify Premium", Price: 980, BillingCycle: CycleMonthly, Group: "エンターテイメント", Description: "音楽ストリーミングサービス"},
	{ID: "youtube-premium", Name: "YouTube Premium", Price: 1180, BillingCycle: CycleMonthly, Group: "エンターテイメント", Description: "広告なし動画視聴・YouTube Music付き"},
	{ID: "amazon-prime", Name: "Amazon Prime", Price: 4900, BillingCycle: CycleYearly, Group: "エンターテイメント", Description: "配送特典・Prime Video・Prime Music"},
	{ID: "disney-plus", Name: "Disney+", Price: 990, BillingCycle: CycleMonthly, Group: "エンターテイメント", Description: "ディズニー作品ストリーミング"},
	{ID: "hulu", Name: "Hulu", Price: 1026, BillingCycle: CycleMonthly, Group: "エンターテイメント", Description: "国内外のドラマ・映画"},
	{ID: "u-next", Name: "U-NEXT", Price: 2189, BillingCycle: CycleMonthly, Group: "エンターテイメント", Description: "映画・ドラマ・アニメ見放題"},
	{ID: "apple-music", Name: "Apple Music", Price: 1080, BillingCycle: CycleMonthly, Group: "エンターテイメント", Description: "音楽ストリーミングサービス"},

	{ID: "adobe-cc", Name: "Adobe Creative Cloud", Price: 6248, BillingCycle: CycleMonthly, Group: "ソフトウェア", Description: "デザイン・動画編集ソフトウェア"},
	{ID: "microsoft-365", Name: "Microsoft 365", Price: 12984, BillingCycle: CycleYearly, Group: "ソフトウェア", Description: "Office アプリケーション・OneDrive"},
	{ID: "notion-pro", Name: "Notion Pro", Price: 480, BillingCycle: CycleMonthly, Group: "ソフトウェア", Description: "ノート・データベース・プロジェクト管理"},
	{ID: "figma-pro", Name: "Figma Professional", Price: 1440, BillingCycle: CycleMonthly, Group: "デザイン", Description: "デザイン・プロトタイピングツール"},
	{ID: "canva-pro", Name: "Canva Pro", Price: 1500, BillingCycle: CycleMonthly, Group: "デザイン", Description: "オンラインデザインツール"},
	{ID: "github-pro", Name: "GitHub Pro", Price: 400, BillingCycle: CycleMonthly, Group: "開発ツール", Description: "プライベートリポジトリ・高度な機能"},

	{ID: "google-one", Name: "Google One", Price: 250, BillingCycle: CycleMonthly, Group: "ストレージ", Description: "Googleドライブ容量拡張（100GB）"},
	{ID: "google-one-2tb", Name: "Google One 2TB", Price: 1300, BillingCycle: CycleMonthly, Group: "ストレージ", Description: "Googleドライブ容量拡張（2TB）"},
	{ID: "dropbox-plus", Name: "Dropbox Plus", Price: 1200, BillingCycle: CycleMonthly, Group: "ストレージ", Description: "クラウドストレージ（2TB）"},
	{ID: "icloud-plus", Name: "iCloud+", Price: 130, BillingCycle: CycleMonthly, Group: "ストレージ", Description: "Apple クラウドストレージ（50GB）"},

	{ID: "slack-pro", Name: "Slack Pro", Price: 925, BillingCycle: CycleMonthly, Group: "ビジネス", Description: "チームコミュニケーションツール"},
	{ID: "zoom-pro", Name: "Zoom Pro", Price: 2200, BillingCycle: CycleMonthly, Group: "ビジネス", Description: "ビデオ会議ツール"},
	{ID: "google-workspace", Name: "Google Workspace", Price: 680, BillingCycle: CycleMonthly, Group: "ビジネス", Description: "Gmail・ドライブ・ドキュメント"},

	{ID: "chatgpt-plus", Name: "ChatGPT Plus", Price: 2000, BillingCycle: CycleMonthly, Group: "AI", Description: "AI チャットボット"},
	{ID: "claude-pro", Name: "Claude Pro", Price: 2000, BillingCycle: CycleMonthly, Group: "AI", Description: "AI アシスタント"},
	{ID: "nikkei-digital", Name: "日経電子版", Price: 4277, BillingCycle: CycleMonthly, Group: "ニュース", Description: "経済ニュース・企業情報"},
	{ID: "kindle-unlimited", Name: "Kindle Unlimited", Price: 980, BillingCycle: CycleMonthly, Group: "読書", Description: "電子書籍読み放題"},
	{ID: "apple-fitness", Name: "Apple Fitness+", Price: 600, BillingCycle: CycleMonthly, Group: "フィットネス", Description: "ワークアウト動画配信"},
}

// FindTemplate looks a template up by id (case-insensitive)
func FindTemplate(id string) (Template, bool) {
	for _, t := range Templates {
		if strings.EqualFold(t.ID, id) {
			return t, true
		}
	}
	return Template{}, false
}

// SearchTemplates returns templates whose name, group or description
// contains query (case-insensitive). An empty query returns all templates.
func SearchTemplates(query string) []Template {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Templates
	}
	var result []Template
	for _, t := range Templates {
		if strings.Contains(strings.ToLower(t.Name), q) ||
			strings.Contains(strings.ToLower(t.Group), q) ||
			strings.Contains(strings.ToLower(t.Description), q) {
			result = append(result, t)
		}
	}
	return result
}

// TemplateGroups returns the distinct groups in catalogue order
func TemplateGroups() []string {
	seen := make(map[string]bool)
	var groups []string
	for _, t := range Templates {
		if !seen[t.Group] {
			seen[t.Group] = true
			groups = append(groups, t.Group)
		}
	}
	return groups
}

// Input converts the template into a candidate record
func (t Template) Input() SubscriptionInput {
	return SubscriptionInput{
		Name:         t.Name,
		Price:        plainAmount(t.Price),
		BillingCycle: t.BillingCycle,
	}
}

// sortTemplatesByGroup orders by group (catalogue order) keeping catalogue
// order inside each group
func sortTemplatesByGroup(ts []Template) []Template {
	order := make(map[string]int)
	for i, g := range TemplateGroups() {
		order[g] = i
	}
	sorted := make([]Template, len(ts))
	copy(sorted, ts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return order[sorted[i].Group] < order[sorted[j].Group]
	})
	return sorted
}
