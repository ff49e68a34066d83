package internal

import (
	"fmt"
	"strings"
)

type Category string

const (
	CategoryEntertainment Category = "entertainment"
	CategoryProductivity  Category = "productivity"
	CategoryCloudStorage  Category = "cloud-storage"
	CategoryMusicVideo    Category = "music-video"
	CategoryOther         Category = "other"
)

// Categories lists every category in display order
var Categories = []Category{
	CategoryEntertainment,
	CategoryProductivity,
	CategoryCloudStorage,
	CategoryMusicVideo,
	CategoryOther,
}

var categoryLabels = map[Category]string{
	CategoryEntertainment: "エンターテイメント",
	CategoryProductivity:  "ビジネス・生産性",
	CategoryCloudStorage:  "クラウドストレージ",
	CategoryMusicVideo:    "音楽・動画",
	CategoryOther:         "その他",
}

// Label returns the Japanese display label for the category
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// ParseCategory accepts either a category id or its label
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) || s == c.Label() {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category: %s (available: %v)", s, Categories)
}

// CategoryRule maps a set of lower-case name keywords to a category
type CategoryRule struct {
	Category Category `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// DefaultCategoryRules is evaluated top-down; the first rule with a keyword
// contained in the lower-cased name wins.
var DefaultCategoryRules = []CategoryRule{
	{Category: CategoryEntertainment, Keywords: []string{"netflix", "prime", "hulu", "disney"}},
	{Category: CategoryMusicVideo, Keywords: []string{"spotify", "youtube", "apple music"}},
	{Category: CategoryProductivity, Keywords: []string{"office", "adobe", "notion", "figma"}},
	{Category: CategoryCloudStorage, Keywords: []string{"icloud", "dropbox", "drive"}},
}

// Classifier assigns exactly one category to a subscription name
type Classifier interface {
	Classify(name string) Category
}

// ClassifierFunc is a function that implements Classifier
type ClassifierFunc func(name string) Category

func (f ClassifierFunc) Classify(name string) Category {
	return f(name)
}

// RuleClassifier is a declarative keyword table with CategoryOther as fallback
type RuleClassifier struct {
	rules []CategoryRule
}

// NewRuleClassifier builds a classifier from rules, evaluating them in order.
// Keywords are normalized to lower case; empty keywords are dropped.
func NewRuleClassifier(rules []CategoryRule) (*RuleClassifier, error) {
	compiled := make([]CategoryRule, 0, len(rules))
	for _, r := range rules {
		if _, ok := categoryLabels[r.Category]; !ok {
			return nil, fmt.Errorf("invalid category rule: unknown category %q", r.Category)
		}
		var keywords []string
		for _, kw := range r.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				keywords = append(keywords, kw)
			}
		}
		compiled = append(compiled, CategoryRule{Category: r.Category, Keywords: keywords})
	}
	return &RuleClassifier{rules: compiled}, nil
}

// DefaultClassifier returns the built-in keyword table
func DefaultClassifier() *RuleClassifier {
	c, err := NewRuleClassifier(DefaultCategoryRules)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *RuleClassifier) Classify(name string) Category {
	lower := strings.ToLower(name)
	for _, r := range c.rules {
		for _, kw := range r.Keywords {
			if strings.Contains(lower, kw) {
				return r.Category
			}
		}
	}
	return CategoryOther
}
