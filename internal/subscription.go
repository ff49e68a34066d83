package internal

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator"
)

// SubscriptionInput is a raw candidate record as entered by the user.
// Price is kept as text so "1,490" and "¥1490" can be normalized here.
type SubscriptionInput struct {
	Name         string
	Price        string
	BillingCycle BillingCycle
	NextBilling  string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report json names ("billingCycle") rather than Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// NewSubscription validates and normalizes a candidate into a Subscription.
// The returned value has no ID; ids are assigned by the Tracker.
func NewSubscription(in SubscriptionInput) (Subscription, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Subscription{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	price, err := ParsePrice(in.Price)
	if err != nil {
		return Subscription{}, err
	}

	sub := Subscription{
		Name:         name,
		Price:        price,
		BillingCycle: in.BillingCycle,
		NextBilling:  strings.TrimSpace(in.NextBilling),
	}
	if err := ValidateSubscription(sub); err != nil {
		return Subscription{}, err
	}
	return sub, nil
}

// ParsePrice parses a user supplied price. Currency glyphs and thousands
// separators are accepted; the result must be a positive finite number.
func ParsePrice(s string) (float64, error) {
	price, err := parseYen("price", s)
	if err != nil {
		return 0, err
	}
	if price <= 0 {
		return 0, &ValidationError{Field: "price", Reason: "must be a positive number"}
	}
	return price, nil
}

// ParseAmount parses a budget amount the way ParsePrice does, but zero is
// allowed. The error names field.
func ParseAmount(field, s string) (float64, error) {
	amount, err := parseYen(field, s)
	if err != nil {
		return 0, err
	}
	if amount < 0 {
		return 0, &ValidationError{Field: field, Reason: "must be zero or a positive number"}
	}
	return amount, nil
}

func parseYen(field, s string) (float64, error) {
	s = strings.TrimSpace(s)
	for _, glyph := range []string{"¥", "￥", "円"} {
		s = strings.ReplaceAll(s, glyph, "")
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &ValidationError{Field: field, Reason: "must not be empty"}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ValidationError{Field: field, Reason: "must be a number"}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ValidationError{Field: field, Reason: "must be a finite number"}
	}
	return v, nil
}

// ValidateSubscription checks the record invariants of an already built
// Subscription (used for updates as well as new records).
func ValidateSubscription(sub Subscription) error {
	if strings.TrimSpace(sub.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if math.IsNaN(sub.Price) || math.IsInf(sub.Price, 0) {
		return &ValidationError{Field: "price", Reason: "must be a positive number"}
	}

	if err := validate.Struct(sub); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fieldError(verrs[0])
		}
		return &ValidationError{Field: "subscription", Reason: err.Error()}
	}

	if sub.NextBilling != "" {
		if _, err := time.Parse(DateLayout, sub.NextBilling); err != nil {
			return &ValidationError{Field: "nextBilling", Reason: "must be a date in YYYY-MM-DD format"}
		}
	}
	return nil
}

func fieldError(fe validator.FieldError) *ValidationError {
	switch fe.ActualTag() {
	case "required":
		return &ValidationError{Field: fe.Field(), Reason: "must not be empty"}
	case "gt":
		return &ValidationError{Field: fe.Field(), Reason: "must be a positive number"}
	case "oneof":
		return &ValidationError{Field: fe.Field(), Reason: "must be monthly or yearly"}
	default:
		return &ValidationError{Field: fe.Field(), Reason: "is not valid"}
	}
}
