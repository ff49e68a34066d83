package internal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// BackupVersion is written into every backup payload
const BackupVersion = "1.0"

// Backup is the serialized bundle used for backup and restore
type Backup struct {
	Subscriptions []Subscription `json:"subscriptions"`
	ExportDate    string         `json:"exportDate"`
	Version       string         `json:"version"`
}

// NewBackup wraps the list in a backup payload stamped with now
func NewBackup(subs []Subscription, now time.Time) Backup {
	if subs == nil {
		subs = []Subscription{}
	}
	return Backup{
		Subscriptions: subs,
		ExportDate:    now.UTC().Format(time.RFC3339),
		Version:       BackupVersion,
	}
}

// ParseBackup decodes and validates a backup payload. The shape is checked
// field by field before anything is converted, so a failure never yields a
// partially decoded list.
func ParseBackup(data []byte) (Backup, error) {
	var root any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&root); err != nil {
		return Backup{}, &ImportFormatError{Index: -1, Reason: fmt.Sprintf("not valid JSON: %v", err)}
	}

	obj, ok := root.(map[string]any)
	if !ok {
		return Backup{}, &ImportFormatError{Index: -1, Reason: "expected a JSON object"}
	}
	rawSubs, ok := obj["subscriptions"].([]any)
	if !ok {
		return Backup{}, &ImportFormatError{Index: -1, Field: "subscriptions", Reason: "must be an array"}
	}

	backup := Backup{Subscriptions: make([]Subscription, 0, len(rawSubs))}
	if s, ok := obj["exportDate"].(string); ok {
		backup.ExportDate = s
	}
	if s, ok := obj["version"].(string); ok {
		backup.Version = s
	}

	for i, raw := range rawSubs {
		sub, err := parseBackupEntry(i, raw)
		if err != nil {
			return Backup{}, err
		}
		backup.Subscriptions = append(backup.Subscriptions, sub)
	}
	return backup, nil
}

func parseBackupEntry(i int, raw any) (Subscription, error) {
	fail := func(field, reason string) error {
		return &ImportFormatError{Index: i, Field: field, Reason: reason}
	}

	entry, ok := raw.(map[string]any)
	if !ok {
		return Subscription{}, &ImportFormatError{Index: i, Reason: "must be an object"}
	}

	id, ok := entry["id"].(json.Number)
	if !ok {
		return Subscription{}, fail("id", "must be a number")
	}
	idValue, err := id.Float64()
	if err != nil {
		return Subscription{}, fail("id", "must be a number")
	}

	name, ok := entry["name"].(string)
	if !ok {
		return Subscription{}, fail("name", "must be a string")
	}

	price, ok := entry["price"].(json.Number)
	if !ok {
		return Subscription{}, fail("price", "must be a number")
	}
	priceValue, err := price.Float64()
	if err != nil {
		return Subscription{}, fail("price", "must be a number")
	}

	cycle, _ := entry["billingCycle"].(string)
	if !BillingCycle(cycle).Valid() {
		return Subscription{}, fail("billingCycle", "must be monthly or yearly")
	}

	var next string
	if v, present := entry["nextBilling"]; present && v != nil {
		s, ok := v.(string)
		if !ok {
			return Subscription{}, fail("nextBilling", "must be a string")
		}
		next = s
	}

	sub := Subscription{
		ID:           int64(idValue),
		Name:         name,
		Price:        priceValue,
		BillingCycle: BillingCycle(cycle),
		NextBilling:  next,
	}
	// Well-typed but out of range values (empty name, zero price) would break
	// the record invariants once appended
	if err := ValidateSubscription(sub); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return Subscription{}, fail(verr.Field, verr.Reason)
		}
		return Subscription{}, fail("subscription", err.Error())
	}
	sub.Name = strings.TrimSpace(sub.Name)
	return sub, nil
}
