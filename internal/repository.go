package internal

import (
	"context"
	"encoding/json"
	"log/slog"
)

// Storage keys
const (
	KeySubscriptions = "subscriptions"
	KeyBudget        = "budgetData"
	KeyNotifications = "notifications"
)

// DefaultSubscriptions seeds an empty store
var DefaultSubscriptions = []Subscription{
	{ID: 1, Name: "Netflix", Price: 1490, BillingCycle: CycleMonthly, NextBilling: "2025-07-15"},
	{ID: 2, Name: "Spotify", Price: 980, BillingCycle: CycleMonthly, NextBilling: "2025-07-05"},
	{ID: 3, Name: "Adobe Creative Cloud", Price: 6248, BillingCycle: CycleMonthly, NextBilling: "2025-07-12"},
	{ID: 4, Name: "Microsoft 365", Price: 12984, BillingCycle: CycleYearly, NextBilling: "2026-03-15"},
	{ID: 5, Name: "YouTube Premium", Price: 1180, BillingCycle: CycleMonthly, NextBilling: "2025-06-30"},
	{ID: 6, Name: "Amazon Prime", Price: 4900, BillingCycle: CycleYearly, NextBilling: "2025-12-01"},
	{ID: 7, Name: "Notion Pro", Price: 480, BillingCycle: CycleMonthly, NextBilling: "2025-07-08"},
	{ID: 8, Name: "Figma Professional", Price: 1440, BillingCycle: CycleMonthly, NextBilling: "2025-07-20"},
}

// Repository loads and saves the serialized records in a Store.
// Every save is a full overwrite of its key.
type Repository struct {
	store Store
	log   *slog.Logger
}

func NewRepository(store Store, logger *slog.Logger) *Repository {
	return &Repository{store: store, log: componentLogger(logger, "repository")}
}

// LoadSubscriptions returns the persisted list. When the key is absent or
// unparsable the default list is returned and immediately persisted. A read
// failure also yields the defaults (not persisted) together with the error.
func (r *Repository) LoadSubscriptions(ctx context.Context) ([]Subscription, error) {
	data, ok, err := r.store.Get(ctx, KeySubscriptions)
	if err != nil {
		r.log.Error("failed to read subscriptions", "error", err)
		return defaultSubscriptions(), &PersistenceError{Key: KeySubscriptions, Op: "load", Err: err}
	}

	if ok {
		var subs []Subscription
		err := json.Unmarshal(data, &subs)
		if err == nil {
			if subs == nil {
				subs = []Subscription{}
			}
			r.log.Debug("loaded subscriptions", "count", len(subs))
			return subs, nil
		}
		r.log.Warn("failed to parse stored subscriptions, restoring defaults", "error", err)
	}

	subs := defaultSubscriptions()
	r.SaveSubscriptions(ctx, subs)
	return subs, nil
}

// SaveSubscriptions overwrites the stored list. Failures are logged and
// returned as *PersistenceError; callers treat them as non-fatal.
func (r *Repository) SaveSubscriptions(ctx context.Context, subs []Subscription) error {
	if subs == nil {
		subs = []Subscription{}
	}
	return r.save(ctx, KeySubscriptions, subs)
}

// LoadBudget returns the stored budget, or a zero config when absent or unparsable
func (r *Repository) LoadBudget(ctx context.Context) (BudgetConfig, error) {
	var cfg BudgetConfig
	found, err := r.load(ctx, KeyBudget, &cfg)
	if err != nil || !found {
		return BudgetConfig{CategoryBudgets: map[Category]float64{}}, err
	}
	if cfg.CategoryBudgets == nil {
		cfg.CategoryBudgets = map[Category]float64{}
	}
	return cfg, nil
}

func (r *Repository) SaveBudget(ctx context.Context, cfg BudgetConfig) error {
	if cfg.CategoryBudgets == nil {
		cfg.CategoryBudgets = map[Category]float64{}
	}
	return r.save(ctx, KeyBudget, cfg)
}

// LoadNotifications returns the stored notification state, empty when absent
func (r *Repository) LoadNotifications(ctx context.Context) ([]Notification, error) {
	var list []Notification
	if _, err := r.load(ctx, KeyNotifications, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *Repository) SaveNotifications(ctx context.Context, list []Notification) error {
	if list == nil {
		list = []Notification{}
	}
	return r.save(ctx, KeyNotifications, list)
}

// load decodes key into v. Unparsable data is logged and reported as not found.
func (r *Repository) load(ctx context.Context, key string, v any) (bool, error) {
	data, ok, err := r.store.Get(ctx, key)
	if err != nil {
		r.log.Error("failed to read record", "key", key, "error", err)
		return false, &PersistenceError{Key: key, Op: "load", Err: err}
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		r.log.Warn("failed to parse stored record, ignoring it", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

func (r *Repository) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		r.log.Error("failed to serialize record", "key", key, "error", err)
		return &PersistenceError{Key: key, Op: "save", Err: err}
	}
	if err := r.store.Set(ctx, key, data); err != nil {
		r.log.Error("failed to save record", "key", key, "error", err)
		return &PersistenceError{Key: key, Op: "save", Err: err}
	}
	r.log.Debug("saved record", "key", key, "bytes", len(data))
	return nil
}

func defaultSubscriptions() []Subscription {
	subs := make([]Subscription, len(DefaultSubscriptions))
	copy(subs, DefaultSubscriptions)
	return subs
}
