package internal

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"
)

// SubscriptionPatch lists replaceable fields; nil fields are left unchanged.
// An empty NextBilling clears the date.
type SubscriptionPatch struct {
	Name         *string
	Price        *string
	BillingCycle *BillingCycle
	NextBilling  *string
}

// TrackerOptions configures a Tracker. Zero values pick the defaults.
type TrackerOptions struct {
	Classifier Classifier
	Windows    NotifyWindows
	Now        func() time.Time
	Logger     *slog.Logger
}

// Tracker owns the in-memory state and writes every change back through the
// Repository. Mutations replace the list wholesale; slices handed out are
// copies and never alias the internal state.
type Tracker struct {
	repo          *Repository
	subs          []Subscription
	budget        BudgetConfig
	notifications []Notification

	classifier Classifier
	windows    NotifyWindows
	now        func() time.Time
	log        *slog.Logger

	lastID int64
}

// NewTracker loads the subscriptions, budget and notification state
func NewTracker(ctx context.Context, repo *Repository, opts TrackerOptions) *Tracker {
	t := &Tracker{
		repo:       repo,
		classifier: opts.Classifier,
		windows:    opts.Windows,
		now:        opts.Now,
		log:        componentLogger(opts.Logger, "tracker"),
	}
	if t.classifier == nil {
		t.classifier = DefaultClassifier()
	}
	if t.windows == (NotifyWindows{}) {
		t.windows = DefaultNotifyWindows
	}
	if t.now == nil {
		t.now = time.Now
	}

	// Load failures are already logged by the repository; defaults are used
	t.subs, _ = repo.LoadSubscriptions(ctx)
	t.budget, _ = repo.LoadBudget(ctx)
	t.notifications, _ = repo.LoadNotifications(ctx)

	for _, sub := range t.subs {
		t.lastID = max(t.lastID, sub.ID)
	}
	return t
}

// Subscriptions returns a copy of the current list
func (t *Tracker) Subscriptions() []Subscription {
	return cloneSubs(t.subs)
}

func (t *Tracker) Classifier() Classifier {
	return t.classifier
}

// Get returns the subscription with the given id
func (t *Tracker) Get(id int64) (Subscription, error) {
	for _, sub := range t.subs {
		if sub.ID == id {
			return sub, nil
		}
	}
	return Subscription{}, fmt.Errorf("id %d: %w", id, ErrNotFound)
}

// nextID issues time-based ids that are strictly increasing, so an id is
// never handed out twice even when several are created within a millisecond.
func (t *Tracker) nextID() int64 {
	id := t.now().UnixMilli()
	if id <= t.lastID {
		id = t.lastID + 1
	}
	t.lastID = id
	return id
}

// Add validates the candidate, assigns an id and appends it
func (t *Tracker) Add(ctx context.Context, in SubscriptionInput) (Subscription, error) {
	sub, err := NewSubscription(in)
	if err != nil {
		return Subscription{}, err
	}
	sub.ID = t.nextID()

	updated := append(cloneSubs(t.subs), sub)
	t.replace(ctx, updated)
	t.log.Info("added subscription", "id", sub.ID, "name", sub.Name)
	return sub, nil
}

// Update applies patch to the subscription with the given id. The id is
// preserved; the patched record must satisfy the same rules as Add.
func (t *Tracker) Update(ctx context.Context, id int64, patch SubscriptionPatch) (Subscription, error) {
	current, err := t.Get(id)
	if err != nil {
		return Subscription{}, err
	}

	in := SubscriptionInput{
		Name:         current.Name,
		Price:        plainAmount(current.Price),
		BillingCycle: current.BillingCycle,
		NextBilling:  current.NextBilling,
	}
	if patch.Name != nil {
		in.Name = *patch.Name
	}
	if patch.Price != nil {
		in.Price = *patch.Price
	}
	if patch.BillingCycle != nil {
		in.BillingCycle = *patch.BillingCycle
	}
	if patch.NextBilling != nil {
		in.NextBilling = *patch.NextBilling
	}

	sub, err := NewSubscription(in)
	if err != nil {
		return Subscription{}, err
	}
	sub.ID = id

	updated := make([]Subscription, len(t.subs))
	for i, s := range t.subs {
		if s.ID == id {
			updated[i] = sub
		} else {
			updated[i] = s
		}
	}
	t.replace(ctx, updated)
	t.log.Info("updated subscription", "id", id)
	return sub, nil
}

// Delete removes the subscription with the given id
func (t *Tracker) Delete(ctx context.Context, id int64) error {
	if _, err := t.Get(id); err != nil {
		return err
	}
	updated := make([]Subscription, 0, len(t.subs))
	for _, s := range t.subs {
		if s.ID != id {
			updated = append(updated, s)
		}
	}
	t.replace(ctx, updated)
	t.log.Info("deleted subscription", "id", id)
	return nil
}

// Import appends the backup's subscriptions with freshly generated ids.
// It returns the records as appended.
func (t *Tracker) Import(ctx context.Context, backup Backup) []Subscription {
	imported := make([]Subscription, len(backup.Subscriptions))
	for i, sub := range backup.Subscriptions {
		sub.ID = t.nextID()
		imported[i] = sub
	}
	updated := append(cloneSubs(t.subs), imported...)
	t.replace(ctx, updated)
	t.log.Info("imported subscriptions", "count", len(imported))
	return cloneSubs(imported)
}

// ReplaceAll swaps the whole list for the records of a backup. Their ids are
// kept; an id that is not positive or repeats an earlier one is reissued.
func (t *Tracker) ReplaceAll(ctx context.Context, backup Backup) []Subscription {
	subs := cloneSubs(backup.Subscriptions)
	for _, sub := range subs {
		t.lastID = max(t.lastID, sub.ID)
	}
	seen := make(map[int64]bool, len(subs))
	for i := range subs {
		if subs[i].ID <= 0 || seen[subs[i].ID] {
			subs[i].ID = t.nextID()
		}
		seen[subs[i].ID] = true
	}
	t.replace(ctx, subs)
	t.log.Info("replaced subscriptions", "count", len(subs))
	return cloneSubs(subs)
}

// replace installs a new list and persists it. A failed save leaves the
// in-memory state updated; the repository has already logged it.
func (t *Tracker) replace(ctx context.Context, subs []Subscription) {
	t.subs = subs
	_ = t.repo.SaveSubscriptions(ctx, subs)
}

func (t *Tracker) Budget() BudgetConfig {
	cfg := t.budget
	cfg.CategoryBudgets = make(map[Category]float64, len(t.budget.CategoryBudgets))
	for k, v := range t.budget.CategoryBudgets {
		cfg.CategoryBudgets[k] = v
	}
	return cfg
}

// SetBudget validates and stores a new budget configuration
func (t *Tracker) SetBudget(ctx context.Context, cfg BudgetConfig) error {
	if err := validateBudgetAmount("monthlyBudget", cfg.MonthlyBudget); err != nil {
		return err
	}
	if err := validateBudgetAmount("yearlyBudget", cfg.YearlyBudget); err != nil {
		return err
	}
	categories := make(map[Category]float64, len(cfg.CategoryBudgets))
	for cat, amount := range cfg.CategoryBudgets {
		if _, err := ParseCategory(string(cat)); err != nil {
			return &ValidationError{Field: "categories", Reason: err.Error()}
		}
		if err := validateBudgetAmount("categories."+string(cat), amount); err != nil {
			return err
		}
		if amount > 0 {
			categories[cat] = amount
		}
	}
	cfg.CategoryBudgets = categories

	t.budget = cfg
	_ = t.repo.SaveBudget(ctx, cfg)
	t.log.Info("updated budget", "monthly", cfg.MonthlyBudget, "yearly", cfg.YearlyBudget, "categories", len(categories))
	return nil
}

func validateBudgetAmount(field string, amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return &ValidationError{Field: field, Reason: "must be zero or a positive number"}
	}
	return nil
}

// Stats computes the dashboard figures for the current list
func (t *Tracker) Stats() Stats {
	return ComputeStats(t.subs)
}

// Categories breaks the monthly total down by category
func (t *Tracker) Categories() []CategoryTotal {
	return ByCategory(t.subs, t.classifier)
}

// BudgetReport evaluates the current list against the stored budget
func (t *Tracker) BudgetReport() BudgetReport {
	return EvaluateAll(t.subs, t.budget, t.classifier)
}

// Filter applies filter and sort to the current list
func (t *Tracker) Filter(filter FilterSpec, order SortSpec) []Subscription {
	return Apply(t.subs, filter, order)
}

// RefreshNotifications regenerates alerts for the current date, merges them
// into the stored state and persists the result if anything was added.
func (t *Tracker) RefreshNotifications(ctx context.Context) []Notification {
	generated := t.windows.Generate(t.subs, t.now(), t.budget.MonthlyBudget, TotalMonthly(t.subs))
	merged := MergeNotifications(t.notifications, generated)
	if len(merged) != len(t.notifications) {
		t.setNotifications(ctx, merged)
	}
	return t.Notifications()
}

// Notifications returns a copy of the notification state
func (t *Tracker) Notifications() []Notification {
	out := make([]Notification, len(t.notifications))
	copy(out, t.notifications)
	return out
}

// MarkRead marks one notification as read
func (t *Tracker) MarkRead(ctx context.Context, id string) error {
	updated, found := MarkRead(t.notifications, id)
	if !found {
		return fmt.Errorf("notification %q not found", id)
	}
	t.setNotifications(ctx, updated)
	return nil
}

func (t *Tracker) MarkAllRead(ctx context.Context) {
	t.setNotifications(ctx, MarkAllRead(t.notifications))
}

// ClearNotifications drops every notification
func (t *Tracker) ClearNotifications(ctx context.Context) {
	t.setNotifications(ctx, []Notification{})
}

func (t *Tracker) setNotifications(ctx context.Context, list []Notification) {
	t.notifications = list
	_ = t.repo.SaveNotifications(ctx, list)
}

func cloneSubs(subs []Subscription) []Subscription {
	out := make([]Subscription, len(subs))
	copy(out, subs)
	return out
}
