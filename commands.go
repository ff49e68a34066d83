package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gigurra/subscription-tracker/internal"
)

// app bundles the state one command invocation works on
type app struct {
	cfg     *internal.Config
	store   internal.Store
	tracker *internal.Tracker
	cur     internal.Currency
	out     io.Writer
	now     func() time.Time
	log     *slog.Logger
}

// openApp loads the config at path (the default location when empty), opens
// the configured store and loads the tracker state from it
func openApp(ctx context.Context, configPath string, out, errOut io.Writer) (*app, error) {
	if configPath == "" {
		configPath = internal.DefaultConfigPath()
	}
	cfg, err := internal.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	level, _ := internal.ParseLogLevel(cfg.LogLevel)
	logger := internal.NewLogger(errOut, level)

	store, err := internal.OpenStore(cfg.Storage, cfg.DataDir)
	if err != nil {
		return nil, err
	}
	logger.Debug("opened store", "storage", cfg.Storage, "dir", cfg.DataDir)

	return newApp(ctx, cfg, store, out, time.Now, logger), nil
}

func newApp(ctx context.Context, cfg *internal.Config, store internal.Store, out io.Writer, now func() time.Time, logger *slog.Logger) *app {
	repo := internal.NewRepository(store, logger)
	tracker := internal.NewTracker(ctx, repo, internal.TrackerOptions{
		Classifier: cfg.Classifier(),
		Windows:    cfg.Windows(),
		Now:        now,
		Logger:     logger,
	})
	return &app{
		cfg:     cfg,
		store:   store,
		tracker: tracker,
		cur:     internal.GetCurrency(cfg.Currency),
		out:     out,
		now:     now,
		log:     logger,
	}
}

func (a *app) Close() error {
	return a.store.Close()
}

type listOptions struct {
	Search     string
	MaxMonthly string
	Cycle      string
	Sort       string
	Order      string
	Output     string
}

func (a *app) list(o listOptions) error {
	filter := internal.FilterSpec{NameSubstring: o.Search}
	if o.MaxMonthly != "" {
		limit, err := internal.ParseAmount("max-monthly", o.MaxMonthly)
		if err != nil {
			return err
		}
		filter.MaxMonthlyPrice = &limit
	}
	cycle, err := internal.ParseCycleFilter(o.Cycle)
	if err != nil {
		return err
	}
	filter.Cycle = cycle

	key, err := internal.ParseSortKey(o.Sort)
	if err != nil {
		return err
	}
	dir, err := internal.ParseDirection(o.Order)
	if err != nil {
		return err
	}

	subs := a.tracker.Filter(filter, internal.SortSpec{Key: key, Direction: dir})
	switch o.Output {
	case "json":
		return internal.PrintSubscriptionsJSON(a.out, subs, a.tracker.Classifier(), a.cur)
	case "", "table":
		if len(subs) == 0 {
			fmt.Fprintln(a.out, "No subscriptions match.")
			return nil
		}
		internal.PrintSubscriptionsTable(a.out, subs, len(a.tracker.Subscriptions()), a.tracker.Classifier(), a.cur)
		return nil
	}
	return fmt.Errorf("unknown output format: %s (available: table, json)", o.Output)
}

type addOptions struct {
	Template    string
	Name        string
	Price       string
	Cycle       string
	NextBilling string
}

func (a *app) add(ctx context.Context, o addOptions) error {
	var in internal.SubscriptionInput
	if o.Template != "" {
		tmpl, ok := internal.FindTemplate(o.Template)
		if !ok {
			return fmt.Errorf("unknown template: %s (see 'subtrack templates')", o.Template)
		}
		in = tmpl.Input()
	}
	if o.Name != "" {
		in.Name = o.Name
	}
	if o.Price != "" {
		in.Price = o.Price
	}
	if o.Cycle != "" {
		in.BillingCycle = internal.BillingCycle(o.Cycle)
	}
	if in.BillingCycle == "" {
		in.BillingCycle = internal.CycleMonthly
	}
	in.NextBilling = o.NextBilling

	sub, err := a.tracker.Add(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s (id %d, %s / month)\n", sub.Name, sub.ID, a.cur.Format(sub.MonthlyEquivalent()))
	return nil
}

type editOptions struct {
	Name             string
	Price            string
	Cycle            string
	NextBilling      string
	ClearNextBilling bool
}

func (a *app) edit(ctx context.Context, id int64, o editOptions) error {
	var patch internal.SubscriptionPatch
	if o.Name != "" {
		patch.Name = &o.Name
	}
	if o.Price != "" {
		patch.Price = &o.Price
	}
	if o.Cycle != "" {
		cycle := internal.BillingCycle(o.Cycle)
		patch.BillingCycle = &cycle
	}
	switch {
	case o.ClearNextBilling && o.NextBilling != "":
		return errors.New("--next-billing and --clear-next-billing are mutually exclusive")
	case o.ClearNextBilling:
		empty := ""
		patch.NextBilling = &empty
	case o.NextBilling != "":
		patch.NextBilling = &o.NextBilling
	}

	sub, err := a.tracker.Update(ctx, id, patch)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated %s (id %d)\n", sub.Name, sub.ID)
	return nil
}

func (a *app) remove(ctx context.Context, id int64) error {
	sub, err := a.tracker.Get(id)
	if err != nil {
		return err
	}
	if err := a.tracker.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %s (id %d)\n", sub.Name, id)
	return nil
}

func (a *app) dashboard(ctx context.Context) error {
	notifications := a.tracker.RefreshNotifications(ctx)
	internal.PrintDashboard(a.out, a.tracker.Stats(), a.tracker.Categories(), a.cur)
	if unread := internal.UnreadCount(notifications); unread > 0 {
		fmt.Fprintf(a.out, "\n%d unread notifications (see 'subtrack notifications')\n", unread)
	}
	return nil
}

func (a *app) budgetShow() error {
	internal.PrintBudgetReport(a.out, a.tracker.BudgetReport(), a.cur)
	return nil
}

type budgetOptions struct {
	Monthly    string
	Yearly     string
	Categories string
}

// budgetSet replaces only the amounts that were given. Categories are given
// as a comma separated list of category=amount pairs; 0 removes one.
func (a *app) budgetSet(ctx context.Context, o budgetOptions) error {
	cfg := a.tracker.Budget()
	if o.Monthly != "" {
		v, err := internal.ParseAmount("monthly", o.Monthly)
		if err != nil {
			return err
		}
		cfg.MonthlyBudget = v
	}
	if o.Yearly != "" {
		v, err := internal.ParseAmount("yearly", o.Yearly)
		if err != nil {
			return err
		}
		cfg.YearlyBudget = v
	}
	if o.Categories != "" {
		for _, pair := range strings.Split(o.Categories, ",") {
			name, amount, ok := strings.Cut(strings.TrimSpace(pair), "=")
			if !ok {
				return &internal.ValidationError{Field: "categories", Reason: fmt.Sprintf("expected category=amount, got %q", pair)}
			}
			cat, err := internal.ParseCategory(strings.TrimSpace(name))
			if err != nil {
				return &internal.ValidationError{Field: "categories", Reason: err.Error()}
			}
			v, err := internal.ParseAmount("categories."+string(cat), amount)
			if err != nil {
				return err
			}
			cfg.CategoryBudgets[cat] = v
		}
	}

	if err := a.tracker.SetBudget(ctx, cfg); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Budget saved.")
	return a.budgetShow()
}

type notificationOptions struct {
	MarkRead string
	AllRead  bool
	Clear    bool
}

func (a *app) notifications(ctx context.Context, o notificationOptions) error {
	a.tracker.RefreshNotifications(ctx)
	switch {
	case o.Clear:
		a.tracker.ClearNotifications(ctx)
	case o.AllRead:
		a.tracker.MarkAllRead(ctx)
	case o.MarkRead != "":
		if err := a.tracker.MarkRead(ctx, o.MarkRead); err != nil {
			return err
		}
	}
	internal.PrintNotifications(a.out, a.tracker.Notifications())
	return nil
}

// export renders the list in the given format to path. An empty path picks
// the default file name in the working directory, "-" writes to the output.
func (a *app) export(format, path string) error {
	f, err := internal.ParseExportFormat(format)
	if err != nil {
		return err
	}
	subs := a.tracker.Subscriptions()
	now := a.now()

	var buf bytes.Buffer
	switch f {
	case internal.ExportFormatJSON:
		data, err := internal.ExportJSON(subs)
		if err != nil {
			return err
		}
		buf.Write(data)
	case internal.ExportFormatBackup:
		data, err := internal.ExportBackup(subs, now)
		if err != nil {
			return err
		}
		buf.Write(data)
	case internal.ExportFormatCSV:
		buf.WriteString(internal.ExportCSV(subs))
	case internal.ExportFormatSummary:
		buf.WriteString(internal.ExportSummary(subs, now))
	case internal.ExportFormatXLSX:
		if err := internal.ExportXLSX(&buf, subs); err != nil {
			return err
		}
	}

	if path == "-" {
		_, err := a.out.Write(buf.Bytes())
		return err
	}
	if path == "" {
		path = f.DefaultFileName(now)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}
	fmt.Fprintf(a.out, "Exported %d subscriptions to %s\n", len(subs), path)
	return nil
}

// importBackup appends the subscriptions of a backup file, or swaps the
// whole list for them when replace is set; existing records are left
// untouched when the file is rejected
func (a *app) importBackup(ctx context.Context, path string, replace bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading import file: %w", err)
	}
	backup, err := internal.ParseBackup(data)
	if err != nil {
		return err
	}
	if replace {
		replaced := a.tracker.ReplaceAll(ctx, backup)
		fmt.Fprintf(a.out, "Replaced subscriptions with %d from backup\n", len(replaced))
		return nil
	}
	imported := a.tracker.Import(ctx, backup)
	fmt.Fprintf(a.out, "Imported %d subscriptions\n", len(imported))
	return nil
}

func (a *app) templates(search, group string) {
	var matches []internal.Template
	for _, t := range internal.SearchTemplates(search) {
		if group == "" || strings.EqualFold(t.Group, group) {
			matches = append(matches, t)
		}
	}
	internal.PrintTemplates(a.out, matches, a.cur)
}

// initConfig writes a config file holding the defaults to path (the default
// location when empty). An existing file is only replaced when force is set.
func initConfig(path string, force bool, out io.Writer) error {
	if path == "" {
		path = internal.DefaultConfigPath()
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
	}
	if err := internal.NewDefaultConfig().Save(path); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote config to %s\n", path)
	return nil
}
