package main

import (
	"context"
	"fmt"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
)

type ListParams struct {
	Config     string `descr:"Path to config file (default ~/.subscription-tracker/config.yaml)" optional:"true"`
	Search     string `descr:"Only show services whose name contains this text" optional:"true"`
	MaxMonthly string `descr:"Only show services costing at most this much per month" optional:"true"`
	Cycle      string `descr:"Billing cycle filter" alts:"all,monthly,yearly" strict:"true" default:"all"`
	Sort       string `descr:"Sort key" alts:"name,price,nextBilling" strict:"true" default:"name"`
	Order      string `descr:"Sort direction" alts:"asc,desc" strict:"true" default:"asc"`
	Output     string `descr:"Output format" alts:"table,json" strict:"true" default:"table"`
}

type AddParams struct {
	Config      string `descr:"Path to config file" optional:"true"`
	Template    string `descr:"Prefill name, price and cycle from a template id" optional:"true"`
	Name        string `descr:"Service name" optional:"true"`
	Price       string `descr:"Price per billing cycle in yen" optional:"true"`
	Cycle       string `descr:"Billing cycle" alts:"monthly,yearly" strict:"true" optional:"true"`
	NextBilling string `descr:"Next billing date (YYYY-MM-DD)" optional:"true"`
}

type EditParams struct {
	ID               int64  `descr:"Subscription id" positional:"true"`
	Config           string `descr:"Path to config file" optional:"true"`
	Name             string `descr:"New service name" optional:"true"`
	Price            string `descr:"New price per billing cycle" optional:"true"`
	Cycle            string `descr:"New billing cycle" alts:"monthly,yearly" strict:"true" optional:"true"`
	NextBilling      string `descr:"New next billing date (YYYY-MM-DD)" optional:"true"`
	ClearNextBilling bool   `descr:"Remove the next billing date" optional:"true"`
}

type DeleteParams struct {
	ID     int64  `descr:"Subscription id" positional:"true"`
	Config string `descr:"Path to config file" optional:"true"`
}

type ConfigParams struct {
	Config string `descr:"Path to config file" optional:"true"`
}

type BudgetSetParams struct {
	Config     string `descr:"Path to config file" optional:"true"`
	Monthly    string `descr:"Monthly budget in yen (0 disables)" optional:"true"`
	Yearly     string `descr:"Yearly budget in yen (0 disables)" optional:"true"`
	Categories string `descr:"Category budgets as category=amount pairs, comma separated" optional:"true"`
}

type NotificationParams struct {
	Config   string `descr:"Path to config file" optional:"true"`
	MarkRead string `descr:"Mark the notification with this id as read" optional:"true"`
	AllRead  bool   `descr:"Mark every notification as read" optional:"true"`
	Clear    bool   `descr:"Remove all notifications" optional:"true"`
}

type ExportParams struct {
	Format string `descr:"Export format" positional:"true" alts:"json,csv,txt,xlsx,backup" strict:"true"`
	Config string `descr:"Path to config file" optional:"true"`
	Out    string `descr:"Output file ('-' for stdout, default subscriptions_<date>.<ext>)" optional:"true"`
}

type ImportParams struct {
	File    string `descr:"Backup file produced by 'export backup'" positional:"true"`
	Config  string `descr:"Path to config file" optional:"true"`
	Replace bool   `descr:"Replace all subscriptions instead of appending" optional:"true"`
}

type ConfigInitParams struct {
	Config string `descr:"Path of the config file to write" optional:"true"`
	Force  bool   `descr:"Overwrite an existing config file" optional:"true"`
}

type TemplateParams struct {
	Config string `descr:"Path to config file" optional:"true"`
	Search string `descr:"Only show templates matching this text" optional:"true"`
	Group  string `descr:"Only show templates in this group" optional:"true"`
}

func main() {
	boa.NewCmdT[boa.NoParams]("subtrack").
		WithShort("Track subscription expenses").
		WithLong("Records recurring subscription services and reports monthly and yearly spend, budget status and upcoming billing dates. All data is stored locally.").
		WithSubCmds(
			listCmd(),
			addCmd(),
			editCmd(),
			deleteCmd(),
			dashboardCmd(),
			budgetCmd(),
			notificationsCmd(),
			exportCmd(),
			importCmd(),
			templatesCmd(),
			configCmd(),
		).
		Run()
}

// run opens the app for one command, runs fn and exits non-zero on failure
func run(configPath string, fn func(ctx context.Context, a *app) error) {
	ctx := context.Background()
	a, err := openApp(ctx, configPath, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	err = fn(ctx, a)
	if cerr := a.Close(); cerr != nil {
		fmt.Fprintf(os.Stderr, "Warning: closing store: %v\n", cerr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func listCmd() boa.CmdIfc {
	return boa.NewCmdT[ListParams]("list").
		WithShort("List subscriptions with optional filtering and sorting").
		WithRunFunc(func(params *ListParams) {
			run(params.Config, func(_ context.Context, a *app) error {
				return a.list(listOptions{
					Search:     params.Search,
					MaxMonthly: params.MaxMonthly,
					Cycle:      params.Cycle,
					Sort:       params.Sort,
					Order:      params.Order,
					Output:     params.Output,
				})
			})
		})
}

func addCmd() boa.CmdIfc {
	return boa.NewCmdT[AddParams]("add").
		WithShort("Add a subscription").
		WithLong("Adds a subscription. Use --template to prefill from the template catalogue; explicit flags override template values.").
		WithRunFunc(func(params *AddParams) {
			run(params.Config, func(ctx context.Context, a *app) error {
				return a.add(ctx, addOptions{
					Template:    params.Template,
					Name:        params.Name,
					Price:       params.Price,
					Cycle:       params.Cycle,
					NextBilling: params.NextBilling,
				})
			})
		})
}

func editCmd() boa.CmdIfc {
	return boa.NewCmdT[EditParams]("edit").
		WithShort("Change fields of a subscription").
		WithRunFunc(func(params *EditParams) {
			run(params.Config, func(ctx context.Context, a *app) error {
				return a.edit(ctx, params.ID, editOptions{
					Name:             params.Name,
					Price:            params.Price,
					Cycle:            params.Cycle,
					NextBilling:      params.NextBilling,
					ClearNextBilling: params.ClearNextBilling,
				})
			})
		})
}

func deleteCmd() boa.CmdIfc {
	return boa.NewCmdT[DeleteParams]("delete").
		WithShort("Delete a subscription").
		WithRunFunc(func(params *DeleteParams) {
			run(params.Config, func(ctx context.Context, a *app) error {
				return a.remove(ctx, params.ID)
			})
		})
}

func dashboardCmd() boa.CmdIfc {
	return boa.NewCmdT[ConfigParams]("dashboard").
		WithShort("Show totals and the per-category breakdown").
		WithRunFunc(func(params *ConfigParams) {
			run(params.Config, func(ctx context.Context, a *app) error {
				return a.dashboard(ctx)
			})
		})
}

func budgetCmd() boa.CmdIfc {
	show := boa.NewCmdT[ConfigParams]("show").
		WithShort("Show budget usage").
		WithRunFunc(func(params *ConfigParams) {
			run(params.Config, func(_ context.Context, a *app) error {
				return a.budgetShow()
			})
		})

	set := boa.NewCmdT[BudgetSetParams]("set").
		WithShort("Set monthly, yearly or category budgets").
		WithRunFunc(func(params *BudgetSetParams) {
			run(params.Config, func(ctx context.Context, a *app) error {
				return a.budgetSet(ctx, budgetOptions{
					Monthly:    params.Monthly,
					Yearly:     params.Yearly,
					Categories: params.Categories,
				})
			})
		})

	return boa.NewCmdT[boa.NoParams]("budget").
		WithShort("Show or change budgets").
		WithSubCmds(show, set)
}

func notificationsCmd() boa.CmdIfc {
	return boa.NewCmdT[NotificationParams]("notifications").
		WithShort("Show billing and budget notifications").
		WithRunFunc(func(params *NotificationParams) {
			run(params.Config, func(ctx context.Context, a *app) error {
				return a.notifications(ctx, notificationOptions{
					MarkRead: params.MarkRead,
					AllRead:  params.AllRead,
					Clear:    params.Clear,
				})
			})
		})
}

func exportCmd() boa.CmdIfc {
	return boa.NewCmdT[ExportParams]("export").
		WithShort("Export subscriptions as json, csv, txt, xlsx or a backup").
		WithRunFunc(func(params *ExportParams) {
			run(params.Config, func(_ context.Context, a *app) error {
				return a.export(params.Format, params.Out)
			})
		})
}

func importCmd() boa.CmdIfc {
	return boa.NewCmdT[ImportParams]("import").
		WithShort("Append the subscriptions of a backup file").
		WithLong("Appends the subscriptions of a backup file, giving them fresh ids. With --replace the current list is swapped for the backup instead. " +
			"Every record needs a non-empty name, a positive price and a monthly or yearly cycle; nextBilling, when present, must be a YYYY-MM-DD date. " +
			"If any record is invalid nothing is imported.").
		WithRunFunc(func(params *ImportParams) {
			run(params.Config, func(ctx context.Context, a *app) error {
				return a.importBackup(ctx, params.File, params.Replace)
			})
		})
}

func configCmd() boa.CmdIfc {
	initCmd := boa.NewCmdT[ConfigInitParams]("init").
		WithShort("Write a config file with the default settings").
		WithRunFunc(func(params *ConfigInitParams) {
			if err := initConfig(params.Config, params.Force, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		})

	return boa.NewCmdT[boa.NoParams]("config").
		WithShort("Manage the config file").
		WithSubCmds(initCmd)
}

func templatesCmd() boa.CmdIfc {
	return boa.NewCmdT[TemplateParams]("templates").
		WithShort("List the built-in service templates").
		WithRunFunc(func(params *TemplateParams) {
			run(params.Config, func(_ context.Context, a *app) error {
				a.templates(params.Search, params.Group)
				return nil
			})
		})
}
