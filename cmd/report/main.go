package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/rollhouse/salesdash/internal/dashboard"
	"github.com/rollhouse/salesdash/internal/domain"
	"github.com/rollhouse/salesdash/internal/snapshot"
)

func newDataDirFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "data-dir",
		Usage:   "Directory containing the snapshot JSON files",
		Value:   "./data",
		EnvVars: []string{"SNAPSHOT_DIR"},
	}
}

func main() {
	_ = godotenv.Load()
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	app := &cli.App{
		Name:  "report",
		Usage: "Print sales dashboard views from snapshot files",
		Commands: []*cli.Command{
			{
				Name:  "dashboard",
				Usage: "Print KPIs, category breakdown, weekly trend and top items",
				Flags: []cli.Flag{
					newDataDirFlag(),
					&cli.StringFlag{
						Name:  "department",
						Usage: "Department filter, or 'all'",
						Value: domain.DepartmentAll,
					},
					&cli.StringFlag{
						Name:  "preset",
						Usage: "Date range preset (ytd, 30d, 90d, 12m, prevyear, all)",
					},
					&cli.StringFlag{
						Name:  "start",
						Usage: "Custom range start (YYYY-MM-DD)",
					},
					&cli.StringFlag{
						Name:  "end",
						Usage: "Custom range end (YYYY-MM-DD)",
					},
					&cli.StringSliceFlag{
						Name:  "category",
						Usage: "Category filter, repeatable",
					},
					&cli.StringFlag{
						Name:  "search",
						Usage: "Item name substring filter",
					},
					&cli.IntFlag{
						Name:  "top",
						Usage: "Number of top items to print",
						Value: dashboard.DefaultTopItems,
					},
				},
				Action: runDashboard,
			},
			{
				Name:  "validate",
				Usage: "Load all snapshot files and report any decode errors",
				Flags: []cli.Flag{
					newDataDirFlag(),
				},
				Action: runValidate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func parseFilters(c *cli.Context) (domain.Filters, error) {
	f := domain.Filters{
		Department: c.String("department"),
		Categories: c.StringSlice("category"),
		SearchTerm: c.String("search"),
	}

	if preset := c.String("preset"); preset != "" {
		r, ok := dashboard.Resolve(preset, time.Now())
		if !ok {
			return f, fmt.Errorf("unknown preset: %s", preset)
		}
		f.DateRange = r
		return f, nil
	}

	start, end := c.String("start"), c.String("end")
	if start != "" || end != "" {
		if start == "" || end == "" {
			return f, fmt.Errorf("--start and --end must be provided together")
		}
		r := domain.DateRange{Start: start, End: end}
		if !r.Valid() {
			return f, fmt.Errorf("invalid range: start %s is after end %s", start, end)
		}
		f.DateRange = &r
	}
	return f, nil
}

func loadStore(c *cli.Context) (*snapshot.Store, error) {
	source, err := snapshot.NewDirSource(c.String("data-dir"))
	if err != nil {
		return nil, err
	}
	return snapshot.Load(context.Background(), source), nil
}

func runDashboard(c *cli.Context) error {
	store, err := loadStore(c)
	if err != nil {
		return err
	}
	filters, err := parseFilters(c)
	if err != nil {
		return err
	}

	filtered := dashboard.Apply(store.Records(), filters)
	summary := dashboard.Summarize(filtered)

	fmt.Printf("Records: %d of %d match\n\n", len(filtered), len(store.Records()))
	fmt.Printf("Revenue:       $%s\n", summary.TotalRevenue.StringFixed(2))
	fmt.Printf("Quantity:      %d\n", summary.TotalQuantity)
	fmt.Printf("Transactions:  %d\n", summary.TotalTransactions)
	fmt.Printf("Unique items:  %d\n", summary.UniqueItems)

	fmt.Println("\nBy category:")
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  CATEGORY\tREVENUE\tQTY\tTXNS")
	for _, row := range dashboard.CategoryBreakdown(filtered) {
		fmt.Fprintf(w, "  %s\t$%s\t%d\t%d\n", row.Category, row.Revenue.StringFixed(2), row.Quantity, row.Transactions)
	}
	w.Flush()

	fmt.Println("\nWeekly trend:")
	w = tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  WEEK OF\tREVENUE\tTXNS")
	for _, row := range dashboard.WeeklyTrend(filtered) {
		fmt.Fprintf(w, "  %s\t$%s\t%d\n", row.WeekStart, row.Revenue.StringFixed(2), row.Transactions)
	}
	w.Flush()

	top := dashboard.TopItems(dashboard.ItemRollup(filtered), c.Int("top"))
	fmt.Printf("\nTop %d items:\n", len(top))
	w = tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  ITEM\tCATEGORY\tREVENUE\tQTY")
	for _, row := range top {
		fmt.Fprintf(w, "  %s\t%s\t$%s\t%d\n", row.Name, row.Category, row.Revenue.StringFixed(2), row.Quantity)
	}
	return w.Flush()
}

func runValidate(c *cli.Context) error {
	store, err := loadStore(c)
	if err != nil {
		return err
	}

	fmt.Printf("transactions: %d records\n", len(store.Records()))
	fmt.Printf("specialty:    %d names\n", len(store.Specialty()))
	if summary := store.Summary(); summary != nil {
		fmt.Printf("summary:      %d departments\n", len(summary.Departments))
	}
	if forecast := store.Forecast(); forecast != nil {
		fmt.Printf("forecast:     %d series\n", len(forecast.Forecasts))
	}

	if !store.Healthy() {
		for _, e := range store.LoadErrors() {
			fmt.Fprintln(os.Stderr, "load error:", e)
		}
		return fmt.Errorf("%d snapshot errors", len(store.LoadErrors()))
	}
	fmt.Println("all snapshots loaded cleanly")
	return nil
}
