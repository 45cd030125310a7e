/*
main.go - Application entry point

PURPOSE:
  Single binary with two faces: "serve" runs the HTTP API, "report"
  computes month/quarter summaries straight from the store and prints
  them. Config comes from worktime.yaml plus environment overrides
  (a .env file is honored when present).

EXAMPLES:
  # Run the API with a file database
  worktime serve --db ./data/worktime.db

  # One user's June 2024 summary
  worktime report month --user u-1 --ref 2024-06

  # Quarterly roll-up
  worktime report quarter --user u-1 --year 2024 --q 2
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ponto/worktime-engine/api"
	"github.com/ponto/worktime-engine/calendar"
	"github.com/ponto/worktime-engine/config"
	"github.com/ponto/worktime-engine/store/sqlite"
	"github.com/ponto/worktime-engine/worktime"
)

var (
	cfgPath string
	dev     bool
)

func main() {
	// A .env file is optional; ignore its absence.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "worktime",
		Short: "Working-time tracking engine",
		Long:  "Records work shifts and non-accounting days and computes expected-vs-worked hour balances per month and quarter.",
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file path (default worktime.yaml)")
	root.PersistentFlags().BoolVar(&dev, "dev", false, "human-readable console logging")

	root.AddCommand(serveCmd())
	root.AddCommand(reportCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// app bundles the dependencies both commands need.
type app struct {
	cfg    *config.Config
	store  *sqlite.Store
	calc   *worktime.Calculator
	cal    *calendar.Calendar
	logger *zap.Logger
}

func initApp(dbOverride string) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if dbOverride != "" {
		cfg.Database.Path = dbOverride
	}

	logger, err := newLogger()
	if err != nil {
		return nil, err
	}

	rules, err := cfg.EngineRules()
	if err != nil {
		return nil, err
	}
	calc, err := worktime.NewCalculator(rules)
	if err != nil {
		return nil, err
	}

	cal, err := cfg.HolidayCalendar()
	if err != nil {
		return nil, err
	}

	st, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &app{cfg: cfg, store: st, calc: calc, cal: cal, logger: logger}, nil
}

func (a *app) close() {
	a.store.Close()
	a.logger.Sync()
}

// =============================================================================
// SERVE
// =============================================================================

func serveCmd() *cobra.Command {
	var port int
	var dbPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := initApp(dbPath)
			if err != nil {
				return err
			}
			defer a.close()

			if port == 0 {
				port = a.cfg.Server.Port
			}

			handler := api.NewHandler(a.store, a.calc, a.cal, a.cfg.Holidays.IncludeInStats, a.logger)
			server := &http.Server{
				Addr:         fmt.Sprintf(":%d", port),
				Handler:      api.NewRouter(handler),
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 15 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			go func() {
				a.logger.Info("server starting", zap.Int("port", port), zap.String("db", a.cfg.Database.Path))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					a.logger.Fatal("server failed", zap.Error(err))
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			a.logger.Info("shutting down server")
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("forced shutdown: %w", err)
			}
			a.logger.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "HTTP server port (overrides config)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (overrides config)")
	return cmd
}

// =============================================================================
// REPORT
// =============================================================================

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print working-time summaries from the store",
	}
	cmd.AddCommand(reportMonthCmd())
	cmd.AddCommand(reportQuarterCmd())
	return cmd
}

func reportMonthCmd() *cobra.Command {
	var userID, ref, dbPath string

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Monthly expected/worked/balance summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := initApp(dbPath)
			if err != nil {
				return err
			}
			defer a.close()

			refDate, err := time.ParseInLocation("2006-01", ref, time.UTC)
			if err != nil {
				return fmt.Errorf("invalid --ref, expected YYYY-MM: %w", err)
			}

			month := worktime.MonthOf(refDate)
			shifts, leaves, err := loadRecords(cmd.Context(), a, userID, month)
			if err != nil {
				return err
			}

			stats := a.calc.MonthlyStats(refDate, shifts, leaves)
			fmt.Printf("Month           %04d-%02d\n", stats.Year, int(stats.Month))
			printDays(stats.Days)
			printMinutes(stats.Minutes)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id")
	cmd.Flags().StringVar(&ref, "ref", "", "reference month (YYYY-MM)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (overrides config)")
	cobra.CheckErr(cmd.MarkFlagRequired("user"))
	cobra.CheckErr(cmd.MarkFlagRequired("ref"))
	return cmd
}

func reportQuarterCmd() *cobra.Command {
	var userID, dbPath string
	var year, quarter int

	cmd := &cobra.Command{
		Use:   "quarter",
		Short: "Quarterly expected/worked/balance summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := initApp(dbPath)
			if err != nil {
				return err
			}
			defer a.close()

			period, err := worktime.QuarterPeriod(year, quarter)
			if err != nil {
				return err
			}

			shifts, leaves, err := loadRecords(cmd.Context(), a, userID, period)
			if err != nil {
				return err
			}

			stats, err := a.calc.PeriodStats(period, shifts, leaves)
			if err != nil {
				return err
			}

			fmt.Printf("Quarter         %d Q%d  %s\n", year, quarter, period)
			printDays(stats.Days)
			printMinutes(stats.Minutes)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id")
	cmd.Flags().IntVar(&year, "year", 0, "year")
	cmd.Flags().IntVar(&quarter, "q", 0, "quarter (1-4)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (overrides config)")
	cobra.CheckErr(cmd.MarkFlagRequired("user"))
	cobra.CheckErr(cmd.MarkFlagRequired("year"))
	cobra.CheckErr(cmd.MarkFlagRequired("q"))
	return cmd
}

func loadRecords(ctx context.Context, a *app, userID string, p worktime.Period) ([]worktime.Shift, []worktime.NonAccountingDay, error) {
	shifts, err := a.store.ListShifts(ctx, userID, p)
	if err != nil {
		return nil, nil, err
	}
	leaves, err := a.store.ListNonAccountingDays(ctx, userID, p)
	if err != nil {
		return nil, nil, err
	}
	if a.cfg.Holidays.IncludeInStats {
		leaves = append(leaves, a.cal.NonAccountingDays(userID, p)...)
	}
	return shifts, leaves, nil
}

func printDays(d worktime.DayCount) {
	fmt.Printf("Days            total=%d working=%d non-accounting=%d effective=%d\n",
		d.Total, d.Working, d.NonAccounting, d.Effective)
}

func printMinutes(m worktime.MinuteTotals) {
	fmt.Printf("Expected        %s\n", formatMinutes(m.Expected))
	fmt.Printf("Worked          %s\n", formatMinutes(m.Worked))
	fmt.Printf("Balance         %+dmin (%s)\n", m.Balance, formatMinutes(abs(m.Balance)))
}

func formatMinutes(min int) string {
	return fmt.Sprintf("%dh %02dmin", min/60, min%60)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
