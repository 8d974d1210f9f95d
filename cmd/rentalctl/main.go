package main

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Dan9191/rental-service/internal/config"
	"github.com/Dan9191/rental-service/internal/export"
	"github.com/Dan9191/rental-service/internal/middleware"
	"github.com/Dan9191/rental-service/internal/models"
	"github.com/Dan9191/rental-service/internal/repository"
	"github.com/Dan9191/rental-service/internal/service"
	"github.com/Dan9191/rental-service/internal/utils/email"
	"github.com/Dan9191/rental-service/migrations"
)

const dateLayout = "2006-01-02"

type app struct {
	cfg *config.Config
	log *logrus.Logger
	db  *sql.DB
	svc *service.Service
}

// open loads configuration and connects to the database
func open() (*app, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stderr)

	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	var notifier service.Notifier
	if cfg.EmailEnabled() {
		notifier = email.NewSender(cfg, log)
	}
	svc := service.NewService(repository.NewRepository(db), log, cfg, nil, notifier)
	return &app{cfg: cfg, log: log, db: db, svc: svc}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "rentalctl",
		Short:         "Rental back office maintenance tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		migrateCmd(),
		alertsCmd(),
		arrearsCmd(),
		statementCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open()
			if err != nil {
				return err
			}
			defer a.Close()

			scripts, err := migrations.Scripts()
			if err != nil {
				return fmt.Errorf("failed to read migrations: %w", err)
			}
			for _, s := range scripts {
				if _, err := a.db.ExecContext(cmd.Context(), s.SQL); err != nil {
					return fmt.Errorf("migration %s failed: %w", s.Name, err)
				}
				fmt.Printf("Applied %s\n", s.Name)
			}
			return nil
		},
	}
}

func alertsCmd() *cobra.Command {
	alerts := &cobra.Command{
		Use:   "alerts",
		Short: "Alert generation and delivery",
	}

	alerts.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Evaluate the alert rules once and email pending alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open()
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.svc.RunAlerts(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Leases: %d  Inserted: %d  Failed: %d\n", res.Leases, res.Inserted, res.Failed)
			return nil
		},
	}, &cobra.Command{
		Use:   "email",
		Short: "Email alerts that have not been sent yet",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open()
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.svc.DispatchAlertEmails(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Emailed %d alerts\n", n)
			return nil
		},
	})
	return alerts
}

func arrearsCmd() *cobra.Command {
	var asOf, out string
	cmd := &cobra.Command{
		Use:   "arrears",
		Short: "Print or export the arrears report",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open()
			if err != nil {
				return err
			}
			defer a.Close()

			var date time.Time
			if asOf != "" {
				if date, err = time.ParseInLocation(dateLayout, asOf, a.cfg.Location); err != nil {
					return fmt.Errorf("--as-of must be YYYY-MM-DD: %w", err)
				}
			}
			report, err := a.svc.Arrears(cmd.Context(), date)
			if err != nil {
				return err
			}

			if out != "" {
				return writeFile(out, func(f *os.File) error { return export.ArrearsXLSX(f, report) })
			}
			fmt.Printf("%-10s  %-40s  %-30s  %12s  %s\n", "Period", "Property", "Tenant", "Amount", "Paid")
			for _, r := range report.Rows {
				fmt.Printf("%-10s  %-40s  %-30s  %12s  %t\n", r.Period, r.PropertyAddress, r.TenantName, r.AmountDue.StringFixed(2), r.Paid)
			}
			fmt.Printf("On track: %d  Owing: %d\n", report.OnTrack, report.Owing)
			return nil
		},
	}
	cmd.Flags().StringVar(&asOf, "as-of", "", "report date (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write an XLSX file instead of printing")
	return cmd
}

func statementCmd() *cobra.Command {
	var ownerID, from, to, out string
	cmd := &cobra.Command{
		Use:   "statement",
		Short: "Export an owner statement",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(ownerID)
			if err != nil {
				return fmt.Errorf("--owner must be a UUID: %w", err)
			}

			a, err := open()
			if err != nil {
				return err
			}
			defer a.Close()

			fromDate, err := time.ParseInLocation(dateLayout, from, a.cfg.Location)
			if err != nil {
				return fmt.Errorf("--from must be YYYY-MM-DD: %w", err)
			}
			toDate, err := time.ParseInLocation(dateLayout, to, a.cfg.Location)
			if err != nil {
				return fmt.Errorf("--to must be YYYY-MM-DD: %w", err)
			}

			st, err := a.svc.Statement(cmd.Context(), middleware.Principal{Role: models.RoleAdmin}, id, fromDate, toDate)
			if err != nil {
				return err
			}
			if out == "" {
				out = export.FileName("statement", time.Now())
			}
			if err := writeFile(out, func(f *os.File) error { return export.StatementXLSX(f, st) }); err != nil {
				return err
			}
			fmt.Printf("%s: collected %s, commission %s, net %s -> %s\n", st.OwnerName,
				st.TotalCollected.StringFixed(2), st.Commission.StringFixed(2), st.Net.StringFixed(2), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&ownerID, "owner", "", "owner id")
	cmd.Flags().StringVar(&from, "from", "", "first payment date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "last payment date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file")
	cmd.MarkFlagRequired("owner")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	return cmd
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
