package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/yungbote/hivemind-backend/internal/data/db"
	"github.com/yungbote/hivemind-backend/internal/platform/envutil"
	"github.com/yungbote/hivemind-backend/internal/platform/logger"
)

func loadEnv(path string) {
	if path == "" {
		return
	}
	_ = godotenv.Load(path)
}

// openDB connects without migrating; callers decide whether to migrate.
func openDB() (*db.Service, *logger.Logger, error) {
	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	svc, err := db.NewService(log, db.ConfigFromEnv())
	if err != nil {
		log.Sync()
		return nil, nil, fmt.Errorf("init database: %w", err)
	}
	return svc, log, nil
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, log, err := openDB()
			if err != nil {
				return err
			}
			defer log.Sync()
			defer svc.Close()
			if err := svc.AutoMigrateAll(); err != nil {
				return fmt.Errorf("automigrate: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Migrated %d tables\n", len(db.AllTables()))
			return nil
		},
	}
}

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Print row counts per table",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, log, err := openDB()
			if err != nil {
				return err
			}
			defer log.Sync()
			defer svc.Close()
			counts, err := countRows(cmd, svc)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderCounts(cmd.OutOrStdout(), counts))
			return nil
		},
	}
}

func newClearCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete users, notes, master notes and quiz data (subjects are kept)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to clear without --yes")
			}
			svc, log, err := openDB()
			if err != nil {
				return err
			}
			defer log.Sync()
			defer svc.Close()
			cleared, err := clearTables(cmd, svc)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(cleared))
			for _, c := range cleared {
				rows = append(rows, []string{c.table, strconv.FormatInt(c.rows, 10)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(cmd.OutOrStdout(), []string{"Table", "Deleted"}, rows, []columnAlignment{alignLeft, alignRight}))
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion")
	return cmd
}

type tableCount struct {
	table string
	rows  int64
}

func countRows(cmd *cobra.Command, svc *db.Service) ([]tableCount, error) {
	gdb := svc.DB().WithContext(cmd.Context())
	out := make([]tableCount, 0, len(db.AllTables()))
	for _, t := range db.AllTables() {
		var n int64
		if err := gdb.Table(t).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("count %s: %w", t, err)
		}
		out = append(out, tableCount{table: t, rows: n})
	}
	return out, nil
}

// clearTables deletes in dependency order inside one transaction.
func clearTables(cmd *cobra.Command, svc *db.Service) ([]tableCount, error) {
	var out []tableCount
	err := svc.DB().WithContext(cmd.Context()).Transaction(func(tx *gorm.DB) error {
		for _, t := range db.ClearableTables() {
			res := tx.Exec("DELETE FROM " + t)
			if res.Error != nil {
				return fmt.Errorf("clear %s: %w", t, res.Error)
			}
			out = append(out, tableCount{table: t, rows: res.RowsAffected})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func renderCounts(w io.Writer, counts []tableCount) string {
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{c.table, strconv.FormatInt(c.rows, 10)})
	}
	return renderTable(w, []string{"Table", "Rows"}, rows, []columnAlignment{alignLeft, alignRight})
}
