package commands

import (
	"fmt"
	"time"

	configsqlite "birdwatch-backend/lib/configutil/sqlite"
	"birdwatch-backend/lib/serviceutil"
	"birdwatch-backend/services/alerts"
	"birdwatch-backend/services/alerts/db"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Lists past scrape runs recorded in the history database.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		if cfg.HistoryDb == "" {
			serviceutil.Fatal(
				"no history db configured",
				fmt.Errorf("set history_db in config.json5"),
			)
		}

		database, err := configsqlite.Struct{File: cfg.HistoryDb}.OpenDB(db.Schema)
		if err != nil {
			serviceutil.Fatal("failed to open history db", err)
		}
		defer database.Close()

		store := alerts.NewStore(database)
		runs, err := store.History(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to list runs", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Scraped at", "Status", "Sightings", "Message"})
		for _, run := range runs {
			t.AppendRow(table.Row{
				time.Unix(run.ScrapedAt, 0).UTC().Format(time.RFC3339),
				run.Status,
				run.TotalSightings,
				run.ErrorMessage,
			})
		}
		t.Render()
	},
}
