package commands

import (
	"fmt"
	"log/slog"

	configsqlite "birdwatch-backend/lib/configutil/sqlite"
	"birdwatch-backend/lib/restyutil"
	"birdwatch-backend/lib/scrapers/ebird"
	"birdwatch-backend/lib/serviceutil"
	"birdwatch-backend/lib/telemetry"
	"birdwatch-backend/services/alerts"
	"birdwatch-backend/services/alerts/db"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Fetches the configured alert page and writes the sighting feed.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		tel, err := telemetry.SetupFromEnv(ctx, "birdwatch")
		if err != nil {
			serviceutil.Fatal("failed to setup telemetry", err)
		}
		defer tel.Shutdown(ctx)
		telemetry.InstrumentPerfStats(ctx)

		cfg, err := loadConfig()
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}

		// no secrets means no run at all, not an error envelope
		creds, err := alerts.CredentialsFromEnv()
		if err != nil {
			serviceutil.Fatal("missing credentials", err)
		}

		client, err := ebird.NewClient(ebird.ClientOptions{})
		if err != nil {
			serviceutil.Fatal("failed to initialize ebird client", err)
		}
		if *verbose {
			client.SetRestyInstrumentOutput(
				restyutil.NewFilesystemOutput(".dev/resty/birdwatch"),
			)
		}

		opts := alerts.ServiceOptions{}
		if cfg.HistoryDb != "" {
			database, err := configsqlite.Struct{File: cfg.HistoryDb}.OpenDB(db.Schema)
			if err != nil {
				serviceutil.Fatal("failed to open history db", err)
			}
			defer database.Close()
			store := alerts.NewStore(database)
			opts.Store = &store
		}

		service := alerts.NewService(client, cfg, opts)
		result, err := service.Run(ctx, creds)
		if err != nil {
			slog.Error("scrape failed", "err", err)
			// the error envelope was already written, nothing else to do
			return
		}

		printSightings(result)
	},
}

func printSightings(result alerts.Result) {
	if len(result.Sightings) == 0 {
		fmt.Println("No sightings found.")
		return
	}

	t := newTable()
	t.AppendHeader(table.Row{"Species", "Location", "Date", "Observer", "Count"})
	for _, s := range result.Sightings {
		t.AppendRow(table.Row{
			s.SpeciesCommonName,
			s.Location,
			s.Date,
			s.Observer,
			s.Count,
		})
	}
	t.Render()
}
