package commands

import (
	"context"
	"fmt"
	"os"

	"birdwatch-backend/lib/configutil"
	"birdwatch-backend/lib/telemetry"
	"birdwatch-backend/services/alerts"

	"dario.cat/mergo"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var verbose *bool

var rootCmd = &cobra.Command{
	Use:   "birdwatch",
	Short: "birdwatch scrapes an eBird alert page into a JSON feed.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
	},
}

func init() {
	verbose = rootCmd.PersistentFlags().BoolP(
		"verbose", "v", false,
		"Enable debug logging and http request/response dumps.",
	)
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig layers config.json5 (plus its .local override) on top of
// the built-in defaults; a missing file just means all defaults.
func loadConfig() (alerts.Config, error) {
	cfg, err := configutil.ReadConfig[alerts.Config]("config.json5")
	if err != nil {
		if os.IsNotExist(err) {
			return alerts.DefaultConfig(), nil
		}
		return alerts.Config{}, err
	}
	err = mergo.Merge(&cfg, alerts.DefaultConfig())
	if err != nil {
		return alerts.Config{}, err
	}
	return cfg, nil
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}
