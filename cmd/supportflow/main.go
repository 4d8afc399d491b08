package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	contractx "github.com/pattarab/supportflow/agent/contract"
	configx "github.com/pattarab/supportflow/pkg/config"
	logx "github.com/pattarab/supportflow/pkg/logger"
	postgresstore "github.com/pattarab/supportflow/store/postgres"
	sqlitestore "github.com/pattarab/supportflow/store/sqlite"
)

type AppConfig struct {
	StoreDriver string `envconfig:"STORE_DRIVER" default:"sqlite"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"support.db"`
	PostgresDSN string `envconfig:"POSTGRES_DSN"`
}

// dataStore is what the CLI needs from either store implementation.
type dataStore interface {
	contractx.DataStore
	Seed(ctx context.Context) error
	Close() error
}

var rootCmd = &cobra.Command{
	Use:   "supportflow",
	Short: "supportflow routes customer-service queries across specialist agents",
	Long: `supportflow classifies free-text customer-service requests into
coordination intents and runs the matching multi-step pattern across the
customer-data and support specialists.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logCfg := configx.MustNew[logx.Config]("LOG")
		logx.Init(*logCfg)
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(seedCmd)
}

func openStore(ctx context.Context) (dataStore, error) {
	cfg := configx.MustNew[AppConfig]("SUPPORTFLOW")
	switch cfg.StoreDriver {
	case "sqlite":
		return sqlitestore.New(cfg.SQLitePath)
	case "postgres":
		return postgresstore.New(ctx, cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
