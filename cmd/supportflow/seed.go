package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Migrate the store and load the demo dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Seed(ctx); err != nil {
			return err
		}
		fmt.Println("store migrated and seeded")
		return nil
	},
}
