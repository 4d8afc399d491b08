package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	contractx "github.com/pattarab/supportflow/agent/contract"
)

type demoScenario struct {
	title string
	query string
	qctx  contractx.QueryContext
}

var demoScenarios = []demoScenario{
	{
		title: "Simple Data Query (Task Allocation)",
		query: "Get customer information for ID 5",
	},
	{
		title: "Coordinated Support Query (Negotiation)",
		query: "I'm customer 1 and need help upgrading my account",
		qctx:  contractx.QueryContext{CustomerID: 1},
	},
	{
		title: "Complex Analysis Query (Multi-Step Coordination)",
		query: "Show me all active customers who have open tickets",
	},
	{
		title: "Escalation Query (High Priority)",
		query: "I've been charged twice, please refund immediately!",
		qctx:  contractx.QueryContext{CustomerID: 2},
	},
	{
		title: "Multi-Intent Query",
		query: "Update my email to newemail@test.com and show my ticket history",
		qctx:  contractx.QueryContext{CustomerID: 4},
	},
}

var demoShowTrace bool

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the reference coordination scenarios end to end",
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

		router, err := newRouter(store)
		if err != nil {
			return err
		}

		for i, sc := range demoScenarios {
			fmt.Println(strings.Repeat("=", 72))
			fmt.Printf("SCENARIO %d: %s\n", i+1, sc.title)
			fmt.Printf("Query: %q\n", sc.query)
			fmt.Println(strings.Repeat("=", 72))

			res := router.ProcessQuery(ctx, sc.query, sc.qctx)
			printResult(res)
			fmt.Println()
		}

		if demoShowTrace {
			printTrace(router.Trace())
		}
		return nil
	},
}

func init() {
	demoCmd.Flags().BoolVar(&demoShowTrace, "trace", false, "print the coordination trace")
}
