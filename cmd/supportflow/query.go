package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	dataagentx "github.com/pattarab/supportflow/agent/agents/dataagent"
	routerx "github.com/pattarab/supportflow/agent/agents/router"
	supportagentx "github.com/pattarab/supportflow/agent/agents/supportagent"
	contractx "github.com/pattarab/supportflow/agent/contract"
	tracex "github.com/pattarab/supportflow/agent/trace"
)

var (
	queryCustomerID int64
	queryShowTrace  bool
)

var queryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Process a single customer-service query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		router, err := newRouter(store)
		if err != nil {
			return err
		}

		text := strings.Join(args, " ")
		res := router.ProcessQuery(ctx, text, contractx.QueryContext{CustomerID: queryCustomerID})
		printResult(res)

		if queryShowTrace {
			printTrace(router.Trace())
		}
		return nil
	},
}

func init() {
	queryCmd.Flags().Int64Var(&queryCustomerID, "customer-id", 0, "customer id context for the query")
	queryCmd.Flags().BoolVar(&queryShowTrace, "trace", false, "print the coordination trace")
}

func newRouter(store dataStore) (*routerx.Router, error) {
	tr := tracex.New()

	data, err := dataagentx.New(store, tr)
	if err != nil {
		return nil, err
	}
	support, err := supportagentx.New(store, tr)
	if err != nil {
		return nil, err
	}
	return routerx.New(data, support, tr)
}

func printResult(res contractx.Result) {
	if !res.Success {
		fmt.Printf("Error: %s\n", res.Error)
		return
	}
	if response, ok := res.Payload["response"].(string); ok {
		fmt.Println(response)
		return
	}
	encoded, err := json.MarshalIndent(res.Payload, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", res.Payload)
		return
	}
	fmt.Println(string(encoded))
}

func printTrace(tr *tracex.Trace) {
	fmt.Println("--- trace ---")
	for _, e := range tr.Entries() {
		fmt.Printf("[%s] [%s] %s: %s\n",
			e.Timestamp.Format("15:04:05.000"), e.Component, e.Level, e.Message)
	}
}
