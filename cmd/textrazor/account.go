package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Show the API account's plan and usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd)
		if err != nil {
			return err
		}

		acct, err := client.Account(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Plan:                %s\n", acct.Plan)
		fmt.Printf("Requests today:      %d / %d\n", acct.RequestsUsedToday, acct.PlanDailyRequestsIncluded)
		fmt.Printf("Concurrent requests: %d / %d\n", acct.ConcurrentRequestsUsed, acct.ConcurrentRequestLimit)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(accountCmd)
}
