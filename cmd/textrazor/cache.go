package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/textrazor-go/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local response cache",
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete cached responses older than the max age",
	RunE: func(cmd *cobra.Command, args []string) error {
		maxAge, _ := cmd.Flags().GetDuration("max-age")
		if maxAge == 0 {
			maxAge = cliCfg.Cache.MaxAge
		}
		if maxAge == 0 {
			maxAge = 7 * 24 * time.Hour
		}

		dir := cliCfg.Cache.Dir
		if dir == "" {
			dir = ".cache"
		}
		store, err := cache.Open(dir)
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := store.Prune(maxAge)
		if err != nil {
			return err
		}
		fmt.Printf("Pruned %d cached response(s) older than %v.\n", n, maxAge)
		return nil
	},
}

func init() {
	cachePruneCmd.Flags().Duration("max-age", 0, "delete entries older than this (default 168h)")

	cacheCmd.AddCommand(cachePruneCmd)
	rootCmd.AddCommand(cacheCmd)
}
