package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nairamart/catalog-service/internal/catalog"
	"github.com/nairamart/catalog-service/internal/types"
)

var (
	fetchType   string
	fetchLimit  int
	fetchSearch string
	fetchRaw    bool
)

// fetchCmd pulls catalog records from the commerce API and prints them
// normalized (or raw with --raw).
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch and normalize catalog records from the commerce API",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		raws, err := client.ListProducts(ctx, types.ProductQuery{
			Type:   fetchType,
			Limit:  fetchLimit,
			Search: fetchSearch,
		})
		if err != nil {
			return err
		}
		logger.Info().Int("records", len(raws)).Msg("Fetched catalog records")

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if fetchRaw {
			return enc.Encode(raws)
		}
		normalizer := catalog.NewNormalizer(nil)
		return enc.Encode(normalizer.NormalizeAll(raws))
	},
}

func init() {
	fetchCmd.Flags().StringVar(&fetchType, "type", "", "merchandising tag filter (new, summer, flash, trending)")
	fetchCmd.Flags().IntVar(&fetchLimit, "limit", 0, "maximum records to fetch")
	fetchCmd.Flags().StringVar(&fetchSearch, "search", "", "search query")
	fetchCmd.Flags().BoolVar(&fetchRaw, "raw", false, "print raw records without normalizing")
	rootCmd.AddCommand(fetchCmd)
}
