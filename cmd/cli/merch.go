package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nairamart/catalog-service/internal/catalog"
	"github.com/nairamart/catalog-service/internal/merch"
	"github.com/nairamart/catalog-service/internal/types"
)

var (
	merchView  string
	merchLimit int
	merchFile  string
)

// merchCmd derives a merchandising view over the catalog, either from the
// commerce API or from a local JSON file of raw records.
var merchCmd = &cobra.Command{
	Use:   "merch",
	Short: "Derive a merchandising view (trending, new-arrivals, flash-sales, deal)",
	RunE: func(cmd *cobra.Command, args []string) error {
		raws, err := loadRecords()
		if err != nil {
			return err
		}

		normalizer := catalog.NewNormalizer(nil)
		deriver := merch.NewDeriver()
		products := normalizer.NormalizeAll(raws)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		switch merchView {
		case "trending":
			return enc.Encode(deriver.Trending(products, merchLimit))
		case "new-arrivals":
			return enc.Encode(deriver.NewArrivals(products, merchLimit))
		case "flash-sales":
			return enc.Encode(deriver.FlashSales(products, merchLimit))
		case "deal":
			return enc.Encode(deriver.DealOfTheDay(products))
		case "flash-end-time":
			return enc.Encode(deriver.HighestFlashEndTime(raws))
		default:
			return fmt.Errorf("unknown view %q (want trending, new-arrivals, flash-sales, deal, or flash-end-time)", merchView)
		}
	},
}

func loadRecords() ([]types.RawProduct, error) {
	if merchFile != "" {
		data, err := os.ReadFile(merchFile)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", merchFile, err)
		}
		var raws []types.RawProduct
		if err := json.Unmarshal(data, &raws); err != nil {
			return nil, fmt.Errorf("parse %s: %w", merchFile, err)
		}
		return raws, nil
	}

	client, err := newClient()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	return client.ListProducts(ctx, types.ProductQuery{})
}

func init() {
	merchCmd.Flags().StringVar(&merchView, "view", "trending", "view to derive")
	merchCmd.Flags().IntVar(&merchLimit, "limit", 0, "maximum products in the view")
	merchCmd.Flags().StringVar(&merchFile, "file", "", "derive from a local JSON file instead of the commerce API")
	rootCmd.AddCommand(merchCmd)
}
