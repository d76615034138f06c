package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nairamart/catalog-service/internal/catalog"
	"github.com/nairamart/catalog-service/internal/types"
)

// normalizeCmd normalizes a local JSON file of raw catalog records, useful
// for checking how a backend payload will render without network access.
var normalizeCmd = &cobra.Command{
	Use:   "normalize <file>",
	Short: "Normalize a JSON file of raw catalog records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		var raws []types.RawProduct
		if err := json.Unmarshal(data, &raws); err != nil {
			// Accept a single record too.
			var raw types.RawProduct
			if err2 := json.Unmarshal(data, &raw); err2 != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}
			raws = []types.RawProduct{raw}
		}

		normalizer := catalog.NewNormalizer(nil)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(normalizer.NormalizeAll(raws))
	},
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}
