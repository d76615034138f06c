// Schema Generator
//
// Generates JSON Schema files from Go types for the storefront client's
// response validation. Go is the source of truth for the shared API shapes.
//
// Usage:
//
//	go run cmd/schema-gen/main.go
//
// Output:
//
//	./schemas/catalog.json
//	./schemas/merch.json
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"github.com/nairamart/catalog-service/internal/catalog"
	"github.com/nairamart/catalog-service/internal/handlers"
)

// SchemaGroup represents a group of related schemas
type SchemaGroup struct {
	Name   string
	Types  []any
	Output string
}

func main() {
	outputDir := "./schemas"

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	groups := []SchemaGroup{
		{
			Name: "catalog",
			Types: []any{
				catalog.Product{},
				handlers.ListProductsResponse{},
				handlers.CategoriesResponse{},
			},
			Output: "catalog.json",
		},
		{
			Name: "merch",
			Types: []any{
				handlers.RailResponse{},
				handlers.DealResponse{},
				handlers.FlashEndTimeResponse{},
			},
			Output: "merch.json",
		},
	}

	reflector := &jsonschema.Reflector{
		ExpandedStruct: false,
		DoNotReference: false,
	}

	for _, group := range groups {
		combined := map[string]*jsonschema.Schema{}
		for _, t := range group.Types {
			schema := reflector.Reflect(t)
			name := fmt.Sprintf("%T", t)
			combined[name] = schema
		}

		data, err := json.MarshalIndent(combined, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to marshal %s schemas: %v\n", group.Name, err)
			os.Exit(1)
		}

		out := filepath.Join(outputDir, group.Output)
		if err := os.WriteFile(out, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", out, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s (%d types)\n", out, len(group.Types))
	}
}
