package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"coolfinds/internal/logger"

	"github.com/spf13/cobra"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Regenerate and store the featured products batch",
	Long: `Generate a fresh featured-products batch across all shopping
categories and replace the stored batch. The new batch is printed as JSON.

Example:
  coolfinds products`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runProducts(); err != nil {
			logger.Error("Product generation failed", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(productsCmd)
}

func runProducts() error {
	ctx := context.Background()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	batch := a.products.Generate(ctx)
	if len(batch) == 0 {
		logger.Warn("Generated batch is empty, replacing the stored one anyway")
	}

	if err := a.store.PutFeaturedProducts(batch); err != nil {
		return fmt.Errorf("failed to store products: %w", err)
	}

	out, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode products: %w", err)
	}
	fmt.Println(string(out))
	logger.Info("Featured products replaced", "count", len(batch))
	return nil
}
