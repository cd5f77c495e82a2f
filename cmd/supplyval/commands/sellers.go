package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/adverify/supplyval/internal/fetch"
)

var sellersFlags struct {
	Timeout time.Duration
}

var sellersCmd = &cobra.Command{
	Use:           "sellers <ad-system-domain> [seller-id]",
	Short:         "Inspect an advertising system's sellers.json",
	GroupID:       "validation",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `Fetch the sellers.json directory for an advertising system domain and
print a summary, or look up a single seller ID.

Examples:
  # Summarize a directory
  supplyval sellers google.com

  # Look up one seller ID
  supplyval sellers google.com pub-1234567890`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		domain := args[0]
		ctx := context.Background()

		client := fetch.NewClient(sellersFlags.Timeout)
		dir, err := client.GetByDomain(ctx, domain)
		if err != nil {
			return fmt.Errorf("failed to fetch sellers.json for %s: %w", domain, err)
		}
		if dir == nil {
			return ExitWithCode(2, fmt.Errorf("%s publishes no sellers.json", domain))
		}

		if len(args) == 2 {
			sellerID := args[1]
			seller := dir.FindSeller(sellerID)
			if seller == nil {
				return ExitWithCode(2, fmt.Errorf("seller ID %s not found in %s directory", sellerID, domain))
			}

			fmt.Printf("Seller ID: %s\n", seller.SellerID)
			fmt.Printf("Type: %s\n", seller.SellerType)
			if seller.IsConfidential {
				fmt.Println("Confidential: yes")
			} else {
				fmt.Printf("Domain: %s\n", seller.Domain)
				fmt.Printf("Name: %s\n", seller.Name)
			}
			if count := dir.CountSellerID(sellerID); count > 1 {
				fmt.Printf("Warning: seller ID appears %d times in this directory\n", count)
			}
			return nil
		}

		fmt.Printf("Directory: %s\n", domain)
		fmt.Printf("Version: %s\n", dir.Version)
		if dir.ContactEmail != "" {
			fmt.Printf("Contact: %s\n", dir.ContactEmail)
		}
		for _, id := range dir.Identifiers {
			fmt.Printf("Identifier: %s=%s\n", id.Name, id.Value)
		}

		confidential := 0
		for _, s := range dir.Sellers {
			if s.IsConfidential {
				confidential++
			}
		}
		fmt.Printf("Sellers: %d (%d confidential)\n", len(dir.Sellers), confidential)
		return nil
	},
}

func init() {
	sellersCmd.Flags().DurationVar(&sellersFlags.Timeout, "timeout", 30*time.Second, "HTTP timeout for fetches")
}
