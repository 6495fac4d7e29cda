package commands

import (
	"errors"
	"fmt"

	"tenderportal-backend/lib/scrapers/tenderportal"
	"tenderportal-backend/lib/util/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	tenderCmd.AddCommand(tenderShowCmd)
	tenderCmd.AddCommand(tenderRemoveCmd)
	rootCmd.AddCommand(tenderCmd)
}

var tenderCmd = &cobra.Command{
	Use:   "tender",
	Short: "Inspects or removes the in-progress tender. Requires login credentials.",
}

var tenderShowCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Prints the id of the in-progress tender, if any.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		slug := args[0]

		cfg := loadConfig()
		client := newClient(cfg)
		store, closeCache := openCache(cfg)
		defer closeCache()

		entry := resolveCompany(ctx, client, store, slug, false)
		session := loginSession(ctx, cfg, client, entry.CompanyId, slug)

		tenderId, err := client.TenderID(ctx, entry.CompanyId, session)
		if errors.Is(err, tenderportal.ErrNoTenderInProgress) {
			fmt.Println("no tender in progress")
			return
		}
		if err != nil {
			serviceutil.Fatal("failed to look up tender", err)
		}
		fmt.Printf("tender in progress: %s\n", tenderId)
	},
}

var tenderRemoveCmd = &cobra.Command{
	Use:   "remove <slug>",
	Short: "Removes the in-progress tender.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		slug := args[0]

		cfg := loadConfig()
		client := newClient(cfg)
		store, closeCache := openCache(cfg)
		defer closeCache()

		entry := resolveCompany(ctx, client, store, slug, false)
		session := loginSession(ctx, cfg, client, entry.CompanyId, slug)

		tenderId, err := client.TenderID(ctx, entry.CompanyId, session)
		if err != nil {
			serviceutil.Fatal("failed to look up tender", err)
		}
		err = client.RemoveTender(ctx, entry.CompanyId, tenderId, session)
		if err != nil {
			serviceutil.Fatal("failed to remove tender", err)
		}
		fmt.Printf("removed tender %s\n", tenderId)
	},
}
