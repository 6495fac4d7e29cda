package commands

import (
	"fmt"
	"os"
	"strings"

	"tenderportal-backend/lib/locale"
	"tenderportal-backend/lib/util/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var noticesLang *string

func init() {
	noticesLang = noticesCmd.Flags().String(
		"lang", "",
		"Culture tag to switch the session to before scraping, e.g. sv-SE.",
	)
	rootCmd.AddCommand(noticesCmd)
}

var noticesCmd = &cobra.Command{
	Use:   "notices <slug>",
	Short: "Scrapes the notice listing of one company.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		slug := args[0]

		cfg := loadConfig()
		client := newClient(cfg)
		store, closeCache := openCache(cfg)
		defer closeCache()

		entry := resolveCompany(ctx, client, store, slug, false)
		session, err := client.GetSession(ctx, slug)
		if err != nil {
			serviceutil.Fatal("failed to acquire session", err)
		}

		if *noticesLang != "" {
			lang, err := locale.Parse(*noticesLang)
			if err != nil {
				serviceutil.Fatal("unknown culture tag", err)
			}
			err = client.SetLanguage(ctx, entry.CompanyId, lang, session)
			if err != nil {
				serviceutil.Fatal("failed to switch language", err)
			}
		}

		listing, err := client.Notices(ctx, entry.CompanyId, session)
		if err != nil {
			serviceutil.Fatal("failed to scrape notices", err)
		}

		fmt.Printf("page language: %s\n", listing.Language)

		dps := table.NewWriter()
		dps.SetOutputMirror(os.Stdout)
		dps.AppendHeader(table.Row{"Id", "Custom Id", "Unit", "Title", "Deadline", "Correcting"})
		for _, system := range listing.DynamicPurchasingSystems {
			dps.AppendRow(table.Row{
				system.Id, system.CustomId, system.Unit, system.Title,
				system.OriginalDeadline, system.IsBeingCorrected,
			})
		}
		dps.SetStyle(table.StyleRounded)
		dps.Render()

		notices := table.NewWriter()
		notices.SetOutputMirror(os.Stdout)
		notices.AppendHeader(table.Row{"Id", "Custom Id", "Unit", "Title", "Flags", "Types", "Deadline"})
		for _, notice := range listing.Notices {
			notices.AppendRow(table.Row{
				notice.Id, notice.CustomId, notice.Unit, notice.Title,
				strings.Join(notice.Flags, ","),
				strings.Join(notice.Types, ","),
				notice.OriginalDeadline,
			})
		}
		notices.SetStyle(table.StyleRounded)
		notices.Render()
	},
}
