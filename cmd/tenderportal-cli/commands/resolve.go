package commands

import (
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var resolveRefresh *bool

func init() {
	resolveRefresh = resolveCmd.Flags().Bool(
		"refresh", false,
		"Bypass the slug cache and hit the portal.",
	)
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <slug> [<slug> ...]",
	Short: "Resolves company slugs to their numeric portal ids.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		client := newClient(cfg)
		store, closeCache := openCache(cfg)
		defer closeCache()

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Slug", "Company", "Procurement Org", "Resolved"})

		for _, slug := range args {
			entry := resolveCompany(cmd.Context(), client, store, slug, *resolveRefresh)
			resolved := "just now"
			if !entry.ResolvedAt.IsZero() {
				resolved = entry.ResolvedAt.Format(time.ANSIC)
			}
			t.AppendRow(table.Row{entry.Slug, entry.CompanyId, entry.ProcurementOrgId, resolved})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
