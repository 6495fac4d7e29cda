package commands

import (
	"os"

	"tenderportal-backend/lib/util/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(companiesCmd)
}

var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "Lists every company published on the portal index page.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		client := newClient(cfg)

		companies, err := client.Companies(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to list companies", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Id", "Slug", "Name"})
		for _, company := range companies {
			t.AppendRow(table.Row{company.Id, company.Slug, company.Name})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
