package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"tenderportal-backend/lib/util/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(detailCmd)
}

var detailCmd = &cobra.Command{
	Use:   "detail <slug> <notice id>",
	Short: "Scrapes the full detail view of one notice. Requires login credentials.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		slug := args[0]

		noticeId, err := strconv.Atoi(args[1])
		if err != nil {
			serviceutil.Fatal("notice id must be a number", err)
		}

		cfg := loadConfig()
		client := newClient(cfg)
		store, closeCache := openCache(cfg)
		defer closeCache()

		entry := resolveCompany(ctx, client, store, slug, false)
		session := loginSession(ctx, cfg, client, entry.CompanyId, slug)

		detail, err := client.NoticeDetail(ctx, entry.CompanyId, noticeId, session)
		if err != nil {
			serviceutil.Fatal("failed to scrape notice detail", err)
		}

		fmt.Printf("%s: %s\n", detail.CustomId, detail.Title)
		fmt.Printf("unit: %s (%s, %s)\n", detail.Unit, detail.AuthorityType, detail.Category)
		fmt.Printf("flags: %s  types: %s\n",
			strings.Join(detail.Flags, ","), strings.Join(detail.Types, ","))
		fmt.Printf("published: %s  deadline: %s\n",
			detail.OriginalPublished, detail.OriginalDeadline)
		if detail.IsBeingCorrected {
			fmt.Println("this notice is currently being corrected")
		}
		fmt.Println(detail.ShortDescription)

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Attachment", "Download"})
		for _, attachment := range detail.Attachments {
			t.AppendRow(table.Row{attachment.FileName, client.AttachmentURL(attachment)})
		}
		for _, link := range detail.Links {
			t.AppendRow(table.Row{"(external)", link})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
