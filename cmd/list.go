package cmd

import (
	"fmt"

	"github.com/bgraf/figures/config"
	"github.com/bgraf/figures/document"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the figures of all documents",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	if !config.HasJournalDirectory() {
		return fmt.Errorf("no root directory configured")
	}

	opts, err := config.StoreOptions()
	if err != nil {
		return err
	}

	store, err := document.NewStore(cmd.Context(), config.JournalDirectory(), opts)
	if err != nil {
		return err
	}

	store.OrderDocumentsByDate()

	for _, doc := range store.Documents() {
		fmt.Printf("%s  %s  %s\n", doc.Date.Format("2006-01-02"), doc.GUID, doc.Title)

		for _, fig := range doc.Figures {
			line := fmt.Sprintf("  %2d  %s", fig.Index+1, fig.Source)
			if fig.Caption != "" {
				line += fmt.Sprintf("  %q", fig.Caption)
			}
			if fig.Link != "" && fig.Link != fig.Source {
				line += "  -> " + fig.Link
			}

			fmt.Println(line)
		}
	}

	return nil
}

func init() {
	rootCmd.AddCommand(listCmd)
}
