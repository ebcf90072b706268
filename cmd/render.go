package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/bgraf/figures/config"
	"github.com/bgraf/figures/document"
	"github.com/bgraf/figures/filesystem"
	"github.com/spf13/cobra"
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render [paths...]",
	Short: "Render markdown files to HTML",
	Long: `Renders the given markdown files, or all markdown files below the given
directories, to HTML. Without an output directory the HTML of all files is
written to stdout.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

var renderOutputDirectory *string

func runRender(cmd *cobra.Command, args []string) error {
	opts, err := config.StoreOptions()
	if err != nil {
		return err
	}

	paths, err := filesystem.GatherFiles(args, opts.Extensions)
	if err != nil {
		return fmt.Errorf("gather files: %w", err)
	}

	if len(paths) == 0 {
		return fmt.Errorf("no markdown files found")
	}

	store, err := document.NewStore(cmd.Context(), "", opts)
	if err != nil {
		return err
	}

	if *renderOutputDirectory != "" {
		if err := filesystem.CreateDirectoryIfNotExists(*renderOutputDirectory); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	for _, path := range paths {
		if err := renderFile(cmd.Context(), store, path, *renderOutputDirectory); err != nil {
			return err
		}
	}

	return nil
}

func renderFile(ctx context.Context, store *document.Store, path, outputDirectory string) error {
	doc, err := store.LoadDocument(ctx, path)
	if err != nil {
		return err
	}

	fragment, err := doc.Fragment()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if outputDirectory == "" {
		fmt.Print(fragment)
		return nil
	}

	target := filesystem.OutputPath(outputDirectory, path, ".html")
	if err := os.WriteFile(target, []byte(fragment), 0666); err != nil {
		return fmt.Errorf("write '%s': %w", target, err)
	}

	log.Printf("rendered '%s' with %d figures to '%s'", path, len(doc.Figures), target)

	return nil
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderOutputDirectory = renderCmd.Flags().StringP(
		"output",
		"O",
		"",
		"Output directory",
	)
}
