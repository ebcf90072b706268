package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/bgraf/figures/config"
	"github.com/bgraf/figures/figures"
	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "figures",
	Short: "Render markdown with implicit figures",
	Long: `Renders markdown documents and turns every paragraph that holds nothing
but an image into a figure, optionally with a caption, a link and extra
attributes.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()

	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.figures.yaml)")
	flags.StringP("root-dir", "r", "", "Document root directory")

	flags.Bool("data-type", false, "Add data-type=\"image\" to figures")
	flags.String("figcaption", "", "Caption source: \"title\", \"alt\" or empty for none")
	flags.Bool("keep-alt", false, "Keep the alt text on the image when it becomes the caption")
	flags.Bool("lazy", false, "Add loading=\"lazy\" to images")
	flags.Bool("link", false, "Wrap images in a link to their source")
	flags.Bool("tabindex", false, "Number figures with a tabindex attribute")
	flags.String("copy-attrs", "", "Copy image attributes matching this pattern to the figure, \"true\" copies all")

	flags.Bool("linkify", false, "Turn bare URLs into links")
	flags.Bool("html", false, "Pass raw HTML through instead of escaping it")
	flags.Bool("xhtml", false, "Close void elements XHTML style")

	bindings := map[string]string{
		config.KeyJournalDirectory:               "root-dir",
		config.FigureKey(figures.KeyDataType):    "data-type",
		config.FigureKey(figures.KeyFigcaption):  "figcaption",
		config.FigureKey(figures.KeyKeepAlt):     "keep-alt",
		config.FigureKey(figures.KeyLazyLoading): "lazy",
		config.FigureKey(figures.KeyLink):        "link",
		config.FigureKey(figures.KeyTabindex):    "tabindex",
		config.FigureKey(figures.KeyCopyAttrs):   "copy-attrs",
		config.KeyLinkify:                        "linkify",
		config.KeyHTML:                           "html",
		config.KeyXHTML:                          "xhtml",
	}

	for key, flag := range bindings {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	config.SetDefaults()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in the working and home directory with name ".figures" (without extension).
		if dir, err := os.Getwd(); err == nil {
			viper.AddConfigPath(dir)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".figures")
	}

	viper.SetEnvPrefix("figures")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
