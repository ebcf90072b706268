package cmd

import (
	"github.com/bgraf/figures/cmd/serve"
	"github.com/bgraf/figures/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve rendered documents for preview",
	RunE:  serve.RunServeCmd,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("address", "a", config.DefaultServeAddress(), "Listen address")
	if err := viper.BindPFlag(config.KeyServeAddress, serveCmd.Flags().Lookup("address")); err != nil {
		panic(err)
	}

	serveCmd.Flags().Bool("live", false, "Re-render documents on every request")
}
