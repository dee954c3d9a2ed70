package main

import (
	"github.com/AvengeMedia/danklauncher/internal/log"
	"github.com/spf13/cobra"
)

var Version = "dev"

func init() {
	rootCmd.PersistentFlags().String("root", "", "Storage root (overrides DANKLAUNCHER_HOME)")
	rootCmd.PersistentFlags().String("config", "", "Path to config.toml")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("notify", false, "Send desktop notifications for errors and milestones")

	for _, c := range []*cobra.Command{installCmd, launchCmd} {
		c.Flags().StringP("loader", "l", "", "Mod loader (forge or fabric)")
		c.Flags().StringP("version", "v", "", "Minecraft version (defaults to the newest)")
	}

	rootCmd.AddCommand(versionCmd, pathsCmd, installCmd, launchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
