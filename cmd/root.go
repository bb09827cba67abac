package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pic70",
	Short: "pic70 - batch recompress or convert images under a directory tree",
	Long: "pic70 walks a directory tree and either recompresses images in place " +
		"at a target quality or converts them to WebP into a mirrored output tree.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
}
