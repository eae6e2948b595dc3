/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "taskflow",
	Short: "TaskFlow personal task tracker",
	Long: `TaskFlow is a personal task tracker with a console interface and a
JSON HTTP API. Tasks and users are stored as flat JSON collections on disk.

	taskflow console    interactive console session
	taskflow serve      start the HTTP server
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
