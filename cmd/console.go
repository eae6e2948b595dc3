/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/taskflow-app/taskflow/config"
	"github.com/taskflow-app/taskflow/internal/console"
)

// consoleCmd represents the console command
var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Starts an interactive TaskFlow console session",
	Long: `Starts an interactive TaskFlow console session with numbered menus
for registration, login and task management. Usage:

	taskflow console
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.LoadConfig()

		app, err := console.NewApp(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start console: %v\n", err)
			os.Exit(1)
		}
		app.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}
