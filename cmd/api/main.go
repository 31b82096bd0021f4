package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskmaster/planner/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "planner",
		Short: "Planner GraphQL Server",
		Long:  `Planner is a mock calendar backend that serves daily tasks and monthly task counts over GraphQL.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewCalendarCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
