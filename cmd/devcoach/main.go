package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/devcoach/devcoach/internal/config"
	"github.com/devcoach/devcoach/internal/logger"
)

// Version set via ldflags during build
var version = "dev"

// globalCfg is loaded once before any command runs.
var globalCfg = &config.Config{}

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "devcoach",
	Short: "AI-assisted project management from the command line",
	Long: `devcoach turns natural-language requirements into a structured backlog,
plans sprints, and walks tasks through an AI-assisted implementation loop.

It keeps all project state in a single project.json, talks to a local
Ollama server for analysis and code suggestions, and applies approved
suggestions directly to your working tree.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		globalCfg = cfg
		return logger.Configure(cfg.LogLevel, cfg.LogFile)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(addRequirementCmd)
	rootCmd.AddCommand(addStoryCmd)
	rootCmd.AddCommand(listBacklogCmd)
	rootCmd.AddCommand(listStoriesCmd)
	rootCmd.AddCommand(planSprintCmd)
	rootCmd.AddCommand(startSprintCmd)
	rootCmd.AddCommand(showSprintCmd)
	rootCmd.AddCommand(startTaskCmd)
	rootCmd.AddCommand(assistTaskCmd)
	rootCmd.AddCommand(executeTaskCmd)
	rootCmd.AddCommand(completeTaskCmd)
	rootCmd.AddCommand(llmCycleCmd)
	rootCmd.AddCommand(serveCmd)
}
