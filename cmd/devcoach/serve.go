package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/devcoach/devcoach/internal/mcpserver"
)

var serveFlags struct {
	port int
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the project backlog over MCP",
	Long: `serve starts a streamable HTTP MCP server so agents and editors can
list the backlog, add stories, and move tasks through their lifecycle
without shelling out to devcoach.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := mcpserver.New(&globalCfg.LLM)
		port, err := srv.Start(cmd.Context(), serveFlags.port)
		if err != nil {
			return err
		}
		defer func() { _ = srv.Stop() }()

		fmt.Println(success(fmt.Sprintf("MCP server listening on port %d", port)))
		fmt.Println("  Endpoint: " + srv.URL())
		fmt.Println(dim("Press Ctrl+C to stop"))

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		select {
		case <-sig:
			fmt.Println("\nShutting down.")
		case <-cmd.Context().Done():
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&serveFlags.port, "port", 0, "listen port, 0 picks a free one")
}
