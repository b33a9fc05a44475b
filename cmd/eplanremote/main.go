// Command eplanremote bridges a running EPLAN instance to the command
// line and to MCP clients. It connects to the engine's remoting port,
// dispatches actions, and serves the automation tool set over stdio.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonwraymond/eplanremote/eplan"
	"github.com/jonwraymond/eplanremote/mcpserver"
)

const version = "0.3.0"

var (
	configPath string
	flagHost   string
	flagPort   string
	flagDebug  bool
)

var rootCmd = &cobra.Command{
	Use:           "eplanremote",
	Short:         "Remote automation bridge for the EPLAN engine",
	Long:          "eplanremote connects to a running EPLAN instance over its remoting port, dispatches actions and scripts, and serves the automation tools to MCP clients over stdio.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the automation tools to an MCP client over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return mcpserver.New(client, version).Run(ctx)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Connect to the engine and report the session status",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, port, err := newClient()
		if err != nil {
			return err
		}
		res := client.Connect(cmd.Context(), flagHost, port)
		if !res.Success {
			return fmt.Errorf("connect: %s", res.Message)
		}
		defer client.Disconnect()

		client.Ping(cmd.Context())
		return printJSON(client.Status())
	},
}

var serversCmd = &cobra.Command{
	Use:   "servers",
	Short: "List running EPLAN instances on this machine",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		instances := client.Servers(cmd.Context())
		if len(instances) == 0 {
			fmt.Println("no running instances found")
			return nil
		}
		caser := cases.Title(language.Und)
		for _, inst := range instances {
			fmt.Printf("port %s  %s %s\n", inst.Port, caser.String(inst.Variant), inst.Version)
		}
		return nil
	},
}

var execCmd = &cobra.Command{
	Use:   "exec <action> [parameters...]",
	Short: "Dispatch one action string to the engine",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, port, err := newClient()
		if err != nil {
			return err
		}
		res := client.Connect(cmd.Context(), flagHost, port)
		if !res.Success {
			return fmt.Errorf("connect: %s", res.Message)
		}
		defer client.Disconnect()

		out := client.ExecuteAction(cmd.Context(), strings.Join(args, " "))
		if err := printJSON(out); err != nil {
			return err
		}
		if !out.Success {
			return fmt.Errorf("action rejected: %s", out.Message)
		}
		return nil
	},
}

// newClient builds the facade client from the config file and flags.
// Flags win over the file.
func newClient() (*eplan.Client, string, error) {
	opts, port, err := loadConfig(configPath)
	if err != nil {
		return nil, "", err
	}
	if flagHost != "" {
		opts.Host = flagHost
	}
	if flagPort != "" {
		port = flagPort
	}
	opts.Logger = newLogger(flagDebug)

	client, err := eplan.New(opts)
	if err != nil {
		return nil, "", err
	}
	return client, port, nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")
	rootCmd.PersistentFlags().StringVar(&flagHost, "host", "", "engine host (default localhost)")
	rootCmd.PersistentFlags().StringVar(&flagPort, "port", "", "remoting port (auto-detected when empty)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.AddCommand(serveCmd, statusCmd, serversCmd, execCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "eplanremote:", err)
		os.Exit(1)
	}
}
