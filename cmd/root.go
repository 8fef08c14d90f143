package cmd

import (
	"fmt"
	"os"

	"github.com/rskv-p/treekit/cmd/cmd_bus"
	"github.com/rskv-p/treekit/cmd/cmd_opt"
	"github.com/rskv-p/treekit/cmd/cmd_serve"
	"github.com/rskv-p/treekit/cmd/cmd_store"
	"github.com/rskv-p/treekit/cmd/cmd_tree"
	"github.com/rskv-p/treekit/pkg/x_log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "treekit",
	Short:         "Build, walk, store and stream trees",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cmd_opt.Config()
		if err != nil {
			return err
		}
		x_log.InitWithConfig(&cfg.Log, "treekit")
		return nil
	},
}

// Root exposes the command tree for tests.
func Root() *cobra.Command { return rootCmd }

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cmd_opt.ConfigPath, "config", "", "config file (default $TREEKIT_CONFIG)")
	pf.StringVar(&cmd_opt.LogLevel, "log-level", "", "override log level")
	pf.BoolVar(&cmd_opt.NoColor, "no-color", false, "disable styled output")

	for _, c := range cmd_tree.Commands() {
		rootCmd.AddCommand(c)
	}
	for _, c := range cmd_store.Commands() {
		rootCmd.AddCommand(c)
	}
	rootCmd.AddCommand(cmd_serve.Cmd, cmd_serve.TokenCmd, cmd_serve.PasswdCmd)
	rootCmd.AddCommand(cmd_bus.PublishCmd, cmd_bus.WatchCmd, cmd_bus.QueryCmd)
}
