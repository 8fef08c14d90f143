package cmd

import (
	"fmt"

	"github.com/rskv-p/treekit/cmd/cmd_opt"
	"github.com/rskv-p/treekit/pkg/x_log"

	"github.com/spf13/cobra"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Print the last lines of the log file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cmd_opt.Config()
		if err != nil {
			return err
		}
		n, _ := cmd.Flags().GetInt("lines")
		lines, err := x_log.Tail(cfg.Log.LogFile, n)
		if err != nil {
			return fmt.Errorf("read %s: %w", cfg.Log.LogFile, err)
		}
		for _, l := range lines {
			fmt.Fprintln(cmd.OutOrStdout(), l)
		}
		return nil
	},
}

func init() {
	logsCmd.Flags().IntP("lines", "n", 20, "number of lines")
	rootCmd.AddCommand(logsCmd)
}
