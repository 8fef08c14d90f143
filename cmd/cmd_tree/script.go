package cmd_tree

import (
	"io"
	"os"

	"github.com/rskv-p/treekit/cmd/cmd_opt"
	"github.com/rskv-p/treekit/shell"

	"github.com/spf13/cobra"
)

var scriptCmd = &cobra.Command{
	Use:   "script FILE",
	Short: "Run a tree shell script (- reads stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var in io.Reader = cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}
		s := shell.New(cmd.OutOrStdout(), cmd_opt.Renderer().Color)
		return s.Run(in)
	},
}
