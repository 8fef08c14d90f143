package cmd_tree

import (
	"fmt"

	"github.com/rskv-p/treekit/cmd/cmd_opt"
	"github.com/rskv-p/treekit/inspect"
	"github.com/rskv-p/treekit/render"

	"github.com/spf13/cobra"
)

var (
	branching int
	asBST     bool
)

// Commands returns the tree commands for the root.
func Commands() []*cobra.Command {
	return []*cobra.Command{buildCmd, walkCmd, statsCmd, renderCmd, bstCmd, evalCmd, scriptCmd}
}

var buildCmd = &cobra.Command{
	Use:   "build ROOT [V...]",
	Short: "Build a tree level by level and print its constructor form",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := cmd_opt.GeneralTree(args, k(cmd))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%#v\n", t)
		return nil
	},
}

var walkCmd = &cobra.Command{
	Use:   "walk ORDER ROOT [V...]",
	Short: "Print the values of a tree in pre, post, in or level order",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			vals []int
			err  error
		)
		if asBST {
			b, berr := cmd_opt.BinaryTree(args[1:])
			if berr != nil {
				return berr
			}
			vals, err = inspect.BinaryValues(b, args[0])
		} else {
			t, terr := cmd_opt.GeneralTree(args[1:], k(cmd))
			if terr != nil {
				return terr
			}
			vals, err = inspect.Values(t, args[0])
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), render.Values(vals))
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats ROOT [V...]",
	Short: "Print height, node counts, arity and level widths",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var s inspect.Stats
		if asBST {
			b, err := cmd_opt.BinaryTree(args)
			if err != nil {
				return err
			}
			s = inspect.BinaryStats(b)
		} else {
			t, err := cmd_opt.GeneralTree(args, k(cmd))
			if err != nil {
				return err
			}
			s = inspect.TreeStats(t)
		}
		fmt.Fprintln(cmd.OutOrStdout(), cmd_opt.Renderer().Stats(s))
		return nil
	},
}

var renderCmd = &cobra.Command{
	Use:   "render ROOT [V...]",
	Short: "Draw a tree with branch guides",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r := cmd_opt.Renderer()
		if asBST {
			b, err := cmd_opt.BinaryTree(args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.Binary(r, b))
			return nil
		}
		t, err := cmd_opt.GeneralTree(args, k(cmd))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), render.Tree(r, t))
		return nil
	},
}

// k returns --k when given, else the configured branching.
func k(cmd *cobra.Command) int {
	if cmd.Flags().Changed("k") {
		return branching
	}
	if cfg, err := cmd_opt.Config(); err == nil {
		return cfg.Branching
	}
	return branching
}

func init() {
	for _, c := range []*cobra.Command{buildCmd, walkCmd, statsCmd, renderCmd} {
		c.Flags().IntVarP(&branching, "k", "k", 2, "children per node")
	}
	for _, c := range []*cobra.Command{walkCmd, statsCmd, renderCmd} {
		c.Flags().BoolVar(&asBST, "bst", false, "insert values into a binary search tree instead")
	}
}
