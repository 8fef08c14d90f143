package cmd_tree

import (
	"fmt"
	"strconv"

	"github.com/rskv-p/treekit/bintree"
	"github.com/rskv-p/treekit/cmd/cmd_opt"
	"github.com/rskv-p/treekit/render"

	"github.com/spf13/cobra"
)

var bstValues []int

var bstCmd = &cobra.Command{
	Use:   "bst",
	Short: "Binary search tree operations",
}

var bstInsertCmd = &cobra.Command{
	Use:   "insert V...",
	Short: "Insert values in order and draw the resulting tree",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := cmd_opt.BinaryTree(args)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, render.Binary(cmd_opt.Renderer(), b))
		fmt.Fprintln(out, bintree.InorderList(b))
		return nil
	},
}

var bstContainsCmd = &cobra.Command{
	Use:   "contains V --values A,B,C",
	Short: "Search a BST built from --values",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%q is not an integer", args[0])
		}
		b := bintree.FromValues(bstValues...)
		fmt.Fprintln(cmd.OutOrStdout(), bintree.BSTContains(b, v))
		return nil
	},
}

var bstBetweenCmd = &cobra.Command{
	Use:   "between LO HI --values A,B,C",
	Short: "List values in [LO, HI] of a BST built from --values",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		bounds, err := cmd_opt.Ints(args)
		if err != nil {
			return err
		}
		b := bintree.FromValues(bstValues...)
		fmt.Fprintln(cmd.OutOrStdout(), render.Values(bintree.ListBetween(b, bounds[0], bounds[1])))
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{bstContainsCmd, bstBetweenCmd} {
		c.Flags().IntSliceVar(&bstValues, "values", nil, "values inserted into the tree")
	}
	bstCmd.AddCommand(bstInsertCmd, bstContainsCmd, bstBetweenCmd)
}
