package cmd_store

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/rskv-p/treekit/cmd/cmd_opt"
	"github.com/rskv-p/treekit/constant"
	"github.com/rskv-p/treekit/pkg/x_log"
	"github.com/rskv-p/treekit/render"

	"github.com/spf13/cobra"
)

// Commands returns the snapshot commands for the root.
func Commands() []*cobra.Command {
	return []*cobra.Command{saveCmd, loadCmd, listCmd, deleteCmd}
}

var saveCmd = &cobra.Command{
	Use:   "save NAME ROOT [V...]",
	Short: "Build a tree and store it as a snapshot",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := cmd_opt.Store()
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		bst, _ := cmd.Flags().GetBool("bst")
		name := args[0]

		var id string
		if bst {
			b, err := cmd_opt.BinaryTree(args[1:])
			if err != nil {
				return err
			}
			snap, err := st.SaveBinary(ctx, name, b)
			if err != nil {
				return err
			}
			id = snap.ID
		} else {
			cfg, err := cmd_opt.Config()
			if err != nil {
				return err
			}
			k := cfg.Branching
			if cmd.Flags().Changed("k") {
				k, _ = cmd.Flags().GetInt("k")
			}
			t, err := cmd_opt.GeneralTree(args[1:], k)
			if err != nil {
				return err
			}
			snap, err := st.SaveTree(ctx, name, t)
			if err != nil {
				return err
			}
			id = snap.ID
		}

		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	},
}

var loadCmd = &cobra.Command{
	Use:   "load ID",
	Short: "Draw a stored snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := cmd_opt.Store()
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := context.Background()
		snap, err := st.Get(ctx, args[0])
		if err != nil {
			return err
		}

		r := cmd_opt.Renderer()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s)\n", snap.Name, snap.Kind)

		if snap.Kind == constant.KindBinary {
			b, _, err := st.LoadBinary(ctx, snap.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, render.Binary(r, b))
			return nil
		}
		t, _, err := st.LoadTree(ctx, snap.ID)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, render.Tree(r, t))
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := cmd_opt.Store()
		if err != nil {
			return err
		}
		defer st.Close()

		list, err := st.List(context.Background())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tKIND\tNODES\tHEIGHT\tCREATED")
		for _, s := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
				s.ID, s.Name, s.Kind, s.Nodes, s.Height, s.CreatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a stored snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := cmd_opt.Store()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Delete(context.Background(), args[0]); err != nil {
			return err
		}
		x_log.Info().Str("id", args[0]).Msg("deleted")
		return nil
	},
}

func init() {
	saveCmd.Flags().Bool("bst", false, "store a binary search tree")
	saveCmd.Flags().IntP("k", "k", 2, "children per node")
}
