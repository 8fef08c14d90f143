package cmd_bus

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rskv-p/treekit/bus"
	"github.com/rskv-p/treekit/cmd/cmd_opt"
	"github.com/rskv-p/treekit/codec"
	"github.com/rskv-p/treekit/constant"

	"github.com/spf13/cobra"
)

// PublishCmd streams a stored snapshot's traversal to NATS.
var PublishCmd = &cobra.Command{
	Use:   "publish ID ORDER",
	Short: "Publish a stored tree's traversal as NATS events",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cmd_opt.Config()
		if err != nil {
			return err
		}
		st, err := cmd_opt.Store()
		if err != nil {
			return err
		}
		defer st.Close()

		nc, err := bus.Connect(cfg.NATS)
		if err != nil {
			return err
		}
		defer nc.Close()

		ctx := context.Background()
		snap, err := st.Get(ctx, args[0])
		if err != nil {
			return err
		}

		var n int
		if snap.Kind == constant.KindBinary {
			b, _, err := st.LoadBinary(ctx, snap.ID)
			if err != nil {
				return err
			}
			n, err = bus.PublishBinary(nc, cfg.NATS.Subject, snap.ID, args[1], b)
			if err != nil {
				return err
			}
		} else {
			t, _, err := st.LoadTree(ctx, snap.ID)
			if err != nil {
				return err
			}
			n, err = bus.PublishTree(nc, cfg.NATS.Subject, snap.ID, args[1], t)
			if err != nil {
				return err
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "published %d visits to %s\n", n, cfg.NATS.Subject)
		return nil
	},
}

// WatchCmd prints visit events until a traversal completes.
var WatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print traversal events from NATS until one completes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cmd_opt.Config()
		if err != nil {
			return err
		}
		nc, err := bus.Connect(cfg.NATS)
		if err != nil {
			return err
		}
		defer nc.Close()

		c, err := bus.Collect(nc, cfg.NATS.Subject)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		events, err := c.Wait(ctx)
		out := cmd.OutOrStdout()
		for _, ev := range events {
			fmt.Fprintf(out, "%s %s #%d %v\n", ev.Tree, ev.Order, ev.Seq, ev.Value)
		}
		if err == nil {
			fmt.Fprintln(out, codec.EventDone)
		}
		return err
	},
}

// QueryCmd asks a running service to walk or measure a stored tree.
var QueryCmd = &cobra.Command{
	Use:   "query walk|stats ID [ORDER]",
	Short: "Query the tree service over NATS request/reply",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cmd_opt.Config()
		if err != nil {
			return err
		}
		nc, err := bus.Connect(cfg.NATS)
		if err != nil {
			return err
		}
		defer nc.Close()

		q := &bus.Query{ID: args[1]}
		if len(args) == 3 {
			q.Order = args[2]
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.NATS.Timeout)
		defer cancel()

		var out json.RawMessage
		if err := bus.Request(ctx, nc, cfg.NATS.Service, args[0], q, &out); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}
