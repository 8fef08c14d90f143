package cmd_serve

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/nats-io/nats.go"
	"github.com/rskv-p/treekit/api"
	"github.com/rskv-p/treekit/bus"
	"github.com/rskv-p/treekit/cmd/cmd_opt"
	"github.com/rskv-p/treekit/pkg/x_log"

	"github.com/spf13/cobra"
)

// Cmd runs the HTTP API, optionally with an in-process NATS server.
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tree API",
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

		embedded, _ := cmd.Flags().GetBool("embedded-nats")
		noBus, _ := cmd.Flags().GetBool("no-bus")

		opts := []api.Option{api.WithBranching(cfg.Branching)}
		if !noBus {
			if embedded {
				host, port, err := hostPort(cfg.NATS.URL)
				if err != nil {
					return err
				}
				ns, err := bus.StartEmbedded(host, port)
				if err != nil {
					return err
				}
				defer ns.Shutdown()
				cfg.NATS.URL = ns.ClientURL()
				x_log.Info().Str("url", cfg.NATS.URL).Msg("embedded nats started")
			}

			nc, err := bus.Connect(cfg.NATS)
			if err != nil {
				return err
			}
			defer nc.Close()

			svc, err := bus.StartService(nc, cfg.NATS.Service, st)
			if err != nil {
				return err
			}
			defer svc.Stop()
			opts = append(opts, api.WithBus(nc, cfg.NATS.Subject))
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return api.NewServer(st, cfg.HTTP, opts...).ListenAndServe(ctx)
	},
}

// TokenCmd signs an API token with the configured secret.
var TokenCmd = &cobra.Command{
	Use:   "token SUBJECT",
	Short: "Issue a JWT for the API",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cmd_opt.Config()
		if err != nil {
			return err
		}
		if cfg.HTTP.JWTSecret == "" {
			return errors.New("http.jwt_secret is not set")
		}
		ttl, _ := cmd.Flags().GetDuration("ttl")
		if ttl <= 0 {
			ttl = cfg.HTTP.TokenTTL
		}
		token, err := api.IssueToken(cfg.HTTP.JWTSecret, args[0], ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

// PasswdCmd prints the bcrypt hash for an http.users entry.
var PasswdCmd = &cobra.Command{
	Use:   "passwd PASSWORD",
	Short: "Hash a password for the http.users config",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := api.HashPassword(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

// hostPort splits a nats:// URL; a missing port means the NATS default.
func hostPort(raw string) (string, int, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", 0, fmt.Errorf("nats url %q: %w", raw, err)
	}
	if u.Port() == "" {
		return u.Hostname(), nats.DefaultPort, nil
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		return "", 0, fmt.Errorf("nats url %q: %w", raw, err)
	}
	return u.Hostname(), port, nil
}

func init() {
	Cmd.Flags().Bool("embedded-nats", false, "start an in-process NATS server on nats.url")
	Cmd.Flags().Bool("no-bus", false, "serve without NATS publishing")
	TokenCmd.Flags().Duration("ttl", 0, "token lifetime (default http.token_ttl)")
}
