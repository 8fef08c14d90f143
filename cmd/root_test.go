package cmd_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	natsserver "github.com/nats-io/nats-server/v2/test"
	"github.com/nats-io/nats.go"
	"github.com/rskv-p/treekit/bintree"
	"github.com/rskv-p/treekit/bus"
	"github.com/rskv-p/treekit/cmd"
	"github.com/rskv-p/treekit/cmd/cmd_opt"
	"github.com/rskv-p/treekit/cmd/cmd_tree"
	"github.com/rskv-p/treekit/constant"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TREEKIT_CONFIG", "")
	t.Setenv("TREEKIT_LOG_LEVEL", "error")
	t.Setenv("TREEKIT_LOG_TO_FILE", "false")
	t.Setenv("TREEKIT_DB_DSN", filepath.Join(t.TempDir(), "treekit.db"))
}

// resetFlags puts every flag back to its default between runs; cobra
// keeps flag state on the package-level commands.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd_opt.Reset()
	root := cmd.Root()
	resetFlags(root)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(append([]string{"--no-color"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestBuild(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "build", "0", "1", "2", "3", "-k", "3")
	require.NoError(t, err)
	assert.Equal(t, "Tree(0, [Tree(1), Tree(2), Tree(3)])\n", out)

	out, err = run(t, "build", "0", "1", "2", "3")
	require.NoError(t, err)
	assert.Equal(t, "Tree(0, [Tree(1, [Tree(3)]), Tree(2)])\n", out)
}

func TestBuild_ConfigBranching(t *testing.T) {
	setupEnv(t)
	t.Setenv("TREEKIT_BRANCHING", "3")

	out, err := run(t, "build", "0", "1", "2", "3")
	require.NoError(t, err)
	assert.Equal(t, "Tree(0, [Tree(1), Tree(2), Tree(3)])\n", out)
}

func TestBuild_BadArgs(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "build", "0", "x")
	assert.ErrorIs(t, err, constant.ErrBadRequest)

	_, err = run(t, "build", "0", "1", "-k", "0")
	assert.ErrorIs(t, err, constant.ErrBadRequest)
}

func TestWalk(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "walk", "post", "0", "1", "2", "3", "4")
	require.NoError(t, err)
	assert.Equal(t, "3 4 1 2 0\n", out)

	out, err = run(t, "walk", "in", "5", "3", "8", "--bst")
	require.NoError(t, err)
	assert.Equal(t, "3 5 8\n", out)

	_, err = run(t, "walk", "in", "0", "1")
	assert.ErrorIs(t, err, constant.ErrNotBinary)

	_, err = run(t, "walk", "sideways", "0", "1")
	assert.ErrorIs(t, err, constant.ErrUnknownOrder)
}

func TestRenderAndStats(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "render", "0", "1", "2")
	require.NoError(t, err)
	assert.Equal(t, "0\n├── 1\n└── 2\n", out)

	out, err = run(t, "stats", "2", "1", "3", "--bst")
	require.NoError(t, err)
	assert.Contains(t, out, "binary")
	assert.Contains(t, out, "height")
}

func TestBST(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "bst", "insert", "5", "3", "8")
	require.NoError(t, err)
	assert.Equal(t, "5\n├── L 3\n└── R 8\n3 -> 5 -> 8 ->|\n", out)

	out, err = run(t, "bst", "contains", "6", "--values", "8,4,12,2,6")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = run(t, "bst", "between", "3", "11", "--values", "8,4,12,2,6,10,14")
	require.NoError(t, err)
	assert.Equal(t, "4 6 8 10\n", out)

	out, err = run(t, "bst", "contains", "6")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)
}

func TestEval(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "eval", "3 4 * 7 +")
	require.NoError(t, err)
	assert.Equal(t, "((3 * 4) + 7) = 19\n", out)

	_, err = run(t, "eval", "1 0 /")
	assert.ErrorIs(t, err, bintree.ErrBadExpression)
}

func TestParsePostfix(t *testing.T) {
	expr, err := cmd_tree.ParsePostfix([]string{"1", "2", "+", "3", "*"})
	require.NoError(t, err)
	assert.Equal(t, "((1 + 2) * 3)", bintree.Parenthesize(expr))

	_, err = cmd_tree.ParsePostfix([]string{"1", "+"})
	assert.ErrorIs(t, err, bintree.ErrBadExpression)

	_, err = cmd_tree.ParsePostfix([]string{"1", "2"})
	assert.ErrorIs(t, err, bintree.ErrBadExpression)

	_, err = cmd_tree.ParsePostfix(nil)
	assert.ErrorIs(t, err, bintree.ErrBadExpression)
}

func TestScript(t *testing.T) {
	setupEnv(t)

	path := filepath.Join(t.TempDir(), "walk.tk")
	require.NoError(t, os.WriteFile(path, []byte("build 0 2 1 2 3 4\nwalk level\n"), 0o644))

	out, err := run(t, "script", path)
	require.NoError(t, err)
	assert.Equal(t, "built tree with 5 nodes\n0 1 2 3 4\n", out)

	bad := filepath.Join(t.TempDir(), "bad.tk")
	require.NoError(t, os.WriteFile(bad, []byte("build 0 2\nfrobnicate\n"), 0o644))
	_, err = run(t, "script", bad)
	assert.ErrorIs(t, err, constant.ErrUnknownCommand)
	assert.Contains(t, err.Error(), "line 2")
}

func TestStoreCommands(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "save", "small", "0", "1", "2")
	require.NoError(t, err)
	genID := strings.TrimSpace(out)
	require.NotEmpty(t, genID)

	out, err = run(t, "save", "search", "5", "3", "8", "--bst")
	require.NoError(t, err)
	binID := strings.TrimSpace(out)

	out, err = run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, genID)
	assert.Contains(t, out, "small")
	assert.Contains(t, out, "search")

	out, err = run(t, "load", genID)
	require.NoError(t, err)
	assert.Equal(t, "small (tree)\n0\n├── 1\n└── 2\n", out)

	out, err = run(t, "load", binID)
	require.NoError(t, err)
	assert.Equal(t, "search (binary)\n5\n├── L 3\n└── R 8\n", out)

	_, err = run(t, "delete", genID)
	require.NoError(t, err)

	_, err = run(t, "load", genID)
	assert.ErrorIs(t, err, constant.ErrTreeNotFound)

	_, err = run(t, "delete", genID)
	assert.ErrorIs(t, err, constant.ErrTreeNotFound)
}

func TestTokenAndPasswd(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "token", "alice")
	assert.Error(t, err)

	t.Setenv("TREEKIT_HTTP_JWT_SECRET", "s3cret")
	out, err := run(t, "token", "alice", "--ttl", "5m")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(strings.TrimSpace(out), "."))

	out, err = run(t, "passwd", "pw")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "$2a$"), out)
}

func runNATS(t *testing.T) *server.Server {
	t.Helper()
	opts := natsserver.DefaultTestOptions
	opts.Port = -1
	s := natsserver.RunServer(&opts)
	t.Cleanup(s.Shutdown)
	return s
}

func TestPublish(t *testing.T) {
	setupEnv(t)
	ns := runNATS(t)
	t.Setenv("TREEKIT_NATS_URL", ns.ClientURL())
	t.Setenv("TREEKIT_NATS_SUBJECT", "test.visit")

	out, err := run(t, "save", "pub", "0", "1", "2", "3")
	require.NoError(t, err)
	id := strings.TrimSpace(out)

	nc, err := nats.Connect(ns.ClientURL())
	require.NoError(t, err)
	t.Cleanup(nc.Close)

	c, err := bus.Collect(nc, "test.visit")
	require.NoError(t, err)

	out, err = run(t, "publish", id, "level")
	require.NoError(t, err)
	assert.Equal(t, "published 4 visits to test.visit\n", out)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	vals, err := c.Ints(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, vals)

	_, err = run(t, "publish", id, "in")
	assert.ErrorIs(t, err, constant.ErrNotBinary)
}

func TestLogs(t *testing.T) {
	setupEnv(t)
	path := filepath.Join(t.TempDir(), "treekit.log")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\nc\n"), 0o644))
	t.Setenv("TREEKIT_LOG_FILE", path)

	out, err := run(t, "logs", "-n", "2")
	require.NoError(t, err)
	assert.Equal(t, "b\nc\n", out)

	t.Setenv("TREEKIT_LOG_FILE", filepath.Join(t.TempDir(), "missing.log"))
	_, err = run(t, "logs")
	assert.Error(t, err)
}
