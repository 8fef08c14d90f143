// Package cmd_opt holds the flags and lazily loaded state shared by all
// treekit subcommands.
package cmd_opt

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/rskv-p/treekit/bintree"
	"github.com/rskv-p/treekit/config"
	"github.com/rskv-p/treekit/constant"
	"github.com/rskv-p/treekit/render"
	"github.com/rskv-p/treekit/store"
	"github.com/rskv-p/treekit/tree"
)

// Global flags, bound by the root command.
var (
	ConfigPath string
	LogLevel   string
	NoColor    bool
)

var cfg *config.Config

// Config loads the config once per process.
func Config() (*config.Config, error) {
	if cfg != nil {
		return cfg, nil
	}
	c, err := config.LoadWithFallback(ConfigPath)
	if err != nil {
		return nil, err
	}
	if LogLevel != "" {
		c.Log.Level = LogLevel
	}
	cfg = c
	return cfg, nil
}

// Reset drops the cached config.
func Reset() { cfg = nil }

// Store opens the configured snapshot store.
func Store() (*store.Store, error) {
	c, err := Config()
	if err != nil {
		return nil, err
	}
	return store.Open(c.DB)
}

// Renderer returns a renderer colored only on a terminal.
func Renderer() *render.Renderer {
	color := !NoColor && isatty.IsTerminal(os.Stdout.Fd())
	return render.New(color)
}

// Ints parses integer arguments.
func Ints(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", constant.ErrBadRequest, a)
		}
		out[i] = v
	}
	return out, nil
}

// GeneralTree builds ROOT [V...] with branching k.
func GeneralTree(args []string, k int) (*tree.Node[int], error) {
	nums, err := Ints(args)
	if err != nil {
		return nil, err
	}
	if len(nums) == 0 {
		return nil, fmt.Errorf("%w: ROOT is required", constant.ErrBadRequest)
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: branching must be >= 1", constant.ErrBadRequest)
	}
	return tree.FromSequence(nums[0], nums[1:], k), nil
}

// BinaryTree inserts every argument into a BST in order.
func BinaryTree(args []string) (*bintree.Node[int], error) {
	nums, err := Ints(args)
	if err != nil {
		return nil, err
	}
	return bintree.FromValues(nums...), nil
}
