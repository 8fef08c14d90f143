// Package shell runs line-oriented scripts against an in-memory general
// tree and binary search tree.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/google/shlex"
	"github.com/rs/zerolog"
	"github.com/rskv-p/treekit/bintree"
	"github.com/rskv-p/treekit/constant"
	"github.com/rskv-p/treekit/inspect"
	"github.com/rskv-p/treekit/pkg/x_log"
	"github.com/rskv-p/treekit/recover"
	"github.com/rskv-p/treekit/render"
	"github.com/rskv-p/treekit/tree"
)

// Session is the state a script operates on.
type Session struct {
	Tree *tree.Node[int]
	BST  *bintree.Node[int]

	out  io.Writer
	draw *render.Renderer
	log  zerolog.Logger
	cmds map[string]command
}

type command struct {
	usage string
	min   int
	run   func(s *Session, args []string) error
}

// New creates an empty session writing results to out.
func New(out io.Writer, color bool) *Session {
	s := &Session{
		out:  out,
		draw: render.New(color),
		log:  x_log.New("shell"),
	}
	s.cmds = map[string]command{
		"build":    {"build ROOT K [V...]", 2, (*Session).build},
		"insert":   {"insert V...", 1, (*Session).insert},
		"walk":     {"walk ORDER [bst]", 1, (*Session).walk},
		"stats":    {"stats [bst]", 0, (*Session).stats},
		"contains": {"contains V [bst]", 1, (*Session).contains},
		"between":  {"between LO HI", 2, (*Session).between},
		"leaves":   {"leaves [bst]", 0, (*Session).leaves},
		"depth":    {"depth D", 1, (*Session).depth},
		"show":     {"show [bst]", 0, (*Session).show},
		"reset":    {"reset", 0, (*Session).reset},
		"help":     {"help", 0, (*Session).help},
	}
	return s
}

//---------------------
// Execution
//---------------------

// Exec runs one command line. Blank lines and # comments do nothing.
func (s *Session) Exec(line string) (err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	parts, err := shlex.Split(line)
	if err != nil {
		return fmt.Errorf("parse %q: %w", line, err)
	}
	if len(parts) == 0 {
		return nil
	}

	name, args := strings.ToLower(parts[0]), parts[1:]
	cmd, ok := s.cmds[name]
	if !ok {
		return fmt.Errorf("%w: %s", constant.ErrUnknownCommand, name)
	}
	if len(args) < cmd.min {
		return fmt.Errorf("%w: usage: %s", constant.ErrBadRequest, cmd.usage)
	}

	s.log.Debug().Str("cmd", name).Strs("args", args).Msg("exec")
	defer recover.Guard("shell."+name, &err)
	return cmd.run(s, args)
}

// Run executes a script and stops at the first failing line.
func (s *Session) Run(r io.Reader) error {
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		if err := s.Exec(sc.Text()); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	return sc.Err()
}

//---------------------
// Commands
//---------------------

func (s *Session) build(args []string) error {
	nums, err := ints(args)
	if err != nil {
		return err
	}
	if nums[1] < 1 {
		return fmt.Errorf("%w: branching must be >= 1", constant.ErrBadRequest)
	}
	s.Tree = tree.FromSequence(nums[0], nums[2:], nums[1])
	fmt.Fprintf(s.out, "built tree with %d nodes\n", tree.Count(s.Tree))
	return nil
}

func (s *Session) insert(args []string) error {
	nums, err := ints(args)
	if err != nil {
		return err
	}
	for _, v := range nums {
		s.BST = bintree.Insert(s.BST, v)
	}
	fmt.Fprintf(s.out, "bst has %d nodes\n", bintree.Count(s.BST))
	return nil
}

func (s *Session) walk(args []string) error {
	var (
		vals []int
		err  error
	)
	if onBST(args[1:]) {
		vals, err = inspect.BinaryValues(s.BST, args[0])
	} else {
		if s.Tree == nil {
			return constant.ErrEmptyTree
		}
		vals, err = inspect.Values(s.Tree, args[0])
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, render.Values(vals))
	return nil
}

func (s *Session) stats(args []string) error {
	if onBST(args) {
		fmt.Fprintln(s.out, s.draw.Stats(inspect.BinaryStats(s.BST)))
		return nil
	}
	if s.Tree == nil {
		return constant.ErrEmptyTree
	}
	fmt.Fprintln(s.out, s.draw.Stats(inspect.TreeStats(s.Tree)))
	return nil
}

func (s *Session) contains(args []string) error {
	v, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: %q is not an integer", constant.ErrBadRequest, args[0])
	}
	found := false
	if onBST(args[1:]) {
		found = bintree.BSTContains(s.BST, v)
	} else {
		found = tree.Contains(s.Tree, v)
	}
	fmt.Fprintln(s.out, found)
	return nil
}

func (s *Session) between(args []string) error {
	nums, err := ints(args)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, render.Values(bintree.ListBetween(s.BST, nums[0], nums[1])))
	return nil
}

func (s *Session) leaves(args []string) error {
	if onBST(args) {
		var out []int
		bintree.Preorder(s.BST, bintree.VisitorFunc[int](func(n *bintree.Node[int]) {
			if n.IsLeaf() {
				out = append(out, n.Value)
			}
		}))
		fmt.Fprintln(s.out, render.Values(out))
		return nil
	}
	if s.Tree == nil {
		return constant.ErrEmptyTree
	}
	fmt.Fprintln(s.out, render.Values(tree.ListLeaves(s.Tree)))
	return nil
}

func (s *Session) depth(args []string) error {
	d, err := strconv.Atoi(args[0])
	if err != nil || d < 0 {
		return fmt.Errorf("%w: depth %q", constant.ErrBadRequest, args[0])
	}
	fmt.Fprintln(s.out, render.Values(tree.ValuesAtDepth(s.Tree, d)))
	return nil
}

func (s *Session) show(args []string) error {
	var out string
	if onBST(args) {
		out = render.Binary(s.draw, s.BST)
	} else {
		out = render.Tree(s.draw, s.Tree)
	}
	if out != "" {
		fmt.Fprintln(s.out, out)
	}
	return nil
}

func (s *Session) reset(_ []string) error {
	s.Tree, s.BST = nil, nil
	return nil
}

func (s *Session) help(_ []string) error {
	usages := make([]string, 0, len(s.cmds))
	for _, c := range s.cmds {
		usages = append(usages, c.usage)
	}
	sort.Strings(usages)
	fmt.Fprintln(s.out, strings.Join(usages, "\n"))
	return nil
}

//---------------------
// Helpers
//---------------------

func onBST(args []string) bool {
	return len(args) > 0 && (args[0] == "bst" || args[0] == constant.KindBinary)
}

func ints(args []string) ([]int, error) {
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
