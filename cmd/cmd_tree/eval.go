package cmd_tree

import (
	"fmt"
	"strings"

	"github.com/google/shlex"
	"github.com/rskv-p/treekit/bintree"

	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   `eval "POSTFIX"`,
	Short: `Build an expression tree from postfix ("3 4 * 7 +") and evaluate it`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tokens, err := shlex.Split(strings.Join(args, " "))
		if err != nil {
			return err
		}
		expr, err := ParsePostfix(tokens)
		if err != nil {
			return err
		}
		v, err := bintree.Evaluate(expr)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %g\n", bintree.Parenthesize(expr), v)
		return nil
	},
}

// ParsePostfix builds an expression tree from postfix tokens.
func ParsePostfix(tokens []string) (*bintree.Node[string], error) {
	var stack []*bintree.Node[string]
	for _, tok := range tokens {
		switch tok {
		case "+", "-", "*", "/":
			if len(stack) < 2 {
				return nil, fmt.Errorf("%w: operator %q needs two operands", bintree.ErrBadExpression, tok)
			}
			l, r := stack[len(stack)-2], stack[len(stack)-1]
			stack = append(stack[:len(stack)-2], bintree.New(tok, l, r))
		default:
			stack = append(stack, bintree.Leaf(tok))
		}
	}
	if len(stack) != 1 {
		return nil, fmt.Errorf("%w: %d dangling operands", bintree.ErrBadExpression, len(stack))
	}
	return stack[0], nil
}
