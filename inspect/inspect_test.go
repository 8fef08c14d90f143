package inspect_test

import (
	"testing"

	"github.com/rskv-p/treekit/bintree"
	"github.com/rskv-p/treekit/constant"
	"github.com/rskv-p/treekit/inspect"
	"github.com/rskv-p/treekit/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValues(t *testing.T) {
	g := tree.FromSequence(0, []int{1, 2, 3, 4}, 2)

	cases := map[string][]int{
		"pre":        {0, 1, 3, 4, 2},
		"preorder":   {0, 1, 3, 4, 2},
		"post":       {3, 4, 1, 2, 0},
		"level":      {0, 1, 2, 3, 4},
		"levelorder": {0, 1, 2, 3, 4},
	}
	for order, want := range cases {
		got, err := inspect.Values(g, order)
		require.NoError(t, err, order)
		assert.Equal(t, want, got, order)
	}

	_, err := inspect.Values(g, "in")
	assert.ErrorIs(t, err, constant.ErrNotBinary)

	_, err = inspect.Values(g, "sideways")
	assert.ErrorIs(t, err, constant.ErrUnknownOrder)

	empty, err := inspect.Values[int](nil, "pre")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestBinaryValues(t *testing.T) {
	b := bintree.FromValues(8, 4, 12, 2, 6)

	got, err := inspect.BinaryValues(b, "in")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 6, 8, 12}, got)

	got, err = inspect.BinaryValues(b, "level")
	require.NoError(t, err)
	assert.Equal(t, []int{8, 4, 12, 2, 6}, got)

	_, err = inspect.BinaryValues(b, "zig")
	assert.ErrorIs(t, err, constant.ErrUnknownOrder)
}

func TestTreeStats(t *testing.T) {
	g := tree.FromSequence(0, []int{1, 2, 3, 4, 5}, 2)
	s := inspect.TreeStats(g)

	assert.Equal(t, constant.KindTree, s.Kind)
	assert.Equal(t, 3, s.Height)
	assert.Equal(t, 6, s.Count)
	assert.Equal(t, 3, s.Leaves)
	assert.Equal(t, 3, s.Internal)
	assert.Equal(t, 2, s.Arity)
	assert.Equal(t, []int{1, 2, 3}, s.Widths)
	assert.Nil(t, s.IsBST)

	zero := inspect.TreeStats[int](nil)
	assert.Zero(t, zero.Count)
	assert.Empty(t, zero.Widths)
}

func TestBinaryStats(t *testing.T) {
	s := inspect.BinaryStats(bintree.FromValues(8, 4, 12, 2))
	assert.Equal(t, 3, s.Height)
	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 2, s.Leaves)
	assert.Equal(t, []int{1, 2, 1}, s.Widths)
	require.NotNil(t, s.IsBST)
	assert.True(t, *s.IsBST)

	empty := inspect.BinaryStats(nil)
	assert.Zero(t, empty.Height)
	assert.Equal(t, []int{}, empty.Widths)
	assert.True(t, *empty.IsBST)
}
