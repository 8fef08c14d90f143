package constant_test

import (
	"testing"

	"github.com/rskv-p/treekit/constant"
	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	errs := []error{
		constant.ErrBadRequest,
		constant.ErrTreeNotFound,
		constant.ErrUnknownKind,
		constant.ErrUnknownOrder,
		constant.ErrNotBinary,
		constant.ErrKindMismatch,
		constant.ErrEmptyTree,
		constant.ErrUnknownCommand,
		constant.ErrUnauthorized,
	}
	for _, err := range errs {
		assert.Error(t, err)
		assert.NotEmpty(t, err.Error())
	}
}

func TestNormalizeKind(t *testing.T) {
	cases := map[string]string{
		"":        constant.KindTree,
		"tree":    constant.KindTree,
		"general": constant.KindTree,
		"bst":     constant.KindBinary,
		"binary":  constant.KindBinary,
	}
	for in, want := range cases {
		got, err := constant.NormalizeKind(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := constant.NormalizeKind("heap")
	assert.ErrorIs(t, err, constant.ErrUnknownKind)
}

func TestNormalizeOrder(t *testing.T) {
	for _, o := range constant.Orders {
		got, err := constant.NormalizeOrder(o)
		assert.NoError(t, err)
		assert.Equal(t, o, got)
	}

	got, err := constant.NormalizeOrder("bfs")
	assert.NoError(t, err)
	assert.Equal(t, constant.OrderLevel, got)

	_, err = constant.NormalizeOrder("zigzag")
	assert.ErrorIs(t, err, constant.ErrUnknownOrder)
}
