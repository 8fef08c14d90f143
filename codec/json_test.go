package codec_test

import (
	"testing"

	"github.com/rskv-p/treekit/codec"
	"github.com/stretchr/testify/assert"
)

func TestMarshal(t *testing.T) {
	data, err := codec.Marshal(map[string]string{"foo": "bar"})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"foo":"bar"}`, string(data))
}

func TestUnmarshal(t *testing.T) {
	var out map[string]any
	err := codec.Unmarshal([]byte(`{"key":123}`), &out)
	assert.NoError(t, err)
	assert.Equal(t, float64(123), out["key"])
}

func TestUnmarshalInvalid(t *testing.T) {
	cases := map[string]string{
		"syntax":   `{invalid`,
		"empty":    ``,
		"trailing": `{"key":1} {"key":2}`,
		"garbage":  `{"key":1}x`,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			var out map[string]any
			assert.ErrorIs(t, codec.Unmarshal([]byte(in), &out), codec.ErrMalformed)
		})
	}
}

func TestDecodeRejectsTrailingData(t *testing.T) {
	_, err := codec.DecodeTree[int]([]byte(`{"value":1} []`))
	assert.ErrorIs(t, err, codec.ErrMalformed)

	_, err = codec.DecodeBinary[int]([]byte(`{"value":1}}`))
	assert.ErrorIs(t, err, codec.ErrMalformed)

	_, err = codec.DecodeEvent([]byte(`{"type":"visit"}{}`))
	assert.ErrorIs(t, err, codec.ErrMalformed)

	b, err := codec.DecodeBinary[int]([]byte(" {\"value\":1}\n"))
	assert.NoError(t, err)
	assert.Equal(t, 1, b.Value)
}

func TestMustMarshalPanic(t *testing.T) {
	type bad struct {
		C chan int
	}
	assert.Panics(t, func() { _ = codec.MustMarshal(bad{}) })
}
