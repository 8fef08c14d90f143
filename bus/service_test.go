package bus_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/nats-io/nuid"
	"github.com/rskv-p/treekit/bintree"
	"github.com/rskv-p/treekit/bus"
	"github.com/rskv-p/treekit/codec"
	"github.com/rskv-p/treekit/config"
	"github.com/rskv-p/treekit/inspect"
	"github.com/rskv-p/treekit/store"
	"github.com/rskv-p/treekit/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(config.DBConfig{
		Dialect: "sqlite",
		DSN:     "file:" + nuid.Next() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestService_Walk(t *testing.T) {
	nc := connect(t, runServer(t))
	st := openStore(t)

	svc, err := bus.StartService(nc, "tk", st)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Stop() })

	snap, err := st.SaveBinary(context.Background(), "bst", bintree.FromValues(8, 4, 12, 2))
	require.NoError(t, err)

	var reply bus.WalkReply
	require.NoError(t, bus.Request(waitCtx(t), nc, "tk", bus.EndpointWalk,
		&bus.Query{ID: snap.ID, Order: "inorder"}, &reply))
	assert.Equal(t, "in", reply.Order)
	assert.Equal(t, []int{2, 4, 8, 12}, reply.Values)

	inline, err := codec.EncodeTree(tree.FromSequence(0, []int{1, 2, 3}, 2))
	require.NoError(t, err)
	require.NoError(t, bus.Request(waitCtx(t), nc, "tk", bus.EndpointWalk,
		&bus.Query{Tree: json.RawMessage(inline), Order: "post"}, &reply))
	assert.Equal(t, []int{3, 1, 2, 0}, reply.Values)
}

func TestService_Stats(t *testing.T) {
	nc := connect(t, runServer(t))
	svc, err := bus.StartService(nc, "tk", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Stop() })

	inline, err := codec.EncodeBinary(bintree.FromValues(2, 1, 3))
	require.NoError(t, err)

	var s inspect.Stats
	require.NoError(t, bus.Request(waitCtx(t), nc, "tk", bus.EndpointStats,
		&bus.Query{Kind: "bst", Tree: json.RawMessage(inline)}, &s))
	assert.Equal(t, "binary", s.Kind)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 2, s.Height)
	require.NotNil(t, s.IsBST)
	assert.True(t, *s.IsBST)
}

func TestService_Errors(t *testing.T) {
	nc := connect(t, runServer(t))
	st := openStore(t)
	svc, err := bus.StartService(nc, "tk", st)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Stop() })

	inline, err := codec.EncodeTree(tree.New(1))
	require.NoError(t, err)

	cases := map[string]struct {
		q    bus.Query
		code string
	}{
		"missing id":   {bus.Query{ID: "nope", Order: "pre"}, "404"},
		"bad order":    {bus.Query{Tree: inline, Order: "zigzag"}, "400"},
		"inorder tree": {bus.Query{Tree: inline, Order: "in"}, "400"},
		"bad kind":     {bus.Query{Kind: "trie", Tree: inline, Order: "pre"}, "400"},
		"bad payload":  {bus.Query{Tree: json.RawMessage(`{"value":"x"}`), Order: "pre"}, "400"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var reply bus.WalkReply
			err := bus.Request(waitCtx(t), nc, "tk", bus.EndpointWalk, &tc.q, &reply)
			var se *bus.ServiceError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tc.code, se.Code)
		})
	}
}
