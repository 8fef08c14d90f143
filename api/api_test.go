package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nuid"
	"github.com/rskv-p/treekit/api"
	"github.com/rskv-p/treekit/bus"
	"github.com/rskv-p/treekit/codec"
	"github.com/rskv-p/treekit/config"
	"github.com/rskv-p/treekit/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, secret string, opts ...api.Option) *httptest.Server {
	t.Helper()
	st, err := store.Open(config.DBConfig{
		Dialect: "sqlite",
		DSN:     "file:" + nuid.Next() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	srv := api.NewServer(st, config.HTTPConfig{JWTSecret: secret}, opts...)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url string, body any, token string) (*http.Response, map[string]any) {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(data)
	} else {
		rd = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, rd)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func createTree(t *testing.T, base string, body map[string]any) string {
	t.Helper()
	resp, out := do(t, http.MethodPost, base+"/trees", body, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, "%v", out)
	return out["id"].(string)
}

func ints(v any) []int {
	var out []int
	for _, x := range v.([]any) {
		out = append(out, int(x.(float64)))
	}
	return out
}

func TestGeneralTreeLifecycle(t *testing.T) {
	ts := newTestServer(t, "")
	id := createTree(t, ts.URL, map[string]any{
		"name": "seq", "kind": "tree", "root": 0, "values": []int{1, 2, 3, 4}, "branching": 2,
	})

	resp, out := do(t, http.MethodGet, ts.URL+"/trees/"+id, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "seq", out["name"])
	assert.Equal(t, float64(0), out["tree"].(map[string]any)["value"])
	assert.Equal(t, float64(5), out["stats"].(map[string]any)["count"])

	_, out = do(t, http.MethodGet, ts.URL+"/trees/"+id+"/walk/level", nil, "")
	assert.Equal(t, []int{0, 1, 2, 3, 4}, ints(out["values"]))

	_, out = do(t, http.MethodGet, ts.URL+"/trees/"+id+"/walk/pre", nil, "")
	assert.Equal(t, []int{0, 1, 3, 4, 2}, ints(out["values"]))

	_, out = do(t, http.MethodGet, ts.URL+"/trees/"+id+"/stats", nil, "")
	assert.Equal(t, float64(3), out["height"])
	assert.Equal(t, float64(3), out["leaves"])

	_, out = do(t, http.MethodGet, ts.URL+"/trees/"+id+"/contains?v=4", nil, "")
	assert.Equal(t, true, out["found"])

	resp, _ = do(t, http.MethodGet, ts.URL+"/trees/"+id+"/walk/in", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, http.MethodGet, ts.URL+"/trees/"+id+"/between?start=1&end=3", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, http.MethodDelete, ts.URL+"/trees/"+id, nil, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, http.MethodGet, ts.URL+"/trees/"+id, nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBinaryTreeLifecycle(t *testing.T) {
	ts := newTestServer(t, "")
	id := createTree(t, ts.URL, map[string]any{"kind": "bst", "values": []int{8, 4, 12}})

	resp, out := do(t, http.MethodPost, ts.URL+"/trees/"+id+"/insert", map[string]any{"values": []int{2, 6, 10, 14}}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(7), out["nodes"])

	_, out = do(t, http.MethodGet, ts.URL+"/trees/"+id+"/walk/in", nil, "")
	assert.Equal(t, []int{2, 4, 6, 8, 10, 12, 14}, ints(out["values"]))

	_, out = do(t, http.MethodGet, ts.URL+"/trees/"+id+"/between?start=3&end=11", nil, "")
	assert.Equal(t, []int{4, 6, 8, 10}, ints(out["values"]))

	_, out = do(t, http.MethodGet, ts.URL+"/trees/"+id+"/contains?v=7", nil, "")
	assert.Equal(t, false, out["found"])

	_, out = do(t, http.MethodGet, ts.URL+"/trees/"+id+"/stats", nil, "")
	assert.Equal(t, true, out["is_bst"])
}

func TestInsert_Concurrent(t *testing.T) {
	ts := newTestServer(t, "")
	id := createTree(t, ts.URL, map[string]any{"kind": "bst", "root": 0})

	const n = 40
	codes := make(chan int, n)
	var wg sync.WaitGroup
	for i := 1; i <= n; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			body := strings.NewReader(fmt.Sprintf(`{"value": %d}`, v))
			resp, err := http.Post(ts.URL+"/trees/"+id+"/insert", "application/json", body)
			if err != nil {
				codes <- 0
				return
			}
			resp.Body.Close()
			codes <- resp.StatusCode
		}(i)
	}
	wg.Wait()
	close(codes)
	for code := range codes {
		assert.Equal(t, http.StatusOK, code)
	}

	_, out := do(t, http.MethodGet, ts.URL+"/trees/"+id+"/stats", nil, "")
	assert.Equal(t, float64(n+1), out["count"])
	assert.Equal(t, true, out["is_bst"])
}

func TestList(t *testing.T) {
	ts := newTestServer(t, "")
	createTree(t, ts.URL, map[string]any{"name": "a", "root": 1})
	createTree(t, ts.URL, map[string]any{"name": "b", "kind": "bst", "values": []int{1}})

	resp, err := http.Get(ts.URL + "/trees")
	require.NoError(t, err)
	defer resp.Body.Close()

	var list []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 2)
	assert.NotContains(t, list[0], "payload")
}

func TestBadRequests(t *testing.T) {
	ts := newTestServer(t, "")

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"unknown kind", http.MethodPost, "/trees", map[string]any{"kind": "heap", "root": 1}, http.StatusBadRequest},
		{"missing root", http.MethodPost, "/trees", map[string]any{"kind": "tree"}, http.StatusBadRequest},
		{"bad branching", http.MethodPost, "/trees", map[string]any{"root": 1, "branching": -1}, http.StatusBadRequest},
		{"missing tree", http.MethodGet, "/trees/nope/stats", nil, http.StatusNotFound},
		{"bad query", http.MethodGet, "/trees/nope/contains?v=x", nil, http.StatusBadRequest},
		{"insert on missing", http.MethodPost, "/trees/nope/insert", map[string]any{"value": 1}, http.StatusNotFound},
		{"empty insert", http.MethodPost, "/trees/nope/insert", map[string]any{}, http.StatusBadRequest},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			resp, out := do(t, c.method, ts.URL+c.path, c.body, "")
			assert.Equal(t, c.status, resp.StatusCode)
			assert.NotEmpty(t, out["error"])
		})
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/trees", strings.NewReader("{"))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	id := createTree(t, ts.URL, map[string]any{"root": 1})
	resp, _ = do(t, http.MethodGet, ts.URL+"/trees/"+id+"/walk/sideways", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = do(t, http.MethodPost, ts.URL+"/trees/"+id+"/insert", map[string]any{"value": 1}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestJWT(t *testing.T) {
	ts := newTestServer(t, "s3cret")

	resp, _ := do(t, http.MethodGet, ts.URL+"/trees", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = do(t, http.MethodGet, ts.URL+"/healthz", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	token, err := api.IssueToken("s3cret", "tester", time.Minute)
	require.NoError(t, err)
	resp, _ = do(t, http.MethodGet, ts.URL+"/trees", nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	wrong, err := api.IssueToken("other", "tester", time.Minute)
	require.NoError(t, err)
	resp, _ = do(t, http.MethodGet, ts.URL+"/trees", nil, wrong)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	expired, err := api.IssueToken("s3cret", "tester", -time.Minute)
	require.NoError(t, err)
	resp, _ = do(t, http.MethodGet, ts.URL+"/trees", nil, expired)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	hash, err := api.HashPassword("pw")
	require.NoError(t, err)

	st, err := store.Open(config.DBConfig{
		Dialect: "sqlite",
		DSN:     "file:" + nuid.Next() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	srv := api.NewServer(st, config.HTTPConfig{
		JWTSecret: "s3cret",
		TokenTTL:  time.Minute,
		Users:     map[string]string{"ada": hash},
	})
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	resp, out := do(t, http.MethodPost, ts.URL+"/auth/login", map[string]any{"username": "ada", "password": "pw"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, "%v", out)
	assert.EqualValues(t, 60, out["expires_in"])

	resp, _ = do(t, http.MethodGet, ts.URL+"/trees", nil, out["token"].(string))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, http.MethodPost, ts.URL+"/auth/login", map[string]any{"username": "ada", "password": "nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = do(t, http.MethodPost, ts.URL+"/auth/login", map[string]any{"username": "bob", "password": "pw"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, err = api.HashPassword("")
	assert.Error(t, err)
}

func TestLogin_DisabledWithoutSecret(t *testing.T) {
	ts := newTestServer(t, "")
	resp, _ := do(t, http.MethodPost, ts.URL+"/auth/login", map[string]any{"username": "ada"}, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSubjectFromContext(t *testing.T) {
	token, err := api.IssueToken("k", "alice", time.Minute)
	require.NoError(t, err)

	var got string
	h := api.JWTMiddleware("k")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = api.SubjectFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/?token="+token, nil)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "alice", got)

	_, ok := api.SubjectFromContext(context.Background())
	assert.False(t, ok)
}

func TestStream(t *testing.T) {
	ts := newTestServer(t, "")
	id := createTree(t, ts.URL, map[string]any{"root": 0, "values": []int{1, 2, 3}, "branching": 3})

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/trees/" + id + "/stream/post"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	var values []int
	for {
		var ev codec.Event
		require.NoError(t, conn.ReadJSON(&ev))
		if ev.Type == codec.EventDone {
			assert.Equal(t, 4, ev.Seq)
			break
		}
		v, ok := ev.IntValue()
		require.True(t, ok)
		values = append(values, int(v))
	}
	assert.Equal(t, []int{1, 2, 3, 0}, values)
}

func TestStream_BadOrder(t *testing.T) {
	ts := newTestServer(t, "")
	id := createTree(t, ts.URL, map[string]any{"root": 0})

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/trees/" + id + "/stream/in"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPublish(t *testing.T) {
	ns, err := bus.StartEmbedded("127.0.0.1", -1)
	require.NoError(t, err)
	defer ns.Shutdown()

	nc, err := nats.Connect(ns.ClientURL())
	require.NoError(t, err)
	defer nc.Close()

	ts := newTestServer(t, "", api.WithBus(nc, "tk.api"))
	id := createTree(t, ts.URL, map[string]any{"kind": "bst", "values": []int{2, 1, 3}})

	c, err := bus.Collect(nc, "tk.api")
	require.NoError(t, err)

	resp, out := do(t, http.MethodPost, ts.URL+"/trees/"+id+"/publish/in", nil, "")
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, float64(3), out["published"])

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	got, err := c.Ints(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestPublish_NoBus(t *testing.T) {
	ts := newTestServer(t, "")
	id := createTree(t, ts.URL, map[string]any{"root": 0})

	resp, _ := do(t, http.MethodPost, ts.URL+"/trees/"+id+"/publish/pre", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
