package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rskv-p/treekit/bintree"
	"github.com/rskv-p/treekit/bus"
	"github.com/rskv-p/treekit/codec"
	"github.com/rskv-p/treekit/constant"
	"github.com/rskv-p/treekit/inspect"
	"github.com/rskv-p/treekit/pkg/x_log"
	"github.com/rskv-p/treekit/store"
	"github.com/rskv-p/treekit/tree"
)

//---------------------
// Payloads
//---------------------

type createRequest struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Root      *int   `json:"root"`
	Values    []int  `json:"values"`
	Branching int    `json:"branching"`
}

type insertRequest struct {
	Value  *int  `json:"value"`
	Values []int `json:"values"`
}

type treeView struct {
	store.Snapshot
	Payload json.RawMessage `json:"tree"`
	Stats   inspect.Stats   `json:"stats"`
}

// loaded is a snapshot decoded into whichever form it holds.
type loaded struct {
	snap *store.Snapshot
	gen  *tree.Node[int]
	bin  *bintree.Node[int]
}

func (l *loaded) binary() bool { return l.snap.Kind == constant.KindBinary }

func (l *loaded) stats() inspect.Stats {
	if l.binary() {
		return inspect.BinaryStats(l.bin)
	}
	return inspect.TreeStats(l.gen)
}

func (l *loaded) walk(order string, fn func(int)) error {
	if l.binary() {
		return inspect.WalkBinary(l.bin, order, fn)
	}
	return inspect.Walk(l.gen, order, fn)
}

//---------------------
// Handlers
//---------------------

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: invalid JSON", constant.ErrBadRequest))
		return
	}

	kind, err := constant.NormalizeKind(req.Kind)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var snap *store.Snapshot
	switch kind {
	case constant.KindTree:
		if req.Root == nil {
			s.fail(w, r, fmt.Errorf("%w: root is required", constant.ErrBadRequest))
			return
		}
		k := req.Branching
		if k == 0 {
			k = s.branching
		}
		if k < 1 {
			s.fail(w, r, fmt.Errorf("%w: branching must be >= 1", constant.ErrBadRequest))
			return
		}
		snap, err = s.store.SaveTree(r.Context(), req.Name, tree.FromSequence(*req.Root, req.Values, k))
	case constant.KindBinary:
		values := req.Values
		if req.Root != nil {
			values = append([]int{*req.Root}, values...)
		}
		snap, err = s.store.SaveBinary(r.Context(), req.Name, bintree.FromValues(values...))
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if list == nil {
		list = []store.Snapshot{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	l, err := s.load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	view := treeView{Snapshot: *l.snap, Payload: json.RawMessage(l.snap.Payload), Stats: l.stats()}
	view.Snapshot.Payload = ""
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleWalk(w http.ResponseWriter, r *http.Request) {
	l, err := s.load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	order := chi.URLParam(r, "order")
	values := []int{}
	if err := l.walk(order, func(v int) { values = append(values, v) }); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"order": order, "values": values})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	l, err := s.load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l.stats())
}

func (s *Server) handleContains(w http.ResponseWriter, r *http.Request) {
	v, err := queryInt(r, "v")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	l, err := s.load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var found bool
	if l.binary() {
		found = bintree.BSTContains(l.bin, v)
	} else {
		found = tree.Contains(l.gen, v)
	}
	writeJSON(w, http.StatusOK, map[string]any{"value": v, "found": found})
}

func (s *Server) handleBetween(w http.ResponseWriter, r *http.Request) {
	start, err := queryInt(r, "start")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	end, err := queryInt(r, "end")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	l, err := s.load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !l.binary() {
		s.fail(w, r, constant.ErrNotBinary)
		return
	}

	values := bintree.ListBetween(l.bin, start, end)
	if values == nil {
		values = []int{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"start": start, "end": end, "values": values})
}

func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	var req insertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: invalid JSON", constant.ErrBadRequest))
		return
	}
	values := req.Values
	if req.Value != nil {
		values = append(values, *req.Value)
	}
	if len(values) == 0 {
		s.fail(w, r, fmt.Errorf("%w: value is required", constant.ErrBadRequest))
		return
	}

	snap, err := s.store.InsertBinary(r.Context(), chi.URLParam(r, "id"), values...)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	if s.nc == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("event bus not configured"))
		return
	}
	l, err := s.load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	order := chi.URLParam(r, "order")
	var n int
	if l.binary() {
		n, err = bus.PublishBinary(s.nc, s.subject, l.snap.ID, order, l.bin)
	} else {
		n, err = bus.PublishTree(s.nc, s.subject, l.snap.ID, order, l.gen)
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"subject": s.subject, "published": n})
}

//---------------------
// Helpers
//---------------------

func (s *Server) load(ctx context.Context, id string) (*loaded, error) {
	snap, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	l := &loaded{snap: snap}
	if l.binary() {
		l.bin, err = codec.DecodeBinary[int]([]byte(snap.Payload))
	} else {
		l.gen, err = codec.DecodeTree[int]([]byte(snap.Payload))
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		x_log.From(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	writeError(w, status, err)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, constant.ErrTreeNotFound):
		return http.StatusNotFound
	case errors.Is(err, constant.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, constant.ErrBadRequest),
		errors.Is(err, constant.ErrUnknownKind),
		errors.Is(err, constant.ErrUnknownOrder),
		errors.Is(err, constant.ErrNotBinary),
		errors.Is(err, constant.ErrKindMismatch),
		errors.Is(err, constant.ErrEmptyTree):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: query %s=%q is not an integer", constant.ErrBadRequest, key, raw)
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
