package bus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/micro"
	"github.com/rskv-p/treekit/bintree"
	"github.com/rskv-p/treekit/codec"
	"github.com/rskv-p/treekit/constant"
	"github.com/rskv-p/treekit/inspect"
	"github.com/rskv-p/treekit/pkg/x_log"
	"github.com/rskv-p/treekit/store"
	"github.com/rskv-p/treekit/tree"
)

// Endpoint names under the service group.
const (
	EndpointWalk  = "walk"
	EndpointStats = "stats"

	ServiceVersion = "1.0.0"
)

// Snapshots resolves stored trees for requests that name an id.
type Snapshots interface {
	Get(ctx context.Context, id string) (*store.Snapshot, error)
}

// Query is the request body of every endpoint. Either ID names a stored
// snapshot or Kind and Tree carry one inline.
type Query struct {
	ID    string          `json:"id,omitempty"`
	Kind  string          `json:"kind,omitempty"`
	Order string          `json:"order,omitempty"`
	Tree  json.RawMessage `json:"tree,omitempty"`
}

// WalkReply is the walk endpoint's answer.
type WalkReply struct {
	Order  string `json:"order"`
	Values []int  `json:"values"`
}

//---------------------
// Service
//---------------------

// StartService registers the tree endpoints on nc as "<group>.walk" and
// "<group>.stats". snaps may be nil, in which case only inline trees are
// accepted.
func StartService(nc *nats.Conn, group string, snaps Snapshots) (micro.Service, error) {
	log := x_log.New("bus").With().Str("group", group).Logger()

	svc, err := micro.AddService(nc, micro.Config{
		Name:        constant.ServiceName,
		Version:     ServiceVersion,
		Description: "tree walks and shape statistics",
	})
	if err != nil {
		return nil, fmt.Errorf("add service: %w", err)
	}

	h := &handler{snaps: snaps}
	g := svc.AddGroup(group)
	if err := g.AddEndpoint(EndpointWalk, micro.HandlerFunc(h.walk)); err != nil {
		_ = svc.Stop()
		return nil, fmt.Errorf("add endpoint %s: %w", EndpointWalk, err)
	}
	if err := g.AddEndpoint(EndpointStats, micro.HandlerFunc(h.stats)); err != nil {
		_ = svc.Stop()
		return nil, fmt.Errorf("add endpoint %s: %w", EndpointStats, err)
	}

	log.Info().Str("id", svc.Info().ID).Msg("service started")
	return svc, nil
}

type handler struct {
	snaps Snapshots
}

// resolved is a query's tree decoded into whichever form it holds.
type resolved struct {
	kind string
	gen  *tree.Node[int]
	bin  *bintree.Node[int]
}

func (h *handler) resolve(q *Query) (*resolved, error) {
	kind, payload := q.Kind, []byte(q.Tree)
	if q.ID != "" {
		if h.snaps == nil {
			return nil, fmt.Errorf("%w: no snapshot store", constant.ErrBadRequest)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		snap, err := h.snaps.Get(ctx, q.ID)
		if err != nil {
			return nil, err
		}
		kind, payload = snap.Kind, []byte(snap.Payload)
	}

	k, err := constant.NormalizeKind(kind)
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		payload = []byte("null")
	}

	r := &resolved{kind: k}
	if k == constant.KindBinary {
		r.bin, err = codec.DecodeBinary[int](payload)
	} else {
		r.gen, err = codec.DecodeTree[int](payload)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", constant.ErrBadRequest, err)
	}
	return r, nil
}

func (h *handler) walk(req micro.Request) {
	q, r, ok := h.decode(req)
	if !ok {
		return
	}
	order, err := constant.NormalizeOrder(q.Order)
	if err != nil {
		respondError(req, err)
		return
	}

	var vals []int
	if r.kind == constant.KindBinary {
		vals, err = inspect.BinaryValues(r.bin, order)
	} else {
		vals, err = inspect.Values(r.gen, order)
	}
	if err != nil {
		respondError(req, err)
		return
	}
	if vals == nil {
		vals = []int{}
	}
	_ = req.RespondJSON(WalkReply{Order: order, Values: vals})
}

func (h *handler) stats(req micro.Request) {
	_, r, ok := h.decode(req)
	if !ok {
		return
	}
	if r.kind == constant.KindBinary {
		_ = req.RespondJSON(inspect.BinaryStats(r.bin))
		return
	}
	_ = req.RespondJSON(inspect.TreeStats(r.gen))
}

func (h *handler) decode(req micro.Request) (*Query, *resolved, bool) {
	var q Query
	if err := json.Unmarshal(req.Data(), &q); err != nil {
		respondError(req, fmt.Errorf("%w: %v", constant.ErrBadRequest, err))
		return nil, nil, false
	}
	r, err := h.resolve(&q)
	if err != nil {
		respondError(req, err)
		return nil, nil, false
	}
	return &q, r, true
}

func respondError(req micro.Request, err error) {
	_ = req.Error(errorCode(err), err.Error(), nil)
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, constant.ErrTreeNotFound):
		return "404"
	case errors.Is(err, constant.ErrBadRequest),
		errors.Is(err, constant.ErrUnknownKind),
		errors.Is(err, constant.ErrUnknownOrder),
		errors.Is(err, constant.ErrNotBinary):
		return "400"
	default:
		return "500"
	}
}

//---------------------
// Client
//---------------------

// ServiceError is a non-success reply from an endpoint.
type ServiceError struct {
	Code        string
	Description string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service error %s: %s", e.Code, e.Description)
}

// Request sends q to "<group>.<endpoint>" and decodes the reply into out.
func Request(ctx context.Context, nc *nats.Conn, group, endpoint string, q *Query, out any) error {
	data, err := json.Marshal(q)
	if err != nil {
		return err
	}
	msg, err := nc.RequestWithContext(ctx, group+"."+endpoint, data)
	if err != nil {
		return fmt.Errorf("request %s.%s: %w", group, endpoint, err)
	}
	if code := msg.Header.Get(micro.ErrorCodeHeader); code != "" {
		return &ServiceError{Code: code, Description: msg.Header.Get(micro.ErrorHeader)}
	}
	return json.Unmarshal(msg.Data, out)
}
