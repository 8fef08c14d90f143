// Package bus streams traversal visits over NATS.
package bus

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rskv-p/treekit/bintree"
	"github.com/rskv-p/treekit/codec"
	"github.com/rskv-p/treekit/config"
	"github.com/rskv-p/treekit/constant"
	"github.com/rskv-p/treekit/inspect"
	"github.com/rskv-p/treekit/pkg/x_log"
	"github.com/rskv-p/treekit/tree"
)

//---------------------
// Connection
//---------------------

// Connect dials the configured NATS server with logging handlers.
func Connect(cfg config.NATSConfig) (*nats.Conn, error) {
	log := x_log.New("bus")

	nc, err := nats.Connect(cfg.URL,
		nats.Name(constant.ServiceName),
		nats.Timeout(cfg.Timeout),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("nats disconnected")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info().Str("url", c.ConnectedUrl()).Msg("nats reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect %s: %w", cfg.URL, err)
	}
	return nc, nil
}

//---------------------
// Publisher
//---------------------

// Publisher sends one visit event per value, then a done event.
type Publisher struct {
	nc      *nats.Conn
	subject string
	treeID  string
	order   string
	timeout time.Duration

	seq int
	err error
	log zerolog.Logger
}

// NewPublisher creates a publisher for one traversal.
func NewPublisher(nc *nats.Conn, subject, treeID, order string) *Publisher {
	return &Publisher{
		nc:      nc,
		subject: subject,
		treeID:  treeID,
		order:   order,
		timeout: 5 * time.Second,
		log:     x_log.New("bus").With().Str("subject", subject).Str("tree", treeID).Logger(),
	}
}

// Visit publishes value. After the first failure later visits are dropped.
func (p *Publisher) Visit(value int) {
	if p.err != nil {
		return
	}
	ev := codec.NewVisit(p.treeID, p.order, p.seq, value)
	if err := p.nc.Publish(p.subject, ev.Encode()); err != nil {
		p.err = fmt.Errorf("publish visit %d: %w", p.seq, err)
		return
	}
	p.seq++
}

// Count is the number of visits published so far.
func (p *Publisher) Count() int { return p.seq }

// Done publishes the terminating event and flushes the connection.
func (p *Publisher) Done() error {
	ev := codec.NewDone(p.treeID, p.order, p.seq)
	if p.err != nil {
		ev = codec.NewError(p.treeID, p.order, p.err)
	}
	if err := p.nc.Publish(p.subject, ev.Encode()); err != nil && p.err == nil {
		p.err = fmt.Errorf("publish done: %w", err)
	}
	if err := p.nc.FlushTimeout(p.timeout); err != nil && p.err == nil {
		p.err = fmt.Errorf("flush: %w", err)
	}

	if p.err != nil {
		p.log.Error().Err(p.err).Msg("traversal publish failed")
		return p.err
	}
	p.log.Debug().Str("order", p.order).Int("count", p.seq).Msg("traversal published")
	return nil
}

// PublishTree walks a general tree and publishes every visit.
func PublishTree(nc *nats.Conn, subject, treeID, order string, t *tree.Node[int]) (int, error) {
	p := NewPublisher(nc, subject, treeID, order)
	if err := inspect.Walk(t, order, p.Visit); err != nil {
		return 0, err
	}
	return p.Count(), p.Done()
}

// PublishBinary walks a binary tree and publishes every visit.
func PublishBinary(nc *nats.Conn, subject, treeID, order string, t *bintree.Node[int]) (int, error) {
	p := NewPublisher(nc, subject, treeID, order)
	if err := inspect.WalkBinary(t, order, p.Visit); err != nil {
		return 0, err
	}
	return p.Count(), p.Done()
}

//---------------------
// Collector
//---------------------

// Collector gathers the events of one traversal from a subject.
type Collector struct {
	sub *nats.Subscription
	ch  chan *nats.Msg
}

// Collect subscribes to subject. Call before publishing.
func Collect(nc *nats.Conn, subject string) (*Collector, error) {
	ch := make(chan *nats.Msg, 256)
	sub, err := nc.ChanSubscribe(subject, ch)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", subject, err)
	}
	if err := nc.Flush(); err != nil {
		_ = sub.Unsubscribe()
		return nil, fmt.Errorf("flush subscribe: %w", err)
	}
	return &Collector{sub: sub, ch: ch}, nil
}

// Wait returns the visit events up to the done event. An error event is
// returned as an error.
func (c *Collector) Wait(ctx context.Context) ([]*codec.Event, error) {
	defer c.sub.Unsubscribe()

	var visits []*codec.Event
	for {
		select {
		case <-ctx.Done():
			return visits, ctx.Err()
		case msg := <-c.ch:
			ev, err := codec.DecodeEvent(msg.Data)
			if err != nil {
				return visits, fmt.Errorf("decode event: %w", err)
			}
			switch ev.Type {
			case codec.EventVisit:
				visits = append(visits, ev)
			case codec.EventDone:
				return visits, nil
			case codec.EventError:
				return visits, ev.Err()
			}
		}
	}
}

// Ints waits and returns the visited values as integers.
func (c *Collector) Ints(ctx context.Context) ([]int, error) {
	events, err := c.Wait(ctx)
	out := make([]int, 0, len(events))
	for _, ev := range events {
		if v, ok := ev.IntValue(); ok {
			out = append(out, int(v))
		}
	}
	return out, err
}
