package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rskv-p/treekit/codec"
	"github.com/rskv-p/treekit/constant"
	"github.com/rskv-p/treekit/pkg/x_log"
	"github.com/rskv-p/treekit/recover"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const writeWait = 5 * time.Second

// handleStream sends one visit event per node over a WebSocket, then a
// done event, then closes.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	order, err := constant.NormalizeOrder(chi.URLParam(r, "order"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	l, err := s.load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if order == constant.OrderIn && !l.binary() {
		s.fail(w, r, constant.ErrNotBinary)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client
		return
	}
	defer conn.Close()

	log := x_log.From(r.Context())
	id := l.snap.ID
	seq := 0
	var sendErr error

	send := func(ev *codec.Event) error {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(ev)
	}

	err = recover.RecoverFunc("api.stream", func() error {
		return l.walk(order, func(v int) {
			if sendErr != nil {
				return
			}
			sendErr = send(codec.NewVisit(id, order, seq, v))
			seq++
		})
	})
	switch {
	case sendErr != nil:
		log.Warn().Err(sendErr).Str("tree", id).Msg("stream aborted")
		return
	case err != nil:
		_ = send(codec.NewError(id, order, err))
	default:
		_ = send(codec.NewDone(id, order, seq))
	}

	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}
