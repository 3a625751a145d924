package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lumipallolabs/imagedive/internal/protocol"
)

const (
	wsWriteWait = 10 * time.Second
	wsPongWait  = 60 * time.Second
	wsPingEvery = (wsPongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024 * 16,
}

// session is one connected panel
type session struct {
	sendCh    chan protocol.ServerMessage
	done      chan struct{}
	closeOnce sync.Once
}

func newSession() *session {
	return &session{
		sendCh: make(chan protocol.ServerMessage, 32),
		done:   make(chan struct{}),
	}
}

// push queues msg unless the session is gone
func (s *session) push(msg protocol.ServerMessage) {
	select {
	case s.sendCh <- msg:
	case <-s.done:
	}
}

// close releases pending and future pushes
func (s *session) close() {
	s.closeOnce.Do(func() { close(s.done) })
}

func (s *session) pushError(err error) {
	s.push(protocol.Error{Message: err.Error()})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	sess, created := s.host.Show(newSession)
	if !created {
		// Only one panel at a time: bring the open one forward instead
		s.logf("second panel connection from %s refused", r.RemoteAddr)
		sess.push(protocol.Reveal{})
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "panel already open"),
			time.Now().Add(wsWriteWait))
		return
	}
	defer s.host.Release(sess)
	defer sess.close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(wsPongWait)); err != nil {
		s.logf("set read deadline: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		// A dead writer must not leave the reader blocked on a full queue
		defer sess.close()
		defer conn.Close()
		ticker := time.NewTicker(wsPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-sess.sendCh:
				data, err := protocol.EncodeServer(msg)
				if err != nil {
					s.logf("encode %s: %v", msg.Command(), err)
					continue
				}
				if err := conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	s.logf("panel connected from %s", r.RemoteAddr)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			cancel()
			<-writerDone
			s.logf("panel disconnected: %v", err)
			return
		}
		msg, err := protocol.DecodeClient(data)
		if err != nil {
			sess.pushError(err)
			continue
		}
		s.dispatch(ctx, sess, msg)
	}
}
