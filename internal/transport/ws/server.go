package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"riftcast.gg/internal/protocol"
	"riftcast.gg/internal/sim/engine"
	"riftcast.gg/internal/sim/runner"
)

// Server broadcasts the live match's event feed to websocket viewers.
// Viewers only consume: the simulation never takes input from this surface,
// so nothing here can affect determinism.
type Server struct {
	log *log.Logger

	mu       sync.Mutex
	current  *runner.Runner
	digests  protocol.CatalogDigests
	tickRate int

	upgrader websocket.Upgrader
}

func NewServer(logger *log.Logger, digests protocol.CatalogDigests, tickRate int) *Server {
	return &Server{
		log:      logger,
		digests:  digests,
		tickRate: tickRate,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

// SetMatch points new viewers at the given live runner.
func (s *Server) SetMatch(r *runner.Runner) {
	s.mu.Lock()
	s.current = r
	s.mu.Unlock()
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		hello, ok := s.handshake(conn)
		if !ok {
			return
		}

		s.mu.Lock()
		run := s.current
		s.mu.Unlock()
		if run == nil {
			s.writeJSON(conn, protocol.ErrorMsg{
				Type:            protocol.TypeError,
				ProtocolVersion: protocol.Version,
				Code:            protocol.ErrMatchNotFound,
				Message:         "no live match",
			})
			return
		}

		m := run.Match()
		feed := run.Subscribe(hello.SinceIndex)

		s.writeJSON(conn, protocol.WelcomeMsg{
			Type:            protocol.TypeWelcome,
			ProtocolVersion: protocol.Version,
			MatchID:         m.ID,
			Teams:           m.Teams(),
			TickRateHz:      s.tickRate,
			Catalogs:        s.digests,
		})

		done := make(chan struct{})
		quit := make(chan struct{})

		// Writer: the runner delivers backlog and live events in log order.
		go func() {
			defer close(done)
			for {
				select {
				case <-quit:
					return
				case f, ok := <-feed:
					if !ok {
						// Feed closed: the match ended and the result is final.
						if res := m.Result(); res != nil {
							s.writeJSON(conn, protocol.ResultMsg{
								Type:            protocol.TypeResult,
								ProtocolVersion: protocol.Version,
								Result:          *res,
							})
						}
						return
					}
					if !s.writeEvent(conn, f.Index, f.Event) {
						return
					}
				}
			}
		}()

		// Reader: viewers send nothing after HELLO; drain until close.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		close(quit)
		<-done
	}
}

func (s *Server) handshake(conn *websocket.Conn) (protocol.HelloMsg, bool) {
	var hello protocol.HelloMsg

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return hello, false
	}
	base, err := protocol.DecodeBase(msg)
	if err != nil || base.Type != protocol.TypeHello {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "expected HELLO"),
			time.Now().Add(time.Second))
		return hello, false
	}
	if err := json.Unmarshal(msg, &hello); err != nil {
		return hello, false
	}
	if hello.ProtocolVersion != protocol.Version {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "bad protocol_version"),
			time.Now().Add(time.Second))
		return hello, false
	}
	if hello.SinceIndex < 0 {
		hello.SinceIndex = 0
	}
	return hello, true
}

func (s *Server) writeEvent(conn *websocket.Conn, idx int, ev engine.Event) bool {
	return s.writeJSON(conn, protocol.EventMsg{
		Type:            protocol.TypeEvent,
		ProtocolVersion: protocol.Version,
		Index:           idx,
		Event:           ev,
	})
}

func (s *Server) writeJSON(conn *websocket.Conn, v any) bool {
	b, err := json.Marshal(v)
	if err != nil {
		s.log.Printf("ws: marshal: %v", err)
		return false
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, b) == nil
}
