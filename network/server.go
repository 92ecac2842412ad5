package network

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"ballpit/protocol"
	"ballpit/session"
)

//go:embed static
var staticFiles embed.FS

type Server struct {
	sessions  *session.Manager
	spriteDir string
	upgrader  websocket.Upgrader
}

// NewServer serves sessions from m. Sprite images under spriteDir are
// exposed at /sprites/ for the canvas client; an empty dir disables that.
func NewServer(m *session.Manager, spriteDir string) *Server {
	return &Server{
		sessions:  m,
		spriteDir: spriteDir,
		upgrader: websocket.Upgrader{
			// For dev, allow all origins. Lock this down in prod.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/api/sims", s.handleSims)
	if s.spriteDir != "" {
		mux.Handle("/sprites/", http.StripPrefix("/sprites/", http.FileServer(http.Dir(s.spriteDir))))
	}
	static, _ := fs.Sub(staticFiles, "static")
	mux.Handle("/", http.FileServer(http.FS(static)))
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s (ws endpoint: /ws)", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleSims(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.sessions.List())
	case http.MethodPost:
		sess, err := s.sessions.Create()
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, protocol.Error{Message: err.Error()})
			return
		}
		writeJSON(w, http.StatusCreated, session.Info{Code: sess.Code})
	default:
		w.Header().Set("Allow", "GET, POST")
		writeJSON(w, http.StatusMethodNotAllowed, protocol.Error{Message: "method not allowed"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("write json:", err)
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}

	// Basic timeouts + pong handling (keeps connections healthy)
	ws.SetReadLimit(1 << 16)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	conn := newWSConn(ws)
	go conn.writePump()
	defer conn.Close()

	hello, err := readHello(ws)
	if err != nil {
		log.Println("hello:", err)
		sendError(conn, err.Error())
		return
	}

	code := r.URL.Query().Get("sim")
	if code == "" {
		code = hello.Sim
	}
	var sess *session.Session
	if code != "" {
		sess, err = s.sessions.GetOrCreate(code)
	} else {
		sess, err = s.sessions.Create()
	}
	if err != nil {
		log.Println("session:", err)
		sendError(conn, err.Error())
		return
	}

	reply := make(chan session.JoinResult, 1)
	if !sess.Send(session.Join{Conn: conn, Name: hello.Name, Reply: reply}) {
		sendError(conn, "session has finished")
		return
	}
	var res session.JoinResult
	select {
	case res = <-reply:
	case <-sess.Done():
		return
	}
	defer sess.Send(session.Leave{ViewerID: res.ViewerID})

	s.readLoop(ws, conn, sess, res.ViewerID)
}

func readHello(ws *websocket.Conn) (protocol.Hello, error) {
	_, msg, err := ws.ReadMessage()
	if err != nil {
		return protocol.Hello{}, err
	}
	env, err := protocol.DecodeEnvelope(msg)
	if err != nil {
		return protocol.Hello{}, err
	}
	if env.T != protocol.MsgHello {
		return protocol.Hello{}, errors.New("expected hello, got " + env.T)
	}
	hello, err := protocol.DecodePayload[protocol.Hello](env)
	if err != nil {
		return protocol.Hello{}, err
	}
	if hello.V != protocol.Version {
		return protocol.Hello{}, errors.New("unsupported protocol version")
	}
	return hello, nil
}

func (s *Server) readLoop(ws *websocket.Conn, conn *wsConn, sess *session.Session, viewerID string) {
	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Println("read:", err)
			}
			return
		}
		env, err := protocol.DecodeEnvelope(msg)
		if err != nil || env.T != protocol.MsgControl {
			sendError(conn, "expected control message")
			continue
		}
		ctl, err := protocol.DecodePayload[protocol.Control](env)
		if err != nil || !protocol.ValidAction(ctl.Action) {
			sendError(conn, "unknown control action")
			continue
		}
		if !sess.Send(session.Control{ViewerID: viewerID, Action: ctl.Action}) {
			return
		}
	}
}

func sendError(c *wsConn, msg string) {
	b, err := protocol.Encode(protocol.MsgError, protocol.Error{Message: msg})
	if err != nil {
		return
	}
	_ = c.Send(b)
}
