package serve

import (
	"net/http"
	"sync/atomic"

	"github.com/2x3systems/dollargame/libdollar"
	"github.com/gorilla/websocket"
	"github.com/plan-systems/klog"
)

// ServerOpts specifies params for a puzzle Server
type ServerOpts struct {
	Gen  libdollar.GenOpts // generation params for each session's first puzzle
	Seed int64             // if nonzero, every session's RNG starts from this seed
}

// DefaultServerOpts deals DefaultGenOpts puzzles from random seeds.
var DefaultServerOpts = ServerOpts{
	Gen: libdollar.DefaultGenOpts,
}

// Server hands each websocket connection its own Session.
type Server struct {
	opts      ServerOpts
	upgrader  websocket.Upgrader
	sessionID atomic.Int64
}

func NewServer(opts ServerOpts) *Server {
	return &Server{
		opts: opts,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (srv *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := srv.upgrader.Upgrade(w, r, nil)
	if err != nil {
		klog.Warningf("websocket upgrade from %v failed: %v", r.RemoteAddr, err)
		return
	}
	defer conn.Close()

	sessionID := srv.sessionID.Add(1)

	session, err := NewSession(libdollar.NewRand(srv.opts.Seed), srv.opts.Gen)
	if err != nil {
		klog.Warningf("session %d: %v", sessionID, err)
		conn.WriteJSON(&ErrorMessage{Type: MsgError, Error: err.Error()})
		return
	}
	defer session.Close()

	klog.Infof("session %d: opened from %v", sessionID, r.RemoteAddr)

	if err = conn.WriteJSON(session.State()); err != nil {
		klog.Warningf("session %d: %v", sessionID, err)
		return
	}

	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				klog.Warningf("session %d: %v", sessionID, err)
			}
			break
		}

		reply := session.Handle(frame)
		if errMsg, isErr := reply.(*ErrorMessage); isErr {
			klog.V(1).Infof("session %d: rejected frame: %v", sessionID, errMsg.Error)
		}
		if err = conn.WriteJSON(reply); err != nil {
			klog.Warningf("session %d: %v", sessionID, err)
			break
		}
	}

	klog.Infof("session %d: closed after %d moves", sessionID, session.Moves())
}
