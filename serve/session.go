package serve

import (
	"encoding/json"

	"github.com/2x3systems/dollargame/dollar"
	"github.com/2x3systems/dollargame/libdollar"
	"github.com/pkg/errors"
)

// Message types
const (
	MsgNew    = "new"
	MsgFire   = "fire"
	MsgBorrow = "borrow"
	MsgState  = "state"
	MsgError  = "error"
)

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// newPayload overrides generation params; absent fields keep the session's current value.
type newPayload struct {
	Nodes *int  `json:"nodes"`
	Exact *bool `json:"exact"`
	Range *int  `json:"range"`
}

type movePayload struct {
	Node *int `json:"node"`
}

type NodeState struct {
	ID    int   `json:"id"`
	Count int   `json:"count"`
	Adj   []int `json:"adj"`
}

type EdgeState struct {
	Source int `json:"source"`
	Target int `json:"target"`
}

// StateMessage is the full puzzle snapshot sent after every accepted message.
type StateMessage struct {
	Type  string      `json:"type"`
	Nodes []NodeState `json:"nodes"`
	Edges []EdgeState `json:"edges"`
	Genus int         `json:"genus"`
	Sum   int         `json:"sum"`
	Moves int         `json:"moves"`
}

type ErrorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// Session is the play state of one connection: the current puzzle, the dealer that produced it,
// and the number of moves made on it.
type Session struct {
	rng    dollar.Rand
	dealer *libdollar.Dealer
	puzzle *dollar.Puzzle
	moves  int
}

// NewSession deals a first puzzle from the given opts.
func NewSession(rng dollar.Rand, opts libdollar.GenOpts) (*Session, error) {
	s := &Session{
		rng: rng,
	}
	if err := s.newPuzzle(opts); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) Puzzle() *dollar.Puzzle {
	return s.puzzle
}

func (s *Session) Moves() int {
	return s.moves
}

func (s *Session) newPuzzle(opts libdollar.GenOpts) error {
	if s.dealer == nil || s.dealer.Opts() != opts {
		dealer, err := libdollar.NewDealer(s.rng, opts)
		if err != nil {
			return err
		}
		if s.dealer != nil {
			s.dealer.Close()
		}
		s.dealer = dealer
	}

	p, err := s.dealer.Deal()
	if err != nil {
		return err
	}
	s.puzzle = p
	s.moves = 0
	return nil
}

func (s *Session) move(payload json.RawMessage, kind dollar.MoveKind) error {
	var mp movePayload
	if err := json.Unmarshal(payload, &mp); err != nil {
		return errors.Wrapf(err, "bad %v payload", kind)
	}
	if mp.Node == nil {
		return errors.Errorf("%v: missing node", kind)
	}

	id := dollar.NodeID(*mp.Node)
	if int(id) != *mp.Node {
		return errors.Wrapf(dollar.ErrBadNodeID, "node %d", *mp.Node)
	}
	if err := s.puzzle.CheckNodeID(id); err != nil {
		return err
	}

	s.puzzle.Apply(dollar.Move{Node: id, Kind: kind})
	s.moves++
	return nil
}

// Handle applies one inbound frame and returns the reply to send.
//
// Rejected frames leave the session unchanged and reply with an ErrorMessage.
func (s *Session) Handle(frame []byte) interface{} {
	var msg inboundMessage
	err := json.Unmarshal(frame, &msg)
	if err == nil {
		switch msg.Type {
		case MsgNew:
			opts := s.dealer.Opts()
			if len(msg.Payload) > 0 {
				var np newPayload
				if err = json.Unmarshal(msg.Payload, &np); err != nil {
					err = errors.Wrap(err, "bad new payload")
					break
				}
				if np.Nodes != nil {
					opts.NodeCount = *np.Nodes
				}
				if np.Exact != nil {
					opts.ExactSum = *np.Exact
				}
				if np.Range != nil {
					opts.Range = *np.Range
				}
			}
			err = s.newPuzzle(opts)
		case MsgFire:
			err = s.move(msg.Payload, dollar.MoveFire)
		case MsgBorrow:
			err = s.move(msg.Payload, dollar.MoveBorrow)
		case MsgState:
		default:
			err = errors.Errorf("unknown message type %q", msg.Type)
		}
	}

	if err != nil {
		return &ErrorMessage{
			Type:  MsgError,
			Error: err.Error(),
		}
	}
	return s.State()
}

// State returns a snapshot of the current puzzle.
func (s *Session) State() *StateMessage {
	p := s.puzzle
	state := &StateMessage{
		Type:  MsgState,
		Nodes: make([]NodeState, len(p.Nodes)),
		Edges: make([]EdgeState, len(p.Edges)),
		Genus: p.Genus(),
		Sum:   p.Sum(),
		Moves: s.moves,
	}
	for i, ni := range p.Nodes {
		adj := make([]int, len(ni.Adj))
		for j, nj := range ni.Adj {
			adj[j] = int(nj)
		}
		state.Nodes[i] = NodeState{
			ID:    int(ni.ID),
			Count: ni.Count,
			Adj:   adj,
		}
	}
	for i, e := range p.Edges {
		state.Edges[i] = EdgeState{
			Source: int(e.Source),
			Target: int(e.Target),
		}
	}
	return state
}

// Close releases the session's dealer.
func (s *Session) Close() {
	if s.dealer != nil {
		s.dealer.Close()
		s.dealer = nil
	}
}
