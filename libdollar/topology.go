package libdollar

import (
	"encoding/binary"

	"github.com/2x3systems/dollargame/dollar"
	"github.com/dgraph-io/badger/v3"
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"
)

// Signature returns a key identifying the labeled edge multiset of a puzzle:
//
//	varint(N), [varint(a), varint(b), varint(multiplicity)]...  for each joined pair a < b, ascending
//
// Two puzzles have the same Signature iff they have the same node count and the same edges (counts aside).
func Signature(p *dollar.Puzzle) []byte {
	pairs := redblacktree.NewWith(utils.Int64Comparator)
	for _, e := range p.Edges {
		a, b := e.Source, e.Target
		if a > b {
			a, b = b, a
		}
		key := int64(a)<<32 | int64(b)
		mult := 0
		if val, found := pairs.Get(key); found {
			mult = val.(int)
		}
		pairs.Put(key, mult+1)
	}

	sig := make([]byte, 0, 2+3*pairs.Size())
	sig = binary.AppendUvarint(sig, uint64(p.NumNodes()))

	itr := pairs.Iterator()
	for itr.Next() {
		key := itr.Key().(int64)
		sig = binary.AppendUvarint(sig, uint64(key>>32))
		sig = binary.AppendUvarint(sig, uint64(key&0xFFFFFFFF))
		sig = binary.AppendUvarint(sig, uint64(itr.Value().(int)))
	}
	return sig
}

// TopologySet allows adding puzzle topologies and returning if an identical topology has already been added.
type TopologySet interface {

	// TryAdd adds the Signature of the given puzzle if it is not already present.
	//
	// If p's topology is already in this set, this call has no effect and TryAdd() returns false.
	// If it isn't, it is added and TryAdd() returns true.
	TryAdd(p *dollar.Puzzle) bool

	// Close removes all previously added items from this set.
	//
	// If you make subsequent calls to TryAdd(), be sure you call Close() when you're done.
	Close()
}

// NewTopologySet returns an empty in-memory TopologySet.
func NewTopologySet() TopologySet {
	return &topologySet{}
}

type topologySet struct {
	db *badger.DB
}

func (set *topologySet) autoOpen() {
	if set.db == nil {
		dbOpts := badger.DefaultOptions("").WithInMemory(true)
		dbOpts.Logger = nil
		dbOpts.MetricsEnabled = false

		var err error
		set.db, err = badger.Open(dbOpts)
		if err != nil {
			panic(err)
		}
	}
}

func (set *topologySet) TryAdd(p *dollar.Puzzle) bool {
	return set.tryAdd(Signature(p))
}

func (set *topologySet) tryAdd(key []byte) bool {
	set.autoOpen()

	txn := set.db.NewTransaction(true)
	defer txn.Discard()

	added := false
	_, err := txn.Get(key)
	if err == nil {
		// no-op since the key is already in the db
	} else if err == badger.ErrKeyNotFound {
		if err = txn.Set(key, nil); err == nil {
			err = txn.Commit()
			added = true
		}
	}

	if err != nil {
		panic(err)
	}

	return added
}

func (set *topologySet) Close() {
	if set.db != nil {
		set.db.Close()
		set.db = nil
	}
}
