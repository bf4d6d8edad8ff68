package selfplay

import (
	"encoding/binary"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// Store persists generated value and policy records in an embedded
// key-value database, keyed by a running sequence number so repeated
// harness runs append rather than overwrite, and deduplicates opening
// positions across restarts so the same random opening is never played
// twice.
type Store struct {
	db *badger.DB
}

// OpenStore opens (creating if absent) a badger database rooted at dir.
func OpenStore(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open selfplay store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

var (
	valueSeqKey  = []byte("seq:value")
	policySeqKey = []byte("seq:policy")
)

// nextSeq atomically reads and increments a counter key, giving each
// saved record a unique, monotonically increasing key even across
// process restarts.
func (s *Store) nextSeq(counterKey []byte) (uint64, error) {
	var n uint64
	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(counterKey)
		switch {
		case err == nil:
			if err := item.Value(func(val []byte) error {
				n = binary.BigEndian.Uint64(val)
				return nil
			}); err != nil {
				return err
			}
		case err == badger.ErrKeyNotFound:
			n = 0
		default:
			return err
		}
		n++
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], n)
		return txn.Set(counterKey, buf[:])
	})
	return n, err
}

// SaveValueRecord appends one formatted value-training line under a
// fresh sequence key.
func (s *Store) SaveValueRecord(line string) error {
	seq, err := s.nextSeq(valueSeqKey)
	if err != nil {
		return err
	}
	key := []byte(fmt.Sprintf("value:%020d", seq))
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, []byte(line))
	})
}

// SavePolicyRecord appends one formatted policy-training line under a
// fresh sequence key.
func (s *Store) SavePolicyRecord(line string) error {
	seq, err := s.nextSeq(policySeqKey)
	if err != nil {
		return err
	}
	key := []byte(fmt.Sprintf("policy:%020d", seq))
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, []byte(line))
	})
}

func openingKey(hash uint64) []byte {
	key := make([]byte, 8+8)
	copy(key, "opening:")
	binary.BigEndian.PutUint64(key[8:], hash)
	return key
}

// SeenOpening reports whether an opening with this position hash has
// already been played in a prior (or the current) run.
func (s *Store) SeenOpening(hash uint64) (bool, error) {
	seen := false
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(openingKey(hash))
		switch {
		case err == nil:
			seen = true
			return nil
		case err == badger.ErrKeyNotFound:
			return nil
		default:
			return err
		}
	})
	return seen, err
}

// MarkOpeningSeen records that an opening with this position hash has
// now been played.
func (s *Store) MarkOpeningSeen(hash uint64) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(openingKey(hash), nil)
	})
}
