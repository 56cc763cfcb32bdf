package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Key prefixes
const (
	prefixPerft  = "perft/"
	prefixSearch = "search/"
)

// PerftRecord is a stored perft count.
type PerftRecord struct {
	FEN        string    `json:"fen"`
	Hash       uint64    `json:"hash"`
	Depth      int       `json:"depth"`
	Nodes      uint64    `json:"nodes"`
	RecordedAt time.Time `json:"recorded_at"`
}

// SearchRecord is a stored search result.
type SearchRecord struct {
	FEN        string    `json:"fen"`
	Hash       uint64    `json:"hash"`
	Depth      int       `json:"depth"`
	Move       string    `json:"move"`
	Score      int       `json:"score"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Storage wraps BadgerDB as a persistent cache of perft and search results
// keyed by position hash and depth.
type Storage struct {
	db *badger.DB
}

// Open opens (or creates) a database in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening result cache in %s: %w", dir, err)
	}
	return &Storage{db: db}, nil
}

// OpenDefault opens the database in the platform cache directory.
func OpenDefault() (*Storage, error) {
	dir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dir)
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func perftKey(hash uint64, depth int) []byte {
	return fmt.Appendf(nil, "%s%016x/%02d", prefixPerft, hash, depth)
}

func searchKey(hash uint64, depth int) []byte {
	return fmt.Appendf(nil, "%s%016x/%02d", prefixSearch, hash, depth)
}

// put stores v as JSON under key.
func (s *Storage) put(key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// get decodes the JSON stored under key into v. ok is false when the key
// is absent.
func (s *Storage) get(key []byte, v any) (ok bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		ok = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
	return ok, err
}

// SavePerft stores a perft count.
func (s *Storage) SavePerft(hash uint64, depth int, fen string, nodes uint64) error {
	return s.put(perftKey(hash, depth), PerftRecord{
		FEN:        fen,
		Hash:       hash,
		Depth:      depth,
		Nodes:      nodes,
		RecordedAt: time.Now(),
	})
}

// LoadPerft returns a stored perft count.
func (s *Storage) LoadPerft(hash uint64, depth int) (uint64, bool, error) {
	var rec PerftRecord
	ok, err := s.get(perftKey(hash, depth), &rec)
	return rec.Nodes, ok, err
}

// SaveSearch stores a search result. move is in UCI notation.
func (s *Storage) SaveSearch(hash uint64, depth int, fen string, move string, score int) error {
	return s.put(searchKey(hash, depth), SearchRecord{
		FEN:        fen,
		Hash:       hash,
		Depth:      depth,
		Move:       move,
		Score:      score,
		RecordedAt: time.Now(),
	})
}

// LoadSearch returns a stored search result.
func (s *Storage) LoadSearch(hash uint64, depth int) (string, int, bool, error) {
	var rec SearchRecord
	ok, err := s.get(searchKey(hash, depth), &rec)
	return rec.Move, rec.Score, ok, err
}

// PerftRecords returns every stored perft count in key order.
func (s *Storage) PerftRecords() ([]PerftRecord, error) {
	var out []PerftRecord
	prefix := []byte(prefixPerft)

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec PerftRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return err
			}
			out = append(out, rec)
		}
		return nil
	})

	return out, err
}

// Clear drops every stored result.
func (s *Storage) Clear() error {
	return s.db.DropAll()
}
