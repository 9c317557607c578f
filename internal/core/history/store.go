package history

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const (
	// MaxEntries bounds the history; the oldest record is evicted first.
	MaxEntries = 50

	Namespace = "zencrawl"
	Slot      = "extraction-history"
)

// Store is the persisted, bounded, newest-first list of extraction
// attempts. Every mutation is written to the database before it becomes
// visible to readers.
type Store struct {
	mu      sync.Mutex
	db      *sql.DB
	records []Record

	now   func() time.Time
	newID func() string
}

// Open opens (or creates) the history database at path and loads the
// persisted slot. Use ":memory:" for a throwaway store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}
	if path == ":memory:" {
		// each connection to :memory: is its own database
		db.SetMaxOpenConns(1)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{db: db, now: time.Now, newID: uuid.NewString}
	if err := s.hydrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS slots (
			namespace  TEXT NOT NULL,
			name       TEXT NOT NULL,
			value      TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (namespace, name)
		);
	`)
	if err != nil {
		return fmt.Errorf("creating slots table: %w", err)
	}
	return nil
}

func (s *Store) hydrate() error {
	var value string
	err := s.db.QueryRow(`SELECT value FROM slots WHERE namespace = ? AND name = ?`,
		Namespace, Slot).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading history slot: %w", err)
	}

	var stored []Record
	if err := json.Unmarshal([]byte(value), &stored); err != nil {
		return fmt.Errorf("decoding history slot: %w", err)
	}

	records := make([]Record, 0, len(stored))
	for _, r := range stored {
		if !r.valid() {
			continue
		}
		records = append(records, r)
		if len(records) == MaxEntries {
			break
		}
	}
	s.records = records
	return nil
}

func (s *Store) persist(records []Record) error {
	if records == nil {
		records = []Record{}
	}
	value, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO slots (namespace, name, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (namespace, name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		Namespace, Slot, string(value), s.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("writing history slot: %w", err)
	}
	return nil
}

// Add stores a new record at the head of the list, evicting the oldest
// record when the list would exceed MaxEntries.
func (s *Store) Add(n NewRecord) (Record, error) {
	r := Record{
		Kind:   n.Kind,
		Target: n.Target,
		Status: n.Status,
		Result: bytes.Clone(n.Result),
		Error:  n.Error,
	}
	if r.Status == StatusFailed && r.Error == "" {
		r.Error = DefaultErrorMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = s.uniqueID()
	r.Timestamp = s.now()
	if !r.valid() {
		return Record{}, fmt.Errorf("invalid history record: kind %q, status %q", r.Kind, r.Status)
	}

	next := make([]Record, 0, min(len(s.records)+1, MaxEntries))
	next = append(next, r)
	for _, old := range s.records {
		if len(next) == MaxEntries {
			break
		}
		next = append(next, old)
	}

	if err := s.persist(next); err != nil {
		return Record{}, err
	}
	s.records = next
	return r.clone(), nil
}

func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		if _, ok := s.indexOf(id); !ok {
			return id
		}
	}
}

func (s *Store) indexOf(id string) (int, bool) {
	for i, r := range s.records {
		if r.ID == id {
			return i, true
		}
	}
	return -1, false
}

// Remove deletes the record with the given id. Unknown ids are ignored.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.indexOf(id)
	if !ok {
		return nil
	}
	next := make([]Record, 0, len(s.records)-1)
	next = append(next, s.records[:i]...)
	next = append(next, s.records[i+1:]...)

	if err := s.persist(next); err != nil {
		return err
	}
	s.records = next
	return nil
}

// Clear removes every record.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(nil); err != nil {
		return err
	}
	s.records = nil
	return nil
}

// List returns a copy of the records, newest first.
func (s *Store) List() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Record, len(s.records))
	for i, r := range s.records {
		out[i] = r.clone()
	}
	return out
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.indexOf(id)
	if !ok {
		return Record{}, false
	}
	return s.records[i].clone(), true
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
