// Package device implements the CLI host as a push-capable device: a
// file-backed subscription store, a worker container that installs the
// site's service worker script over HTTP, and a push manager that mints web
// push subscriptions. State is persisted to <state_dir>/device.json with
// atomic writes.
package device

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// RecordFile is the state file name inside the state directory
const RecordFile = "device.json"

// Keys are the client keys of a push subscription
type Keys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

// PushSubscription mirrors the browser PushSubscription JSON form
type PushSubscription struct {
	Endpoint       string `json:"endpoint"`
	ExpirationTime *int64 `json:"expirationTime"`
	Keys           Keys   `json:"keys"`
}

// Worker is an installed service worker script
type Worker struct {
	ScriptURL    string    `json:"script_url"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Record is everything persisted about this device
type Record struct {
	Worker               *Worker           `json:"worker,omitempty"`
	Subscription         *PushSubscription `json:"subscription,omitempty"`
	SubscribedAt         time.Time         `json:"subscribed_at"`
	ApplicationServerKey string            `json:"application_server_key,omitempty"`
	DeviceID             string            `json:"device_id,omitempty"`
	Interests            []string          `json:"interests,omitempty"`
}

// HasInterest reports whether interest is registered
func (r *Record) HasInterest(interest string) bool {
	for _, i := range r.Interests {
		if i == interest {
			return true
		}
	}
	return false
}

// Store persists a Record as JSON
type Store struct {
	mu  sync.Mutex
	dir string
}

// NewStore creates a store rooted at stateDir. The directory is created on first save.
func NewStore(stateDir string) *Store {
	return &Store{dir: stateDir}
}

// Path returns the state file location
func (s *Store) Path() string {
	return filepath.Join(s.dir, RecordFile)
}

// Load reads the record. A missing file yields an empty record.
func (s *Store) Load() (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Save writes the record atomically
func (s *Store) Save(rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(rec)
}

// Update loads the record, applies fn and saves the result.
// Nothing is written when fn returns an error.
func (s *Store) Update(fn func(*Record) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(rec); err != nil {
		return err
	}
	return s.save(rec)
}

// Reset removes the state file
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.Path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove device state: %w", err)
	}
	return nil
}

func (s *Store) load() (*Record, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return &Record{}, nil
		}
		return nil, fmt.Errorf("failed to read device state: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal device state: %w", err)
	}
	return &rec, nil
}

func (s *Store) save(rec *Record) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal device state: %w", err)
	}

	// Write to temp file, then rename over the old state
	path := s.Path()
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
