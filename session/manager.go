package session

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sort"
	"sync"
)

// Info is returned by the API for the session list.
type Info struct {
	Code    string `json:"code"`
	Viewers int    `json:"viewers"`
	Tick    int    `json:"tick"`
}

// Manager holds multiple sessions by code. Sessions are created on first join or via Create,
// and removed when the last viewer leaves or the run finishes.
type Manager struct {
	opts Options

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager(opts Options) *Manager {
	return &Manager{
		opts:     opts,
		sessions: make(map[string]*Session),
	}
}

// GetOrCreate returns the session for the given code, creating it if needed.
func (m *Manager) GetOrCreate(code string) (*Session, error) {
	if code == "" {
		return nil, fmt.Errorf("session code is empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[code]; ok {
		return s, nil
	}
	return m.startLocked(code)
}

// Create generates a unique 6-char code, starts the session, and returns it.
func (m *Manager) Create() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for {
		code := generateCode(6)
		if _, exists := m.sessions[code]; exists {
			continue
		}
		return m.startLocked(code)
	}
}

func (m *Manager) startLocked(code string) (*Session, error) {
	s, err := New(m.opts)
	if err != nil {
		return nil, err
	}
	s.Code = code
	s.OnEmpty = m.remove
	s.OnDone = m.remove
	m.sessions[code] = s
	go s.Run()
	return s, nil
}

func (m *Manager) Get(code string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[code]
	return s, ok
}

func (m *Manager) remove(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[code]; ok {
		s.Stop()
		delete(m.sessions, code)
	}
}

// List returns all active sessions ordered by code.
func (m *Manager) List() []Info {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Info, 0, len(m.sessions))
	for code, s := range m.sessions {
		out = append(out, Info{Code: code, Viewers: s.NumViewers(), Tick: s.Tick()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// StopAll stops every session and waits for their loops to exit.
func (m *Manager) StopAll() {
	m.mu.Lock()
	stopped := make([]*Session, 0, len(m.sessions))
	for code, s := range m.sessions {
		s.Stop()
		stopped = append(stopped, s)
		delete(m.sessions, code)
	}
	m.mu.Unlock()
	for _, s := range stopped {
		<-s.Done()
	}
}

const codeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func generateCode(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(codeChars)))
	for i := range b {
		idx, _ := rand.Int(rand.Reader, max)
		b[i] = codeChars[idx.Int64()]
	}
	return string(b)
}
