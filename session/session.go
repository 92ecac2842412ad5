package session

import (
	"fmt"
	"log"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"ballpit/protocol"
	"ballpit/sim"
)

// Options configure a session. Zero BroadcastEvery means every tick; zero
// MaxTicks means run until stopped.
type Options struct {
	Config         sim.Config
	Palette        []string
	BroadcastEvery int
	MaxTicks       int
}

func DefaultOptions() Options {
	return Options{
		Config:         sim.DefaultConfig(),
		Palette:        sim.DefaultPalette,
		BroadcastEvery: 1,
	}
}

// Session owns one world and drives it from a single goroutine. Everything
// else talks to it through Inbox.
type Session struct {
	Inbox chan any

	opts    Options
	rng     *rand.Rand
	world   *sim.World
	paused  bool
	viewers map[string]Conn

	numViewers atomic.Int32
	tick       atomic.Int64

	quit     chan struct{}
	stopOnce sync.Once
	done     chan struct{}

	Code    string            // session code (e.g. "ABC123")
	OnEmpty func(code string) // called when last viewer leaves
	OnDone  func(code string) // called when MaxTicks is reached
}

func New(opts Options) (*Session, error) {
	if opts.BroadcastEvery <= 0 {
		opts.BroadcastEvery = 1
	}
	s := &Session{
		Inbox:   make(chan any, 256),
		opts:    opts,
		rng:     sim.NewRand(opts.Config.Seed),
		viewers: make(map[string]Conn),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	if err := s.respawn(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) respawn() error {
	w, err := sim.Spawn(s.opts.Config, s.rng, sim.RandomSprite(s.rng, s.opts.Palette))
	if err != nil {
		return fmt.Errorf("spawn world: %w", err)
	}
	s.world = w
	s.tick.Store(0)
	return nil
}

func (s *Session) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
}

// Done is closed once Run has returned.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Send queues cmd for the session. It returns false if the session has
// already finished.
func (s *Session) Send(cmd any) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.Inbox <- cmd:
		return true
	case <-s.done:
		return false
	}
}

// NumViewers returns the current number of connected viewers.
func (s *Session) NumViewers() int {
	return int(s.numViewers.Load())
}

// Tick returns the last completed tick.
func (s *Session) Tick() int {
	return int(s.tick.Load())
}

func (s *Session) Run() {
	defer close(s.done)
	defer s.closeViewers()
	ticker := time.NewTicker(s.opts.Config.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.quit:
			return
		case cmd := <-s.Inbox:
			if s.handleCommand(cmd) {
				return
			}
		case <-ticker.C:
			if s.paused {
				continue
			}
			if s.step(false) {
				return
			}
		}
	}
}

// step advances one tick, broadcasts on cadence (or always when force is
// set) and reports whether the run is over.
func (s *Session) step(force bool) bool {
	s.world.Step()
	s.tick.Store(int64(s.world.Tick))

	finished := s.opts.MaxTicks > 0 && s.world.Tick >= s.opts.MaxTicks
	if force || finished || s.world.Tick%s.opts.BroadcastEvery == 0 {
		s.broadcastState()
	}
	if finished {
		log.Printf("session %s: finished after %d ticks", s.Code, s.world.Tick)
		if s.OnDone != nil {
			s.OnDone(s.Code)
		}
	}
	return finished
}

// handleCommand applies cmd and reports whether it ended the run.
func (s *Session) handleCommand(cmd any) bool {
	switch c := cmd.(type) {
	case Join:
		id := uuid.NewString()
		s.viewers[id] = c.Conn
		s.numViewers.Store(int32(len(s.viewers)))
		cfg := s.opts.Config
		welcome := protocol.Welcome{
			ViewerID: id,
			Sim:      s.Code,
			TickMs:   float64(cfg.TickInterval) / float64(time.Millisecond),
			Width:    cfg.Width,
			Height:   cfg.Height,
		}
		if c.Reply != nil {
			c.Reply <- JoinResult{ViewerID: id, Welcome: welcome}
		}
		name := c.Name
		if name == "" {
			name = "anonymous"
		}
		log.Printf("session %s: viewer %s (%s) joined", s.Code, id, name)
		if b, err := protocol.Encode(protocol.MsgWelcome, welcome); err == nil {
			_ = c.Conn.Send(b)
		}
		s.sendStateTo(c.Conn)
	case Leave:
		s.handleLeave(c.ViewerID)
	case Control:
		if _, ok := s.viewers[c.ViewerID]; !ok {
			return false
		}
		return s.handleControl(c.Action)
	}
	return false
}

func (s *Session) handleControl(action string) bool {
	switch action {
	case protocol.ActionPause:
		s.paused = true
	case protocol.ActionResume:
		s.paused = false
	case protocol.ActionReset:
		if err := s.respawn(); err != nil {
			log.Printf("session %s: reset: %v", s.Code, err)
			return false
		}
	case protocol.ActionStep:
		if !s.paused {
			return false
		}
		return s.step(true)
	default:
		return false
	}
	s.broadcastState()
	return false
}

func (s *Session) handleLeave(viewerID string) {
	if c, ok := s.viewers[viewerID]; ok {
		_ = c.Close()
		delete(s.viewers, viewerID)
		s.numViewers.Store(int32(len(s.viewers)))
		log.Printf("session %s: viewer %s left", s.Code, viewerID)
	}
	if len(s.viewers) == 0 && s.OnEmpty != nil && s.Code != "" {
		s.OnEmpty(s.Code)
	}
}

func (s *Session) removeViewer(viewerID string) {
	if c, ok := s.viewers[viewerID]; ok {
		_ = c.Close()
	}
	delete(s.viewers, viewerID)
	s.numViewers.Store(int32(len(s.viewers)))
}

func (s *Session) closeViewers() {
	for id := range s.viewers {
		s.removeViewer(id)
	}
}

func (s *Session) broadcastState() {
	b, err := protocol.Encode(protocol.MsgState, s.buildSnapshot())
	if err != nil {
		log.Printf("session %s: encode state: %v", s.Code, err)
		return
	}

	var failed []string
	for id, c := range s.viewers {
		if err := c.Send(b); err != nil {
			failed = append(failed, id)
		}
	}
	for _, id := range failed {
		s.removeViewer(id)
	}
}

func (s *Session) sendStateTo(c Conn) {
	b, err := protocol.Encode(protocol.MsgState, s.buildSnapshot())
	if err != nil {
		return
	}
	_ = c.Send(b)
}

func (s *Session) buildSnapshot() protocol.State {
	return protocol.Snapshot(s.world.Tick, s.paused, s.world.Bodies())
}
