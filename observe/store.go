// Package observe exposes the latest board snapshots to readers outside the
// simulation goroutine, including over HTTP.
package observe

import (
	"slices"
	"sync"

	"github.com/kamstrup/intmap"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/loop"
)

// Handle is the numeric key a published board is stored under.
type Handle uint32

// Store keeps the latest snapshot of each board. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	boards   *intmap.Map[Handle, game.Snapshot]
	order    []Handle
	lastTick uint64
}

func NewStore() *Store {
	return &Store{
		boards: intmap.New[Handle, game.Snapshot](16),
	}
}

// Put replaces the snapshot stored under h.
func (s *Store) Put(h Handle, snap game.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.boards.Get(h); !ok {
		s.order = append(s.order, h)
	}
	s.boards.Put(h, snap)
}

// Get returns the snapshot stored under h.
func (s *Store) Get(h Handle) (game.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.boards.Get(h)
}

// Handles returns the stored handles in insertion order.
func (s *Store) Handles() []Handle {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.order)
}

// Len returns how many boards are stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.order)
}

// Tick returns the scheduler tick of the last publish.
func (s *Store) Tick() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastTick
}

func (s *Store) setTick(tick uint64) {
	s.mu.Lock()
	s.lastTick = tick
	s.mu.Unlock()
}

// Publisher copies each added instance's snapshot into a Store every tick.
type Publisher struct {
	store     *Store
	instances []*game.Instance
}

func NewPublisher(store *Store) *Publisher {
	return &Publisher{store: store}
}

// Add starts publishing inst and returns its handle.
func (p *Publisher) Add(inst *game.Instance) Handle {
	h := Handle(len(p.instances))
	p.instances = append(p.instances, inst)
	p.store.Put(h, inst.Snapshot())
	return h
}

func (p *Publisher) Execute(frame *loop.Frame) {
	for h, inst := range p.instances {
		p.store.Put(Handle(h), inst.Snapshot())
	}
	p.store.setTick(frame.Tick)
}
