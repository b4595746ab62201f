package input

import (
	"time"

	"github.com/plus3/blockfall/game"
)

// Mapper binds keys of any comparable type to game actions.
type Mapper[K comparable] struct {
	Delay time.Duration
	Rate  float64

	bindings []binding[K]
}

type binding[K comparable] struct {
	key     K
	action  game.Action
	rep     Repeater
	pending bool
}

// NewMapper returns a Mapper whose repeating bindings wait delay before
// auto-repeating at rate per second.
func NewMapper[K comparable](delay time.Duration, rate float64) *Mapper[K] {
	return &Mapper[K]{Delay: delay, Rate: rate}
}

// Bind appends a binding. Earlier bindings win when several fire together.
func (m *Mapper[K]) Bind(key K, action game.Action, repeat bool) *Mapper[K] {
	b := binding[K]{key: key, action: action}
	if repeat {
		b.rep = Repeater{Delay: m.Delay, Rate: m.Rate}
	}
	m.bindings = append(m.bindings, b)
	return m
}

// Poll samples every binding and returns the first pending action, or
// ActionNone. A binding that fires while an earlier one is reported stays
// pending and is returned by a later poll, even if its key was released.
func (m *Mapper[K]) Poll(held func(K) bool, now time.Time) game.Action {
	for i := range m.bindings {
		b := &m.bindings[i]
		if b.rep.Update(held(b.key), now) {
			b.pending = true
		}
	}

	for i := range m.bindings {
		b := &m.bindings[i]
		if b.pending {
			b.pending = false
			return b.action
		}
	}
	return game.ActionNone
}

// Len returns the number of bindings.
func (m *Mapper[K]) Len() int { return len(m.bindings) }
