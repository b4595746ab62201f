package game

import "github.com/plus3/blockfall/loop"

// Controller supplies the player action for the next tick.
type Controller interface {
	Action() Action
}

// ControllerFunc adapts a plain function to Controller.
type ControllerFunc func() Action

func (f ControllerFunc) Action() Action {
	return f()
}

// System plays one instance inside a loop.Scheduler. A nil Controller
// means no input.
type System struct {
	Instance   *Instance
	Controller Controller
	Rand       Source
}

func (s *System) Execute(frame *loop.Frame) {
	action := ActionNone
	if s.Controller != nil {
		action = s.Controller.Action()
	}
	s.Instance.Update(frame.DeltaTime, action, s.Rand)
}
