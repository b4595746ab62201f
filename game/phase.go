package game

//go:generate go run golang.org/x/tools/cmd/stringer -type=Phase -trimprefix=Phase -output=phase_string.go
//go:generate go run golang.org/x/tools/cmd/stringer -type=Action -trimprefix=Action -output=action_string.go

// Phase is the state of one board's game loop.
type Phase uint8

const (
	// PhaseReady has no active piece; the next tick spawns one.
	PhaseReady Phase = iota
	// PhaseFalling moves the active piece down every gravity interval.
	PhaseFalling
	// PhaseLocking holds a grounded piece for the lock delay before commit.
	PhaseLocking
	// PhaseGameOver is terminal. It is entered only when a spawn fails.
	PhaseGameOver
	// PhasePaused suspends any other phase and remembers which.
	PhasePaused
)

// Action is an abstract player input. At most one is applied per tick.
type Action uint8

const (
	ActionNone Action = iota
	ActionMoveLeft
	ActionMoveRight
	ActionRotate
	ActionRotateCCW
	ActionHardDrop
	ActionTogglePause
)
