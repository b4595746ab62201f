package loop

// Frame is handed to every system during one tick.
type Frame struct {
	Tick      uint64
	DeltaTime float64
	Commands  *Commands
}

func newFrame(tick uint64, dt float64, commands *Commands) *Frame {
	return &Frame{
		Tick:      tick,
		DeltaTime: dt,
		Commands:  commands,
	}
}
