package loop

// System is one unit of per-tick work. A board, a recorder and a debug
// panel are all systems; they keep whatever state they need between frames.
type System interface {
	Execute(frame *Frame)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(frame *Frame)

func (f SystemFunc) Execute(frame *Frame) {
	f(frame)
}
