// Package debugui draws Dear ImGui inspection panels for running boards and
// the tick scheduler.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/loop"
)

// Panel renders one ImGui window. Render runs during the command flush, after
// every system has executed for the tick.
type Panel interface {
	Render(frame *loop.Frame)
}

// PanelFunc adapts a plain function to Panel.
type PanelFunc func(frame *loop.Frame)

func (f PanelFunc) Render(frame *loop.Frame) { f(frame) }

// InputState tracks whether ImGui is consuming mouse or keyboard input.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// System records the ImGui capture state and defers every panel's Render.
type System struct {
	Panels []Panel
	Input  InputState

	// Capture reads the capture state; nil reads it from the current ImGui context.
	Capture func() InputState
}

func NewSystem(panels ...Panel) *System {
	return &System{Panels: panels}
}

// Add appends a panel.
func (s *System) Add(p Panel) {
	s.Panels = append(s.Panels, p)
}

func (s *System) Execute(frame *loop.Frame) {
	capture := s.Capture
	if capture == nil {
		capture = imguiCapture
	}
	s.Input = capture()

	for _, p := range s.Panels {
		frame.Commands.Defer(func() { p.Render(frame) })
	}
}

func imguiCapture() InputState {
	io := imgui.CurrentIO()
	return InputState{
		WantCaptureMouse:    io.WantCaptureMouse(),
		WantCaptureKeyboard: io.WantCaptureKeyboard(),
	}
}
