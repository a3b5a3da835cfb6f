package glfwplatform

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/imdraw"
)

// EventKind discriminates queued window events.
type EventKind uint8

const (
	EventKey EventKind = iota
	EventChar
	EventMouseButton
	EventCursorPos
	EventScroll
)

// Event is one queued window event. Fields beyond Kind are valid per
// kind only.
type Event struct {
	Kind EventKind

	Key      glfw.Key
	Scancode int
	Action   glfw.Action
	Mods     glfw.ModifierKey

	Char rune

	Button glfw.MouseButton

	// X, Y carry the cursor position for EventCursorPos and the
	// scroll deltas for EventScroll.
	X, Y float64
}

// Platform queues GLFW input events and projects them onto IO state. It
// implements the platform contract over GLFW windows.
//
// Use it from the main thread only, like GLFW itself.
type Platform struct {
	events   []Event
	lastTime float64
}

// New installs input callbacks on window and returns the platform.
// Existing callbacks on the window are replaced.
func New(window *glfw.Window) *Platform {
	p := &Platform{lastTime: glfw.GetTime()}

	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		p.events = append(p.events, Event{Kind: EventKey, Key: key, Scancode: scancode, Action: action, Mods: mods})
	})
	window.SetCharCallback(func(_ *glfw.Window, char rune) {
		p.events = append(p.events, Event{Kind: EventChar, Char: char})
	})
	window.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		p.events = append(p.events, Event{Kind: EventMouseButton, Button: button, Action: action})
	})
	window.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		p.events = append(p.events, Event{Kind: EventCursorPos, X: xpos, Y: ypos})
	})
	window.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		p.events = append(p.events, Event{Kind: EventScroll, X: xoff, Y: yoff})
	})
	return p
}

// Drain returns the queued events and clears the queue. Call once per
// frame after glfw.PollEvents, feeding each event to the backend.
func (p *Platform) Drain() []Event {
	ev := p.events
	p.events = nil
	return ev
}

// HandleEvent applies one event to io. It reports whether the event
// updated IO state.
func (p *Platform) HandleEvent(io *imdraw.IO, ev Event) bool {
	switch ev.Kind {
	case EventKey:
		switch ev.Action {
		case glfw.Press, glfw.Repeat:
			io.KeysDown[int(ev.Key)] = true
		case glfw.Release:
			io.KeysDown[int(ev.Key)] = false
		}
		return true
	case EventChar:
		io.InputChars = append(io.InputChars, ev.Char)
		return true
	case EventMouseButton:
		if b := int(ev.Button); b >= 0 && b < len(io.MouseDown) {
			io.MouseDown[b] = ev.Action == glfw.Press
			return true
		}
		return false
	case EventCursorPos:
		io.MousePos = [2]float32{float32(ev.X), float32(ev.Y)}
		return true
	case EventScroll:
		io.MouseWheel[0] += float32(ev.X)
		io.MouseWheel[1] += float32(ev.Y)
		return true
	}
	return false
}

// PrepareFrame refreshes io's display size, framebuffer scale and delta
// time from the window.
func (p *Platform) PrepareFrame(io *imdraw.IO, window *glfw.Window) error {
	w, h := window.GetSize()
	fbW, fbH := window.GetFramebufferSize()
	io.DisplaySize = [2]float32{float32(w), float32(h)}
	io.FramebufferScale = [2]float32{1, 1}
	if w > 0 && h > 0 {
		io.FramebufferScale = [2]float32{float32(fbW) / float32(w), float32(fbH) / float32(h)}
	}

	now := glfw.GetTime()
	io.DeltaTime = float32(now - p.lastTime)
	p.lastTime = now
	return nil
}

// PrepareRender is a hook before backend rendering. GLFW needs no
// per-frame render preparation.
func (p *Platform) PrepareRender(window *glfw.Window) {}
