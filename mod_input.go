package glyphspin

import (
	"maps"
	"slices"
	"sync"
)

type InputKind int

const (
	InputPointerDown InputKind = iota
	InputPointerMove
	InputPointerUp
	InputTouchStart
	InputTouchMove
	InputTouchEnd
	InputResize
	InputQuit
)

func (k InputKind) String() string {
	switch k {
	case InputPointerDown:
		return "pointer-down"
	case InputPointerMove:
		return "pointer-move"
	case InputPointerUp:
		return "pointer-up"
	case InputTouchStart:
		return "touch-start"
	case InputTouchMove:
		return "touch-move"
	case InputTouchEnd:
		return "touch-end"
	case InputResize:
		return "resize"
	case InputQuit:
		return "quit"
	}
	return "unknown"
}

type MouseButton int

const (
	MouseButtonPrimary MouseButton = iota
	MouseButtonSecondary
	MouseButtonMiddle
)

// InputEvent is one host event. X and Y are in pixels; Touches is the number
// of active touches after the event; Width and Height are set on resize.
type InputEvent struct {
	Kind    InputKind
	X, Y    float64
	Button  MouseButton
	Touches int
	Width   int
	Height  int
}

func PointerDown(x, y float64, button MouseButton) InputEvent {
	return InputEvent{Kind: InputPointerDown, X: x, Y: y, Button: button}
}

func PointerMove(x, y float64) InputEvent {
	return InputEvent{Kind: InputPointerMove, X: x, Y: y}
}

func PointerUp(x, y float64) InputEvent {
	return InputEvent{Kind: InputPointerUp, X: x, Y: y}
}

func TouchStart(x, y float64, touches int) InputEvent {
	return InputEvent{Kind: InputTouchStart, X: x, Y: y, Touches: touches}
}

func TouchMove(x, y float64, touches int) InputEvent {
	return InputEvent{Kind: InputTouchMove, X: x, Y: y, Touches: touches}
}

func TouchEnd(touches int) InputEvent {
	return InputEvent{Kind: InputTouchEnd, Touches: touches}
}

func Resize(width, height int) InputEvent {
	return InputEvent{Kind: InputResize, Width: width, Height: height}
}

func Quit() InputEvent {
	return InputEvent{Kind: InputQuit}
}

// InputQueue collects events from host goroutines. The frame goroutine
// drains it once per tick.
type InputQueue struct {
	mu     sync.Mutex
	events []InputEvent
}

func (q *InputQueue) Push(events ...InputEvent) {
	q.mu.Lock()
	q.events = append(q.events, events...)
	q.mu.Unlock()
}

func (q *InputQueue) Drain() []InputEvent {
	q.mu.Lock()
	defer q.mu.Unlock()
	events := q.events
	q.events = nil
	return events
}

// Input holds the events drained this frame and the latest viewport size.
type Input struct {
	Events []InputEvent

	Width, Height int
	Resized       bool
}

type InputModule struct {
	// Queue is shared with the host backend. A nil Queue gets a fresh one.
	Queue *InputQueue
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	queue := mod.Queue
	if queue == nil {
		queue = &InputQueue{}
	}
	cmd.AddResources(queue, &Input{})
	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
}

func inputSystem(cmd *Commands, queue *InputQueue, input *Input) {
	input.Events = queue.Drain()
	input.Resized = false

	for _, ev := range input.Events {
		switch ev.Kind {
		case InputResize:
			if ev.Width <= 0 || ev.Height <= 0 {
				continue
			}
			input.Width, input.Height = ev.Width, ev.Height
			input.Resized = true
		case InputQuit:
			if cmd.app.stateful && cmd.State() != cmd.app.finalState {
				cmd.ChangeState(cmd.app.finalState)
			}
		}
	}
}

// TouchPoint is one active touch in pixels.
type TouchPoint struct {
	ID   int
	X, Y float64
}

// TouchTracker turns per-frame touch snapshots into start, move and end
// events. Touches is the active count after each event.
type TouchTracker struct {
	active map[int]TouchPoint
}

func (tt *TouchTracker) Update(points []TouchPoint) []InputEvent {
	if tt.active == nil {
		tt.active = make(map[int]TouchPoint)
	}
	cur := make(map[int]TouchPoint, len(points))
	for _, p := range points {
		cur[p.ID] = p
	}

	var events []InputEvent
	for _, id := range slices.Sorted(maps.Keys(tt.active)) {
		if _, ok := cur[id]; !ok {
			delete(tt.active, id)
			events = append(events, TouchEnd(len(tt.active)))
		}
	}
	for _, p := range points {
		prev, ok := tt.active[p.ID]
		if !ok {
			tt.active[p.ID] = p
			events = append(events, TouchStart(p.X, p.Y, len(tt.active)))
			continue
		}
		if prev.X != p.X || prev.Y != p.Y {
			tt.active[p.ID] = p
			events = append(events, TouchMove(p.X, p.Y, len(cur)))
		}
	}
	return events
}
