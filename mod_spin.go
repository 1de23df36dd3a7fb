package glyphspin

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/glyphspin/rt/core"
)

type SpinMode int

const (
	SpinIdle SpinMode = iota
	SpinDragging
	SpinReturning
)

func (m SpinMode) String() string {
	switch m {
	case SpinIdle:
		return "idle"
	case SpinDragging:
		return "dragging"
	case SpinReturning:
		return "returning"
	}
	return "unknown"
}

// Rotation is a pair of Euler angles in radians.
type Rotation struct {
	X, Y float64
}

type SpinParams struct {
	// Radians per pixel of pointer travel.
	Sensitivity float64
	// Fraction of the remaining error closed per returning frame.
	ReturnRate float64
	// Returning ends once both axis errors are below Epsilon.
	Epsilon float64

	IdleAmplitudeY, IdleFrequencyY float64
	IdleAmplitudeX, IdleFrequencyX float64
}

func DefaultSpinParams() SpinParams {
	return SpinParams{
		Sensitivity:    0.01,
		ReturnRate:     0.08,
		Epsilon:        0.001,
		IdleAmplitudeY: 0.4,
		IdleFrequencyY: 0.7,
		IdleAmplitudeX: 0.1,
		IdleFrequencyX: 0.5,
	}
}

type dragState struct {
	originX, originY float64
	start            Rotation
	current          Rotation
}

// SpinController owns the group's rotation. Handle feeds it pointer and
// touch events, Advance produces the rotation for a frame.
type SpinController struct {
	Params SpinParams

	mode     SpinMode
	drag     dragState
	blend    Rotation
	rotation Rotation
}

func NewSpinController(params SpinParams) *SpinController {
	return &SpinController{Params: params}
}

func (c *SpinController) Mode() SpinMode {
	return c.mode
}

// Rotation is the value produced by the last Advance.
func (c *SpinController) Rotation() Rotation {
	return c.rotation
}

// Idle is the time-only idle rotation.
func (c *SpinController) Idle(t float64) Rotation {
	p := c.Params
	return Rotation{
		X: math.Cos(t*p.IdleFrequencyX) * p.IdleAmplitudeX,
		Y: math.Sin(t*p.IdleFrequencyY) * p.IdleAmplitudeY,
	}
}

func (c *SpinController) Handle(ev InputEvent) {
	switch ev.Kind {
	case InputPointerDown:
		if ev.Button == MouseButtonPrimary {
			c.begin(ev.X, ev.Y)
		}
	case InputTouchStart:
		// A second finger is ignored and leaves any drag untouched.
		if ev.Touches == 1 {
			c.begin(ev.X, ev.Y)
		}
	case InputPointerMove:
		c.move(ev.X, ev.Y)
	case InputTouchMove:
		if ev.Touches == 1 {
			c.move(ev.X, ev.Y)
		}
	case InputPointerUp, InputTouchEnd:
		c.end()
	}
}

func (c *SpinController) begin(x, y float64) {
	c.drag = dragState{
		originX: x,
		originY: y,
		start:   c.rotation,
		current: c.rotation,
	}
	c.mode = SpinDragging
}

func (c *SpinController) move(x, y float64) {
	if c.mode != SpinDragging {
		return
	}
	c.drag.current = Rotation{
		X: c.drag.start.X + (y-c.drag.originY)*c.Params.Sensitivity,
		Y: c.drag.start.Y + (x-c.drag.originX)*c.Params.Sensitivity,
	}
}

func (c *SpinController) end() {
	if c.mode != SpinDragging {
		return
	}
	c.blend = c.drag.current
	c.mode = SpinReturning
}

// Advance computes the rotation at t seconds since start.
func (c *SpinController) Advance(t float64) Rotation {
	switch c.mode {
	case SpinDragging:
		c.rotation = c.drag.current
	case SpinReturning:
		target := c.Idle(t)
		c.blend.X += (target.X - c.blend.X) * c.Params.ReturnRate
		c.blend.Y += (target.Y - c.blend.Y) * c.Params.ReturnRate
		c.rotation = c.blend
		if math.Abs(target.X-c.blend.X) < c.Params.Epsilon && math.Abs(target.Y-c.blend.Y) < c.Params.Epsilon {
			c.mode = SpinIdle
		}
	default:
		c.rotation = c.Idle(t)
		c.drag.current = c.rotation
	}
	return c.rotation
}

// SpinComponent marks the entity whose rotation follows the SpinController.
type SpinComponent struct{}

// FloatingComponent bobs an entity vertically around Base.
type FloatingComponent struct {
	Base      mgl32.Vec3
	Amplitude float32
	Speed     float32
}

func (f FloatingComponent) PositionAt(t float64) mgl32.Vec3 {
	offset := float32(math.Sin(t*float64(f.Speed))) * f.Amplitude
	return f.Base.Add(mgl32.Vec3{0, offset, 0})
}

type SpinModule struct {
	Params SpinParams
}

func (mod SpinModule) Install(app *App, cmd *Commands) {
	params := mod.Params
	if params == (SpinParams{}) {
		params = DefaultSpinParams()
	}
	cmd.AddResources(NewSpinController(params))

	app.UseSystem(
		System(spinInputSystem).
			InStage(Update).
			InState(OnExecute(StateRunning)),
	)
	app.UseSystem(
		System(spinFrameSystem).
			InStage(Update).
			InState(OnExecute(StateRunning)),
	)
}

func spinInputSystem(input *Input, spin *SpinController) {
	for _, ev := range input.Events {
		spin.Handle(ev)
	}
}

func spinFrameSystem(cmd *Commands, clock *Time, spin *SpinController) {
	t := clock.Elapsed()
	rot := spin.Advance(t)
	q := core.EulerXYZ(float32(rot.X), float32(rot.Y), 0)

	MakeQuery2[SpinComponent, LocalTransformComponent](cmd).Map(func(eid EntityId, _ *SpinComponent, local *LocalTransformComponent) bool {
		local.Rotation = q
		return true
	})
	MakeQuery2[FloatingComponent, LocalTransformComponent](cmd).Map(func(eid EntityId, f *FloatingComponent, local *LocalTransformComponent) bool {
		local.Position = f.PositionAt(t)
		return true
	})
}
