package glyphspin

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const spinTolerance = 1e-12

func TestSpin_DragAddsScaledPointerTravel(t *testing.T) {
	spin := NewSpinController(DefaultSpinParams())
	baseline := spin.Advance(0)

	spin.Handle(PointerDown(100, 100, MouseButtonPrimary))
	spin.Handle(PointerMove(150, 130))
	rot := spin.Advance(0.5)

	require.Equal(t, SpinDragging, spin.Mode())
	assert.InDelta(t, baseline.Y+0.5, rot.Y, spinTolerance)
	assert.InDelta(t, baseline.X+0.3, rot.X, spinTolerance)
}

func TestSpin_MoveIsRelativeToGestureOrigin(t *testing.T) {
	spin := NewSpinController(DefaultSpinParams())
	baseline := spin.Advance(0)

	spin.Handle(PointerDown(10, 10, MouseButtonPrimary))
	spin.Handle(PointerMove(60, 10))
	spin.Handle(PointerMove(30, 10))
	rot := spin.Advance(0)

	assert.InDelta(t, baseline.Y+0.2, rot.Y, spinTolerance)
	assert.InDelta(t, baseline.X, rot.X, spinTolerance)
}

func TestSpin_DragStartsFromCurrentRotation(t *testing.T) {
	spin := NewSpinController(DefaultSpinParams())
	idle := spin.Advance(1.7)

	spin.Handle(PointerDown(5, 5, MouseButtonPrimary))
	rot := spin.Advance(4.2)

	assert.Equal(t, idle, rot, "pressing without moving must not jump")
}

func TestSpin_ReleaseIsContinuous(t *testing.T) {
	spin := NewSpinController(DefaultSpinParams())
	spin.Advance(0)
	spin.Handle(PointerDown(0, 0, MouseButtonPrimary))
	spin.Handle(PointerMove(80, -40))
	last := spin.Advance(1)

	spin.Handle(PointerUp(80, -40))
	require.Equal(t, SpinReturning, spin.Mode())

	target := spin.Idle(1.1)
	first := spin.Advance(1.1)
	assert.InDelta(t, last.X+(target.X-last.X)*0.08, first.X, spinTolerance)
	assert.InDelta(t, last.Y+(target.Y-last.Y)*0.08, first.Y, spinTolerance)
}

func TestSpin_ReturningTerminates(t *testing.T) {
	spin := NewSpinController(DefaultSpinParams())
	spin.Advance(0)
	spin.Handle(PointerDown(0, 0, MouseButtonPrimary))
	spin.Handle(PointerMove(300, 200))
	spin.Advance(0)
	spin.Handle(PointerUp(300, 200))

	const at = 2.0
	target := spin.Idle(at)
	prevErr := math.Inf(1)
	frames := 0
	for spin.Mode() == SpinReturning {
		rot := spin.Advance(at)
		err := math.Max(math.Abs(target.X-rot.X), math.Abs(target.Y-rot.Y))
		require.Less(t, err, prevErr, "error must shrink every frame")
		prevErr = err
		frames++
		require.Less(t, frames, 1000)
	}
	assert.Equal(t, SpinIdle, spin.Mode())
	assert.Equal(t, spin.Idle(at+1), spin.Advance(at+1))
}

func TestSpin_IdleIsDeterministic(t *testing.T) {
	a := NewSpinController(DefaultSpinParams())
	b := NewSpinController(DefaultSpinParams())

	assert.Equal(t, a.Idle(12.5), a.Idle(12.5))
	a.Advance(3)
	assert.Equal(t, a.Advance(12.5), b.Advance(12.5))
}

func TestSpin_IdleFramesOneSecondApart(t *testing.T) {
	spin := NewSpinController(DefaultSpinParams())

	for _, at := range []float64{2, 3} {
		rot := spin.Advance(at)
		assert.InDelta(t, math.Sin(0.7*at)*0.4, rot.Y, spinTolerance)
		assert.InDelta(t, math.Cos(0.5*at)*0.1, rot.X, spinTolerance)
	}
}

func TestSpin_IgnoredInput(t *testing.T) {
	spin := NewSpinController(DefaultSpinParams())

	spin.Handle(PointerDown(0, 0, MouseButtonSecondary))
	assert.Equal(t, SpinIdle, spin.Mode(), "secondary button")

	spin.Handle(PointerDown(0, 0, MouseButtonMiddle))
	assert.Equal(t, SpinIdle, spin.Mode(), "middle button")

	spin.Handle(PointerUp(0, 0))
	spin.Handle(TouchEnd(0))
	assert.Equal(t, SpinIdle, spin.Mode(), "release without a drag")

	spin.Handle(PointerMove(50, 50))
	assert.Equal(t, spin.Idle(1), spin.Advance(1), "move without a drag")
}

func TestSpin_SecondFingerIsIgnored(t *testing.T) {
	spin := NewSpinController(DefaultSpinParams())
	baseline := spin.Advance(0)

	spin.Handle(TouchStart(10, 10, 1))
	spin.Handle(TouchMove(20, 10, 1))
	spin.Handle(TouchStart(200, 200, 2))
	spin.Handle(TouchMove(400, 400, 2))
	rot := spin.Advance(0)

	require.Equal(t, SpinDragging, spin.Mode())
	assert.InDelta(t, baseline.Y+0.1, rot.Y, spinTolerance)
	assert.InDelta(t, baseline.X, rot.X, spinTolerance)

	spin.Handle(TouchEnd(1))
	assert.Equal(t, SpinReturning, spin.Mode())
}

func TestSpin_TouchStartNeedsOneFinger(t *testing.T) {
	spin := NewSpinController(DefaultSpinParams())
	spin.Handle(TouchStart(10, 10, 2))
	assert.Equal(t, SpinIdle, spin.Mode())
}

func TestSpin_RegrabWhileReturning(t *testing.T) {
	spin := NewSpinController(DefaultSpinParams())
	spin.Advance(0)
	spin.Handle(PointerDown(0, 0, MouseButtonPrimary))
	spin.Handle(PointerMove(100, 0))
	spin.Advance(0)
	spin.Handle(PointerUp(100, 0))
	mid := spin.Advance(0.1)

	spin.Handle(PointerDown(0, 0, MouseButtonPrimary))
	assert.Equal(t, SpinDragging, spin.Mode())
	assert.Equal(t, mid, spin.Advance(0.2))
}

func TestFloatingComponent_PositionAt(t *testing.T) {
	f := FloatingComponent{Amplitude: 0.3, Speed: 1.2}
	f.Base[0] = -0.25

	pos := f.PositionAt(1.5)
	assert.InDelta(t, -0.25, pos.X(), 1e-6)
	assert.InDelta(t, math.Sin(1.8)*0.3, pos.Y(), 1e-6)
	assert.Zero(t, pos.Z())
}
