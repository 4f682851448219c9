package camera

import (
	"math"
	"testing"

	"github.com/pthm-cable/swirl/systems"
)

func TestTrackerTargetMovesSpeedTimesT(t *testing.T) {
	tests := []struct {
		name         string
		in           systems.Input
		wantX, wantY float64
	}{
		{"up", systems.Input{Up: true}, 0, 400},
		{"down", systems.Input{Down: true}, 0, -400},
		{"left", systems.Input{Left: true}, -400, 0},
		{"right", systems.Input{Right: true}, 400, 0},
		{"up+right compounds", systems.Input{Up: true, Right: true}, 400, 400},
		{"left+right cancel", systems.Input{Left: true, Right: true}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker(400, 0.3)
			// T = 1s in 100 steps
			for i := 0; i < 100; i++ {
				tr.Update(tt.in, 0.01)
			}
			if math.Abs(float64(tr.Target.X)-tt.wantX) > 0.01 || math.Abs(float64(tr.Target.Y)-tt.wantY) > 0.01 {
				t.Errorf("target = (%f, %f), want (%v, %v)", tr.Target.X, tr.Target.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestTrackerConvergesMonotonically(t *testing.T) {
	tr := NewTracker(400, 0.3)
	for i := 0; i < 50; i++ {
		tr.Update(systems.Input{Right: true}, 0.01)
	}

	// Input released: actual approaches target without passing it
	prevGap := float64(tr.Target.X - tr.Actual.X)
	if prevGap <= 0 {
		t.Fatalf("expected actual to lag behind target, gap %v", prevGap)
	}
	for i := 0; i < 500; i++ {
		tr.Update(systems.Input{}, 0.01)
		gap := float64(tr.Target.X - tr.Actual.X)
		if gap < 0 {
			t.Fatalf("step %d: overshoot, actual %v past target %v", i, tr.Actual.X, tr.Target.X)
		}
		if gap > prevGap {
			t.Fatalf("step %d: gap grew from %v to %v", i, prevGap, gap)
		}
		prevGap = gap
	}
	if prevGap > 0.01 {
		t.Errorf("expected convergence after 5s, gap %v", prevGap)
	}
}

func TestTrackerLongFrameDoesNotOvershoot(t *testing.T) {
	tr := NewTracker(400, 0.3)
	tr.Target = Vec2{X: 100, Y: -50}

	tr.Update(systems.Input{}, 2.0)
	if tr.Actual != tr.Target {
		t.Errorf("actual = %+v, want clamped onto target %+v", tr.Actual, tr.Target)
	}
}

func TestTrackerSmoothnessSlowsConvergence(t *testing.T) {
	fast := NewTracker(0, 0.1)
	slow := NewTracker(0, 1.0)
	fast.Target = Vec2{X: 100}
	slow.Target = Vec2{X: 100}

	for i := 0; i < 10; i++ {
		fast.Update(systems.Input{}, 0.01)
		slow.Update(systems.Input{}, 0.01)
	}
	if fast.Actual.X <= slow.Actual.X {
		t.Errorf("smaller smoothness should converge faster: fast %v, slow %v", fast.Actual.X, slow.Actual.X)
	}
}

func TestTrackerApply(t *testing.T) {
	tr := NewTracker(400, 0.3)
	tr.Actual = Vec2{X: 12, Y: -3}
	cam := New(800, 600, 1)

	tr.Apply(cam)
	if cam.X != 12 || cam.Y != -3 {
		t.Errorf("camera at (%f, %f), want (12, -3)", cam.X, cam.Y)
	}
}
