// Package viewer holds the state shared by the interactive front ends:
// spring-damped model rotation, the scene that turns it into frames, and
// frame pacing.
package viewer

import (
	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/softrast/pkg/math3d"
)

// RotationAxis tracks position and velocity for one rotation axis with spring decay
type RotationAxis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // spring velocity of Velocity itself
}

// NewRotationAxis creates an axis whose velocity decays toward zero.
func NewRotationAxis(fps int) RotationAxis {
	return RotationAxis{
		// critically damped, no overshoot
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update applies velocity to position and decays velocity toward 0 using spring
func (a *RotationAxis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// RotationState holds pitch, yaw and roll.
type RotationState struct {
	Pitch, Yaw, Roll RotationAxis
	fps              int
}

func NewRotationState(fps int) *RotationState {
	return &RotationState{
		Pitch: NewRotationAxis(fps),
		Yaw:   NewRotationAxis(fps),
		Roll:  NewRotationAxis(fps),
		fps:   fps,
	}
}

func (r *RotationState) Update() {
	r.Pitch.Update()
	r.Yaw.Update()
	r.Roll.Update()
}

func (r *RotationState) ApplyImpulse(pitch, yaw, roll float64) {
	r.Pitch.Velocity += pitch
	r.Yaw.Velocity += yaw
	r.Roll.Velocity += roll
}

func (r *RotationState) Reset() {
	r.Pitch = NewRotationAxis(r.fps)
	r.Yaw = NewRotationAxis(r.fps)
	r.Roll = NewRotationAxis(r.fps)
}

// Matrix returns RotateX(pitch) · RotateY(yaw) · RotateZ(roll).
func (r *RotationState) Matrix() math3d.Mat4 {
	return math3d.RotateX(r.Pitch.Position).
		Mul(math3d.RotateY(r.Yaw.Position)).
		Mul(math3d.RotateZ(r.Roll.Position))
}
