package viewer

// Torque is the impulse one full-strength rotate input adds per tick.
const Torque = 0.02

// Input is one tick's worth of user intent, independent of the device it
// came from.
type Input struct {
	Pitch, Yaw, Roll float64 // rotate direction, -1..1
	Zoom             int     // -1 in, +1 out
	Reset            bool
	NextMode         bool
	Quit             bool
}

// Apply folds in into the scene's state and reports whether the viewer
// should quit. It does not render.
func (s *Scene) Apply(in Input) (quit bool) {
	if in.Quit {
		return true
	}
	if in.Reset {
		s.Reset()
	}
	if in.Zoom != 0 {
		s.Zoom(float64(in.Zoom) * ZoomStep)
	}
	if in.NextMode {
		s.Mode = s.Mode.Next()
	}
	s.Rotation.ApplyImpulse(in.Pitch*Torque, in.Yaw*Torque, in.Roll*Torque)
	return false
}
