package viewer

import (
	"context"
	"time"
)

// Pacer keeps a loop at a target frame rate and measures the rate achieved.
type Pacer struct {
	frame time.Duration
	start time.Time

	fps     float64
	frames  int
	fpsTime time.Time
}

// NewPacer creates a pacer for fps frames per second.
func NewPacer(fps int) *Pacer {
	now := time.Now()
	return &Pacer{
		frame:   time.Second / time.Duration(max(fps, 1)),
		start:   now,
		fpsTime: now,
	}
}

// Begin marks the start of a frame.
func (p *Pacer) Begin() {
	p.start = time.Now()
}

// Wait sleeps out the rest of the frame started by Begin, counts the frame,
// and returns ctx.Err() if ctx ends first.
func (p *Pacer) Wait(ctx context.Context) error {
	p.tick(time.Now())

	remaining := p.frame - time.Since(p.start)
	if remaining <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(remaining)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// tick counts a frame finished at now and refreshes the rate once a second.
func (p *Pacer) tick(now time.Time) {
	p.frames++
	elapsed := now.Sub(p.fpsTime)
	if elapsed >= time.Second {
		p.fps = float64(p.frames) / elapsed.Seconds()
		p.frames = 0
		p.fpsTime = now
	}
}

// FPS returns the frame rate measured over the last full second.
func (p *Pacer) FPS() float64 {
	return p.fps
}

// FrameDuration returns the target time per frame.
func (p *Pacer) FrameDuration() time.Duration {
	return p.frame
}
