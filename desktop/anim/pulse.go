package anim

import "math"

// Pulse speeds for the start and play buttons
var (
	IntroPulse    = Pulse{Speed: 0.04, Amplitude: 0.08}
	CompletePulse = Pulse{Speed: 0.12, Amplitude: 0.16}
)

// Pulse scales a button up and down along a sine wave.
// It is stopped until Start is called.
type Pulse struct {
	Speed     float64 // phase advance per frame
	Amplitude float64 // relative scale swing

	phase  float64
	handle *Handle
}

// Start restarts the pulse from phase zero. The previous handle, if any, is
// stopped.
func (p *Pulse) Start() *Handle {
	p.Stop()
	p.phase = 0
	p.handle = &Handle{}
	return p.handle
}

// Stop halts the pulse; Scale returns the base scale afterwards
func (p *Pulse) Stop() {
	p.handle.Stop()
	p.handle = nil
}

// Running reports whether the pulse is animating
func (p *Pulse) Running() bool {
	return !p.handle.Stopped()
}

// Step advances one frame and returns base scaled by the pulse
func (p *Pulse) Step(base float64) float64 {
	if !p.Running() {
		return base
	}
	p.phase += p.Speed
	return base * (1 + p.Amplitude*math.Sin(p.phase))
}
