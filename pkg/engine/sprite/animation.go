package sprite

import (
	"fmt"
	"image"
	"time"
)

// FrameIndex returns the frame shown after elapsed time. Looping animations
// wrap; one-shot animations report done once the index passes the last frame
// and stay on it.
func FrameIndex(elapsed, frameDuration time.Duration, count int, loop bool) (index int, done bool) {
	// static sprites never advance or finish
	if count <= 0 || frameDuration <= 0 {
		return 0, false
	}
	if elapsed < 0 {
		elapsed = 0
	}
	index = int(elapsed / frameDuration)
	if loop {
		return index % count, false
	}
	if index >= count {
		return count - 1, true
	}
	return index, false
}

// Player tracks playback of one animation instance
type Player struct {
	Sprite *Sprite
	Loop   bool

	// X and Y are where the instance is drawn, centred, in screen pixels
	X, Y float64
	// FlipH mirrors the frame horizontally
	FlipH bool

	elapsed time.Duration
	done    bool
}

// NewPlayer starts playback of s
func NewPlayer(s *Sprite, loop bool) *Player {
	return &Player{Sprite: s, Loop: loop}
}

// Update advances playback by dt
func (p *Player) Update(dt time.Duration) {
	if p.done {
		return
	}
	p.elapsed += dt
	_, p.done = FrameIndex(p.elapsed, p.Sprite.FrameDuration, len(p.Sprite.Frames), p.Loop)
}

// Index returns the current frame index
func (p *Player) Index() int {
	i, _ := FrameIndex(p.elapsed, p.Sprite.FrameDuration, len(p.Sprite.Frames), p.Loop)
	return i
}

// Frame returns the current frame image
func (p *Player) Frame() image.Image {
	return p.Sprite.Frames[p.Index()]
}

// Elapsed returns total playback time
func (p *Player) Elapsed() time.Duration {
	return p.elapsed
}

// Done reports whether a one-shot animation has finished
func (p *Player) Done() bool {
	return p.done
}

// Effects is the set of active one-shot animations, such as explosions
type Effects struct {
	catalog *Catalog
	active  []*Player
}

// NewEffects creates an empty effect set drawing from catalog
func NewEffects(catalog *Catalog) *Effects {
	return &Effects{catalog: catalog}
}

// Spawn starts a one-shot instance of the named animation at (x, y)
func (e *Effects) Spawn(name string, x, y float64, flipH bool) (*Player, error) {
	s, err := e.catalog.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("sprite: spawn effect: %w", err)
	}
	p := NewPlayer(s, false)
	p.X, p.Y, p.FlipH = x, y, flipH
	e.active = append(e.active, p)
	return p, nil
}

// Update advances every instance and drops the finished ones
func (e *Effects) Update(dt time.Duration) {
	kept := e.active[:0]
	for _, p := range e.active {
		p.Update(dt)
		if !p.Done() {
			kept = append(kept, p)
		}
	}
	for i := len(kept); i < len(e.active); i++ {
		e.active[i] = nil
	}
	e.active = kept
}

// Each calls fn for every active instance in spawn order
func (e *Effects) Each(fn func(p *Player)) {
	for _, p := range e.active {
		fn(p)
	}
}

// Len returns the number of active instances
func (e *Effects) Len() int {
	return len(e.active)
}
