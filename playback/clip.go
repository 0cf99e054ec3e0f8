package playback

// Clip is a terminal video: a looped list of pre-rendered ANSI frames.
type Clip struct {
	URL     string
	frames  []string
	index   int
	playing bool
	muted   bool
	err     error
}

// NewClip returns a paused, muted clip for url with no frames yet.
func NewClip(url string) *Clip {
	return &Clip{URL: url, muted: true}
}

func (c *Clip) Play()               { c.playing = true }
func (c *Clip) Pause()              { c.playing = false }
func (c *Clip) Playing() bool       { return c.playing }
func (c *Clip) SetMuted(muted bool) { c.muted = muted }
func (c *Clip) Muted() bool         { return c.muted }

// SetFrames installs rendered frames and rewinds.
func (c *Clip) SetFrames(frames []string) {
	c.frames = frames
	c.index = 0
	c.err = nil
}

// SetErr records a failed frame load.
func (c *Clip) SetErr(err error) { c.err = err }

// Err is the last frame load error.
func (c *Clip) Err() error { return c.err }

// Loaded reports whether frames are available.
func (c *Clip) Loaded() bool { return len(c.frames) > 0 }

// Frame returns the current frame, or "" before frames are loaded.
func (c *Clip) Frame() string {
	if len(c.frames) == 0 {
		return ""
	}
	return c.frames[c.index]
}

// Advance steps to the next frame when playing, looping at the end. It
// reports whether the visible frame changed.
func (c *Clip) Advance() bool {
	if !c.playing || len(c.frames) <= 1 {
		return false
	}
	c.index = (c.index + 1) % len(c.frames)
	return true
}
