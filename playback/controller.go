// Package playback decides which rendered video slots play, from visibility
// notifications sent by the host view.
package playback

// DefaultThreshold is the visible fraction at which a slot counts as in view.
const DefaultThreshold = 0.75

// Element is a rendered video the controller can drive.
type Element interface {
	Play()
	Pause()
	SetMuted(muted bool)
	Muted() bool
}

// Hook is invoked when a slot's element crosses the visibility threshold.
type Hook func(slot int, el Element)

type subscription struct {
	el      Element
	onEnter Hook
	onExit  Hook
	known   bool // false until the first notification
	inView  bool
}

// Controller keeps the slot -> element registry and the observation
// subscriptions. Each slot is tracked independently; the host layout
// decides how many slots can be in view at once.
type Controller struct {
	threshold float64
	refs      []Element
	subs      map[int]*subscription
}

// NewController creates a controller. A threshold outside (0, 1] falls back
// to DefaultThreshold.
func NewController(threshold float64) *Controller {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Controller{
		threshold: threshold,
		subs:      make(map[int]*subscription),
	}
}

// Threshold returns the in-view ratio.
func (c *Controller) Threshold() float64 { return c.threshold }

// SetRef records the element rendered in slot; nil marks it unmounted.
// Replacing or clearing an element drops that slot's subscription.
func (c *Controller) SetRef(slot int, el Element) {
	if slot < 0 {
		return
	}
	for len(c.refs) <= slot {
		c.refs = append(c.refs, nil)
	}
	if c.refs[slot] != el {
		delete(c.subs, slot)
	}
	c.refs[slot] = el
}

// Ref returns the element in slot, or nil.
func (c *Controller) Ref(slot int) Element {
	if slot < 0 || slot >= len(c.refs) {
		return nil
	}
	return c.refs[slot]
}

// Len is the size of the registry, mounted or not.
func (c *Controller) Len() int { return len(c.refs) }

// Register observes the element currently in slot. It returns false when
// the slot has no element.
func (c *Controller) Register(slot int, onEnter, onExit Hook) bool {
	el := c.Ref(slot)
	if el == nil {
		return false
	}
	c.subs[slot] = &subscription{el: el, onEnter: onEnter, onExit: onExit}
	return true
}

// RegisterAll replaces every subscription with one per mounted slot. Call
// it whenever the set of rendered slots changes.
func (c *Controller) RegisterAll(onEnter, onExit Hook) int {
	c.UnregisterAll()
	n := 0
	for slot := range c.refs {
		if c.Register(slot, onEnter, onExit) {
			n++
		}
	}
	return n
}

// Unregister stops observing slot.
func (c *Controller) Unregister(slot int) {
	delete(c.subs, slot)
}

// UnregisterAll releases every subscription.
func (c *Controller) UnregisterAll() {
	clear(c.subs)
}

// Clear unmounts every slot and drops every subscription.
func (c *Controller) Clear() {
	c.refs = nil
	clear(c.subs)
}

// Subscribed reports how many slots are observed.
func (c *Controller) Subscribed() int { return len(c.subs) }

// Notify delivers a visibility ratio for slot. The first notification after
// subscribing always fires enter or exit; later ones fire only when the
// ratio crosses the threshold. Unobserved slots are ignored.
func (c *Controller) Notify(slot int, ratio float64) {
	sub, ok := c.subs[slot]
	if !ok {
		return
	}
	inView := ratio >= c.threshold
	if sub.known && sub.inView == inView {
		return
	}
	sub.known = true
	sub.inView = inView
	hook := sub.onExit
	if inView {
		hook = sub.onEnter
	}
	if hook != nil {
		hook(slot, sub.el)
	}
}

// NotifyAll delivers ratios indexed by slot.
func (c *Controller) NotifyAll(ratios []float64) {
	for slot, r := range ratios {
		c.Notify(slot, r)
	}
}

// InView reports whether slot was last seen above the threshold.
func (c *Controller) InView(slot int) bool {
	sub, ok := c.subs[slot]
	return ok && sub.known && sub.inView
}

// Focus returns the first slot in view.
func (c *Controller) Focus() (int, bool) {
	for slot := range c.refs {
		if c.InView(slot) {
			return slot, true
		}
	}
	return -1, false
}

// ToggleMute flips the mute flag of the element in slot and returns the
// new value. ok is false when the slot has no element.
func (c *Controller) ToggleMute(slot int) (muted bool, ok bool) {
	el := c.Ref(slot)
	if el == nil {
		return false, false
	}
	el.SetMuted(!el.Muted())
	return el.Muted(), true
}

// PlayOnEnter plays an element that comes into view.
func PlayOnEnter(_ int, el Element) { el.Play() }

// PauseOnExit pauses an element that leaves the view.
func PauseOnExit(_ int, el Element) { el.Pause() }

// Ratio is the fraction of the span [top, top+height) that lies inside the
// viewport [viewTop, viewTop+viewHeight).
func Ratio(top, height, viewTop, viewHeight int) float64 {
	if height <= 0 || viewHeight <= 0 {
		return 0
	}
	lo := max(top, viewTop)
	hi := min(top+height, viewTop+viewHeight)
	if hi <= lo {
		return 0
	}
	return float64(hi-lo) / float64(height)
}
