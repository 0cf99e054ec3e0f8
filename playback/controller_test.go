package playback

import (
	"fmt"
	"testing"
)

func mountClips(c *Controller, n int) []*Clip {
	clips := make([]*Clip, n)
	for i := range n {
		clips[i] = NewClip(fmt.Sprintf("https://cdn/%d.mp4", i))
		clips[i].SetFrames([]string{"a", "b"})
		c.SetRef(i, clips[i])
	}
	return clips
}

func TestController_OnlySlotAboveThresholdPlays(t *testing.T) {
	c := NewController(DefaultThreshold)
	clips := mountClips(c, 5)
	c.RegisterAll(PlayOnEnter, PauseOnExit)

	for _, k := range []int{0, 3, 4} {
		ratios := make([]float64, len(clips))
		for i := range ratios {
			ratios[i] = 0.2
		}
		ratios[k] = 0.75
		if k > 0 {
			ratios[k-1] = 0.74
		}
		c.NotifyAll(ratios)

		for i, clip := range clips {
			if clip.Playing() != (i == k) {
				t.Fatalf("k=%d: slot %d playing=%v", k, i, clip.Playing())
			}
		}
		if focus, ok := c.Focus(); !ok || focus != k {
			t.Fatalf("k=%d: unexpected focus %d ok=%v", k, focus, ok)
		}
	}
}

func TestController_FiresOnlyOnCrossing(t *testing.T) {
	c := NewController(0.75)
	c.SetRef(0, NewClip("u"))
	var enters, exits int
	c.Register(0, func(int, Element) { enters++ }, func(int, Element) { exits++ })

	c.Notify(0, 0.1) // first notification always reports
	c.Notify(0, 0.5)
	c.Notify(0, 0.8)
	c.Notify(0, 1.0)
	c.Notify(0, 0.74)
	if enters != 1 || exits != 2 {
		t.Fatalf("unexpected hook counts enters=%d exits=%d", enters, exits)
	}
}

func TestController_UnregisterAllReleasesObservers(t *testing.T) {
	c := NewController(0)
	clips := mountClips(c, 3)
	if n := c.RegisterAll(PlayOnEnter, PauseOnExit); n != 3 {
		t.Fatalf("expected 3 subscriptions, got %d", n)
	}
	c.UnregisterAll()
	if c.Subscribed() != 0 {
		t.Fatalf("expected no subscriptions after unmount")
	}
	c.Notify(1, 1)
	if clips[1].Playing() {
		t.Fatalf("unobserved slot must not play")
	}
}

func TestController_ResubscribeAfterAppend(t *testing.T) {
	c := NewController(DefaultThreshold)
	clips := mountClips(c, 2)
	c.RegisterAll(PlayOnEnter, PauseOnExit)

	// A new page renders two more slots.
	more := NewClip("u2")
	c.SetRef(2, more)
	c.SetRef(3, NewClip("u3"))
	c.Notify(2, 1)
	if more.Playing() {
		t.Fatalf("new slot must not be observed before re-subscribing")
	}
	if n := c.RegisterAll(PlayOnEnter, PauseOnExit); n != 4 {
		t.Fatalf("expected 4 subscriptions, got %d", n)
	}
	c.NotifyAll([]float64{0, 0, 1, 0})
	if !more.Playing() || clips[0].Playing() {
		t.Fatalf("expected only slot 2 playing")
	}
}

func TestController_UnmountDropsSubscription(t *testing.T) {
	c := NewController(DefaultThreshold)
	clips := mountClips(c, 2)
	c.RegisterAll(PlayOnEnter, PauseOnExit)
	c.SetRef(1, nil)
	if c.Subscribed() != 1 || c.Ref(1) != nil {
		t.Fatalf("unmounted slot must be nulled and unobserved")
	}
	c.Notify(1, 1)
	if clips[1].Playing() {
		t.Fatalf("unmounted element must not be driven")
	}
	if c.Register(1, PlayOnEnter, PauseOnExit) {
		t.Fatalf("register on an empty slot must fail")
	}
}

func TestController_MuteIsPerSlotAndIndependentOfPlayback(t *testing.T) {
	c := NewController(DefaultThreshold)
	clips := mountClips(c, 2)
	c.RegisterAll(PlayOnEnter, PauseOnExit)
	c.NotifyAll([]float64{1, 0})

	muted, ok := c.ToggleMute(0)
	if !ok || muted {
		t.Fatalf("clips start muted; toggle should unmute, got muted=%v ok=%v", muted, ok)
	}
	if !clips[0].Playing() || !clips[1].Muted() {
		t.Fatalf("mute toggle must not touch playback or other slots")
	}

	// Remounting slot 0 yields a fresh element with the default mute state.
	c.SetRef(0, NewClip("again"))
	if !c.Ref(0).Muted() {
		t.Fatalf("mute state must not survive remount")
	}
	if _, ok := c.ToggleMute(9); ok {
		t.Fatalf("toggle on a missing slot must report !ok")
	}
}

func TestRatio(t *testing.T) {
	cases := []struct {
		top, height, viewTop, viewHeight int
		want                             float64
	}{
		{0, 10, 0, 10, 1},
		{5, 10, 0, 10, 0.5},
		{10, 10, 0, 10, 0},
		{-3, 4, 0, 10, 0.25},
		{0, 0, 0, 10, 0},
		{2, 4, 0, 20, 1},
	}
	for _, tc := range cases {
		if got := Ratio(tc.top, tc.height, tc.viewTop, tc.viewHeight); got != tc.want {
			t.Fatalf("Ratio(%d,%d,%d,%d)=%v want %v", tc.top, tc.height, tc.viewTop, tc.viewHeight, got, tc.want)
		}
	}
}

func TestController_ClearUnmountsEverything(t *testing.T) {
	c := NewController(0)
	c.SetRef(0, NewClip("a"))
	c.SetRef(1, NewClip("b"))
	c.RegisterAll(PlayOnEnter, PauseOnExit)

	c.Clear()
	if c.Len() != 0 || c.Subscribed() != 0 {
		t.Fatalf("expected empty registry, got len=%d subs=%d", c.Len(), c.Subscribed())
	}
	if _, ok := c.Focus(); ok {
		t.Fatalf("no slot should be focused after clear")
	}
}
