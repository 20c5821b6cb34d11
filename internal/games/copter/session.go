package copter

// Session tracks progress toward the crash threshold.
type Session struct {
	Score    int
	Crashes  int
	Terminal bool
}

// recordCrash applies the crash policy shared by bounds and obstacle
// failures. Reaching the threshold ends the session with the craft frozen
// where it failed; otherwise the craft respawns and play continues.
// Score and obstacles are untouched either way.
func (s *Session) recordCrash(c *Craft, w WorldConfig) {
	s.Crashes++
	if s.Crashes >= w.MaxCrashes {
		s.Terminal = true
		return
	}
	c.respawn(w)
}
