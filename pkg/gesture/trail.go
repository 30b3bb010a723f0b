package gesture

// TrailHint is what the renderer needs to draw the trail: the recent points
// and the style to draw them with. Clear asks the renderer to erase the trail.
type TrailHint struct {
	SessionID string
	Points    Trajectory
	Style     TrailStyle
	Clear     bool
}

// trail records whether anything changed since the last frame so many
// pointer moves between two paints collapse into a single render.
type trail struct {
	dirty   bool
	clear   bool
	session string
}

func (t *trail) markDirty(sessionID string) {
	t.session = sessionID
	t.dirty = true
	t.clear = false
}

func (t *trail) markClear() {
	t.dirty = true
	t.clear = true
}

// frame returns the pending hint, if any, and resets the dirty flag.
func (t *trail) frame(s *Session) (TrailHint, bool) {
	if !t.dirty {
		return TrailHint{}, false
	}
	t.dirty = false
	if t.clear || s == nil {
		t.clear = false
		return TrailHint{SessionID: t.session, Clear: true}, true
	}
	if !s.cfg.Trail.Enabled {
		return TrailHint{}, false
	}
	return TrailHint{
		SessionID: s.ID,
		Points:    s.sampler.Tail(s.cfg.Trail.MaxPoints),
		Style:     s.cfg.Trail,
	}, true
}
