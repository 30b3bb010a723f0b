package policy

// Mode selects how the global domain list is interpreted.
type Mode string

const (
	// ModeBlacklist disables listed domains and allows all others.
	ModeBlacklist Mode = "blacklist"
	// ModeWhitelist allows only listed domains.
	ModeWhitelist Mode = "whitelist"
)

// ParseMode maps a name to a Mode, reporting whether it was recognized.
func ParseMode(name string) (Mode, bool) {
	switch Mode(name) {
	case ModeBlacklist, ModeWhitelist:
		return Mode(name), true
	default:
		return ModeBlacklist, false
	}
}

// DomainList is an ordered, de-duplicated set of domain entries.
type DomainList struct {
	entries []string
	globs   []func(string) bool
}

// NewDomainList normalizes entries, silently dropping invalid ones and
// duplicates while keeping first-seen order.
func NewDomainList(entries []string) DomainList {
	var l DomainList
	seen := make(map[string]bool, len(entries))
	for _, raw := range entries {
		e, ok := NormalizeEntry(raw)
		if !ok || seen[e] {
			continue
		}
		if isGlob(e) {
			g, err := compileGlob(e)
			if err != nil {
				continue
			}
			l.globs = append(l.globs, g.Match)
		}
		seen[e] = true
		l.entries = append(l.entries, e)
	}
	return l
}

// Entries returns the normalized entries.
func (l DomainList) Entries() []string {
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// Match reports whether host is covered by any entry.
func (l DomainList) Match(host string) bool {
	host = NormalizeHost(host)
	if host == "" {
		return false
	}
	for _, e := range l.entries {
		if !isGlob(e) && matchesSuffix(host, e) {
			return true
		}
	}
	for _, match := range l.globs {
		if match(host) {
			return true
		}
	}
	return false
}

// Allows applies the mode to a host match result: a blacklist allows
// unlisted hosts, a whitelist allows listed ones.
func (m Mode) Allows(listed bool) bool {
	if m == ModeWhitelist {
		return listed
	}
	return !listed
}
