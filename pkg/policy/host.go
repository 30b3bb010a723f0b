package policy

import (
	"net"
	"strings"

	"github.com/gobwas/glob"
	"golang.org/x/net/publicsuffix"
)

// NormalizeHost lowercases a host name and strips any port, brackets and
// trailing dot.
func NormalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.TrimPrefix(host, "[")
	host = strings.TrimSuffix(host, "]")
	return strings.TrimSuffix(host, ".")
}

// NormalizeEntry cleans a configured domain entry. It reports false for
// entries that are empty or carry a scheme or path, which are ignored.
func NormalizeEntry(entry string) (string, bool) {
	entry = strings.ToLower(strings.TrimSpace(entry))
	if entry == "" || strings.Contains(entry, "://") || strings.Contains(entry, "/") {
		return "", false
	}
	entry = strings.TrimSuffix(entry, ".")
	if entry == "" {
		return "", false
	}
	return entry, true
}

// isGlob reports whether the entry uses wildcard syntax.
func isGlob(entry string) bool {
	return strings.ContainsAny(entry, "*?[{")
}

// compileGlob compiles a host glob with '.' as the label separator, so "*"
// matches exactly one label and "**" any number.
func compileGlob(entry string) (glob.Glob, error) {
	return glob.Compile(entry, '.')
}

// Candidates returns the host followed by its parent domains, most specific
// first, stopping at the registrable domain so public suffixes such as "com"
// or "co.uk" are never consulted. IP addresses and hosts without a
// registrable domain yield only the host itself.
func Candidates(host string) []string {
	host = NormalizeHost(host)
	if host == "" {
		return nil
	}
	if net.ParseIP(host) != nil {
		return []string{host}
	}
	registrable, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return []string{host}
	}

	out := []string{host}
	for h := host; h != registrable; {
		i := strings.IndexByte(h, '.')
		if i < 0 {
			break
		}
		h = h[i+1:]
		out = append(out, h)
	}
	return out
}

// matchesSuffix reports whether host equals entry or is a subdomain of it.
func matchesSuffix(host, entry string) bool {
	return host == entry || strings.HasSuffix(host, "."+entry)
}
