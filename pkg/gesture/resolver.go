package gesture

import (
	"net/url"

	"github.com/entrhq/strokes/pkg/types"
)

// Resolve maps a finished pattern to an action request.
//
// The pattern is looked up first. If the mapped action is forward and the
// gesture started on a link with an absolute URL, the override setting
// decides whether the request becomes new_tab for that URL. A pattern the
// user bound to anything other than forward is never overridden.
func Resolve(p Pattern, start types.Target, actions ActionMap, override LinkOverride) (types.ActionRequest, bool) {
	action, ok := actions.Lookup(p)
	if !ok {
		return types.ActionRequest{}, false
	}

	req := types.ActionRequest{
		Action: action,
		Context: types.ActionContext{
			Pattern: p.String(),
			Source:  types.SourceMapping,
		},
	}

	if action == types.ActionForward && overrideApplies(override, p) {
		if link, ok := absoluteURL(start.LinkURL); ok {
			req.Action = types.ActionNewTab
			req.Context.URL = link
			req.Context.Source = types.SourceLinkOverride
		}
	}
	return req, true
}

func overrideApplies(override LinkOverride, p Pattern) bool {
	switch override {
	case LinkOverrideMappedForward:
		return true
	case LinkOverrideCanonicalOnly:
		return p.Equal(CanonicalForwardPattern)
	default:
		return false
	}
}

// absoluteURL reports whether raw parses as an absolute URL with a host.
func absoluteURL(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return "", false
	}
	return u.String(), true
}
