// Package policy decides whether gesture capture may start on a page.
//
// Two independent layers are combined by Gate:
//
//   - the global enablement setting: a master switch plus a blacklist or
//     whitelist of domains;
//   - the per-site policy table, which can mark a site as disabled or as
//     requiring a modifier key to be held when the gesture starts.
//
// Both layers must allow a start. Host matching is by suffix on label
// boundaries: an entry for "example.com" covers "a.example.com" but not
// "notexample.com". Entries may also be globs such as "*.example.com".
package policy
