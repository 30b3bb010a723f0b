// Package replay drives the gesture engine from recorded pointer traces.
//
// A trace is a YAML or JSON file holding one or more gestures. Each gesture
// is either a list of raw pointer events or a path shorthand that is
// interpolated into events, plus an optional expectation:
//
//	name: navigation
//	host: example.org
//	config:
//	  recognition:
//	    normalize_diagonals: true
//	gestures:
//	  - name: close tab
//	    path:
//	      step: 2
//	      points: [[100, 100], [120, 100], [120, 120]]
//	    expect:
//	      pattern: DR
//	      action: close_tab
//
// The runner reports the pattern and action for every gesture. A run fails
// when any expectation disagrees with what the engine produced.
package replay
