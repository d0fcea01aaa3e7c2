// Package config loads the kernel timing configuration: tick rate, tick
// counter width, and the clock used as "now" when planning deadlines.
//
// Configuration files are YAML (.yaml, .yml) or CUE (.cue). YAML files are
// decoded strictly, so unknown keys are rejected. CUE files are unified with
// an embedded schema that supplies defaults and range constraints.
//
//	tick_rate_hz: 1000
//	tick_width: 32
//	clock: monotonic
package config
