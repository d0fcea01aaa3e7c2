// Package harness runs conformance vectors against the timespec package.
//
// # Vector Format
//
// Vector files are YAML:
//
//	name: subtract_borrow
//	description: "Subtraction borrows one second"
//	config:
//	  tick_rate_hz: 1000
//	  tick_width: 32
//	cases:
//	  - name: borrow
//	    op: subtract
//	    x: {sec: 5, nsec: 0}
//	    y: {sec: 3, nsec: 500000000}
//	    expect:
//	      status: ok
//	      value: {sec: 1, nsec: 500000000}
//
// Supported ops: validate, to_ticks, delta_ticks, from_nanoseconds, add,
// add_nanoseconds, subtract, compare, bounded_length. Omitting x or y passes
// a nil operand. Expectations are partial: only the fields present are
// checked, except error, which must always match (absent means success).
//
// # Golden Snapshots
//
// Snapshot renders a Result as canonical JSON lines. RunWithGolden compares
// the snapshot against testdata/golden/{name}.golden with goldie; run the
// tests with -update to regenerate.
//
// # Usage
//
//	vf, err := harness.LoadVectorFile("testdata/vectors/subtract.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(vf)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
