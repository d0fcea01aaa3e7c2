package harness

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Snapshot renders a result for golden comparison: a header line with the
// file name and overall pass flag, then one canonical JSON line per case.
// Mismatch messages are left out so a snapshot only changes when behavior
// does.
func Snapshot(r *Result) ([]byte, error) {
	var buf bytes.Buffer

	header, err := MarshalCanonical(map[string]any{
		"name": r.Name,
		"pass": r.Pass,
	})
	if err != nil {
		return nil, err
	}
	buf.Write(header)
	buf.WriteByte('\n')

	for _, o := range r.Outcomes {
		line, err := MarshalCanonical(map[string]any{
			"name":   o.Name,
			"op":     o.Op,
			"pass":   o.Pass,
			"actual": o.Actual.CanonicalMap(),
		})
		if err != nil {
			return nil, err
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// RunWithGolden runs vf and compares its snapshot with
// testdata/golden/{vf.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, vf *VectorFile) (*Result, error) {
	t.Helper()

	result, err := Run(vf)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, vf.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	snapshot, err := Snapshot(result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, snapshot)
	return nil
}
