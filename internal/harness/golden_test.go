package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGolden_Snapshot(t *testing.T) {
	vf, err := LoadVectorFile(filepath.Join("testdata", "vectors", "snapshot.yaml"))
	require.NoError(t, err)

	// Regenerate with:
	//   go test ./internal/harness -run TestRunWithGolden_Snapshot -update
	result, err := RunWithGolden(t, vf)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestSnapshot_Deterministic(t *testing.T) {
	vf, err := LoadVectorFile(filepath.Join("testdata", "vectors", "snapshot.yaml"))
	require.NoError(t, err)

	var first []byte
	for i := 0; i < 5; i++ {
		result, err := Run(vf)
		require.NoError(t, err)

		snap, err := Snapshot(result)
		require.NoError(t, err)
		if first == nil {
			first = snap
			continue
		}
		assert.Equal(t, string(first), string(snap), "run %d differs", i)
	}
}

func TestSnapshot_FailingResult(t *testing.T) {
	result := NewResult("failing")
	result.AddOutcome(Outcome{
		Name:       "bad",
		Op:         OpCompare,
		Actual:     Actual{Compare: ptr(1)},
		Mismatches: []string{"expected compare 0, got 1"},
	})

	snap, err := Snapshot(result)
	require.NoError(t, err)
	assert.Equal(t,
		"{\"name\":\"failing\",\"pass\":false}\n"+
			"{\"actual\":{\"compare\":1},\"name\":\"bad\",\"op\":\"compare\",\"pass\":false}\n",
		string(snap))
}
