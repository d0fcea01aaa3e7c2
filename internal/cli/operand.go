package cli

import (
	"fmt"

	"github.com/roach88/posixtime/internal/timespec"
)

// nilOperand stands for an absent timestamp argument.
const nilOperand = "nil"

// TimestampView is the JSON form of a timestamp in CLI output.
type TimestampView struct {
	Seconds     int64  `json:"sec"`
	Nanoseconds int64  `json:"nsec"`
	Text        string `json:"text"`
}

func viewOf(ts timespec.Timestamp) TimestampView {
	return TimestampView{Seconds: ts.Seconds, Nanoseconds: ts.Nanoseconds, Text: ts.String()}
}

// parseOperand parses a timestamp argument. The literal "nil" yields a nil
// pointer so the core's absent-argument handling can be exercised.
func parseOperand(arg string) (*timespec.Timestamp, error) {
	if arg == nilOperand {
		return nil, nil
	}
	ts, err := timespec.Parse(arg)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

// parseOperands parses each argument with parseOperand.
func parseOperands(f *OutputFormatter, args ...string) ([]*timespec.Timestamp, error) {
	out := make([]*timespec.Timestamp, len(args))
	for i, arg := range args {
		ts, err := parseOperand(arg)
		if err != nil {
			return nil, f.Fail(ExitCommandError, ErrCodeParse, fmt.Errorf("argument %d: %w", i+1, err))
		}
		out[i] = ts
	}
	return out, nil
}
