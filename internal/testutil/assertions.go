package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertLogged checks that every fragment appears somewhere in the captured
// log output.
func AssertLogged(t *testing.T, result *HarnessResult, fragments ...string) {
	t.Helper()
	for _, f := range fragments {
		require.True(t,
			strings.Contains(result.LogOutput, f),
			"expected log output to contain %q", f,
		)
	}
}

// CountLogged returns how many times fragment appears in the log output.
func CountLogged(result *HarnessResult, fragment string) int {
	return strings.Count(result.LogOutput, fragment)
}
