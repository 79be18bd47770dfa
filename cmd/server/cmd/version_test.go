package cmd

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/Togather-Foundation/beeps/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setVersion(t *testing.T, version, commit, date string) {
	t.Helper()
	origVersion, origGitCommit, origBuildDate := Version, GitCommit, BuildDate
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origGitCommit, origBuildDate
	})
	Version, GitCommit, BuildDate = version, commit, date
}

func TestVersionCommand(t *testing.T) {
	setVersion(t, "1.0.0", "abc123", "2026-01-27T12:00:00Z")

	root := newRootCommand()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())

	output := buf.String()
	for _, expected := range []string{
		"Beeps Server",
		"Version:    1.0.0",
		"Git commit: abc123",
		"Build date: 2026-01-27T12:00:00Z",
		"Go version: " + runtime.Version(),
		"Platform:   " + runtime.GOOS + "/" + runtime.GOARCH,
	} {
		assert.Contains(t, output, expected)
	}
}

func TestBuildInfo(t *testing.T) {
	setVersion(t, "2.0.0", "def456", "2026-02-01")

	assert.Equal(t, api.BuildInfo{Version: "2.0.0", GitCommit: "def456", BuildDate: "2026-02-01"}, buildInfo())
}
