package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		// Save original values
		origVersion := Version
		origCommit := Commit
		origBuildTime := BuildTime
		defer func() {
			Version = origVersion
			Commit = origCommit
			BuildTime = origBuildTime
		}()

		Version = "dev"
		Commit = "unknown"
		BuildTime = "unknown"

		result := String()

		if !strings.Contains(result, "dev") {
			t.Errorf("String() = %q, should contain 'dev'", result)
		}
		if !strings.Contains(result, "built") {
			t.Errorf("String() = %q, should contain 'built'", result)
		}
	})

	t.Run("custom values", func(t *testing.T) {
		origVersion := Version
		origCommit := Commit
		origBuildTime := BuildTime
		defer func() {
			Version = origVersion
			Commit = origCommit
			BuildTime = origBuildTime
		}()

		Version = "1.2.3"
		Commit = "abc1234"
		BuildTime = "2025-01-15T10:00:00Z"

		if got, want := String(), "1.2.3 (abc1234) built 2025-01-15T10:00:00Z"; got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
		if got, want := UserAgent(), "debtwatch/1.2.3"; got != want {
			t.Errorf("UserAgent() = %q, want %q", got, want)
		}
		if info := Get(); info.Commit != "abc1234" {
			t.Errorf("Get().Commit = %q, want abc1234", info.Commit)
		}
	})
}

func TestDefaultValues(t *testing.T) {
	// These might be overwritten by ldflags in production builds
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if Commit == "" {
		t.Error("Commit should not be empty")
	}
	if BuildTime == "" {
		t.Error("BuildTime should not be empty")
	}
}
