package version

import (
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if BuildTime == "" || GitCommit == "" {
		t.Error("build info should be initialized")
	}
}

func TestString(t *testing.T) {
	s := String()
	if !strings.HasPrefix(s, Version) {
		t.Errorf("expected %q to start with %q", s, Version)
	}
	if !strings.Contains(s, GitCommit) {
		t.Errorf("expected %q to contain commit %q", s, GitCommit)
	}
}
