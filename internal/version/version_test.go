package version

import (
	"strings"
	"testing"
)

func TestShort_ContainsVersion(t *testing.T) {
	got := Short()
	want := "broadcastsim " + version
	if got != want {
		t.Errorf("Short() = %q, want %q", got, want)
	}
}

func TestFull_ListsAlgorithmsAndPlanners(t *testing.T) {
	got := Full()
	for _, want := range []string{"broadcastsim", "flooding", "routed", "unreliable", "pathfind"} {
		if !strings.Contains(got, want) {
			t.Errorf("Full() = %q, want to contain %q", got, want)
		}
	}
}
