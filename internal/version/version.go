// Package version reports build identity and the simulator's supported
// algorithm/planner combinations, for the cmd/broadcastsim "version"
// subcommand.
package version

import (
	"fmt"

	"github.com/okdaichi/broadcastsim/internal/routecache"
)

// version is set at build time via -ldflags
// (-X github.com/okdaichi/broadcastsim/internal/version.version=v0.1.0).
var version = "dev"

// Short returns "broadcastsim <version>" for one-line output.
func Short() string {
	return fmt.Sprintf("broadcastsim %s", version)
}

// Full returns a multi-line string identifying the build and the
// broadcast algorithms and route planner methods this binary supports.
func Full() string {
	return fmt.Sprintf(
		"%s\n  algorithms: flooding, routed\n  planners:   %s, %s",
		Short(), routecache.Unreliable, routecache.Pathfind,
	)
}
