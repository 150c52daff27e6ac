package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/okdaichi/broadcastsim/internal/experiment"
	"github.com/okdaichi/broadcastsim/internal/routecache"
	"github.com/okdaichi/broadcastsim/internal/topology"
)

// RunRun loads a topology file and executes a broadcast experiment against
// it, printing the resulting JSON Result to stdout; with -repeat > 1 it
// runs a batch and prints the JSON array of Results instead. This is the
// one-shot counterpart to RunServe's /run endpoint, for scripting and
// batch comparisons without standing up an HTTP server.
func RunRun(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	topoFile := fs.String("topology", "topology.txt", "edge-list topology file")
	f := fs.Int("f", 1, "number of faulty nodes to assume when loading")
	algorithm := fs.String("algorithm", "flooding", "broadcast algorithm: flooding|routed")
	method := fs.String("method", "unreliable", "route planner method: unreliable|pathfind")
	origin := fs.Int("origin", 0, "originating node label")
	repeat := fs.Int("repeat", 1, "number of repeated runs")
	fs.Parse(args)

	topo, ok := topology.Parse(*topoFile, *f)
	if !ok {
		return fmt.Errorf("failed to load topology %q with f=%d", *topoFile, *f)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	runner := experiment.NewRunner(topo)

	if *repeat > 1 {
		results, err := runner.RunBatch(ctx, *algorithm, routecache.Method(*method), *origin, *repeat)
		if err != nil {
			return fmt.Errorf("run batch failed: %w", err)
		}
		return json.NewEncoder(os.Stdout).Encode(results)
	}

	result, err := runner.RunOnce(ctx, *algorithm, routecache.Method(*method), *origin, "cli-run")
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	return json.NewEncoder(os.Stdout).Encode(result)
}
