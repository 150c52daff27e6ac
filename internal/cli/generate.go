package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/okdaichi/broadcastsim/internal/topology"
)

// RunGenerate builds a random c-regular topology and writes it to an
// edge-list file, for use as fixture input to RunRun or RunServe's
// /topology/load.
func RunGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	n := fs.Int("n", 10, "number of nodes")
	c := fs.Int("c", 3, "target vertex connectivity")
	f := fs.Int("f", 1, "number of faulty nodes")
	out := fs.String("out", "topology.txt", "output edge-list path")
	fs.Parse(args)

	topo, ok := topology.Generate(*n, *c, *f)
	if !ok {
		return fmt.Errorf("infeasible or unreachable topology: n=%d c=%d f=%d", *n, *c, *f)
	}

	if err := topo.Write(*out); err != nil {
		return fmt.Errorf("failed to write topology: %w", err)
	}

	fmt.Fprintf(os.Stdout, "generated topology: n=%d c=%d f=%d edges=%d -> %s\n",
		topo.GetN(), topo.GetC(), len(topo.GetFaulty()), len(topo.GetEdges()), *out)
	return nil
}
