package topology

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/okdaichi/broadcastsim/internal/flowgraph"
)

func TestGenerate_ConnectivityMatchesC(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	topo, ok := GenerateWithRand(9, 4, 3, rng)
	if !ok {
		t.Fatal("GenerateWithRand(9,4,3) failed to produce a topology")
	}
	if topo.GetN() != 9 {
		t.Errorf("GetN() = %d, want 9", topo.GetN())
	}
	if topo.GetC() != 4 {
		t.Errorf("GetC() = %d, want 4", topo.GetC())
	}

	nodes := make([]int, 9)
	for i := range nodes {
		nodes[i] = i
	}
	got := flowgraph.New(topo.GetEdges()).ConnectivityOver(nodes)
	if got != 4 {
		t.Errorf("recomputed connectivity = %d, want 4", got)
	}

	for _, n := range nodes {
		deg := 0
		for _, e := range topo.GetEdges() {
			if e.U == n || e.V == n {
				deg++
			}
		}
		if deg != 4 {
			t.Errorf("node %d has degree %d, want 4 (regular graph)", n, deg)
		}
	}
}

func TestGenerate_FaultySetSize(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	topo, ok := GenerateWithRand(10, 4, 3, rng)
	if !ok {
		t.Fatal("generate failed")
	}
	if len(topo.GetFaulty()) != 3 {
		t.Errorf("len(GetFaulty()) = %d, want 3", len(topo.GetFaulty()))
	}
	seen := make(map[int]bool)
	for _, f := range topo.GetFaulty() {
		if seen[f] {
			t.Errorf("faulty set has duplicate entry %d", f)
		}
		seen[f] = true
	}
}

func TestGenerate_InfeasibleRequestsRejected(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	if _, ok := GenerateWithRand(4, 0, 0, rng); ok {
		t.Error("c=0 should be infeasible")
	}
	if _, ok := GenerateWithRand(3, 3, 0, rng); ok {
		t.Error("n<=c should be infeasible")
	}
	if _, ok := GenerateWithRand(5, 3, 0, rng); ok {
		t.Error("n*c odd (5*3=15) should be infeasible")
	}
}

func TestParse_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	topo, ok := GenerateWithRand(9, 4, 3, rng)
	if !ok {
		t.Fatal("generate failed")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "topo.txt")
	if err := topo.Write(path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	reloaded, ok := Parse(path, 3)
	if !ok {
		t.Fatal("Parse failed to reload written topology")
	}
	if reloaded.GetN() != topo.GetN() {
		t.Errorf("reloaded N = %d, want %d", reloaded.GetN(), topo.GetN())
	}
	if reloaded.GetC() != topo.GetC() {
		t.Errorf("reloaded C = %d, want %d", reloaded.GetC(), topo.GetC())
	}
	if len(reloaded.GetEdges()) != len(topo.GetEdges()) {
		t.Errorf("reloaded edge count = %d, want %d", len(reloaded.GetEdges()), len(topo.GetEdges()))
	}
}

func TestParse_RejectsInfeasibleF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "triangle.txt")
	if err := os.WriteFile(path, []byte("0 1\n1 2\n0 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	// triangle has connectivity 2; f=2 means c<=f, must be rejected.
	if _, ok := Parse(path, 2); ok {
		t.Error("Parse should reject a topology whose connectivity does not exceed f")
	}

	// f=1 is tolerable (c=2 > f=1).
	if _, ok := Parse(path, 1); !ok {
		t.Error("Parse should accept a topology whose connectivity exceeds f")
	}
}

func TestParse_MalformedFileRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(path, []byte("not-a-number 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := Parse(path, 0); ok {
		t.Error("Parse should reject a malformed edge line")
	}
}

func TestParse_MissingFileRejected(t *testing.T) {
	if _, ok := Parse("/nonexistent/path/topo.txt", 0); ok {
		t.Error("Parse should fail for a missing file")
	}
}

func TestParse_LineGraphRejectsF1(t *testing.T) {
	// N=4 line 0-1-2-3 has connectivity 1; f=1 requires c>f, which fails.
	dir := t.TempDir()
	path := filepath.Join(dir, "line.txt")
	if err := os.WriteFile(path, []byte("0 1\n1 2\n2 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := Parse(path, 1); ok {
		t.Error("Parse should reject the line graph with f=1 (c=1 does not exceed f)")
	}
	if topo, ok := Parse(path, 0); !ok || topo.GetC() != 1 {
		t.Error("Parse should accept the line graph with f=0")
	}
}

func TestParse_SamplesFaultySet(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	generated, ok := GenerateWithRand(9, 4, 0, rng)
	if !ok {
		t.Fatal("generate failed")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "topo.txt")
	if err := generated.Write(path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	topo, ok := Parse(path, 2)
	if !ok {
		t.Fatal("Parse failed to load topology")
	}
	if len(topo.GetFaulty()) != 2 {
		t.Errorf("len(GetFaulty()) = %d, want 2", len(topo.GetFaulty()))
	}
	seen := make(map[int]bool)
	for _, f := range topo.GetFaulty() {
		if f < 0 || f >= topo.GetN() {
			t.Errorf("faulty node %d out of range [0,%d)", f, topo.GetN())
		}
		if seen[f] {
			t.Errorf("faulty set has duplicate entry %d", f)
		}
		seen[f] = true
	}
}

func TestWithFaulty_DoesNotMutateOriginal(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	topo, ok := GenerateWithRand(9, 4, 3, rng)
	if !ok {
		t.Fatal("generate failed")
	}
	original := append([]int(nil), topo.GetFaulty()...)

	other := topo.WithFaulty([]int{0, 1})
	if len(topo.GetFaulty()) != len(original) {
		t.Error("WithFaulty mutated the receiver's faulty set")
	}
	if len(other.GetFaulty()) != 2 {
		t.Errorf("WithFaulty result has %d faulty nodes, want 2", len(other.GetFaulty()))
	}
}
