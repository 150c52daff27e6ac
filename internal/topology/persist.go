package topology

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/okdaichi/broadcastsim/internal/flowgraph"
)

// Parse reads a plain-text edge-list topology file ("u v" per line; blank
// lines and lines starting with "#" are skipped) and rebuilds a Topology from it, recomputing
// connectivity from the edges rather than trusting a stored value, then
// samples a fresh faulty set of size f. Returns (nil, false) if the file
// cannot be read, is malformed, or the recomputed connectivity c does not
// satisfy c > f.
func Parse(path string, f int) (*Topology, bool) {
	file, err := os.Open(path)
	if err != nil {
		slog.Error("topology parse: open failed", "path", path, "err", err)
		return nil, false
	}
	defer file.Close()

	var edges []flowgraph.Edge
	maxNode := -1
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			slog.Error("topology parse: malformed line", "path", path, "line", line)
			return nil, false
		}
		u, errU := strconv.Atoi(fields[0])
		v, errV := strconv.Atoi(fields[1])
		if errU != nil || errV != nil || u == v {
			slog.Error("topology parse: invalid edge", "path", path, "line", line)
			return nil, false
		}
		if u > v {
			u, v = v, u
		}
		edges = append(edges, flowgraph.Edge{U: u, V: v})
		if u > maxNode {
			maxNode = u
		}
		if v > maxNode {
			maxNode = v
		}
	}
	if err := scanner.Err(); err != nil {
		slog.Error("topology parse: scan failed", "path", path, "err", err)
		return nil, false
	}
	if maxNode < 0 {
		return nil, false
	}

	n := maxNode + 1
	nodes := make([]int, n)
	for i := range nodes {
		nodes[i] = i
	}
	c := flowgraph.New(edges).ConnectivityOver(nodes)
	if c <= f {
		slog.Error("topology parse: infeasible", "c", c, "f", f)
		return nil, false
	}

	faulty := sampleFaulty(n, f, defaultRand)
	return &Topology{n: n, c: c, edges: edges, faulty: faulty}, true
}

// Write persists the edge list as plain "u v" lines, one per edge, via an
// atomic write-temp-then-rename so a crash mid-write never leaves a
// truncated file at path.
func (t *Topology) Write(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("topology write: mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".topology-*.tmp")
	if err != nil {
		return fmt.Errorf("topology write: create temp: %w", err)
	}
	tmpPath := tmp.Name()

	w := bufio.NewWriter(tmp)
	for _, e := range t.edges {
		if _, err := fmt.Fprintf(w, "%d %d\n", e.U, e.V); err != nil {
			tmp.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("topology write: write edge: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("topology write: flush: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("topology write: close temp: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("topology write: rename: %w", err)
	}

	slog.Info("topology written", "path", path, "n", t.n, "c", t.c, "edges", len(t.edges))
	return nil
}

// WithFaulty returns a copy of t with its faulty set replaced, for callers
// that need a specific fault set rather than Parse's freshly sampled one
// (the plain edge-list format has nowhere to store a chosen set, so Parse
// always samples; WithFaulty lets tests and callers override that).
func (t *Topology) WithFaulty(faulty []int) *Topology {
	cp := *t
	cp.faulty = append([]int(nil), faulty...)
	return &cp
}
