package routecache

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Adjacency is the plain node -> neighbour-set representation that
// RouteCache and the planners operate over. It mirrors
// internal/flowgraph.Graph's shape but is kept independent so routecache
// does not need a flowgraph.Graph to answer GenRoutes, only to run a
// planner against.
type Adjacency map[int]map[int]struct{}

// Fingerprint computes a canonical hash of (adj, f, s) that is invariant
// to map and set iteration order: each node's neighbour ids are sorted
// and formatted as "k-n1,n2,...", those per-node strings are themselves
// sorted and joined with "|", then f and s are appended before hashing
// with SHA-512 and hex-encoding in upper case.
func Fingerprint(adj Adjacency, f, s int) string {
	parts := make([]string, 0, len(adj))
	for node, neighbours := range adj {
		ids := make([]int, 0, len(neighbours))
		for n := range neighbours {
			ids = append(ids, n)
		}
		sort.Ints(ids)

		strs := make([]string, len(ids))
		for i, id := range ids {
			strs[i] = strconv.Itoa(id)
		}
		parts = append(parts, fmt.Sprintf("%d-%s", node, strings.Join(strs, ",")))
	}
	sort.Strings(parts)

	payload := strings.Join(parts, "|") + fmt.Sprintf("|f=%d|s=%d", f, s)
	sum := sha512.Sum512([]byte(payload))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// hashPathHex hashes the decimal digits of a path's node ids concatenated
// together (e.g. [3,0,4,1] -> "3041"), used by the unreliable planner as a
// deterministic pseudo-random tie-break independent of map iteration
// order.
func hashPathHex(path []int) string {
	var b strings.Builder
	for _, n := range path {
		b.WriteString(strconv.Itoa(n))
	}
	sum := sha512.Sum512([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
