package ghost

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode; in release mode callers
// skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("ghost debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[ghost] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns on stderr if a node has more than 1000 children.
// Long range captures under one container are the usual cause.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[ghost] warning: node %q has %d children (threshold %d)\n",
			n.Name, len(n.children), debugMaxChildCount)
	}
}

// DumpTree writes an indented outline of the scene graph to w: one line per
// node with its type, hidden/locked markers and key count, followed by the
// connections sorted by destination.
func (s *Scene) DumpTree(w io.Writer) error {
	var b strings.Builder
	var visit func(n *Node, depth int)
	visit = func(n *Node, depth int) {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(n.Name)
		b.WriteString(" (")
		b.WriteString(n.Type.String())
		b.WriteByte(')')
		if !n.Visible {
			b.WriteString(" hidden")
		}
		if n.Type == NodeTypeTransform && n.channels[ChannelTranslateX].Locked {
			b.WriteString(" locked")
		}
		if keys := n.keyTimes(); len(keys) > 0 {
			fmt.Fprintf(&b, " keys=%v", keys)
		}
		b.WriteByte('\n')
		for _, c := range n.children {
			visit(c, depth+1)
		}
	}
	for _, c := range s.root.children {
		visit(c, 0)
	}
	for _, dst := range sortedKeys(s.connections) {
		fmt.Fprintf(&b, "%s -> %s\n", s.connections[dst], dst)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
