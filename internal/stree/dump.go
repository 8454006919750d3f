package stree

import (
	"strconv"
	"strings"

	"github.com/gammazero/deque"
)

// maxLabelSymbols is the point past which Dump elides an edge label to its
// first and last 15 symbols, joined by an ellipsis (spec section 6, dump
// output grammar).
const maxLabelSymbols = 32
const labelEdgeSymbols = 15

// edgeFrame is one pending edge in the explicit-stack traversal.
type edgeFrame struct {
	parent NodeId
	child  NodeId
}

// Walk performs a depth-first, explicit-stack traversal of every edge in
// the tree, visiting children in ascending first-symbol order at each
// node, and calls visit(parent, child) for each one. It never recurses, so
// it has no stack-depth limit tied to Go's goroutine stack (spec section
// 4.7: traversal must handle paths as deep as the text itself).
func Walk(tr *Tree, visit func(parent, child NodeId)) {
	stack := deque.New(64)

	pushChildren := func(u NodeId) {
		children := tr.backend.Children(tr, u)
		for i := len(children) - 1; i >= 0; i-- {
			stack.PushFront(edgeFrame{parent: u, child: children[i]})
		}
	}

	pushChildren(Root)
	for stack.Len() > 0 {
		f := stack.PopFront().(edgeFrame)
		visit(f.parent, f.child)
		if f.child.IsBranch() {
			pushChildren(f.child)
		}
	}
}

// formatID renders a node id for dump output: branch ids print as their
// table index, leaf ids print as the suffix start position they
// represent. In simple mode (the -s traversal format) every id collapses
// to "?".
func formatID(id NodeId, simple bool) string {
	if simple {
		return "?"
	}
	if id.IsLeaf() {
		return strconv.Itoa(id.SuffixStart())
	}
	return strconv.Itoa(int(id))
}

func formatLabel(tr *Tree, start, length int) string {
	if length <= maxLabelSymbols {
		var b strings.Builder
		for i := 0; i < length; i++ {
			b.WriteString(tr.text.Enc.Render(tr.symbolAt(start + i)))
		}
		return b.String()
	}

	var head, tail strings.Builder
	for i := 0; i < labelEdgeSymbols; i++ {
		head.WriteString(tr.text.Enc.Render(tr.symbolAt(start + i)))
	}
	for i := length - labelEdgeSymbols; i < length; i++ {
		tail.WriteString(tr.text.Enc.Render(tr.symbolAt(start + i)))
	}
	return head.String() + "…" + tail.String()
}

// FormatEdge renders one parent->child edge as
// P(<parent-id>)[<parent-depth>]--"<label>"(<label-len>)-->C(<child-id>)[<child-depth>]{<suffix-link>},
// the trailing {<suffix-link>} present only when child is a branching node
// with a resolved suffix link (spec section 6).
func FormatEdge(tr *Tree, parent, child NodeId, simple bool) string {
	pd := tr.Depth(parent)
	cd := tr.Depth(child)
	labelStart := tr.HeadPos(child) + pd
	labelLen := cd - pd

	var b strings.Builder
	b.WriteString("P(")
	b.WriteString(formatID(parent, simple))
	b.WriteString(")[")
	b.WriteString(strconv.Itoa(pd))
	b.WriteString("]--\"")
	b.WriteString(formatLabel(tr, labelStart, labelLen))
	b.WriteString("\"(")
	b.WriteString(strconv.Itoa(labelLen))
	b.WriteString(")-->C(")
	b.WriteString(formatID(child, simple))
	b.WriteString(")[")
	b.WriteString(strconv.Itoa(cd))
	b.WriteString("]")

	if child.IsBranch() {
		if sl := tr.SuffixLink(child); !sl.IsNone() {
			b.WriteString("{")
			b.WriteString(formatID(sl, simple))
			b.WriteString("}")
		}
	}
	return b.String()
}

// Dump renders the whole tree, one edge per line, in the same order Walk
// visits them.
func Dump(tr *Tree, simple bool) string {
	var b strings.Builder
	Walk(tr, func(parent, child NodeId) {
		b.WriteString(FormatEdge(tr, parent, child, simple))
		b.WriteString("\n")
	})
	return b.String()
}
