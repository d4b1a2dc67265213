package position

import "github.com/inkline/editorcore/internal/domnode"

// Compare returns -1, 0, or +1 according to the document order of a and
// b under root, ties broken by offset when they share a leaf (§4.C).
func Compare(root domnode.Node, a, b Position) int {
	if a.Leaf.Same(b.Leaf) {
		switch {
		case a.Offset < b.Offset:
			return -1
		case a.Offset > b.Offset:
			return 1
		default:
			return 0
		}
	}

	pa := ancestorPath(root, a.Leaf)
	pb := ancestorPath(root, b.Leaf)
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if pa[i] != pb[i] {
			if pa[i] < pb[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(pa) < len(pb):
		return -1
	case len(pa) > len(pb):
		return 1
	default:
		return 0
	}
}

// ancestorPath returns the sequence of child indices from root down to n,
// so that two leaves compare lexicographically in document order.
func ancestorPath(root, n domnode.Node) []int {
	var path []int
	cur := n
	for cur != nil && !cur.Same(root) {
		p := cur.Parent()
		if p == nil {
			break
		}
		path = append(path, p.ChildIndex(cur))
		cur = p
	}
	reverseInts(path)
	return path
}

func reverseInts(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
