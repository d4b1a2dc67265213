package domnode

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// AtomicComponentClass is the class token that opts any element into
// atomic-leaf semantics, independent of its tag.
const AtomicComponentClass = "atomic-component"

// atomicTags mirrors the teacher's pattern of keying off golang.org/x/net/html/atom
// for tag comparisons instead of raw string equality.
var atomicTags = map[atom.Atom]bool{
	atom.Br:    true,
	atom.Hr:    true,
	atom.Img:   true,
	atom.Table: true,
}

func IsText(n Node) bool {
	return n != nil && n.Kind() == KindText
}

func IsElement(n Node) bool {
	return n != nil && n.Kind() == KindElement
}

// IsAtomic implements §4.A / §3: tag membership in {BR,HR,IMG,TABLE}, or the
// atomic-component class token, regardless of computed display.
func IsAtomic(n Node) bool {
	if !IsElement(n) {
		return false
	}
	if n.HasClass(AtomicComponentClass) {
		return true
	}
	// atom.Lookup's table is keyed on lower-case tag names; TagName()
	// returns the upper-cased form every Node adapter normalizes to.
	return atomicTags[atom.Lookup([]byte(strings.ToLower(n.TagName())))]
}

// IsBlock consults the host's computed style. Detached nodes are treated
// as inline per invariant 5, which IsBlock implementations are expected to
// honor by returning false.
func IsBlock(host LayoutHost, n Node) bool {
	if !IsElement(n) {
		return false
	}
	return host.IsBlock(n)
}

func IsInline(host LayoutHost, n Node) bool {
	return IsElement(n) && !IsBlock(host, n)
}

// IsAddressable implements the addressable-leaf predicate of §3: a text
// leaf with non-empty text, or an atomic leaf.
func IsAddressable(n Node) bool {
	if n == nil {
		return false
	}
	if IsText(n) {
		return n.Text() != ""
	}
	return IsAtomic(n)
}

// IsContainer is every element that is neither atomic nor (by definition)
// a text leaf: paragraphs, divs, inline-format wrappers, list items, and
// so on. Containers are never addressable.
func IsContainer(n Node) bool {
	return IsElement(n) && !IsAtomic(n)
}
