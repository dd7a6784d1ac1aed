// Package nav holds the navigation forest of a single tab.
//
// The forest is stored as an arena: a flat slug -> node map where each node
// keeps its parent's slug and an ordered list of child slugs. No node holds a
// reference to another, so reparenting is two slice edits and cycle checks
// are a walk up parent slugs. The nested Node form is only used for
// serialisation and display.
package nav

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidParent = errors.New("parent is not a folder")
	ErrInvalidTarget = errors.New("invalid move target")
	ErrSetMismatch   = errors.New("reorder set does not match siblings")
	ErrDuplicate     = errors.New("slug already exists")
)

// Kind distinguishes leaf pages from folders.
type Kind string

const (
	KindPage   Kind = "page"
	KindFolder Kind = "folder"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindPage || k == KindFolder
}

// Node is the nested form of the forest.
type Node struct {
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Kind     Kind   `json:"kind"`
	Children []Node `json:"children,omitempty"`
}

// Item is a flattened view of one node.
type Item struct {
	Slug   string `json:"slug"`
	Title  string `json:"title"`
	Kind   Kind   `json:"kind"`
	Parent string `json:"parent,omitempty"`
	Depth  int    `json:"depth"`
}

type entry struct {
	title    string
	kind     Kind
	parent   string
	children []string
}

// Forest is the arena. The zero value is not usable; call New or Build.
type Forest struct {
	nodes map[string]*entry
	roots []string
}

// New returns an empty forest.
func New() *Forest {
	return &Forest{nodes: make(map[string]*entry)}
}

// Build converts nested nodes into a forest, rejecting duplicate slugs,
// unknown kinds and pages with children.
func Build(tree []Node) (*Forest, error) {
	f := New()
	var add func(n Node, parent string) error
	add = func(n Node, parent string) error {
		if n.Slug == "" {
			return fmt.Errorf("node under %q has no slug", parent)
		}
		if !n.Kind.Valid() {
			return fmt.Errorf("node %s: unknown kind %q", n.Slug, n.Kind)
		}
		if n.Kind == KindPage && len(n.Children) > 0 {
			return fmt.Errorf("node %s: %w", n.Slug, ErrInvalidParent)
		}
		if err := f.Insert(Node{Title: n.Title, Slug: n.Slug, Kind: n.Kind}, parent); err != nil {
			return err
		}
		for _, c := range n.Children {
			if err := add(c, n.Slug); err != nil {
				return err
			}
		}
		return nil
	}
	for _, n := range tree {
		if err := add(n, ""); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Len returns the number of nodes.
func (f *Forest) Len() int { return len(f.nodes) }

// Has reports whether slug is in the forest.
func (f *Forest) Has(slug string) bool {
	_, ok := f.nodes[slug]
	return ok
}

// Get returns the flattened view of slug.
func (f *Forest) Get(slug string) (Item, bool) {
	e, ok := f.nodes[slug]
	if !ok {
		return Item{}, false
	}
	return Item{Slug: slug, Title: e.title, Kind: e.kind, Parent: e.parent, Depth: f.depth(slug)}, true
}

func (f *Forest) depth(slug string) int {
	d := 0
	for p := f.nodes[slug].parent; p != ""; p = f.nodes[p].parent {
		d++
	}
	return d
}

// siblings returns a pointer to the child list holding nodes under parent.
func (f *Forest) siblings(parent string) *[]string {
	if parent == "" {
		return &f.roots
	}
	return &f.nodes[parent].children
}

// Insert appends n as the last child of parent, or as the last root when
// parent is empty. Children of n are ignored; a folder starts empty.
func (f *Forest) Insert(n Node, parent string) error {
	if !n.Kind.Valid() {
		return fmt.Errorf("node %s: unknown kind %q", n.Slug, n.Kind)
	}
	if _, ok := f.nodes[n.Slug]; ok {
		return fmt.Errorf("%s: %w", n.Slug, ErrDuplicate)
	}
	if parent != "" {
		p, ok := f.nodes[parent]
		if !ok {
			return fmt.Errorf("parent %s: %w", parent, ErrNotFound)
		}
		if p.kind != KindFolder {
			return fmt.Errorf("%s: %w", parent, ErrInvalidParent)
		}
	}
	f.nodes[n.Slug] = &entry{title: n.Title, kind: n.Kind, parent: parent}
	s := f.siblings(parent)
	*s = append(*s, n.Slug)
	return nil
}

// Remove deletes slug and its whole subtree, returning the removed nodes in
// tree order. Removing a missing slug returns nil.
func (f *Forest) Remove(slug string) []Item {
	e, ok := f.nodes[slug]
	if !ok {
		return nil
	}
	removed := f.walk([]string{slug}, e.parent, f.depth(slug), nil)
	f.detach(slug)
	for _, it := range removed {
		delete(f.nodes, it.Slug)
	}
	return removed
}

// detach unlinks slug from its parent's child list.
func (f *Forest) detach(slug string) {
	s := f.siblings(f.nodes[slug].parent)
	*s = slices.DeleteFunc(*s, func(c string) bool { return c == slug })
}

// Move reparents src as the last child of the folder target. Moving a node
// onto itself is a no-op. The target must exist, be a folder and not lie
// inside src's subtree.
func (f *Forest) Move(src, target string) error {
	if _, ok := f.nodes[src]; !ok {
		return fmt.Errorf("%s: %w", src, ErrNotFound)
	}
	if src == target {
		return nil
	}
	t, ok := f.nodes[target]
	if !ok {
		return fmt.Errorf("target %s does not exist: %w", target, ErrInvalidTarget)
	}
	if t.kind != KindFolder {
		return fmt.Errorf("target %s is not a folder: %w", target, ErrInvalidTarget)
	}
	for p := target; p != ""; p = f.nodes[p].parent {
		if p == src {
			return fmt.Errorf("target %s is inside %s: %w", target, src, ErrInvalidTarget)
		}
	}
	f.reparent(src, target)
	return nil
}

// MoveToRoot makes src the last root.
func (f *Forest) MoveToRoot(src string) error {
	if _, ok := f.nodes[src]; !ok {
		return fmt.Errorf("%s: %w", src, ErrNotFound)
	}
	f.reparent(src, "")
	return nil
}

func (f *Forest) reparent(src, parent string) {
	f.detach(src)
	f.nodes[src].parent = parent
	s := f.siblings(parent)
	*s = append(*s, src)
}

// Reorder replaces the order of one sibling group. order must contain every
// sibling of order[0] exactly once and nothing else.
func (f *Forest) Reorder(order []string) error {
	if len(order) == 0 {
		return fmt.Errorf("empty order: %w", ErrSetMismatch)
	}
	first, ok := f.nodes[order[0]]
	if !ok {
		return fmt.Errorf("%s is not a sibling: %w", order[0], ErrSetMismatch)
	}
	s := f.siblings(first.parent)
	if len(*s) != len(order) {
		return fmt.Errorf("got %d slugs, parent has %d children: %w", len(order), len(*s), ErrSetMismatch)
	}
	want := make(map[string]bool, len(*s))
	for _, c := range *s {
		want[c] = true
	}
	for _, c := range order {
		if !want[c] {
			return fmt.Errorf("%s is not a sibling or is repeated: %w", c, ErrSetMismatch)
		}
		delete(want, c)
	}
	*s = slices.Clone(order)
	return nil
}

// SetTitle changes the display title of slug.
func (f *Forest) SetTitle(slug, title string) error {
	e, ok := f.nodes[slug]
	if !ok {
		return fmt.Errorf("%s: %w", slug, ErrNotFound)
	}
	e.title = title
	return nil
}

// Breadcrumb returns the chain of nodes from the root down to slug.
func (f *Forest) Breadcrumb(slug string) ([]Item, error) {
	if _, ok := f.nodes[slug]; !ok {
		return nil, fmt.Errorf("%s: %w", slug, ErrNotFound)
	}
	var chain []string
	for p := slug; p != ""; p = f.nodes[p].parent {
		chain = append(chain, p)
	}
	slices.Reverse(chain)
	out := make([]Item, len(chain))
	for i, s := range chain {
		e := f.nodes[s]
		out[i] = Item{Slug: s, Title: e.title, Kind: e.kind, Parent: e.parent, Depth: i}
	}
	return out, nil
}

// Walk returns every node in tree order (pre-order, siblings in order).
func (f *Forest) Walk() []Item {
	return f.walk(f.roots, "", 0, nil)
}

func (f *Forest) walk(slugs []string, parent string, depth int, out []Item) []Item {
	for _, s := range slugs {
		e := f.nodes[s]
		out = append(out, Item{Slug: s, Title: e.title, Kind: e.kind, Parent: parent, Depth: depth})
		out = f.walk(e.children, s, depth+1, out)
	}
	return out
}

// Pages returns the page slugs in tree order.
func (f *Forest) Pages() []string {
	var out []string
	for _, it := range f.Walk() {
		if it.Kind == KindPage {
			out = append(out, it.Slug)
		}
	}
	return out
}

// Tree returns the nested form. Folders always carry a non-nil child list.
func (f *Forest) Tree() []Node {
	return f.tree(f.roots)
}

func (f *Forest) tree(slugs []string) []Node {
	out := make([]Node, 0, len(slugs))
	for _, s := range slugs {
		e := f.nodes[s]
		n := Node{Title: e.title, Slug: s, Kind: e.kind}
		if e.kind == KindFolder {
			n.Children = f.tree(e.children)
		}
		out = append(out, n)
	}
	return out
}

// Check verifies the arena: every node reachable exactly once from the
// roots, parent links agree with child lists and only folders have children.
func (f *Forest) Check() error {
	seen := make(map[string]bool, len(f.nodes))
	var visit func(slugs []string, parent string) error
	visit = func(slugs []string, parent string) error {
		for _, s := range slugs {
			e, ok := f.nodes[s]
			if !ok {
				return fmt.Errorf("dangling child %s: %w", s, ErrNotFound)
			}
			if seen[s] {
				return fmt.Errorf("%s reached twice: %w", s, ErrDuplicate)
			}
			seen[s] = true
			if e.parent != parent {
				return fmt.Errorf("%s has parent %q, listed under %q", s, e.parent, parent)
			}
			if e.kind == KindPage && len(e.children) > 0 {
				return fmt.Errorf("page %s has children: %w", s, ErrInvalidParent)
			}
			if err := visit(e.children, s); err != nil {
				return err
			}
		}
		return nil
	}
	if err := visit(f.roots, ""); err != nil {
		return err
	}
	if len(seen) != len(f.nodes) {
		return fmt.Errorf("%d nodes unreachable from roots", len(f.nodes)-len(seen))
	}
	return nil
}

func (f *Forest) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Tree())
}

func (f *Forest) UnmarshalJSON(data []byte) error {
	var tree []Node
	if err := json.Unmarshal(data, &tree); err != nil {
		return err
	}
	built, err := Build(tree)
	if err != nil {
		return err
	}
	*f = *built
	return nil
}
