// Package favorites keeps the ordered set of favorite prompt ids.
package favorites

import (
	"slices"

	"tableflip.dev/promptdock/pkg/node"
)

// Finder resolves ids against a tree. *tree.Document satisfies it.
type Finder interface {
	Find(id string) *node.Node
}

// List is an ordered set of prompt ids; insertion order is display order.
type List struct {
	ids []string
}

// New builds a list from ids, dropping blanks and repeats.
func New(ids []string) *List {
	l := &List{ids: make([]string, 0, len(ids))}
	for _, id := range ids {
		l.Add(id)
	}
	return l
}

// IDs returns a copy of the ids in display order.
func (l *List) IDs() []string {
	return slices.Clone(l.ids)
}

func (l *List) Len() int {
	return len(l.ids)
}

func (l *List) Contains(id string) bool {
	return slices.Contains(l.ids, id)
}

// Add appends id if it is not already present.
func (l *List) Add(id string) bool {
	if id == "" || l.Contains(id) {
		return false
	}
	l.ids = append(l.ids, id)
	return true
}

// Remove drops id and reports whether it was present.
func (l *List) Remove(id string) bool {
	i := slices.Index(l.ids, id)
	if i < 0 {
		return false
	}
	l.ids = slices.Delete(l.ids, i, i+1)
	return true
}

// Toggle flips membership of id and reports whether it is now a favorite.
func (l *List) Toggle(id string) bool {
	if l.Remove(id) {
		return false
	}
	return l.Add(id)
}

// Resolve returns the favorite prompts in order and prunes ids that no longer
// name a prompt in f. pruned reports whether the list changed, so callers know
// to persist it.
func (l *List) Resolve(f Finder) (prompts []*node.Node, pruned bool) {
	kept := l.ids[:0]
	for _, id := range l.ids {
		n := f.Find(id)
		if !n.IsPrompt() {
			pruned = true
			continue
		}
		kept = append(kept, id)
		prompts = append(prompts, n)
	}
	l.ids = kept
	return prompts, pruned
}
