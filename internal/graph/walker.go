package graph

import (
	"fmt"
	"strings"

	"github.com/vk/buildplan/internal/model"
)

// CycleError reports a dependency cycle found during a walk, including the
// offending path through the graph.
type CycleError struct {
	// Path is the chain of node names from the first repeated node back to
	// itself.
	Path []string
}

// Error implements the error interface for CycleError.
func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Path, " -> "))
}

// visit states for the depth-first walk: a node is unvisited, currently on
// the recursion stack, or fully processed.
const (
	unvisited = iota
	inStack
	done
)

// Walk computes the product's transitive dependency closure and returns it
// in a dependencies-first topological order: every node follows all nodes it
// depends on. Each reachable node appears exactly once regardless of how
// many paths lead to it.
func Walk(product *model.Product, params *model.BuildParameters) ([]Node, error) {
	w := &walker{
		ctx:   NewContext(product, params),
		state: make(map[string]int),
	}
	for _, t := range product.Targets {
		if err := w.visit(TargetNode(t)); err != nil {
			return nil, err
		}
	}
	return w.order, nil
}

type walker struct {
	ctx   Context
	state map[string]int
	path  []Node
	order []Node
}

func (w *walker) visit(n Node) error {
	key := n.Key()
	switch w.state[key] {
	case done:
		return nil
	case inStack:
		return w.cycleError(n)
	}

	w.state[key] = inStack
	w.path = append(w.path, n)

	succ, err := successors(n, w.ctx)
	if err != nil {
		return err
	}
	for _, s := range succ {
		if err := w.visit(s); err != nil {
			return err
		}
	}

	w.path = w.path[:len(w.path)-1]
	w.state[key] = done
	w.order = append(w.order, n)
	return nil
}

// cycleError reconstructs the cycle from the recursion stack, starting at the
// first occurrence of the repeated node.
func (w *walker) cycleError(repeated Node) error {
	var names []string
	for i, n := range w.path {
		if n.Key() == repeated.Key() {
			for _, m := range w.path[i:] {
				names = append(names, m.Name())
			}
			break
		}
	}
	names = append(names, repeated.Name())
	return &CycleError{Path: names}
}
