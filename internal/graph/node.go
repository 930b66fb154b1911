package graph

import "github.com/vk/buildplan/internal/model"

// Node is one vertex of the walk: either a target or a reference to another
// product. Exactly one field is set.
type Node struct {
	Target  *model.Target
	Product *model.Product
}

// TargetNode wraps a target as a walk node.
func TargetNode(t *model.Target) Node {
	return Node{Target: t}
}

// ProductNode wraps a product reference as a walk node.
func ProductNode(p *model.Product) Node {
	return Node{Product: p}
}

// Key returns a stable identity string for visited-set bookkeeping and cycle
// reporting. Targets and products live in separate namespaces.
func (n Node) Key() string {
	if n.Target != nil {
		return "target:" + n.Target.Name
	}
	return "product:" + n.Product.Name
}

// Name returns the underlying target or product name.
func (n Node) Name() string {
	if n.Target != nil {
		return n.Target.Name
	}
	return n.Product.Name
}
