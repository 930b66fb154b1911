// Package graph walks a product's transitive dependency closure and produces
// a deterministic, dependencies-first topological order of the nodes the
// classifier must consider.
//
// The walk is a pure function of the product, the build parameters, and the
// resolved model: the successor set of a node is computed from an immutable
// traversal context (top-level target set, tools-version gate, active
// environment), never from mutable outer state. Walking the same inputs twice
// yields identical orders.
//
// The surrounding resolver guarantees the target graph is acyclic, but the
// walker still detects cycles and reports the offending path.
// The recursive expansion of dynamic-library product dependencies in
// particular is not bounded by that guarantee, because product-level edges
// can cycle even when target-level edges do not.
package graph
