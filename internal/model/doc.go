// Package model provides the in-memory representation of a resolved package
// graph and the build parameters a plan is computed against.
//
// A Target is a single compilable unit; its Kind is a closed enumeration
// (library, executable, test, snippet, macro, plugin, system module, binary)
// with kind-specific payloads validated against the kind. A Dependency is a
// directed edge to another target or to a product, optionally guarded by a
// build-environment condition. A Product is a named build output with an
// ordered list of directly listed targets and the tools-version of its owning
// package. BuildParameters carry everything that varies between plan
// computations: the target triple, the active environment, the debug-info
// strategy, and the testing configuration.
//
// Conditions are the one place HCL appears in the model: a dependency's
// `when` expression is kept unevaluated and resolved against the active
// environment at walk time.
package model
