// Package graph implements the component-graph engine at the heart of the
// automl library: a DAG of transformer and estimator nodes, built from a
// declarative definition, scheduled in deterministic topological order, and
// executed with feature/target streams routed along its edges.
//
// A definition names each node, its component, and its input edges:
//
//	def := graph.Definition{Nodes: []graph.NodeDef{
//	    {Name: "Imputer", Component: "SimpleImputer", Inputs: []string{"X", "y"}},
//	    {Name: "OHE", Component: "OneHotEncoder", Inputs: []string{"X", "y"}},
//	    {Name: "Model", Component: "LinearRegressor", Inputs: []string{"Imputer.x", "OHE.x", "y"}},
//	}}
//	g, err := graph.Build(def, component.DefaultRegistry())
//	err = g.Instantiate(nil)
//	err = g.Fit(X, y)
//	preds, err := g.Predict(X)
//
// Edge references use "X" and "y" for the root feature/target inputs and
// "<node>.x" / "<node>.y" for a named upstream node's feature/target output.
// Structural errors (unknown references, cycles, zero or multiple terminus
// nodes) reject the whole definition at build time; no partial graph is ever
// produced.
//
// Execution is single-threaded and synchronous: nodes share in-memory frames
// and fit-then-transform is a hard ordering barrier. Distinct Graph values
// are independent and may be evaluated concurrently by an outer driver.
package graph
