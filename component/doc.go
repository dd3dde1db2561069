// Package component defines the unit-of-work contract for pipeline graphs:
// a Component fits against feature/target data, and optionally transforms
// features or predicts targets. Capability is expressed through optional
// interfaces (FeatureTransformer, Predictor) plus a descriptor flag for
// target-stream output, so the graph engine dispatches on capability and
// never on concrete type.
//
// The package also ships a registry mapping stable component names to
// factories, pre-populated with a small library of tabular components.
package component
