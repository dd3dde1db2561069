// Package frame provides the minimal tabular value types routed through a
// component graph: a Frame of named feature columns and a Target vector.
//
// Frames are cheap value containers, not a dataframe library. Components own
// the numerics; the graph engine only concatenates, subsets, and forwards.
package frame
