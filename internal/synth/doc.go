// Package synth generates deterministic synthetic oceanographic datasets.
//
// Every generator takes its own seed and owns its random stream, so the
// same arguments always yield bit-identical output regardless of call
// order. Sampled values are clamped to the ranges documented in
// domain.Parameters where a range applies.
package synth
