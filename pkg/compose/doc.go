// Package compose implements structural composition of chart specifications.
//
// # Overview
//
// Independently produced figures rarely compose as-is: two figures drawn in
// isolation both call their first axis "xaxis", both span the full canvas,
// and both reference their own trace ordering in their data mappings. This
// package provides the graph rewrite that resolves all three collisions:
//
//   - Axis keys are renumbered per family so no two inputs collide
//   - Axis and trace domains are remapped into caller-supplied sub-regions
//   - Data mapping trace indices shift to match the concatenated trace list
//
// The [Layer] function applies the complete rewrite over an ordered sequence
// of inputs.
//
// # Domain Remapping
//
// [Remap] is the single source of truth for spatial remapping: positions are
// normalized against their current domain and scaled into the target span.
// Because inputs always span the unit canvas (nesting an already-composed
// figure is rejected), the source domain of every rewrite is [0, 1].
//
// # Axis Reindexing
//
// [ResizeFigure] walks one figure's layout, assigns each axis object the
// next free number of its family from a shared [Counters] state, resizes it
// into the target sub-region, and rewrites every trace-level and
// anchor/overlaying reference through an old-to-new table. All original axis
// keys are removed: a high-numbered original left behind would collide with
// freshly assigned numbers.
//
// # Layering
//
// [Layer] folds inputs in order. With domains, every input is reindexed into
// its sub-region through one shared Counters state, which is what makes the
// numbering collision-free across the whole composition rather than within
// a single input. Without domains, traces always concatenate and layouts
// merge under a painting-order policy: later entries win, unless a single
// layout source is selected with WhichLayout.
package compose
