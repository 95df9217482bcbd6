// Package survey generates simulated participant profiles for the matching
// survey. Every generator takes an explicit *rand.Rand so a run can be
// replayed from its seed, and Generate stitches the generated columns into a
// row-aligned Dataset.
package survey
