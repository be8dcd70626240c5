// SPDX-License-Identifier: MIT

// Package partition splits a key range across workers and merges their results.
//
// 🚀 What it does:
//
//	Split cuts [start, start+total) into contiguous, disjoint ranges whose
//	sizes differ by at most one. A Coordinator runs one search.Searcher per
//	range under an errgroup, stamps every event with a shared run id and keeps
//	a global Leaderboard of the best candidates across workers.
//
// ⚙️ Usage:
//
//	c := partition.New(cfg, 8, sink, partition.WithTopK(20))
//	sum, err := c.Run(ctx)
//	report.RenderTable(os.Stdout, sum.Leaders)
//
// A worker failure cancels the others (they end Stopped) and Run returns the
// first error. Ordering across workers is not defined; the Leaderboard is the
// global ranking.
package partition
