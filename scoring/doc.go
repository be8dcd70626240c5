// SPDX-License-Identifier: MIT

// Package scoring ranks candidate plaintexts against English n-gram statistics.
//
// 🚀 Model:
//
//	A Model maps n-grams (n = 1..4) to reference frequencies. The default
//	English model is embedded (english.yaml), parsed once on first use and
//	shared read-only by every Scorer; custom tables with the same YAML schema
//	are loaded with LoadModel.
//
// 📐 Score:
//
//	text → uppercase → keep letters only → overlapping n-gram counts. For a
//	gram g of order n with count o:
//
//	  N        = len − n + 1               (windows at that order)
//	  expected = freq(g) · N
//	  term(g)  = freq(g) · log10((o+1) / (expected+1))
//
//	For n ≥ 2, S_n = 100 · Σ term(g) over the observed grams, summed in
//	first-occurrence order. Grams the model does not know contribute nothing.
//	For n = 1, S_1 = −100 · Σ |term(g)| over every letter of the model, so any
//	deviation from English letter frequencies costs, whichever direction it
//	goes. The total is Σ w_n·S_n / Σ w_n with default weights
//	{0.5, 1.0, 1.5, 2.0}. Equal inputs give bit-identical totals.
//
//	Texts whose normalized length is below the minimum (4) score MinScore,
//	a finite sentinel - never NaN, never a division error.
//
// Known-plaintext gate:
//
//	Scorer.Accepts(text, known) is a hard filter, independent of the numeric
//	score: the normalized text must contain the normalized known fragment.
//
// Concurrency: Model and Scorer are immutable after construction and safe
// for concurrent use.
package scoring
