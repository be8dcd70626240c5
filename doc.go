// Package trifid is a brute-force key search engine for the Trifid cipher:
// it walks a key space, decrypts a ciphertext with every candidate key,
// scores the output against English n-gram statistics and forwards the
// promising candidates to whoever is listening.
//
// 🚀 What is inside?
//
//	cube/      - 27-symbol alphabets and the keyed 3×3×3 cube built from them
//	keyspace/  - key index ⇄ key conversion, sequential and seeded random sources
//	cipher/    - Trifid decryption and encryption (whole-message or per-period)
//	scoring/   - frequency-weighted n-gram log-likelihood with diagnostics
//	search/    - the pausable, stoppable single-worker search loop
//	partition/ - key-space splitting and a multi-worker coordinator with a leaderboard
//	report/    - event model, sinks (channel, JSONL, websocket hub) and tables
//	config/    - layered configuration: defaults → file → TRIFID_ env → flags
//	cmd/trifid - the command line: crack, encrypt, decrypt, score, keyspace, cube
//
// ✨ Quick start
//
//	cfg := search.DefaultConfig()
//	cfg.Ciphertext = "..."
//	cfg.KeyLength = 4
//	cfg.KeysToTest, _ = keyspace.Size(27, 4)
//
//	sink := report.NewChanSink(64)
//	state, err := search.New(cfg, sink).Run(ctx)
//
// Every blocking entry point takes a context.Context. Cancelling it behaves
// like Stop: the run flushes pending candidates, emits a stopped event and
// returns the final State with a nil error.
package trifid
