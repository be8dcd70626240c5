// SPDX-License-Identifier: MIT

// Package search runs one worker's brute-force pass over a Trifid key range.
//
// 🚀 What is a Searcher?
//
//	A Searcher owns a contiguous index range [StartIndex, StartIndex+KeysToTest).
//	For every index it derives a key (sequential or random), builds the keyed
//	cube, decrypts the ciphertext, scores the plaintext and, when the candidate
//	passes the known-plaintext gate and lies within ForwardRatio of the best
//	score seen so far, buffers it for reporting.
//
// ⚙️ State machine:
//
//	Idle → Running → {Paused ⇄ Running} → {Completed | Stopped | Failed}
//
//	  - Config is validated before the loop; failure → Failed + error event.
//	  - Pause/Resume/Stop are honored between keys, never inside one.
//	  - A pause longer than MaxPause resumes on its own.
//	  - A panic while evaluating one key is recovered: the key counts as tested,
//	    KeysFailed grows, the run goes on.
//	  - A sink failure is fatal (ErrInternal) → Failed + best-effort error event.
//
// 📦 Batching:
//
//	Candidates are flushed as a results event, followed by a progress event,
//	when BatchSize candidates are pending, FlushInterval has elapsed, on pause
//	and at the end of the run. The terminal event is complete or stopped.
//
// Concurrency: Run executes on the caller's goroutine; Pause, Resume, Stop and
// Status may be called from any goroutine.
package search
