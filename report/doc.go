// SPDX-License-Identifier: MIT

// Package report carries search output from workers to observers.
//
// 🚀 What is a Sink?
//
//	Every search worker emits Events into a Sink: periodic progress, batches
//	of forwarded candidates, and exactly one terminal event (complete, stopped
//	or error). A Sink shared by several workers must be safe for concurrent use;
//	all sinks in this package are.
//
// ✨ Sinks:
//
//   - ChanSink  - buffered channel for in-process consumers and tests.
//   - JSONLSink - one JSON object per line on any io.Writer.
//   - Hub       - websocket broadcast (http.Handler); slow clients drop events.
//   - Multi     - fan-out to several sinks.
//   - Func      - adapter for plain functions.
//
// ⚙️ Rendering:
//
//	RenderTable and RenderDiagnostics print candidates and score breakdowns
//	as terminal tables.
package report
