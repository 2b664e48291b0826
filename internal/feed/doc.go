// Package feed drives the infinite single-item video feed.
//
// # Controller
//
// [Controller] owns the append-only entry sequence and the clamped cursor.
// Pages arrive via [Controller.LoadMore]; navigation via
// [Controller.Advance], which reports when the read-ahead margin has been
// crossed and another page should be fetched. Entries are never reordered
// or evicted for the lifetime of one feed session.
//
// # Tracker
//
// [Tracker] is the engagement overlay for the entry currently under the
// cursor: like status and count, comment count, and the once-per-bind view
// flag. The overlay is rebuilt from a fresh server read on every bind and
// discarded on unbind. Each bind carries a generation number; completions
// arriving after the cursor has moved on are dropped instead of being
// applied to an unrelated overlay.
package feed
