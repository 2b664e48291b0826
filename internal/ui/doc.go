// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing the feed:
//  1. [LoginView] : Sign in with email and password
//  2. [FeedView] : Swipe through recommendations one video at a time
//  3. [CommentsView] : Read and post comments on the current video
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Playback is simulated with a per-second tick that feeds the engagement
// tracker, so views are credited the same way the web player credits them.
//
// Keyboard navigation uses vim-style bindings (j/k, l, c, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
