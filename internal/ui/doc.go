// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a two-view workflow for browsing recorded export runs:
//  1. [RunListView] : Browse recorded runs, newest first
//  2. [FileListView] : Inspect the files a selected run produced
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Run and file data are loaded asynchronously from a [RunStore] backed by the sqlite manifest database.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, r, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
