// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

// Package watcher reports when a single data file settles after a change.
//
// The parent directory is watched with fsnotify so that editors which replace
// a file by renaming a temporary copy over it are still seen. Bursts of writes
// are debounced: an Event is emitted only once the file's size and
// modification time have stayed the same for the debounce interval.
//
// Events are coalesced. If a change is already waiting to be read, later
// changes are folded into it, so a slow consumer retrains once rather than
// once per write.
//
// Watcher implements suture.Service and is run under the supervisor tree in
// watch mode.
package watcher
