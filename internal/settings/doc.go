// Package settings merges the managed font-size keybindings into a Windows
// Terminal settings document.
//
// A run is a single pass: [Locate] the file, [Load] it (full-line comments are
// tolerated), make sure the keybindings list exists, [ComputeMissing] against
// [ManagedBindings], and only when something is missing [Apply] the additions
// and [Persist] the document atomically. [Merger.Run] performs the whole pass.
//
// Running the merge again on its own output changes nothing and writes
// nothing. Every member the merge does not touch is written back with the
// same value and in the same order.
package settings
