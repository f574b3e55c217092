// Package input turns raw keyboard, mouse and gamepad events into named
// actions and motions.
//
// An action is a set of buttons with one-frame edge tracking: a button moves
// released -> just pressed -> pressed -> just released -> released, spending
// exactly one Update in each "just" state. A motion is a 2D vector resolved
// each frame from an ordered list of mapping entries; later entries overwrite
// the axes written by earlier ones, so registration order decides precedence
// when several devices drive the same motion.
//
// A Manager owns both registries. Call Update once per tick with the frame's
// events, then query it from any number of readers until the next Update.
package input
