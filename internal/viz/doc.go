// Package viz previews the lens animation in the terminal.
//
// The preview replays a loop of sampled frames through a [TermSurface],
// which paints the same draw calls as the GIF renderer onto half-block
// characters.
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	[ ]   - Step one frame back/forward
//	T     - Cycle colour themes
//	?     - Show help overlay
//	Q     - Quit
package viz
