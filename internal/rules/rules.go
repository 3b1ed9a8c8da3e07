// Package rules wraps the strategy game's legality engine. The game core
// only sees Engine: a position encoding in, a new encoding or a rejection
// out. Applying a move is synchronous and side-effect-free.
package rules

type Engine interface {
	// InitialPosition returns the encoding of a fresh game.
	InitialPosition() string
	// Apply validates move against position and returns the resulting
	// encoding, or an error when the move is illegal or malformed.
	Apply(position, move string) (string, error)
}
