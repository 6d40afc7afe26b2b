package rating

import "errors"

// Sentinel kinds for rating engine errors.
var (
	// ErrUnknownModel reports an unsupported rating model selection. There is
	// no sensible default model, so this is always fatal to the call.
	ErrUnknownModel = errors.New("unknown rating model")

	// ErrMalformedGame reports a game with duplicate or missing participants.
	// Whether it aborts the pass depends on the configured policy.
	ErrMalformedGame = errors.New("malformed game")

	// ErrNonFiniteBelief reports that an update produced a non-finite or
	// out-of-bounds belief. Always fatal: propagating it would corrupt every
	// later update involving the player.
	ErrNonFiniteBelief = errors.New("non-finite belief")
)
