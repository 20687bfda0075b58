package flagset

import "errors"

// Declaration and usage errors. Build returns them (wrapped with context);
// value operations that indicate programmer misuse panic with them instead.
// Match with errors.Is.
var (
	// ErrDuplicateName reports a declaration whose name collides with an
	// earlier declaration or with a configured zero/all alias name.
	ErrDuplicateName = errors.New("flagset: duplicate flag name")

	// ErrInvalidName reports an empty declaration name or one that cannot
	// survive the string round trip (contains '|', whitespace or commas).
	ErrInvalidName = errors.New("flagset: invalid flag name")

	// ErrReservedBits reports a declaration that explicitly claims bits == 0.
	// Zero is reserved for the synthesized zero member.
	ErrReservedBits = errors.New("flagset: zero bits are reserved")

	// ErrAliasData reports an alias declaration that also supplies data.
	// Only the first declaration of a bit pattern may carry data.
	ErrAliasData = errors.New("flagset: alias cannot carry data")

	// ErrUniqueness reports a violation of the Unique or UniqueBits mode.
	ErrUniqueness = errors.New("flagset: uniqueness constraint violated")

	// ErrNoFreeBits reports that auto-assignment ran out of bit positions.
	ErrNoFreeBits = errors.New("flagset: no free bit positions left")

	// ErrFinalized reports a declaration attempt against a collection that
	// already has canonical members.
	ErrFinalized = errors.New("flagset: collection is finalized")

	// ErrTypeMismatch reports an operation across values of two different
	// collections.
	ErrTypeMismatch = errors.New("flagset: values belong to different collections")

	// ErrUnknownFlagName reports a name lookup or parsed token that matches
	// no member of the collection.
	ErrUnknownFlagName = errors.New("flagset: unknown flag name")

	// ErrUnrepresentable reports a value whose bits cannot be reconstructed
	// from the collection's canonical members.
	ErrUnrepresentable = errors.New("flagset: bits outside the declared universe")
)
