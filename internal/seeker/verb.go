package seeker

// Verb is the callback's instruction to the seeker, a four-valued lattice
// over two independent bits: whether to perform the operation's implied
// mutation, and whether to keep visiting further candidates. Represented
// as a compact enum so callers never branch on verb text.
type Verb int

const (
	PerformAndMove Verb = iota
	PerformAndStop
	SkipAndMove
	Stop
)

// Performs reports whether v instructs the seeker to apply the operation's
// mutation at the current candidate.
func (v Verb) Performs() bool {
	return v == PerformAndMove || v == PerformAndStop
}

// Continues reports whether v instructs the seeker to keep visiting further
// candidates after this one.
func (v Verb) Continues() bool {
	return v == PerformAndMove || v == SkipAndMove
}

func (v Verb) String() string {
	switch v {
	case PerformAndMove:
		return "PerformAndMove"
	case PerformAndStop:
		return "PerformAndStop"
	case SkipAndMove:
		return "SkipAndMove"
	default:
		return "Stop"
	}
}

// Flags is an opaque bitmask passed through every seeker call, reserved
// for future visibility restrictions such as access modifiers.
type Flags uint32

const (
	NoFlags Flags = 0
	// SkipOwners prevents ascent past the starting node when resolving an
	// Identifier over a plain *ast.Node (as opposed to a Repository).
	SkipOwners Flags = 1 << 0
)

func (f Flags) Has(flag Flags) bool {
	return f&flag != 0
}
