package keyword

// Wrap applies the target notation to a bare keyword. Unknown targets fall
// back to broad.
func Wrap(bare string, target Type) string {
	switch target {
	case Phrase:
		return `"` + bare + `"`
	case Exact:
		return "[" + bare + "]"
	default:
		return bare
	}
}
