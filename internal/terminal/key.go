package terminal

// Key is a decoded input event: literal bytes stay below the semantic
// range, decoded escape sequences map to codes from 1000 up.
type Key int

const (
	KeyEnter     Key = '\r'
	KeyEscape    Key = 0x1b
	KeyBackspace Key = 127
)

const (
	KeyArrowLeft Key = iota + 1000
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
)

// Ctrl maps a letter to its control-key byte.
func Ctrl(c byte) Key {
	return Key(c & 0x1f)
}

// IsLiteral reports whether k carries a raw input byte rather than a
// decoded semantic key.
func (k Key) IsLiteral() bool {
	return k >= 0 && k < 256
}

// Byte returns the raw byte for a literal key.
func (k Key) Byte() byte {
	return byte(k)
}
