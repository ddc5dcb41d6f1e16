package terminal

// decoder is the escape-sequence state machine. It is fed one byte at
// a time after a leading ESC has been consumed and reports when a
// sequence is complete. Any byte that does not continue a known
// sequence terminates it as a plain KeyEscape, as does running out of
// input mid-sequence (the caller handles that case).
type decoderState int

const (
	stateNormal decoderState = iota
	stateEscape              // ESC seen, expecting '[' or 'O'
	stateBracket             // ESC [ seen
	stateDigit               // ESC [ <digit> seen, expecting '~'
	stateSS3                 // ESC O seen (xterm Home/End variant)
)

type decoder struct {
	state decoderState
	digit byte
}

func newDecoder() *decoder {
	return &decoder{state: stateEscape}
}

// feed advances the state machine by one byte. done is true once a key
// has been produced; the decoder must not be fed after that.
func (d *decoder) feed(b byte) (key Key, done bool) {
	switch d.state {
	case stateEscape:
		switch b {
		case '[':
			d.state = stateBracket
			return 0, false
		case 'O':
			d.state = stateSS3
			return 0, false
		}
		return KeyEscape, true

	case stateBracket:
		if b >= '0' && b <= '9' {
			d.state = stateDigit
			d.digit = b
			return 0, false
		}
		switch b {
		case 'A':
			return KeyArrowUp, true
		case 'B':
			return KeyArrowDown, true
		case 'C':
			return KeyArrowRight, true
		case 'D':
			return KeyArrowLeft, true
		case 'H':
			return KeyHome, true
		case 'F':
			return KeyEnd, true
		}
		return KeyEscape, true

	case stateDigit:
		if b != '~' {
			return KeyEscape, true
		}
		switch d.digit {
		case '1', '7':
			return KeyHome, true
		case '3':
			return KeyDelete, true
		case '4', '8':
			return KeyEnd, true
		case '5':
			return KeyPageUp, true
		case '6':
			return KeyPageDown, true
		}
		return KeyEscape, true

	case stateSS3:
		switch b {
		case 'H':
			return KeyHome, true
		case 'F':
			return KeyEnd, true
		}
		return KeyEscape, true
	}
	return KeyEscape, true
}
