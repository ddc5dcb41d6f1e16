package terminal

import "testing"

// drain feeds a full sequence (sans the leading ESC) and returns the
// decoded key, falling back to KeyEscape when input runs out, the same
// way Session.decodeEscape treats a read timeout.
func drain(seq string) Key {
	d := newDecoder()
	for i := 0; i < len(seq); i++ {
		if k, done := d.feed(seq[i]); done {
			return k
		}
	}
	return KeyEscape
}

func TestDecodeArrowKeys(t *testing.T) {
	tests := []struct {
		seq  string
		want Key
	}{
		{"[A", KeyArrowUp},
		{"[B", KeyArrowDown},
		{"[C", KeyArrowRight},
		{"[D", KeyArrowLeft},
	}
	for _, tt := range tests {
		if got := drain(tt.seq); got != tt.want {
			t.Fatalf("decode %q = %d, want %d", tt.seq, got, tt.want)
		}
	}
}

func TestDecodeTildeSequences(t *testing.T) {
	tests := []struct {
		seq  string
		want Key
	}{
		{"[1~", KeyHome},
		{"[3~", KeyDelete},
		{"[4~", KeyEnd},
		{"[5~", KeyPageUp},
		{"[6~", KeyPageDown},
		{"[7~", KeyHome},
		{"[8~", KeyEnd},
	}
	for _, tt := range tests {
		if got := drain(tt.seq); got != tt.want {
			t.Fatalf("decode %q = %d, want %d", tt.seq, got, tt.want)
		}
	}
}

func TestDecodeHomeEndVariants(t *testing.T) {
	tests := []struct {
		seq  string
		want Key
	}{
		{"[H", KeyHome},
		{"[F", KeyEnd},
		{"OH", KeyHome},
		{"OF", KeyEnd},
	}
	for _, tt := range tests {
		if got := drain(tt.seq); got != tt.want {
			t.Fatalf("decode %q = %d, want %d", tt.seq, got, tt.want)
		}
	}
}

func TestDecodeUnknownDegradesToEscape(t *testing.T) {
	for _, seq := range []string{"x", "[Z", "[9~", "[2x", "OQ"} {
		if got := drain(seq); got != KeyEscape {
			t.Fatalf("decode %q = %d, want KeyEscape", seq, got)
		}
	}
}

func TestDecodeIncompleteDegradesToEscape(t *testing.T) {
	for _, seq := range []string{"", "[", "[5", "O"} {
		if got := drain(seq); got != KeyEscape {
			t.Fatalf("decode %q = %d, want KeyEscape", seq, got)
		}
	}
}

func TestDecoderStopsAfterDone(t *testing.T) {
	d := newDecoder()
	k, done := d.feed('[')
	if done {
		t.Fatalf("'[' terminated decoder early with %d", k)
	}
	k, done = d.feed('A')
	if !done || k != KeyArrowUp {
		t.Fatalf("feed '[A' = (%d, %v), want (KeyArrowUp, true)", k, done)
	}
}

func TestCtrl(t *testing.T) {
	if Ctrl('q') != 17 {
		t.Fatalf("Ctrl('q') = %d, want 17", Ctrl('q'))
	}
	if Ctrl('s') != 19 {
		t.Fatalf("Ctrl('s') = %d, want 19", Ctrl('s'))
	}
}

func TestKeyLiteral(t *testing.T) {
	if !Key('a').IsLiteral() || Key('a').Byte() != 'a' {
		t.Fatalf("Key('a') not literal")
	}
	if KeyArrowUp.IsLiteral() {
		t.Fatalf("KeyArrowUp reported literal")
	}
}
