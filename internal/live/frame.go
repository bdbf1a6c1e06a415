package live

import (
	"bytes"
	"strconv"
)

// Control sequences emitted by Render. Nothing else is ever written.
const (
	carriageReturn = "\r"
	clearLine      = "\x1b[2K"
)

// cursorUp returns the sequence that moves the cursor n lines up.
func cursorUp(n int) string {
	return "\x1b[" + strconv.Itoa(n) + "A"
}

// Frame is one complete rendering of the display. Lines are identified by
// position; a line must not contain a newline.
type Frame []string

// Clone returns a copy of f that does not share its backing array.
func (f Frame) Clone() Frame {
	if f == nil {
		return nil
	}
	out := make(Frame, len(f))
	copy(out, f)
	return out
}

// Render returns the bytes that turn a terminal showing prev into one showing
// next, with the cursor left at the start of the line below next's last line.
//
// A nil prev means nothing has been drawn yet: the lines of next are simply
// printed. Otherwise the cursor is moved up over prev and every line is
// cleared and rewritten. When next is shorter than prev, the surplus lines are
// cleared and the cursor is brought back up to sit directly below next.
//
// Render is pure: the caller owns both frames and decides what becomes the
// previous frame for the next call.
func Render(prev, next Frame) []byte {
	var b bytes.Buffer

	if prev == nil {
		for _, line := range next {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		return b.Bytes()
	}

	if len(prev) > 0 {
		b.WriteString(cursorUp(len(prev)))
	}

	for _, line := range next {
		b.WriteString(carriageReturn)
		b.WriteString(clearLine)
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if excess := len(prev) - len(next); excess > 0 {
		for range excess {
			b.WriteString(carriageReturn)
			b.WriteString(clearLine)
			b.WriteByte('\n')
		}
		b.WriteString(cursorUp(excess))
	}

	return b.Bytes()
}
