package live

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// vterm is a minimal terminal used to check what the emitted bytes display.
// It understands printable text, CR, LF (as CR+LF, like a tty with onlcr),
// cursor-up (ESC[nA), clear-line (ESC[2K) and ignores SGR (ESC[...m).
// Anything else is recorded in unknown.
type vterm struct {
	rows    [][]rune
	row     int
	col     int
	unknown []string
}

func (t *vterm) Write(p []byte) (int, error) {
	s := string(p)
	for len(s) > 0 {
		switch {
		case s[0] == '\r':
			t.col = 0
			s = s[1:]
		case s[0] == '\n':
			t.row++
			t.col = 0
			t.ensureRow()
			s = s[1:]
		case strings.HasPrefix(s, "\x1b["):
			end := strings.IndexAny(s[2:], "ABCDEFGHJKSTfmhl")
			if end < 0 {
				t.unknown = append(t.unknown, s)
				return len(p), nil
			}
			params, final := s[2:2+end], s[2+end]
			t.control(params, final)
			s = s[3+end:]
		default:
			r, size := utf8.DecodeRuneInString(s)
			t.put(r)
			s = s[size:]
		}
	}
	return len(p), nil
}

func (t *vterm) control(params string, final byte) {
	switch final {
	case 'A':
		n := 1
		if params != "" {
			n, _ = strconv.Atoi(params)
		}
		t.row = max(t.row-n, 0)
	case 'K':
		if params != "2" {
			t.unknown = append(t.unknown, "K"+params)
			return
		}
		t.ensureRow()
		t.rows[t.row] = nil
	case 'm':
	default:
		t.unknown = append(t.unknown, params+string(final))
	}
}

func (t *vterm) ensureRow() {
	for len(t.rows) <= t.row {
		t.rows = append(t.rows, nil)
	}
}

func (t *vterm) put(r rune) {
	t.ensureRow()
	line := t.rows[t.row]
	for len(line) < t.col {
		line = append(line, ' ')
	}
	if t.col < len(line) {
		line[t.col] = r
	} else {
		line = append(line, r)
	}
	t.rows[t.row] = line
	t.col++
}

// display returns the visible lines without trailing blank rows.
func (t *vterm) display() []string {
	var out []string
	for _, r := range t.rows {
		out = append(out, strings.TrimRight(string(r), " "))
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}
