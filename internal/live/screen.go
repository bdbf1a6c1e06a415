package live

import (
	"bufio"
	"fmt"
	"io"
)

// Screen owns a region of the terminal and the frame currently shown in it.
// It is not safe for concurrent use.
type Screen struct {
	w     *bufio.Writer
	prev  Frame
	drawn bool
}

// NewScreen returns a Screen writing to w. Nothing is written until the first Draw.
func NewScreen(w io.Writer) *Screen {
	return &Screen{w: bufio.NewWriter(w)}
}

// Draw replaces the displayed frame with next and flushes the output.
// On error the previous frame is kept.
func (s *Screen) Draw(next Frame) error {
	var prev Frame
	if s.drawn {
		prev = s.prev
		if prev == nil {
			prev = Frame{}
		}
	}

	if _, err := s.w.Write(Render(prev, next)); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	if err := s.w.Flush(); err != nil {
		return fmt.Errorf("flush frame: %w", err)
	}

	s.prev = next.Clone()
	s.drawn = true
	return nil
}

// Lines returns how many lines the screen currently occupies.
func (s *Screen) Lines() int {
	return len(s.prev)
}
