package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

type stdout struct {
	writer io.Writer
	mutex  sync.Mutex

	column int

	success *color.Color
	failure *color.Color
}

func NewStdOut() Output {
	return NewOutput(color.Output, !color.NoColor)
}

// NewOutput creates an Output over w, colored lines are used only when colored is set
func NewOutput(w io.Writer, colored bool) Output {
	success := color.New(color.FgGreen)
	failure := color.New(color.FgRed)
	if !colored {
		success.DisableColor()
		failure.DisableColor()
	}

	return &stdout{
		writer:  w,
		success: success,
		failure: failure,
	}
}

func (s *stdout) Println(input string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	_, _ = fmt.Fprintln(s.writer, input)
	s.column = 0
}

func (s *stdout) Printf(format string, args ...interface{}) {
	s.Print(fmt.Sprintf(format, args...))
}

func (s *stdout) Print(input string) {
	if len(input) == 0 {
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.print(input)
}

func (s *stdout) print(input string) {
	_, _ = fmt.Fprint(s.writer, input)

	if idx := strings.LastIndexByte(input, '\n'); idx > -1 {
		s.column = runewidth.StringWidth(input[idx+1:])
		return
	}
	s.column += runewidth.StringWidth(input)
}

func (s *stdout) Remove(size int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.column-size < 0 {
		size = s.column
	}
	if size == 0 {
		return
	}
	_, _ = fmt.Fprintf(s.writer, "\033[%dD", size)
	s.column -= size
}

func (s *stdout) Rewrite(input string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	previous := s.column
	_, _ = fmt.Fprint(s.writer, "\r")
	s.column = 0

	s.print(runewidth.FillRight(input, previous))
}

func (s *stdout) Success(format string, args ...interface{}) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	_, _ = s.success.Fprintf(s.writer, format, args...)
	_, _ = fmt.Fprintln(s.writer)
	s.column = 0
}

func (s *stdout) Failure(format string, args ...interface{}) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	_, _ = s.failure.Fprintf(s.writer, format, args...)
	_, _ = fmt.Fprintln(s.writer)
	s.column = 0
}

var _ Output = &stdout{}
