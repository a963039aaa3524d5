package terminal

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// ErrInterrupted is returned by ReadLine when the user presses Ctrl+C.
var ErrInterrupted = errors.New("interrupted")

const (
	keyCtrlC     = 3
	keyBackspace = 8
	keyDelete    = 127
)

// Session is the terminal collaborator of the editor: a key stream, line
// input and a clearable screen. When opened on a TTY it holds the terminal
// in raw mode until Close.
type Session struct {
	out   io.Writer
	keys  chan byte
	fd    int
	state *term.State

	lastCR bool
}

// NewSession wraps an arbitrary reader and writer without touching terminal
// modes. Input is expected to be already line-buffered or scripted.
func NewSession(in io.Reader, out io.Writer) *Session {
	s := &Session{out: out, keys: make(chan byte, 64), fd: -1}
	go s.pump(in)
	return s
}

// Open puts in into raw mode when it is a terminal and starts reading keys.
func Open(in *os.File, out io.Writer) (*Session, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return NewSession(in, out), nil
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}
	s := &Session{out: out, keys: make(chan byte, 64), fd: fd, state: oldState}
	go s.pump(in)
	return s, nil
}

// Run opens a session on in, runs fn and restores the terminal on every
// exit path, including a panic in fn.
func Run(in *os.File, out io.Writer, fn func(*Session) error) (err error) {
	s, err := Open(in, out)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(s)
}

// Close restores the terminal mode captured by Open.
func (s *Session) Close() error {
	if s.state == nil {
		return nil
	}
	state := s.state
	s.state = nil
	return term.Restore(s.fd, state)
}

// Raw reports whether the session holds the terminal in raw mode.
func (s *Session) Raw() bool {
	return s.state != nil
}

func (s *Session) pump(in io.Reader) {
	defer close(s.keys)
	buf := make([]byte, 256)
	for {
		n, err := in.Read(buf)
		for i := 0; i < n; i++ {
			s.keys <- buf[i]
		}
		if err != nil {
			return
		}
	}
}

// Keys exposes the raw key stream. It is closed when input ends.
func (s *Session) Keys() <-chan byte {
	return s.keys
}

// ReadKey blocks for the next key. It returns io.EOF once input has ended.
func (s *Session) ReadKey() (byte, error) {
	k, ok := <-s.keys
	if !ok {
		return 0, io.EOF
	}
	return k, nil
}

// ReadLine collects keys up to Enter, echoing them in raw mode and handling
// backspace. Backspace removes a whole UTF-8 character. A partial line at end
// of input is returned with a nil error.
func (s *Session) ReadLine() (string, error) {
	var line []byte
	for {
		k, err := s.ReadKey()
		if err != nil {
			if len(line) > 0 {
				return string(line), nil
			}
			return "", err
		}

		if k == '\n' && s.lastCR {
			s.lastCR = false
			continue
		}
		s.lastCR = k == '\r'

		switch k {
		case '\r', '\n':
			s.echo("\n")
			return string(line), nil
		case keyCtrlC:
			s.echo("^C\n")
			return "", ErrInterrupted
		case keyBackspace, keyDelete:
			if len(line) > 0 {
				_, size := utf8.DecodeLastRune(line)
				line = line[:len(line)-size]
				s.echo("\b \b")
			}
		default:
			line = append(line, k)
			s.echo(string([]byte{k}))
		}
	}
}

// Prompt writes label and reads one line.
func (s *Session) Prompt(label string) (string, error) {
	fmt.Fprint(s, label)
	return s.ReadLine()
}

func (s *Session) echo(text string) {
	if s.Raw() {
		fmt.Fprint(s, text)
	}
}

// Write sends p to the screen, translating newlines for raw mode.
func (s *Session) Write(p []byte) (int, error) {
	if !s.Raw() {
		return s.out.Write(p)
	}
	translated := bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))
	if _, err := s.out.Write(translated); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Printf formats to the screen.
func (s *Session) Printf(format string, args ...interface{}) {
	fmt.Fprintf(s, format, args...)
}

// Println writes text followed by a newline.
func (s *Session) Println(text ...string) {
	fmt.Fprintln(s, strings.Join(text, " "))
}

// Clear erases the screen and homes the cursor.
func (s *Session) Clear() error {
	_, err := io.WriteString(s.out, "\x1b[2J\x1b[H")
	return err
}
