// Package cli holds the interactive customer and admin apps. Screens read
// from and write to a Session, so they run the same against a terminal and
// against buffers in tests.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"
)

// ErrQuit ends an app's main loop.
var ErrQuit = errors.New("quit")

// Session is the console plus the per-run settings every screen shares.
type Session struct {
	Ctx         context.Context
	MaxQuantity int
	Now         func() time.Time

	in     *bufio.Reader
	out    io.Writer
	ttyFD  int
	hasTTY bool
}

// NewSession reads answers from in and writes screens to out.
func NewSession(ctx context.Context, in io.Reader, out io.Writer, maxQty int) *Session {
	return &Session{
		Ctx:         ctx,
		MaxQuantity: maxQty,
		Now:         time.Now,
		in:          bufio.NewReader(in),
		out:         out,
		ttyFD:       -1,
	}
}

// UseTerminal makes password prompts read from fd without echo and lets
// screens clear the display.
func (s *Session) UseTerminal(fd int) {
	s.ttyFD = fd
	s.hasTTY = true
}

// CheckTTY fails when fd is not an interactive terminal.
func CheckTTY(fd int) error {
	if !term.IsTerminal(fd) {
		return errors.New("not running in a terminal; exiting")
	}
	return nil
}

func (s *Session) Printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Session) Println(args ...any) {
	fmt.Fprintln(s.out, args...)
}

func (s *Session) Clear() {
	if s.hasTTY {
		fmt.Fprint(s.out, "\033[H\033[2J")
	}
}

// Input prompts and returns one line without its line ending. io.EOF is
// returned only when nothing was typed before the input closed.
func (s *Session) Input(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	line, err := s.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Password prompts for a secret. On a terminal the answer is not echoed.
func (s *Session) Password(prompt string) (string, error) {
	if !s.hasTTY {
		return s.Input(prompt)
	}
	fmt.Fprint(s.out, prompt)
	b, err := term.ReadPassword(s.ttyFD)
	fmt.Fprintln(s.out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Pause waits for <Enter>.
func (s *Session) Pause(prompt string) error {
	_, err := s.Input(prompt)
	return err
}

// ReadChoice reads an integer in [1, hi]. An empty answer yields def.
func (s *Session) ReadChoice(hi int, prompt string, def int) (int, error) {
	for {
		answer, err := s.Input(prompt)
		if err != nil {
			return 0, err
		}
		answer = strings.TrimSpace(answer)
		if answer == "" {
			return def, nil
		}
		n, err := strconv.Atoi(answer)
		if err != nil {
			s.Println("Sorry, that is not an integer; try again.")
			continue
		}
		if n < 1 || n > hi {
			s.Printf("Please enter a choice between 1 and %d.\n", hi)
			continue
		}
		return n, nil
	}
}

// Action is one entry of a menu.
type Action struct {
	Label string
	Run   func() error
}

// Select shows actions and runs the one picked. An empty answer runs
// nothing.
func (s *Session) Select(actions []Action) error {
	s.Println()
	s.Println("Select an option by entering its number on the left.")
	s.Println("Or just press <Enter> to return to previous menu.")
	for i, a := range actions {
		s.Printf("   %2d. %s\n", i+1, a.Label)
	}
	n, err := s.ReadChoice(len(actions), "Your choice: ", 0)
	if err != nil || n == 0 {
		return err
	}
	return actions[n-1].Run()
}

// Loop redraws a menu until an action returns ErrQuit or input ends.
func Loop(s *Session, header func(), menu func() []Action) error {
	for {
		if err := s.Ctx.Err(); err != nil {
			return err
		}
		header()
		err := s.Select(menu())
		switch {
		case err == nil:
		case errors.Is(err, ErrQuit), errors.Is(err, io.EOF):
			s.Println()
			s.Println("Thanks for using RestEasy!  Have a great day!")
			return nil
		default:
			return err
		}
	}
}

func quit() error { return ErrQuit }
