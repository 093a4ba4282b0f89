package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mitchellh/go-wordwrap"
	"golang.org/x/term"
)

// prompter reads answers line by line, so it works the same on a terminal
// and on a pipe.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	fd := -1
	if f, ok := in.(*os.File); ok {
		fd = int(f.Fd())
	}
	return &prompter{in: bufio.NewReader(in), out: out, fd: fd}
}

func (p *prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *prompter) promptLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	return p.readLine()
}

// promptPassword hides the input when reading from a terminal.
func (p *prompter) promptPassword(prompt string) (string, error) {
	if p.fd < 0 || !term.IsTerminal(p.fd) {
		return p.promptLine(prompt)
	}
	fmt.Fprint(p.out, prompt)
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func promptList[T any](p *prompter, list []T, start int, mapper func(T) string) (int, error) {
	for i, el := range list {
		fmt.Fprintf(p.out, "(%d)\t%s\n", start+i, mapper(el))
	}

	for {
		res, err := p.promptLine("Your choice: ")
		if err != nil {
			return 0, err
		}
		choice, err := strconv.Atoi(res)
		if err != nil {
			fmt.Fprintf(p.out, "Try again: %q is not a number\n", res)
			continue
		}

		if choice >= start && choice < len(list)+start {
			return choice, nil
		}
		fmt.Fprintln(p.out, "Try again: no such option")
	}
}

func (p *prompter) promptPlayer(prompt string) (bool, error) {
	for {
		res, err := p.promptLine(fmt.Sprintf("%s (y/n): ", prompt))
		if err != nil {
			return false, err
		}
		switch strings.ToLower(res) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}
		log.Debug("app [promptPlayer]", "res", res)
	}
}

// wrapLines splits text into lines of at most width columns.
func wrapLines(text string, width uint) []string {
	return strings.Split(wordwrap.WrapString(text, width), "\n")
}

// fitLines wraps text into at most n lines. Whatever does not fit is
// appended to the last line so no part of the text is lost.
func fitLines(text string, width uint, n int) []string {
	lines := wrapLines(text, width)
	if n <= 0 || len(lines) <= n {
		return lines
	}
	return append(lines[:n-1], strings.Join(lines[n-1:], " "))
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
