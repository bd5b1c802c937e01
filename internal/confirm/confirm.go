// Package confirm asks the user before destructive actions.
package confirm

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Prompter asks a yes/no question.
type Prompter interface {
	Confirm(ctx context.Context, title, message string) (bool, error)
}

// Delete asks p once and calls deleteFn only on an explicit yes. It reports
// whether the deletion ran. Errors from deleteFn are returned unchanged.
func Delete(ctx context.Context, p Prompter, title, message string, deleteFn func(context.Context) error) (bool, error) {
	ok, err := p.Confirm(ctx, title, message)
	if err != nil || !ok {
		return false, err
	}
	if err := deleteFn(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// TerminalPrompter reads the answer from a terminal. Only "y" and "yes",
// in any case, confirm; anything else, including end of input, cancels.
type TerminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminalPrompter reads answers from in and writes questions to out.
func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{in: bufio.NewReader(in), out: out}
}

func (t *TerminalPrompter) Confirm(ctx context.Context, title, message string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if _, err := fmt.Fprintf(t.out, "%s\n%s [y/N] ", title, message); err != nil {
		return false, err
	}
	line, err := t.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// Always confirms without asking.
type Always struct{}

func (Always) Confirm(context.Context, string, string) (bool, error) { return true, nil }
