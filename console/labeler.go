// Package console implements an interactive Labeler that asks a human to
// accept or reject each extracted field on a terminal.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/sourceeval"
)

// Ensure Labeler implements sourceeval.Labeler at compile time.
var _ sourceeval.Labeler = (*Labeler)(nil)

// Labeler prints each field and reads a one-line verdict: "1" accepts,
// "2" rejects. Any other answer is asked again.
type Labeler struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewLabeler creates a Labeler reading answers from in and writing prompts
// to out.
func NewLabeler(in io.Reader, out io.Writer) *Labeler {
	return &Labeler{in: bufio.NewScanner(in), out: out}
}

// Label shows field and value and returns the operator's verdict. It fails
// when input ends before a valid answer is given.
func (l *Labeler) Label(field, value string) (bool, error) {
	fmt.Fprintf(l.out, "%s: %s\n", field, value)
	for {
		fmt.Fprint(l.out, "1/2: True/False ")
		if !l.in.Scan() {
			if err := l.in.Err(); err != nil {
				return false, err
			}
			return false, io.ErrUnexpectedEOF
		}
		switch strings.TrimSpace(l.in.Text()) {
		case "1":
			return true, nil
		case "2":
			return false, nil
		}
		fmt.Fprintln(l.out, "answer 1 (correct) or 2 (wrong)")
	}
}
