package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var errNotInteractive = errors.New("refusing to continue without a terminal; pass --force")

// confirm asks a yes/no question on stdin. force skips the question; without a
// terminal there is nobody to ask, so the answer is an error.
func confirm(prompt string, force bool) (bool, error) {
	if force || !cfg.ConfirmDelete {
		return true, nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, errNotInteractive
	}
	return ask(os.Stdin, os.Stdout, prompt)
}

func ask(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	fmt.Fprintln(out, "Cancelled.")
	return false, nil
}
