package util

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// ReadSecret prints prompt to out and reads one line from in. Input from a
// terminal is not echoed.
func ReadSecret(in io.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)

	if f, ok := in.(*os.File); ok && IsTerminal(f) {
		secret, err := term.ReadPassword(int(f.Fd())) //nolint:gosec // file descriptors fit into int
		fmt.Fprintln(out)
		if err != nil {
			return "", errors.Wrap(err, "failed to read from terminal")
		}
		return strings.TrimSpace(string(secret)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", errors.Wrap(err, "failed to read input")
	}
	return strings.TrimSpace(line), nil
}
