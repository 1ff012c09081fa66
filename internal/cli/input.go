package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
)

// input wraps stdin so the login gate and the shell read from one buffer.
type input struct {
	r   *bufio.Reader
	tty bool
}

func newInput(in io.Reader) *input {
	if in == nil {
		return &input{}
	}

	tty := false
	if f, ok := in.(*os.File); ok {
		tty = isTerminal(f.Fd())
	}

	return &input{r: bufio.NewReader(in), tty: tty}
}

// ReadLine returns the next line without its terminator. A final line
// without a newline is still returned; io.EOF comes after it.
func (in *input) ReadLine() (string, error) {
	if in.r == nil {
		return "", io.EOF
	}

	line, err := in.r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}
