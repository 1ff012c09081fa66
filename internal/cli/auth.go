package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/peterh/liner"
	"golang.org/x/sys/unix"

	"github.com/calvinalkan/shelflife/internal/store"
)

// SecretEnv names the environment variable checked before prompting.
const SecretEnv = "SHELF_SECRET"

var errNoSecret = errors.New("password required: set " + SecretEnv + " or pipe it on stdin")

// isTerminal reports whether fd is a terminal.
func isTerminal(fd uintptr) bool {
	_, err := unix.IoctlGetTermios(int(fd), ioctlReadTermios)

	return err == nil
}

// login checks the entered secret against the stored one. The first run
// stores the default secret.
func (a *App) login() error {
	entered, err := a.readSecret()
	if err != nil {
		return err
	}

	return store.CheckSecret(a.KV, entered)
}

func (a *App) readSecret() (string, error) {
	if secret, ok := a.Env[SecretEnv]; ok {
		return secret, nil
	}

	if a.in.tty {
		return promptSecret()
	}

	line, err := a.in.ReadLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", errNoSecret
		}

		return "", fmt.Errorf("reading password: %w", err)
	}

	return line, nil
}

func promptSecret() (string, error) {
	line := liner.NewLiner()
	defer func() { _ = line.Close() }()

	line.SetCtrlCAborts(true)

	secret, err := line.PasswordPrompt("Password: ")
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return "", errNoSecret
		}

		return "", fmt.Errorf("reading password: %w", err)
	}

	return secret, nil
}
