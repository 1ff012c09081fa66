package cli_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/calvinalkan/shelflife/internal/cli"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	err := os.MkdirAll(filepath.Dir(path), 0o750)
	if err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	err = os.WriteFile(path, []byte(content), 0o600)
	if err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// addItem runs add and returns the printed ID.
func addItem(t *testing.T, c *cli.CLI, args ...string) string {
	t.Helper()

	id := c.MustRun(append([]string{"add"}, args...)...)
	if id == "" || strings.ContainsAny(id, " \n") {
		t.Fatalf("add %v printed %q, want a single ID", args, id)
	}

	return id
}

// seedPantry adds one item per tier plus one expiring today, as of 2024-06-10.
func seedPantry(t *testing.T, c *cli.CLI) map[string]string {
	t.Helper()

	return map[string]string{
		"Yogurt": addItem(t, c, "Yogurt", "-e", "2024-06-05"),
		"Milk":   addItem(t, c, "Milk", "-e", "2024-06-15", "--qty", "2", "--notes", "top shelf"),
		"Rice":   addItem(t, c, "Rice", "-e", "2024-07-01"),
		"Bread":  addItem(t, c, "Bread", "-e", "2024-06-10"),
	}
}

// lines returns the non-empty lines of s.
func lines(s string) []string {
	var out []string

	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}

	return out
}
