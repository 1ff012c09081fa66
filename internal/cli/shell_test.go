package cli_test

import (
	"strings"
	"testing"

	"github.com/calvinalkan/shelflife/internal/cli"
)

func Test_Shell_Runs_Commands_Until_Exit(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	script := strings.Join([]string{
		`add "Greek yogurt" -e 2024-06-15 --notes 'tub, half full'`,
		`add Rice -e 2024-07-01`,
		`ls --search yogurt`,
		`ls`,
		`frobnicate`,
		`shell`,
		``,
		`help`,
		`exit`,
		`add Never -e 2024-07-01`,
	}, "\n") + "\n"

	stdout, stderr, exitCode := c.RunWithInput(script, "shell")

	if got, want := exitCode, 0; got != want {
		t.Fatalf("exitCode=%d, want=%d\nstderr=%s", got, want, stderr)
	}

	if got, want := strings.Count(stdout, "Greek yogurt - Expires in 5 days"), 2; got != want {
		t.Errorf("yogurt rows=%d, want=%d\n%s", got, want, stdout)
	}

	if got, want := strings.Count(stdout, "Rice - Expires in 21 days"), 1; got != want {
		t.Errorf("rice rows=%d, want=%d (flags must not carry over between lines)\n%s", got, want, stdout)
	}

	cli.AssertContains(t, stdout, "    tub, half full")
	cli.AssertContains(t, stdout, "Leave the shell")
	cli.AssertNotContains(t, stdout, "Never")
	cli.AssertContains(t, stderr, "error: unknown command: frobnicate")
	cli.AssertContains(t, stderr, "error: already in the shell")

	cli.AssertNotContains(t, c.MustRun("ls"), "Never")
}

func Test_Shell_Logs_In_From_First_Line_And_Ends_On_EOF(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	delete(c.Env, cli.SecretEnv)

	stdout, stderr, exitCode := c.RunWithInput("admin123\nadd Milk -e 2024-06-15\nstats", "shell")

	if got, want := exitCode, 0; got != want {
		t.Fatalf("exitCode=%d, want=%d\nstderr=%s", got, want, stderr)
	}

	cli.AssertContains(t, stdout, "Total: 1")

	_, stderr, exitCode = c.RunWithInput("wrong\nstats\n", "shell")
	if got, want := exitCode, 1; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	cli.AssertContains(t, stderr, "incorrect password")
}

func Test_Shell_Command_Errors_Do_Not_End_Session(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stdout, stderr, exitCode := c.RunWithInput("add -e 2024-06-15\nshow NOPE\nadd Milk -e 2024-06-15\n", "shell")

	if got, want := exitCode, 0; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	cli.AssertContains(t, stderr, "name is required")
	cli.AssertContains(t, stderr, "item not found: NOPE")

	if got := len(lines(stdout)); got != 1 {
		t.Errorf("stdout lines=%d, want 1 (the new ID)\n%s", got, stdout)
	}
}
