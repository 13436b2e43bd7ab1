package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm prompts for a yes/no answer on out, reading the reply from in.
// autoApprove short-circuits to yes without prompting.
func Confirm(in io.Reader, out io.Writer, autoApprove bool, prompt string) (bool, error) {
	if autoApprove {
		return true, nil
	}

	fmt.Fprintf(out, "%s [y/N] ", prompt)
	reply, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read confirmation: %w", err)
	}

	reply = strings.ToLower(strings.TrimSpace(reply))
	return reply == "y" || reply == "yes", nil
}
