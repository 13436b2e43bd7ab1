package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// FormatForCLI renders an error for terminal display, expanding structured
// errors into their context and troubleshooting sections.
func FormatForCLI(err error) string {
	var re *ReportError
	if !stderrors.As(err, &re) {
		return fmt.Sprintf("\nError: %v\n", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s Error [%s-%s]\n", re.Category, re.Category, re.Code)
	fmt.Fprintf(&sb, "  %s\n", re.Message)

	if re.Operation != "" {
		fmt.Fprintf(&sb, "\nFailed Operation: %s\n", re.Operation)
	}
	if len(re.Context) > 0 {
		sb.WriteString("\nDetails:\n")
		for _, key := range sortedKeys(re.Context) {
			fmt.Fprintf(&sb, "  %s: %v\n", key, re.Context[key])
		}
	}
	if len(re.Troubleshooting) > 0 {
		sb.WriteString("\nHow to resolve:\n")
		for i, step := range re.Troubleshooting {
			fmt.Fprintf(&sb, "  %d. %s\n", i+1, step)
		}
	}
	if re.OriginalError != nil {
		fmt.Fprintf(&sb, "\nTechnical details: %v\n", re.OriginalError)
	}
	return sb.String()
}

// Summary is the one-line form for logs.
func Summary(err error) string {
	var re *ReportError
	if stderrors.As(err, &re) {
		return fmt.Sprintf("%s-%s: %s", re.Category, re.Code, re.Message)
	}
	msg := err.Error()
	if len(msg) > 100 {
		return msg[:97] + "..."
	}
	return msg
}
