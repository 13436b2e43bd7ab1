// Package errors provides structured CLI-facing errors with context and
// troubleshooting hints.
package errors

import (
	"fmt"
	"sort"
	"strings"
)

// Category classifies an error for display.
type Category string

const (
	CategoryConfig  Category = "CONFIG"
	CategoryData    Category = "DATA"
	CategoryNetwork Category = "NETWORK"
	CategoryRanking Category = "RANKING"
	CategoryPlan    Category = "PLAN"
)

// Error codes within a category.
const (
	CodeConfigLoad     = "001"
	CodeConfigInvalid  = "002"
	CodeMatchLog       = "001"
	CodeCache          = "002"
	CodeFetch          = "001"
	CodeRankingCycle   = "001"
	CodeRankingUnknown = "002"
	CodePlanCycle      = "001"
	CodePlanExec       = "002"
)

// ReportError is a structured error carrying category, code, context, and
// troubleshooting steps for CLI display.
type ReportError struct {
	Category        Category
	Code            string
	Message         string
	Operation       string
	Context         map[string]interface{}
	Troubleshooting []string
	OriginalError   error
}

func (e *ReportError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s-%s: %s", e.Category, e.Code, e.Message)
	if e.Operation != "" {
		fmt.Fprintf(&sb, "\nOperation: %s", e.Operation)
	}
	if len(e.Context) > 0 {
		sb.WriteString("\nContext:")
		for _, key := range sortedKeys(e.Context) {
			fmt.Fprintf(&sb, "\n  %s: %v", key, e.Context[key])
		}
	}
	if len(e.Troubleshooting) > 0 {
		sb.WriteString("\nTroubleshooting:")
		for i, step := range e.Troubleshooting {
			fmt.Fprintf(&sb, "\n  %d. %s", i+1, step)
		}
	}
	if e.OriginalError != nil {
		fmt.Fprintf(&sb, "\nUnderlying error: %v", e.OriginalError)
	}
	return sb.String()
}

// Unwrap exposes the original error to errors.Is and errors.As.
func (e *ReportError) Unwrap() error {
	return e.OriginalError
}

// New creates a structured error.
func New(category Category, code, message, operation string) *ReportError {
	return &ReportError{
		Category:  category,
		Code:      code,
		Message:   message,
		Operation: operation,
		Context:   make(map[string]interface{}),
	}
}

// WithContext attaches a key/value pair for display.
func (e *ReportError) WithContext(key string, value interface{}) *ReportError {
	e.Context[key] = value
	return e
}

// WithTroubleshooting appends resolution steps.
func (e *ReportError) WithTroubleshooting(steps ...string) *ReportError {
	e.Troubleshooting = append(e.Troubleshooting, steps...)
	return e
}

// WithOriginalError records the underlying cause.
func (e *ReportError) WithOriginalError(err error) *ReportError {
	e.OriginalError = err
	return e
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NewConfigLoadError wraps a failure to read or parse hive.toml.
func NewConfigLoadError(path string, originalErr error) *ReportError {
	return New(CategoryConfig, CodeConfigLoad,
		fmt.Sprintf("Failed to load configuration from '%s'", path),
		"Configuration loading").
		WithContext("path", path).
		WithOriginalError(originalErr).
		WithTroubleshooting(
			"Check that the file exists and is readable",
			"Validate the TOML syntax",
		)
}

// NewConfigInvalidError wraps a hive.toml that parsed but failed validation.
func NewConfigInvalidError(path string, originalErr error) *ReportError {
	return New(CategoryConfig, CodeConfigInvalid,
		fmt.Sprintf("Configuration '%s' is invalid", path),
		"Configuration validation").
		WithContext("path", path).
		WithOriginalError(originalErr).
		WithTroubleshooting(
			"Every group used by a player must appear in settings.group_order",
			"Players with several hivegame nicks need hivegame_current set",
		)
}

// NewCacheError wraps a failure to persist the games cache.
func NewCacheError(path string, originalErr error) *ReportError {
	return New(CategoryData, CodeCache,
		fmt.Sprintf("Failed to write games cache '%s'", path),
		"Cache persistence").
		WithContext("path", path).
		WithOriginalError(originalErr).
		WithTroubleshooting(
			"Check that the data directory exists and is writable",
			"Check free disk space",
		)
}

// NewMatchLogError wraps a failure to read the maturity match log.
func NewMatchLogError(path string, originalErr error) *ReportError {
	return New(CategoryData, CodeMatchLog,
		fmt.Sprintf("Failed to load match log from '%s'", path),
		"Match log loading").
		WithContext("path", path).
		WithOriginalError(originalErr).
		WithTroubleshooting(
			"The match log needs the header date,player1,player2,score1,score2",
			"Dates must be formatted YYYY-MM-DD",
			"Scores must be whole numbers",
		)
}

// NewRankingCycleError wraps a ranking cycle detected during a build.
func NewRankingCycleError(originalErr error) *ReportError {
	return New(CategoryRanking, CodeRankingCycle,
		"Participants beat each other in a cycle; no ranking order exists",
		"Tier ranking").
		WithOriginalError(originalErr).
		WithTroubleshooting(
			"Inspect the recent matches between the named participants",
			"A rematch that breaks the loop restores a valid ranking",
		)
}

// NewUnknownParticipantError wraps a ranking input that names a player
// missing from the participant set.
func NewUnknownParticipantError(originalErr error) *ReportError {
	return New(CategoryRanking, CodeRankingUnknown,
		"A match references a player missing from the participant set",
		"Tier ranking").
		WithOriginalError(originalErr).
		WithTroubleshooting(
			"Look for a typo in the match log player columns",
		)
}

// NewFetchError wraps a hivegame.com fetch failure.
func NewFetchError(originalErr error) *ReportError {
	return New(CategoryNetwork, CodeFetch,
		"Failed to fetch games from hivegame.com",
		"Game fetching").
		WithOriginalError(originalErr).
		WithTroubleshooting(
			"Check your internet connection",
			"The API endpoint changes across hivegame.com deployments; the configured URL may be stale",
			"Retry later in case of a server-side outage",
		)
}

// NewPlanError wraps an installation plan failure.
func NewPlanError(code string, originalErr error) *ReportError {
	message := "Installation plan failed"
	if code == CodePlanCycle {
		message = "Installation plan dependencies form a cycle"
	}
	return New(CategoryPlan, code, message, "Installation planning").
		WithOriginalError(originalErr).
		WithTroubleshooting(
			"Run with --json to inspect the full plan",
			"Check that mise is installed and on PATH",
		)
}
