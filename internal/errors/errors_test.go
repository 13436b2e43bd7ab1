package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportErrorFormat(t *testing.T) {
	err := New(CategoryData, CodeMatchLog, "Failed to load match log", "Match log loading").
		WithContext("path", "data/maturity.csv").
		WithTroubleshooting("Check the CSV header")

	msg := err.Error()

	assert.Contains(t, msg, "DATA-001: Failed to load match log")
	assert.Contains(t, msg, "Operation: Match log loading")
	assert.Contains(t, msg, "path: data/maturity.csv")
	assert.Contains(t, msg, "1. Check the CSV header")
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("no such file")
	err := NewConfigLoadError("hive.toml", cause)

	assert.ErrorIs(t, err, cause)
}

func TestFormatForCLI(t *testing.T) {
	err := NewRankingCycleError(stderrors.New("cycle among [a b c]"))

	out := FormatForCLI(err)

	assert.Contains(t, out, "RANKING Error [RANKING-001]")
	assert.Contains(t, out, "How to resolve:")
	assert.Contains(t, out, "Technical details: cycle among [a b c]")
}

func TestFormatForCLIPlainError(t *testing.T) {
	out := FormatForCLI(stderrors.New("plain failure"))

	assert.Equal(t, "\nError: plain failure\n", out)
}

func TestConstructorCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *ReportError
		code string
	}{
		{name: "config load", err: NewConfigLoadError("hive.toml", stderrors.New("x")), code: "CONFIG-001"},
		{name: "config invalid", err: NewConfigInvalidError("hive.toml", stderrors.New("x")), code: "CONFIG-002"},
		{name: "cache write", err: NewCacheError("cache.json", stderrors.New("x")), code: "DATA-002"},
		{name: "unknown participant", err: NewUnknownParticipantError(stderrors.New("x")), code: "RANKING-002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, tt.err.Error(), tt.code)
		})
	}
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "NETWORK-001: Failed to fetch games from hivegame.com",
		Summary(NewFetchError(stderrors.New("timeout"))))
	assert.Equal(t, "short", Summary(stderrors.New("short")))
}
