package want

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToolSpec(t *testing.T) {
	tests := []struct {
		spec     string
		expected Tool
	}{
		{"go", Tool{Name: "go", Version: "latest"}},
		{"go@1.23", Tool{Name: "go", Version: "1.23"}},
		{"node@20.11.0", Tool{Name: "node", Version: "20.11.0"}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseToolSpec(tt.spec))
		})
	}
}

func TestToolSatisfied(t *testing.T) {
	// The shell itself is a tool we can rely on being installed.
	assert.True(t, Tool{Name: "sh", Version: "latest"}.Satisfied())
	assert.False(t, Tool{Name: "definitely-not-a-real-tool-xyz", Version: "latest"}.Satisfied())
}

func TestFileSatisfied(t *testing.T) {
	path := filepath.Join(t.TempDir(), "present")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	assert.True(t, File{Path: path}.Satisfied())
	assert.False(t, File{Path: path + ".missing"}.Satisfied())
}

func TestCommandNeverSatisfied(t *testing.T) {
	cmd := Command{Command: "make build", Description: "build the project"}

	assert.False(t, cmd.Satisfied())
	assert.Equal(t, "Run command: build the project", cmd.Describe())
}

func TestPlanOrder(t *testing.T) {
	var plan Plan
	base := plan.AddStep(Tool{Name: "missing-base", Version: "latest"})
	mid := plan.AddStep(Tool{Name: "missing-mid", Version: "latest"}, base)
	plan.AddStep(Tool{Name: "missing-top", Version: "latest"}, mid)

	order, err := plan.Order()

	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestPlanOrderRejectsCycle(t *testing.T) {
	var plan Plan
	plan.AddStep(Tool{Name: "a", Version: "latest"}, 1)
	plan.AddStep(Tool{Name: "b", Version: "latest"}, 0)

	_, err := plan.Order()

	assert.ErrorIs(t, err, ErrPlanCycle)
}

func TestPlanOrderRejectsUnknownDependency(t *testing.T) {
	var plan Plan
	plan.AddStep(Tool{Name: "a", Version: "latest"}, 7)

	_, err := plan.Order()

	assert.Error(t, err)
}

func TestPlanJSON(t *testing.T) {
	var plan Plan
	plan.AddStep(Tool{Name: "definitely-not-installed-abc", Version: "1.0"})
	plan.AddStep(File{Path: "/nonexistent/file"})

	data, err := plan.JSON()
	require.NoError(t, err)

	var decoded struct {
		Steps []struct {
			Requirement  Spec  `json:"requirement"`
			Dependencies []int `json:"dependencies"`
		} `json:"steps"`
		TotalSteps       int `json:"total_steps"`
		UnsatisfiedSteps int `json:"unsatisfied_steps"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, 2, decoded.TotalSteps)
	assert.Equal(t, 2, decoded.UnsatisfiedSteps)
	assert.Equal(t, "tool", decoded.Steps[0].Requirement.Type)
	assert.Equal(t, "definitely-not-installed-abc", decoded.Steps[0].Requirement.ToolName)
	assert.Equal(t, "file", decoded.Steps[1].Requirement.Type)
}

func TestPlanDisplay(t *testing.T) {
	var plan Plan
	base := plan.AddStep(Tool{Name: "missing-base-tool", Version: "latest"})
	plan.AddStep(Tool{Name: "missing-top-tool", Version: "2.0"}, base)

	out, err := plan.Display()
	require.NoError(t, err)

	assert.Contains(t, out, "Installation plan (2 step(s))")
	assert.Contains(t, out, "Install tool: missing-base-tool")
	assert.Contains(t, out, "Install tool: missing-top-tool@2.0")
	assert.Contains(t, out, "after: Install tool: missing-base-tool")
}

func TestPlanDisplayAllSatisfied(t *testing.T) {
	path := filepath.Join(t.TempDir(), "here")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	var plan Plan
	plan.AddStep(File{Path: path})

	out, err := plan.Display()
	require.NoError(t, err)
	assert.Contains(t, out, "already satisfied")
}

type fakeInstaller struct {
	installed []string
	fail      map[string]error
}

func (f *fakeInstaller) Install(ctx context.Context, toolSpec string) error {
	if err := f.fail[toolSpec]; err != nil {
		return err
	}
	f.installed = append(f.installed, toolSpec)
	return nil
}

func TestPlanExecute(t *testing.T) {
	var plan Plan
	base := plan.AddStep(Tool{Name: "missing-base-tool", Version: "1.0"})
	plan.AddStep(Tool{Name: "missing-top-tool", Version: "latest"}, base)

	installer := &fakeInstaller{}
	err := plan.Execute(context.Background(), installer)

	require.NoError(t, err)
	assert.Equal(t, []string{"missing-base-tool@1.0", "missing-top-tool@latest"}, installer.installed)
}

func TestPlanExecuteStopsOnFailure(t *testing.T) {
	var plan Plan
	base := plan.AddStep(Tool{Name: "missing-base-tool", Version: "1.0"})
	plan.AddStep(Tool{Name: "missing-top-tool", Version: "latest"}, base)

	installer := &fakeInstaller{fail: map[string]error{
		"missing-base-tool@1.0": errors.New("network down"),
	}}
	err := plan.Execute(context.Background(), installer)

	require.Error(t, err)
	assert.Empty(t, installer.installed)
}

func TestPlanExecuteSkipsSatisfied(t *testing.T) {
	path := filepath.Join(t.TempDir(), "present")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	var plan Plan
	plan.AddStep(File{Path: path})
	plan.AddStep(Tool{Name: "missing-tool", Version: "latest"})

	installer := &fakeInstaller{}
	err := plan.Execute(context.Background(), installer)

	require.NoError(t, err)
	assert.Equal(t, []string{"missing-tool@latest"}, installer.installed)
}
