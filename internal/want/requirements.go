// Package want builds and executes installation plans for declared
// requirements. Tools are installed through mise; plans are ordered by their
// declared dependencies.
package want

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Requirement is something the environment must provide before the plan is
// complete.
type Requirement interface {
	// Satisfied reports whether the requirement already holds.
	Satisfied() bool
	// Describe is the human-readable one-line form.
	Describe() string
	// Spec is the serializable form for JSON output.
	Spec() Spec
}

// Spec is the JSON shape of a requirement.
type Spec struct {
	Type        string `json:"type"`
	ToolName    string `json:"tool_name,omitempty"`
	Version     string `json:"version,omitempty"`
	Command     string `json:"command,omitempty"`
	Description string `json:"description,omitempty"`
	Path        string `json:"path,omitempty"`
	Satisfied   bool   `json:"satisfied"`
}

// Tool is a requirement for a tool on PATH, installed via mise when missing.
type Tool struct {
	Name    string
	Version string
}

// ParseToolSpec splits "tool@version" into a Tool; a bare "tool" means the
// latest version.
func ParseToolSpec(spec string) Tool {
	if name, version, ok := strings.Cut(spec, "@"); ok {
		return Tool{Name: name, Version: version}
	}
	return Tool{Name: spec, Version: "latest"}
}

// MiseSpec is the tool@version argument handed to mise install.
func (t Tool) MiseSpec() string {
	return t.Name + "@" + t.Version
}

// Satisfied reports whether the tool is on PATH. A specific requested version
// is not verified against the installed one.
func (t Tool) Satisfied() bool {
	_, err := exec.LookPath(t.Name)
	return err == nil
}

func (t Tool) Describe() string {
	if t.Version == "latest" {
		return fmt.Sprintf("Install tool: %s", t.Name)
	}
	return fmt.Sprintf("Install tool: %s@%s", t.Name, t.Version)
}

func (t Tool) Spec() Spec {
	return Spec{
		Type:      "tool",
		ToolName:  t.Name,
		Version:   t.Version,
		Satisfied: t.Satisfied(),
	}
}

// Command is a requirement that runs a command. Commands are never
// pre-satisfied.
type Command struct {
	Command     string
	Description string
}

func (c Command) Satisfied() bool { return false }

func (c Command) Describe() string {
	return fmt.Sprintf("Run command: %s", c.Description)
}

func (c Command) Spec() Spec {
	return Spec{
		Type:        "command",
		Command:     c.Command,
		Description: c.Description,
		Satisfied:   false,
	}
}

// File is a requirement that a file exists.
type File struct {
	Path string
}

func (f File) Satisfied() bool {
	_, err := os.Stat(f.Path)
	return err == nil
}

func (f File) Describe() string {
	return fmt.Sprintf("Require file: %s", f.Path)
}

func (f File) Spec() Spec {
	return Spec{
		Type:      "file",
		Path:      f.Path,
		Satisfied: f.Satisfied(),
	}
}
