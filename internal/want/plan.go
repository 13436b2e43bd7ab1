package want

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/dominikbraun/graph"

	"github.com/cnc-league/cnc/internal/logger"
)

// ErrPlanCycle reports that step dependencies form a cycle.
var ErrPlanCycle = errors.New("installation plan dependencies form a cycle")

// Step is one entry in a plan: a requirement plus the indices of steps it
// depends on.
type Step struct {
	Requirement Requirement
	DependsOn   []int
}

// Plan is an ordered set of steps with inter-step dependencies.
type Plan struct {
	steps []Step
}

// AddStep appends a step and returns its index for use as a dependency.
func (p *Plan) AddStep(r Requirement, dependsOn ...int) int {
	p.steps = append(p.steps, Step{Requirement: r, DependsOn: dependsOn})
	return len(p.steps) - 1
}

// Steps returns the plan's steps in insertion order.
func (p *Plan) Steps() []Step {
	return p.steps
}

// Unsatisfied returns the indices of steps whose requirement does not hold.
func (p *Plan) Unsatisfied() []int {
	var out []int
	for i, step := range p.steps {
		if !step.Requirement.Satisfied() {
			out = append(out, i)
		}
	}
	return out
}

// Order returns the step indices in dependency order: every step after all of
// its dependencies, insertion order as the tie-break. A dependency cycle is
// rejected with ErrPlanCycle.
func (p *Plan) Order() ([]int, error) {
	g := graph.New(graph.IntHash, graph.Directed(), graph.PreventCycles())
	for i := range p.steps {
		if err := g.AddVertex(i); err != nil {
			return nil, fmt.Errorf("build plan graph: %w", err)
		}
	}
	for i, step := range p.steps {
		for _, dep := range step.DependsOn {
			if dep < 0 || dep >= len(p.steps) {
				return nil, fmt.Errorf("step %d depends on unknown step %d", i, dep)
			}
			err := g.AddEdge(dep, i)
			if errors.Is(err, graph.ErrEdgeCreatesCycle) {
				return nil, fmt.Errorf("%w: step %d and step %d", ErrPlanCycle, dep, i)
			}
			if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
				return nil, fmt.Errorf("build plan graph: %w", err)
			}
		}
	}

	order, err := graph.StableTopologicalSort(g, func(a, b int) bool { return a < b })
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlanCycle, err)
	}
	return order, nil
}

type planJSON struct {
	Steps            []stepJSON `json:"steps"`
	TotalSteps       int        `json:"total_steps"`
	UnsatisfiedSteps int        `json:"unsatisfied_steps"`
}

type stepJSON struct {
	Requirement  Spec  `json:"requirement"`
	Dependencies []int `json:"dependencies"`
}

// JSON serializes the plan with per-step satisfaction state.
func (p *Plan) JSON() ([]byte, error) {
	out := planJSON{
		Steps:            make([]stepJSON, 0, len(p.steps)),
		TotalSteps:       len(p.steps),
		UnsatisfiedSteps: len(p.Unsatisfied()),
	}
	for _, step := range p.steps {
		deps := step.DependsOn
		if deps == nil {
			deps = []int{}
		}
		out.Steps = append(out.Steps, stepJSON{
			Requirement:  step.Requirement.Spec(),
			Dependencies: deps,
		})
	}
	return json.MarshalIndent(out, "", "  ")
}

// Display renders the unsatisfied steps in dependency order for the terminal.
func (p *Plan) Display() (string, error) {
	order, err := p.Order()
	if err != nil {
		return "", err
	}

	pending := make(map[int]struct{})
	for _, i := range p.Unsatisfied() {
		pending[i] = struct{}{}
	}
	if len(pending) == 0 {
		return "✓ All requirements are already satisfied!", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Installation plan (%d step(s)):\n\n", len(pending))
	num := 1
	for _, i := range order {
		if _, ok := pending[i]; !ok {
			continue
		}
		step := p.steps[i]
		fmt.Fprintf(&b, "  %d. %s\n", num, step.Requirement.Describe())
		if len(step.DependsOn) > 0 {
			deps := make([]string, len(step.DependsOn))
			for j, d := range step.DependsOn {
				deps[j] = p.steps[d].Requirement.Describe()
			}
			fmt.Fprintf(&b, "     (after: %s)\n", strings.Join(deps, ", "))
		}
		num++
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// Installer installs a tool given its mise tool@version spec.
type Installer interface {
	Install(ctx context.Context, toolSpec string) error
}

// MiseInstaller shells out to mise install.
type MiseInstaller struct{}

func (MiseInstaller) Install(ctx context.Context, toolSpec string) error {
	cmd := exec.CommandContext(ctx, "mise", "install", toolSpec)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("mise install %s: %w: %s", toolSpec, err, strings.TrimSpace(string(output)))
	}
	if len(output) > 0 {
		logger.Op.WithField("tool", toolSpec).Debug(strings.TrimSpace(string(output)))
	}
	return nil
}

// Execute runs the unsatisfied steps in dependency order. Tool steps install
// through the given installer; other requirement types cannot be executed and
// stop the plan, as does the first failed install.
func (p *Plan) Execute(ctx context.Context, installer Installer) error {
	order, err := p.Order()
	if err != nil {
		return err
	}

	for _, i := range order {
		step := p.steps[i]
		if step.Requirement.Satisfied() {
			continue
		}

		logger.User.Infof("Executing: %s", step.Requirement.Describe())
		tool, ok := step.Requirement.(Tool)
		if !ok {
			return fmt.Errorf("step %d (%s) cannot be executed automatically", i+1, step.Requirement.Describe())
		}
		if err := installer.Install(ctx, tool.MiseSpec()); err != nil {
			return fmt.Errorf("step %d failed: %w", i+1, err)
		}
		logger.User.Infof("✓ %s", step.Requirement.Describe())
	}
	return nil
}
