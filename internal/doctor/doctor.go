// Package doctor verifies a provisioned stack: tool versions, the Docker
// engine, the Ollama API, the pulled model, and the Open WebUI container.
// Checks are read-only; doctor diagnoses and suggests, it never repairs.
package doctor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"golang.org/x/mod/semver"

	"github.com/felixgeelhaar/airstrip/internal/domain/step"
	"github.com/felixgeelhaar/airstrip/internal/ports"
	"github.com/felixgeelhaar/airstrip/internal/probe"
	"github.com/felixgeelhaar/airstrip/internal/stack"
)

// binaryCheck is a PATH presence gate with an optional minimum version.
type binaryCheck struct {
	name        string
	versionArgs []string
	minimum     string // semver with v prefix, empty means presence only
}

// binaryChecks in check order. Minimums track the oldest releases the
// default stack is known to work with.
var binaryChecks = []binaryCheck{
	{name: "brew", versionArgs: []string{"--version"}},
	{name: "colima", versionArgs: []string{"version"}, minimum: "v0.6.0"},
	{name: "docker", versionArgs: []string{"--version"}, minimum: "v24.0.0"},
	{name: "ollama", versionArgs: []string{"--version"}, minimum: "v0.3.0"},
}

var versionPattern = regexp.MustCompile(`\d+\.\d+(\.\d+)?`)

// Doctor runs the health checks for a configured stack.
type Doctor struct {
	cfg      *stack.Config
	query    ports.CommandRunner
	client   *http.Client
	lookPath func(string) (string, error)
}

// New creates a Doctor for cfg. query must be a live runner; every
// command doctor issues is read-only.
func New(cfg *stack.Config, query ports.CommandRunner) *Doctor {
	return &Doctor{
		cfg:   cfg,
		query: query,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		lookPath: exec.LookPath,
	}
}

// Run executes all checks and returns the report. Individual check
// failures are absorbed into the report, never returned as errors.
func (d *Doctor) Run(ctx context.Context) Report {
	checks := make([]Check, 0, len(binaryChecks)+5)

	for _, bc := range binaryChecks {
		checks = append(checks, d.checkBinary(ctx, bc))
	}
	checks = append(checks,
		d.checkDockerEngine(ctx),
		d.checkDockerContext(ctx),
		d.checkOllamaAPI(ctx),
		d.checkModel(ctx),
		d.checkWebUI(ctx),
	)

	return Report{
		Checks:    checks,
		Endpoints: d.cfg.Endpoints(),
	}
}

func (d *Doctor) checkBinary(ctx context.Context, bc binaryCheck) Check {
	if _, err := d.lookPath(bc.name); err != nil {
		return Check{
			Name:       bc.name,
			Status:     StatusFail,
			Detail:     "not on PATH",
			Suggestion: "Run airstrip up to install the missing tools.",
		}
	}

	result, err := d.query.Run(ctx, bc.name, bc.versionArgs...)
	if err != nil || !result.Success() {
		return Check{
			Name:       bc.name,
			Status:     StatusWarn,
			Detail:     "installed, version unknown",
			Suggestion: fmt.Sprintf("Inspect %s %s by hand.", bc.name, strings.Join(bc.versionArgs, " ")),
		}
	}

	version := versionPattern.FindString(result.Stdout)
	if version == "" {
		return Check{
			Name:       bc.name,
			Status:     StatusWarn,
			Detail:     "installed, version unknown",
			Suggestion: fmt.Sprintf("Inspect %s %s by hand.", bc.name, strings.Join(bc.versionArgs, " ")),
		}
	}

	if bc.minimum != "" && semver.Compare("v"+version, bc.minimum) < 0 {
		return Check{
			Name:       bc.name,
			Status:     StatusWarn,
			Detail:     fmt.Sprintf("%s below minimum %s", version, strings.TrimPrefix(bc.minimum, "v")),
			Suggestion: "Upgrade it: brew upgrade " + bc.name,
		}
	}

	return Check{Name: bc.name, Status: StatusOK, Detail: version}
}

func (d *Doctor) checkDockerEngine(ctx context.Context) Check {
	result, err := d.query.Run(ctx, "docker", "info")
	if err != nil || !result.Success() {
		return Check{
			Name:       "docker-engine",
			Status:     StatusFail,
			Detail:     "daemon not responding",
			Suggestion: "Check Colima status: colima status",
		}
	}
	return Check{Name: "docker-engine", Status: StatusOK, Detail: "daemon responding"}
}

func (d *Doctor) checkDockerContext(ctx context.Context) Check {
	result, err := d.query.Run(ctx, "docker", "context", "show")
	if err != nil || !result.Success() {
		return Check{
			Name:       "docker-context",
			Status:     StatusWarn,
			Detail:     "current context unknown",
			Suggestion: "Run docker context use colima.",
		}
	}
	current := strings.TrimSpace(result.Stdout)
	if current != "colima" {
		return Check{
			Name:       "docker-context",
			Status:     StatusWarn,
			Detail:     fmt.Sprintf("current context is %s, docker commands target a different engine", current),
			Suggestion: "Run docker context use colima.",
		}
	}
	return Check{Name: "docker-context", Status: StatusOK, Detail: "colima"}
}

func (d *Doctor) checkOllamaAPI(ctx context.Context) Check {
	endpoint := strings.TrimSuffix(d.cfg.Ollama.Endpoint, "/") + "/api/version"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Check{
			Name:       "ollama-api",
			Status:     StatusFail,
			Detail:     "invalid endpoint " + d.cfg.Ollama.Endpoint,
			Suggestion: "Fix ollama.endpoint in airstrip.yaml.",
		}
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return Check{
			Name:       "ollama-api",
			Status:     StatusFail,
			Detail:     "no response from " + d.cfg.Ollama.Endpoint,
			Suggestion: "Start the Ollama service: brew services start ollama",
		}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Check{
			Name:       "ollama-api",
			Status:     StatusFail,
			Detail:     fmt.Sprintf("unexpected status %d from %s", resp.StatusCode, d.cfg.Ollama.Endpoint),
			Suggestion: "Restart the Ollama service: brew services restart ollama",
		}
	}

	detail := "responding"
	var payload struct {
		Version string `json:"version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Version != "" {
		detail = "responding, version " + payload.Version
	}
	return Check{Name: "ollama-api", Status: StatusOK, Detail: detail}
}

func (d *Doctor) checkModel(ctx context.Context) Check {
	present, err := probe.InInventory(d.query, "model "+d.cfg.Model+" pulled",
		step.Command("ollama", "list"), d.cfg.Model).IsSatisfied(ctx)
	if err != nil || !present {
		return Check{
			Name:       "model",
			Status:     StatusWarn,
			Detail:     d.cfg.Model + " not pulled",
			Suggestion: "Pull it: ollama pull " + d.cfg.Model,
		}
	}
	return Check{Name: "model", Status: StatusOK, Detail: d.cfg.Model + " pulled"}
}

func (d *Doctor) checkWebUI(ctx context.Context) Check {
	running, err := probe.ContainerRunning(d.query, d.cfg.WebUI.Name).IsSatisfied(ctx)
	if err != nil || !running {
		return Check{
			Name:       "open-webui",
			Status:     StatusFail,
			Detail:     "container " + d.cfg.WebUI.Name + " not running",
			Suggestion: "Run airstrip up to recreate the container.",
		}
	}
	return Check{Name: "open-webui", Status: StatusOK, Detail: "container " + d.cfg.WebUI.Name + " running"}
}
