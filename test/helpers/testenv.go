// ABOUTME: TestEnv provides isolated test environments for acceptance tests
// ABOUTME: Creates temp directories and runs the CLI binary with PIPEKIT_HOME overrides
package helpers

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// TestEnv represents an isolated test environment
type TestEnv struct {
	TempDir    string // Root temp directory
	HomeDir    string // Fake ~/.pipekit
	ConfigFile string // Fake ~/.pipekit/config.json
	WorkDir    string // Working directory for config and record files
	Binary     string // Path to pipekit binary
}

// Result holds the outcome of one CLI invocation
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// NewTestEnv creates a new isolated test environment
func NewTestEnv(binary string) *TestEnv {
	tempDir := GinkgoT().TempDir()

	env := &TestEnv{
		TempDir:    tempDir,
		HomeDir:    filepath.Join(tempDir, ".pipekit"),
		ConfigFile: filepath.Join(tempDir, ".pipekit", "config.json"),
		WorkDir:    filepath.Join(tempDir, "work"),
		Binary:     binary,
	}

	Expect(os.MkdirAll(env.HomeDir, 0755)).To(Succeed())
	Expect(os.MkdirAll(env.WorkDir, 0755)).To(Succeed())

	return env
}

// Run executes the CLI with the given arguments
func (e *TestEnv) Run(args ...string) *Result {
	return e.RunWithInput("", args...)
}

// RunWithInput executes the CLI with stdin input
func (e *TestEnv) RunWithInput(input string, args ...string) *Result {
	cmd := exec.Command(e.Binary, args...)
	cmd.Dir = e.WorkDir
	cmd.Env = append(os.Environ(),
		"PIPEKIT_HOME="+e.HomeDir,
		"NO_COLOR=1",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}

	err := cmd.Run()

	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = 1
		}
	}

	return &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// WriteFile writes content to name under the working directory and
// returns the full path
func (e *TestEnv) WriteFile(name, content string) string {
	path := filepath.Join(e.WorkDir, name)
	Expect(os.MkdirAll(filepath.Dir(path), 0755)).To(Succeed())
	Expect(os.WriteFile(path, []byte(content), 0644)).To(Succeed())
	return path
}

// ReadFile returns the content of name under the working directory
func (e *TestEnv) ReadFile(name string) string {
	data, err := os.ReadFile(filepath.Join(e.WorkDir, name))
	Expect(err).NotTo(HaveOccurred())
	return string(data)
}

// WritePreferences writes the pipekit config file
func (e *TestEnv) WritePreferences(json string) {
	Expect(os.WriteFile(e.ConfigFile, []byte(json), 0644)).To(Succeed())
}

// EventsLog returns the path of the operations log
func (e *TestEnv) EventsLog() string {
	return filepath.Join(e.HomeDir, "events", "operations.log")
}

// SchemaPath returns the schema shipped in configs/
func SchemaPath() string {
	root, err := findProjectRoot()
	Expect(err).NotTo(HaveOccurred())
	return filepath.Join(root, "configs", "schema.yml")
}

// BuildBinary builds the pipekit binary and returns its path
func BuildBinary() string {
	binPath := filepath.Join(GinkgoT().TempDir(), "pipekit")

	// Find the project root by looking for go.mod
	projectRoot, err := findProjectRoot()
	Expect(err).NotTo(HaveOccurred())

	sourcePath := filepath.Join(projectRoot, "cmd", "pipekit")

	cmd := exec.Command("go", "build", "-o", binPath, sourcePath)
	Expect(cmd.Run()).To(Succeed())
	return binPath
}

// findProjectRoot walks up the directory tree to find go.mod
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find go.mod in any parent directory")
		}
		dir = parent
	}
}
