// Package venv makes sure a project has a Python virtual environment.
package venv

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// DirName is the virtual environment directory inside a project
const DirName = "venv"

// Runner executes an external command in dir
type Runner interface {
	Run(dir string, name string, args ...string) error
}

// ExecRunner runs commands with os/exec, streaming their output
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (r ExecRunner) Run(dir string, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return cmd.Run()
}

// Manager creates and inspects project virtual environments
type Manager struct {
	Runner Runner
	// Python is the interpreter used to create the environment
	Python string
	// GOOS selects the interpreter layout; empty means runtime.GOOS
	GOOS string
	Info func(format string, args ...any)
}

// NewManager returns a Manager using the first python3/python on PATH
func NewManager(stdout, stderr io.Writer) *Manager {
	python := "python3"
	if _, err := exec.LookPath(python); err != nil {
		python = "python"
	}
	return &Manager{
		Runner: ExecRunner{Stdout: stdout, Stderr: stderr},
		Python: python,
	}
}

// Ensure creates <projectDir>/venv when missing, installs requirements.txt
// on first creation and returns the environment's interpreter path.
func (m *Manager) Ensure(projectDir string) (string, error) {
	projectDir, err := filepath.Abs(projectDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve project directory: %w", err)
	}
	venvDir := filepath.Join(projectDir, DirName)

	created := false
	if _, err := os.Stat(venvDir); os.IsNotExist(err) {
		m.info("Creating virtual environment in %s...", venvDir)
		if err := m.Runner.Run(projectDir, m.Python, "-m", "venv", DirName); err != nil {
			return "", fmt.Errorf("failed to create virtual environment: %w", err)
		}
		created = true
	} else if err != nil {
		return "", fmt.Errorf("failed to inspect %s: %w", venvDir, err)
	}

	python, err := m.Interpreter(venvDir)
	if err != nil {
		return "", err
	}

	if created {
		reqs := filepath.Join(projectDir, "requirements.txt")
		if _, err := os.Stat(reqs); err == nil {
			m.info("Installing dependencies from %s...", reqs)
			if err := m.Runner.Run(projectDir, python, "-m", "pip", "install", "-r", reqs); err != nil {
				return "", fmt.Errorf("failed to install requirements: %w", err)
			}
		}
	}
	return python, nil
}

// Interpreter locates the python executable inside venvDir
func (m *Manager) Interpreter(venvDir string) (string, error) {
	goos := m.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}

	var candidates []string
	if goos == "windows" {
		candidates = []string{filepath.Join(venvDir, "Scripts", "python.exe")}
	} else {
		candidates = []string{
			filepath.Join(venvDir, "bin", "python3"),
			filepath.Join(venvDir, "bin", "python"),
		}
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return "", fmt.Errorf("python executable not found in virtual environment: %s", venvDir)
}

func (m *Manager) info(format string, args ...any) {
	if m.Info != nil {
		m.Info(format, args...)
	}
}
