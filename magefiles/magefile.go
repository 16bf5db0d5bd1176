//go:build mage

// Package main contains Mage build targets for bibgen developer tooling.
package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"

	"github.com/pdiddy/bibgen/internal/config"
	"github.com/pdiddy/bibgen/pkg/types"
)

const (
	binDir     = "bin"
	binName    = "bibgen"
	cmdPkg     = "./cmd/bibgen"
	configFile = "bibgen.yaml"
)

// Init creates the secrets directory and a sample bibgen.yaml.
func Init() error {
	if err := os.MkdirAll(types.DefaultSecretsDir, 0o700); err != nil {
		return fmt.Errorf("creating %s: %w", types.DefaultSecretsDir, err)
	}
	fmt.Println("  ", types.DefaultSecretsDir)

	if err := config.WriteSample(configFile); err != nil {
		if !errors.Is(err, fs.ErrExist) {
			return err
		}
		fmt.Printf("   %s exists, left unchanged\n", configFile)
	} else {
		fmt.Println("  ", configFile)
	}
	fmt.Println("Put TOGETHER_API_KEY and SERPER_API_KEY files in", types.DefaultSecretsDir)
	return nil
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	cmd := exec.Command("go", "build", "-o", out, cmdPkg)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Generate builds the binary and prints a bibliography for $TOPIC.
// $STYLE and $FORMAT are passed through when set.
func Generate() error {
	topic := os.Getenv("TOPIC")
	if strings.TrimSpace(topic) == "" {
		return fmt.Errorf("set TOPIC, e.g. TOPIC=\"coral bleaching\" mage generate")
	}
	mg.Deps(Build)
	args := []string{"generate", "--topic", topic}
	if style := os.Getenv("STYLE"); style != "" {
		args = append(args, "--style", style)
	}
	if format := os.Getenv("FORMAT"); format != "" {
		args = append(args, "--format", format)
	}
	cmd := exec.Command(filepath.Join(binDir, binName), args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Stats prints project metrics: Go production/test LOC and documentation word count.
func Stats() error {
	prodLines, testLines, err := countGoLines(".")
	if err != nil {
		return err
	}
	docWords, err := countDocWords(".")
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Words (documentation):           %d\n", docWords)
	return nil
}

// skipDir reports whether a directory is outside the project sources.
func skipDir(path string) bool {
	base := filepath.Base(path)
	return path != "." && (strings.HasPrefix(base, ".") || strings.HasPrefix(base, "_") || base == binDir)
}

// countGoLines counts non-blank lines in production and test Go files.
func countGoLines(root string) (prod, test int, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDir(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		n := nonBlankLines(data)
		if strings.HasSuffix(path, "_test.go") {
			test += n
		} else {
			prod += n
		}
		return nil
	})
	return prod, test, err
}

// countDocWords counts words in Markdown and YAML files.
func countDocWords(root string) (int, error) {
	total := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDir(path) {
				return filepath.SkipDir
			}
			return nil
		}
		switch filepath.Ext(path) {
		case ".md", ".yaml", ".yml":
		default:
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		total += len(bytes.Fields(data))
		return nil
	})
	return total, err
}

func nonBlankLines(data []byte) int {
	n := 0
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			n++
		}
	}
	return n
}
