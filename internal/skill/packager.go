// Package skill validates and packages skill folders (documentation
// bundles) into a dist directory, dropping development artifacts.
package skill

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// exactExcludes are path components always dropped from a package.
var exactExcludes = map[string]struct{}{
	".env":              {},
	".env.local":        {},
	".env.development":  {},
	".env.production":   {},
	".env.test":         {},
	".git":              {},
	".gitignore":        {},
	".gitattributes":    {},
	"__pycache__":       {},
	".Python":           {},
	"venv":              {},
	"env":               {},
	".venv":             {},
	"node_modules":      {},
	"package-lock.json": {},
	"yarn.lock":         {},
	".vscode":           {},
	".idea":             {},
	".DS_Store":         {},
	"dist":              {},
	"build":             {},
	"logs":              {},
	".tmp":              {},
	"tmp":               {},
}

// globExcludes are glob patterns matched against each path component.
var globExcludes = []string{
	"*.pyc", "*.pyo", "*.pyd",
	"*.swp", "*.swo", "*~",
	"*.egg-info",
	"*.log",
	"*.tmp", "*.bak", "*.cache",
}

// Frontmatter is the required SKILL.md YAML header.
type Frontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Result summarizes a packaging run.
type Result struct {
	Dest     string
	Copied   int
	Excluded int
}

// Validate checks the skill folder: SKILL.md must exist and carry YAML
// frontmatter with name and description.
func Validate(dir string) (*Frontmatter, error) {
	content, err := os.ReadFile(filepath.Join(dir, "SKILL.md"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("SKILL.md not found in %s", dir)
		}
		return nil, fmt.Errorf("read SKILL.md: %w", err)
	}

	text := string(content)
	if !strings.HasPrefix(text, "---\n") {
		return nil, fmt.Errorf("SKILL.md has no YAML frontmatter")
	}
	end := strings.Index(text[4:], "\n---")
	if end < 0 {
		return nil, fmt.Errorf("SKILL.md frontmatter is not terminated")
	}

	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(text[4:4+end]), &fm); err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	if fm.Name == "" {
		return nil, fmt.Errorf("frontmatter is missing 'name'")
	}
	if fm.Description == "" {
		return nil, fmt.Errorf("frontmatter is missing 'description'")
	}
	return &fm, nil
}

// Excluded reports whether a path (relative to the skill root) is dropped
// from packaging.
func Excluded(relPath string) bool {
	for _, part := range strings.Split(filepath.ToSlash(relPath), "/") {
		if _, ok := exactExcludes[part]; ok {
			return true
		}
		for _, pattern := range globExcludes {
			if ok, _ := filepath.Match(pattern, part); ok {
				return true
			}
		}
	}
	return false
}

// Package validates srcDir and copies it under distDir/<folder-name>,
// skipping excluded files. Any existing output for the skill is replaced.
func Package(srcDir, distDir string) (*Result, error) {
	src, err := filepath.Abs(srcDir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", srcDir, err)
	}
	info, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("skill folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", srcDir)
	}

	if _, err := Validate(src); err != nil {
		return nil, fmt.Errorf("validate skill: %w", err)
	}

	dest := filepath.Join(distDir, filepath.Base(src))
	if err := os.RemoveAll(dest); err != nil {
		return nil, fmt.Errorf("clean previous output: %w", err)
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}

	res := &Result{Dest: dest}
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if Excluded(rel) {
			res.Excluded++
			return nil
		}

		target := filepath.Join(dest, rel)
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := copyFile(path, target); err != nil {
			return err
		}
		res.Copied++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("copy files: %w", err)
	}
	return res, nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
