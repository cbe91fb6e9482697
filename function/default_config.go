package function

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigCandidates returns relative paths that will be checked (in order)
// when searching for a default function config.
func DefaultConfigCandidates() []string {
	return []string{
		"function.yaml",
		"function.yml",
		filepath.FromSlash("function/function.yaml"),
		filepath.FromSlash("function/function.yml"),
	}
}

// FindDefaultConfigFile searches the working directory, then the directory
// of the executable, for one of DefaultConfigCandidates.
func FindDefaultConfigFile() (string, error) {
	candidates := DefaultConfigCandidates()

	dirs := []string{"."}
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	}

	for _, dir := range dirs {
		for _, rel := range candidates {
			p := rel
			if dir != "." {
				p = filepath.Join(dir, rel)
			}
			if st, err := os.Stat(p); err == nil && !st.IsDir() {
				return p, nil
			}
		}
	}

	return "", fmt.Errorf("function config not found (expected %v)", candidates)
}

// WithDefaultConfigFile loads the default function config file when one
// exists and leaves Options untouched otherwise.
func WithDefaultConfigFile() Option {
	p, err := FindDefaultConfigFile()
	if err != nil {
		return nil
	}
	return WithConfigFile(p)
}
