package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vsinha/scacmatch/pkg/domain/repositories"
)

// InputFiles names the two exports a run reads
type InputFiles struct {
	Inventory string
	Manifest  string
}

// Discover finds exactly one inventory report and one carrier manifest in dir.
// Files matching manifestGlob are never taken as the inventory report.
func Discover(dir, inventoryGlob, manifestGlob string) (InputFiles, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return InputFiles{}, fmt.Errorf("input folder %s: %w", dir, err)
	}
	if !info.IsDir() {
		return InputFiles{}, fmt.Errorf("input folder %s is not a directory", dir)
	}

	manifests, err := glob(dir, manifestGlob)
	if err != nil {
		return InputFiles{}, err
	}

	candidates, err := glob(dir, inventoryGlob)
	if err != nil {
		return InputFiles{}, err
	}
	isManifest := make(map[string]bool, len(manifests))
	for _, m := range manifests {
		isManifest[m] = true
	}
	var inventories []string
	for _, c := range candidates {
		if !isManifest[c] {
			inventories = append(inventories, c)
		}
	}

	inventory, err := single("inventory report", inventoryGlob, inventories)
	if err != nil {
		return InputFiles{}, err
	}
	manifest, err := single("carrier manifest", manifestGlob, manifests)
	if err != nil {
		return InputFiles{}, err
	}

	return InputFiles{Inventory: inventory, Manifest: manifest}, nil
}

func glob(dir, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	// Skip Excel lock files such as ~$inventory.xlsx.
	kept := matches[:0]
	for _, m := range matches {
		if !strings.HasPrefix(filepath.Base(m), "~$") {
			kept = append(kept, m)
		}
	}
	sort.Strings(kept)
	return kept, nil
}

func single(kind, pattern string, matches []string) (string, error) {
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: no %s matches %q", repositories.ErrInputNotFound, kind, pattern)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %s pattern %q matches %s",
			repositories.ErrAmbiguousInput, kind, pattern, strings.Join(matches, ", "))
	}
}
