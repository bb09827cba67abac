package processor

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// Directory names never descended into, regardless of depth.
var excludedDirNames = map[string]bool{
	"__pycache__":  true,
	"node_modules": true,
	"venv":         true,
}

// Discover walks cfg.Root and returns the candidate files that pass every
// filter, plus pre-tagged results for files that were enumerated but filtered
// out by size (or failed to stat) — those stay visible in the summary.
//
// Traversal is filepath.WalkDir's lexical order, so the sequence is stable
// for an unchanged filesystem and the walk can be rerun from scratch.
func Discover(cfg JobConfig) ([]string, []FileResult, error) {
	allowed := make(map[string]bool, len(cfg.Extensions))
	for _, ext := range cfg.Extensions {
		allowed[strings.ToLower(ext)] = true
	}

	// Never re-process our own output tree when it sits under the root.
	var outInsideRoot bool
	if cfg.OutDir != "" && cfg.OutDir != cfg.Root && isWithin(cfg.OutDir, cfg.Root) {
		outInsideRoot = true
	}

	var paths []string
	var tagged []FileResult

	err := filepath.WalkDir(cfg.Root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == cfg.Root {
				return walkErr
			}
			tagged = append(tagged, FileResult{Path: path, Outcome: OutcomeFailed, Message: walkErr.Error()})
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path == cfg.Root {
				return nil
			}
			name := d.Name()
			if strings.HasPrefix(name, ".") || excludedDirNames[name] {
				return fs.SkipDir
			}
			if outInsideRoot && isWithin(path, cfg.OutDir) {
				return fs.SkipDir
			}
			if cfg.MaxDepth >= 0 && pathDepth(cfg.Root, path) > cfg.MaxDepth {
				return fs.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}
		if !allowed[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			tagged = append(tagged, FileResult{Path: path, Outcome: OutcomeFailed, Message: err.Error()})
			return nil
		}
		size := info.Size()
		if cfg.MinSize > 0 && size < cfg.MinSize {
			tagged = append(tagged, FileResult{
				Path:    path,
				Outcome: OutcomeSkippedFiltered,
				Message: fmt.Sprintf("below min-size (%s < %s)", FormatSize(size), FormatSize(cfg.MinSize)),
			})
			return nil
		}
		if cfg.MaxSize > 0 && size > cfg.MaxSize {
			tagged = append(tagged, FileResult{
				Path:    path,
				Outcome: OutcomeSkippedFiltered,
				Message: fmt.Sprintf("above max-size (%s > %s)", FormatSize(size), FormatSize(cfg.MaxSize)),
			})
			return nil
		}

		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return paths, tagged, nil
}

// pathDepth counts directory levels below root; root itself is depth 0.
func pathDepth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return len(strings.Split(rel, string(filepath.Separator)))
}

func isWithin(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
