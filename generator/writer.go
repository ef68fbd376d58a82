package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/erraggy/sdkgen/internal/fileutil"
	"github.com/erraggy/sdkgen/internal/issues"
	"github.com/erraggy/sdkgen/internal/pathutil"
	"github.com/erraggy/sdkgen/parser"
	"github.com/erraggy/sdkgen/patcher"
)

// WriteFiles writes every successful language to disk. For each language,
// stale files in the owned directories are removed first, then all files are
// written and finally the manifest patches are applied. A patch whose
// target file is missing becomes a warning; any other patch failure stops
// the write.
func (r *GenerateResult) WriteFiles(ctx context.Context, p patcher.Patcher) error {
	logger := r.logger
	if logger == nil {
		logger = parser.NopLogger{}
	}

	for i := range r.Outputs {
		out := &r.Outputs[i]
		if out.Err != nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := out.validatePaths(); err != nil {
			return err
		}

		for _, owned := range out.Owned {
			removed, err := fileutil.RemoveByExt(out.join(owned.Dir), owned.Ext)
			if err != nil {
				return fmt.Errorf("generator: %s: %w", out.Name, err)
			}
			logger.Debug("removed stale files", "language", out.Language, "dir", owned.Dir, "count", len(removed))
		}

		for _, f := range out.Files {
			target, err := pathutil.SanitizeOutputPath(out.join(f.Path))
			if err != nil {
				return fmt.Errorf("generator: %s: %w", out.Name, err)
			}
			if err := fileutil.WriteFile(target, f.Content); err != nil {
				return fmt.Errorf("generator: %s: %w", out.Name, err)
			}
		}
		logger.Info("wrote language", "language", out.Language, "root", out.Root, "files", len(out.Files))

		if p == nil {
			continue
		}
		for _, patch := range out.Patches {
			patch.Path = out.join(patch.Path)
			err := p.Patch(patch)
			switch {
			case err == nil:
				logger.Debug("patched manifest", "language", out.Language, "path", patch.Path)
			case errors.Is(err, patcher.ErrFileNotFound):
				logger.Warn("manifest not found, not patched", "language", out.Language, "path", patch.Path)
				r.addIssue(GenerateIssue{
					Path:     patch.Path,
					Language: out.Language,
					Message:  "manifest not found, version not patched",
					Severity: SeverityWarning,
				})
			default:
				return fmt.Errorf("generator: %s: %w", out.Name, err)
			}
		}
	}
	return nil
}

// DriftKind classifies a difference between generated and on-disk output.
type DriftKind string

const (
	// DriftChanged marks a file whose content differs.
	DriftChanged DriftKind = "changed"
	// DriftMissing marks a generated file absent from disk.
	DriftMissing DriftKind = "missing"
	// DriftStale marks a file in an owned directory that would be removed.
	DriftStale DriftKind = "stale"
)

// Drift is one out-of-date file.
type Drift struct {
	Language string    `json:"language"`
	Path     string    `json:"path"`
	Kind     DriftKind `json:"kind"`
}

// Check compares the generated files with what is on disk without writing
// anything. Patches are not checked since they edit files the generator does
// not own.
func (r *GenerateResult) Check() ([]Drift, error) {
	var drift []Drift
	for i := range r.Outputs {
		out := &r.Outputs[i]
		if out.Err != nil {
			continue
		}
		if err := out.validatePaths(); err != nil {
			return nil, err
		}

		generated := make(map[string]bool, len(out.Files))
		for _, f := range out.Files {
			generated[f.Path] = true
			existing, err := os.ReadFile(out.join(f.Path))
			switch {
			case errors.Is(err, fs.ErrNotExist):
				drift = append(drift, Drift{Language: out.Language, Path: f.Path, Kind: DriftMissing})
			case err != nil:
				return nil, fmt.Errorf("generator: %s: %w", out.Name, err)
			case !bytes.Equal(existing, f.Content):
				drift = append(drift, Drift{Language: out.Language, Path: f.Path, Kind: DriftChanged})
			}
		}

		for _, owned := range out.Owned {
			names, err := fileutil.ListByExt(out.join(owned.Dir), owned.Ext)
			if err != nil {
				return nil, fmt.Errorf("generator: %s: %w", out.Name, err)
			}
			for _, name := range names {
				rel := path.Join(owned.Dir, name)
				if !generated[rel] {
					drift = append(drift, Drift{Language: out.Language, Path: rel, Kind: DriftStale})
				}
			}
		}
	}
	return drift, nil
}

// join resolves a slash path against the language folder.
func (o *LanguageOutput) join(rel string) string {
	return filepath.Join(o.Root, filepath.FromSlash(rel))
}

// validatePaths rejects paths that would escape the language folder.
func (o *LanguageOutput) validatePaths() error {
	check := func(rel string) error {
		if !filepath.IsLocal(filepath.FromSlash(rel)) {
			return fmt.Errorf("generator: %s: invalid path %q: must stay inside %s", o.Name, rel, o.Root)
		}
		return nil
	}
	for _, f := range o.Files {
		if err := check(f.Path); err != nil {
			return err
		}
	}
	for _, d := range o.Owned {
		if err := check(d.Dir); err != nil {
			return err
		}
	}
	for _, p := range o.Patches {
		if err := check(p.Path); err != nil {
			return err
		}
	}
	return nil
}

// Summary returns the issues at or above min. It is a convenience for
// callers that print results.
func (r *GenerateResult) Summary(min Severity) []GenerateIssue {
	return issues.Filter(r.Issues, min)
}
