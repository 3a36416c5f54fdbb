// Package config provides the configuration loader for lockstep.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"go.trai.ch/lockstep/internal/core/domain"
	"go.trai.ch/lockstep/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

const supportedWorkfileVersion = "1"

// Loader implements ports.ConfigLoader using a YAML workspace file and the
// package.json manifest of every project.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load finds lockstep.yaml in cwd or one of its parents and reads the workspace.
func (l *Loader) Load(cwd string) (*domain.Configuration, error) {
	configPath, err := findWorkfile(cwd)
	if err != nil {
		return nil, err
	}

	var workfile Workfile
	if err := readAndUnmarshalYAML(configPath, &workfile); err != nil {
		return nil, err
	}
	if workfile.Version != "" && workfile.Version != supportedWorkfileVersion {
		return nil, domain.Raise(domain.ErrConfigParseFailed,
			"path", configPath,
			"reason", "unsupported workspace file version",
			"version", workfile.Version,
		)
	}

	backend := domain.BackendPNPM
	if workfile.PackageManager != "" {
		backend, err = domain.ParseBackend(workfile.PackageManager)
		if err != nil {
			return nil, zerr.With(err, "path", configPath)
		}
	}

	root := filepath.Dir(configPath)
	folders, err := resolveProjectPaths(root, workfile.Projects)
	if err != nil {
		return nil, err
	}

	projects, err := l.readManifests(root, folders)
	if err != nil {
		return nil, err
	}

	return domain.NewConfiguration(domain.ConfigurationSpec{
		Root:                     root,
		Backend:                  backend,
		LockfilePath:             workfile.Lockfile,
		EnsureConsistentVersions: workfile.EnsureConsistentVersions,
		Projects:                 projects,
	}), nil
}

func findWorkfile(cwd string) (string, error) {
	currentDir, err := filepath.Abs(cwd)
	if err != nil {
		return "", domain.Raise(domain.ErrConfigNotFound, "cwd", cwd, "reason", err.Error())
	}
	for {
		workfilePath := filepath.Join(currentDir, domain.WorkFileName)
		if _, err := os.Stat(workfilePath); err == nil {
			return workfilePath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", domain.Raise(domain.ErrConfigNotFound, "cwd", cwd)
}

// resolveProjectPaths expands the project globs into a sorted, deduplicated list of
// directories.
func resolveProjectPaths(root string, patterns []string) ([]string, error) {
	seen := make(map[string]struct{})

	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(root, pattern))
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "glob pattern failed"), "pattern", pattern)
		}
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil || !info.IsDir() {
				continue
			}
			seen[match] = struct{}{}
		}
	}

	return slices.Sorted(maps.Keys(seen)), nil
}

type manifestResult struct {
	project domain.Project
	missing bool
}

// readManifests reads the package.json of every folder in parallel. Results and
// warnings keep the folder order.
func (l *Loader) readManifests(root string, folders []string) ([]domain.Project, error) {
	results := make([]manifestResult, len(folders))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, folder := range folders {
		g.Go(func() error {
			res, err := readManifest(root, folder)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	projects := make([]domain.Project, 0, len(results))
	for i, res := range results {
		if res.missing {
			rel, _ := filepath.Rel(root, folders[i])
			l.Logger.Warn(fmt.Sprintf("%s missing in %s, skipping", domain.ManifestFileName, filepath.ToSlash(rel)))
			continue
		}
		projects = append(projects, res.project)
	}
	return projects, nil
}

func readManifest(root, folder string) (manifestResult, error) {
	path := filepath.Join(folder, domain.ManifestFileName)

	// #nosec G304 -- path is built from the workspace globs
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return manifestResult{missing: true}, nil
		}
		return manifestResult{}, domain.Raise(domain.ErrConfigReadFailed, "path", path, "reason", err.Error())
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return manifestResult{}, domain.Raise(domain.ErrManifestParseFailed, "path", path, "reason", err.Error())
	}

	rel, err := filepath.Rel(root, folder)
	if err != nil {
		rel = folder
	}

	return manifestResult{project: domain.Project{
		Name:          m.Name,
		Version:       m.Version,
		Folder:        filepath.ToSlash(rel),
		Dependencies:  mergeDependencies(m),
		ShouldPublish: !m.Private,
	}}, nil
}

// mergeDependencies flattens the dependency sections. Runtime dependencies take
// precedence over optional ones, which take precedence over development ones.
func mergeDependencies(m Manifest) map[string]string {
	deps := make(map[string]string, len(m.Dependencies)+len(m.DevDependencies)+len(m.OptionalDependencies))
	maps.Copy(deps, m.DevDependencies)
	maps.Copy(deps, m.OptionalDependencies)
	maps.Copy(deps, m.Dependencies)
	return deps
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is validated by caller
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return domain.Raise(domain.ErrConfigReadFailed, "path", configPath, "reason", err.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return domain.Raise(domain.ErrConfigParseFailed, "path", configPath, "reason", parseErr.Error())
	}

	return nil
}
