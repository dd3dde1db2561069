package graph

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/automl/util"
	"github.com/kbukum/automl/validation"
)

// DefinitionLoader loads graph definitions by name.
type DefinitionLoader interface {
	Load(name string) (Definition, error)
}

// FileDefinitionLoader loads definitions from YAML files on disk.
type FileDefinitionLoader struct {
	dirs []string
}

// NewFileDefinitionLoader creates a loader that searches the given
// directories for definition YAML files. Repeated directories are searched
// once.
func NewFileDefinitionLoader(dirs ...string) *FileDefinitionLoader {
	return &FileDefinitionLoader{dirs: util.Unique(dirs)}
}

// Load searches for a definition YAML file by name across configured
// directories. It tries {name}.yaml and {name}.yml in each directory and its
// subdirectories. A matching file that fails to parse or validate fails the
// load with that error; the search only continues past absent files.
func (l *FileDefinitionLoader) Load(name string) (Definition, error) {
	for _, dir := range l.dirs {
		for _, ext := range []string{".yaml", ".yml"} {
			path := filepath.Join(dir, name+ext)
			d, err := loadDefinitionFile(path)
			if err == nil {
				return d, nil
			}
			if !os.IsNotExist(err) {
				return Definition{}, err
			}
		}
		if path, ok := findInSubdirs(dir, name); ok {
			return loadDefinitionFile(path)
		}
	}
	return Definition{}, fmt.Errorf("graph: definition %q not found in %v", name, l.dirs)
}

// findInSubdirs walks dir looking for {name}.yaml or {name}.yml at any
// depth, returning the first match in walk order.
func findInSubdirs(dir, name string) (string, bool) {
	var match string
	_ = filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return nil
		}
		if base := entry.Name(); base == name+".yaml" || base == name+".yml" {
			match = path
			return fs.SkipAll
		}
		return nil
	})
	return match, match != ""
}

func loadDefinitionFile(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, err
	}
	return ParseDefinition(data, path)
}

// ParseDefinition decodes and validates a YAML definition. source names the
// origin for error messages.
func ParseDefinition(data []byte, source string) (Definition, error) {
	var d Definition
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Definition{}, fmt.Errorf("graph: parsing %s: %w", source, err)
	}
	if err := validation.Validate(&d); err != nil {
		return Definition{}, fmt.Errorf("graph: invalid definition in %s: %w", source, err)
	}
	if d.Name == "" {
		base := filepath.Base(source)
		d.Name = base[:len(base)-len(filepath.Ext(base))]
	}
	return d, nil
}

// LoadDefinition loads a definition from explicit file paths, trying each
// until one exists. A path that exists but fails to parse or validate fails
// the load with that error.
func LoadDefinition(name string, paths ...string) (Definition, error) {
	for _, path := range paths {
		d, err := loadDefinitionFile(path)
		if err == nil {
			return d, nil
		}
		if !os.IsNotExist(err) {
			return Definition{}, err
		}
	}
	return Definition{}, fmt.Errorf("graph: definition %q not found in provided paths", name)
}
