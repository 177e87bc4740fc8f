package fixture

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"
	"go.uber.org/atomic"
	"go.uber.org/multierr"

	"github.com/alusus/sppcore/domain"
	"github.com/alusus/sppcore/internal/ast"
)

// DefaultIncludePatterns selects fixture files when a Loader is given none.
var DefaultIncludePatterns = []string{"**/*.sppfix"}

// LoadedModule pairs a parsed fixture Module with the path it came from.
type LoadedModule struct {
	Path   string
	Module *ast.Node
}

// Loader discovers and parses fixture files from a filesystem. The FS
// abstraction lets tests feed an in-memory tree; the CLI hands it the real
// OS filesystem. Loading independent files runs concurrently — the parsed
// modules then feed the strictly single-threaded generation core.
type Loader struct {
	FS      afero.Fs
	Include []string // doublestar patterns relative to the load root
	Exclude []string

	// loaded counts successfully parsed files across loader goroutines.
	loaded atomic.Int64
}

// NewLoader returns a Loader over fs with the default include patterns.
func NewLoader(fs afero.Fs) *Loader {
	return &Loader{FS: fs, Include: DefaultIncludePatterns}
}

// Loaded reports how many fixture files this Loader has parsed successfully
// over its lifetime.
func (l *Loader) Loaded() int64 {
	return l.loaded.Load()
}

// Discover walks root and returns the relative paths of every fixture file
// matching the include patterns and none of the exclude patterns, sorted.
func (l *Loader) Discover(root string) ([]string, error) {
	include := l.Include
	if len(include) == 0 {
		include = DefaultIncludePatterns
	}
	var paths []string
	err := afero.Walk(l.FS, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)
		if !matchesAny(include, rel) || matchesAny(l.Exclude, rel) {
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, domain.NewFixtureError("fixture discovery failed under "+root, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// LoadDir discovers and parses every fixture file under root. Files parse
// concurrently; the returned modules are ordered by path regardless of
// completion order, and per-file parse failures are combined into one error
// while the remaining files still load.
func (l *Loader) LoadDir(root string) ([]*LoadedModule, error) {
	paths, err := l.Discover(root)
	if err != nil {
		return nil, err
	}

	type outcome struct {
		mod *LoadedModule
		err error
	}
	p := pool.NewWithResults[outcome]()
	for _, rel := range paths {
		rel := rel
		p.Go(func() outcome {
			mod, err := l.LoadFile(filepath.Join(root, filepath.FromSlash(rel)))
			if err != nil {
				return outcome{err: err}
			}
			mod.Path = rel
			return outcome{mod: mod}
		})
	}

	var modules []*LoadedModule
	var combined error
	for _, o := range p.Wait() {
		if o.err != nil {
			combined = multierr.Append(combined, o.err)
			continue
		}
		modules = append(modules, o.mod)
	}
	sort.Slice(modules, func(i, j int) bool { return modules[i].Path < modules[j].Path })
	return modules, combined
}

// LoadFile parses a single fixture file.
func (l *Loader) LoadFile(path string) (*LoadedModule, error) {
	src, err := afero.ReadFile(l.FS, path)
	if err != nil {
		return nil, domain.NewFixtureError("cannot read fixture "+path, err)
	}
	mod, err := Parse(path, src)
	if err != nil {
		return nil, err
	}
	l.loaded.Inc()
	return &LoadedModule{Path: path, Module: mod}, nil
}

func matchesAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
		if matched, _ := doublestar.Match(pattern, strings.TrimPrefix(rel, "./")); matched {
			return true
		}
	}
	return false
}
