// Package codebase keeps every Noa source file under a root directory
// parsed and up to date, and serves the parsed files to editors over the
// Language Server Protocol.
package codebase

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/noa/config"
	"github.com/dhamidi/noa/diagnostic"
	"github.com/dhamidi/noa/internal/logging"
	"github.com/dhamidi/noa/source"
	"github.com/dhamidi/noa/syntax"
)

var log = logging.Get("codebase")

type Codebase struct {
	mu      sync.RWMutex
	fs      afero.Fs
	rootDir string
	cfg     *config.Config
	files   map[string]*File
}

// File is one parsed source. Diagnostics exclude the codes the
// configuration ignores.
type File struct {
	Path        string
	Source      *source.Source
	Tree        *syntax.Tree
	Diagnostics []diagnostic.Diagnostic
}

// HasErrors reports whether f has error diagnostics.
func (f *File) HasErrors() bool {
	return diagnostic.HasErrors(f.Diagnostics)
}

func New(fsys afero.Fs, rootDir string, cfg *config.Config) *Codebase {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Codebase{
		fs:      fsys,
		rootDir: rootDir,
		cfg:     cfg,
		files:   make(map[string]*File),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

func (c *Codebase) Config() *config.Config {
	return c.cfg
}

// Paths lists the source files under the root. Dot-directories and
// excluded names are skipped.
func (c *Codebase) Paths(ctx context.Context) ([]string, error) {
	var paths []string
	err := afero.Walk(c.fs, c.rootDir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			log.Warningf("walk %s: %s", path, err)
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		name := info.Name()
		if info.IsDir() {
			if path != c.rootDir && (strings.HasPrefix(name, ".") || c.cfg.Excluded(name)) {
				return filepath.SkipDir
			}
			return nil
		}
		if c.cfg.Matches(path) && !c.cfg.Excluded(name) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", c.rootDir, err)
	}
	return paths, nil
}

// ScanAll parses every source file under the root, at most Jobs at a
// time.
func (c *Codebase) ScanAll(ctx context.Context) error {
	paths, err := c.Paths(ctx)
	if err != nil {
		return err
	}
	return c.ScanFiles(ctx, paths)
}

// ScanFiles parses the given files concurrently.
func (c *Codebase) ScanFiles(ctx context.Context, paths []string) error {
	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(c.cfg.Jobs, 1))
	for _, path := range paths {
		g.Go(func() error {
			_, err := c.ScanFile(ctx, path)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Infof("scanned %d files in %s", len(paths), time.Since(start))
	return nil
}

// ScanFile reads path from the file system and parses it.
func (c *Codebase) ScanFile(ctx context.Context, path string) (*File, error) {
	src, err := source.Load(c.fs, path)
	if err != nil {
		return nil, err
	}
	return c.update(ctx, src)
}

// UpdateFile parses content as the new text of path.
func (c *Codebase) UpdateFile(ctx context.Context, path string, content []byte) (*File, error) {
	return c.update(ctx, source.New(path, string(content)))
}

func (c *Codebase) update(ctx context.Context, src *source.Source) (*File, error) {
	start := time.Now()
	tree, err := syntax.Parse(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", src.Name(), err)
	}
	f := &File{
		Path:        src.Name(),
		Source:      src,
		Tree:        tree,
		Diagnostics: diagnostic.Filter(tree.Diagnostics(), c.cfg.Ignore),
	}
	log.Debugf("parsed %s in %s (%d diagnostics)", f.Path, time.Since(start), len(f.Diagnostics))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[f.Path] = f
	return f, nil
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *File {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Files returns the parsed files ordered by path.
func (c *Codebase) Files() []*File {
	c.mu.RLock()
	files := make([]*File, 0, len(c.files))
	for _, f := range c.files {
		files = append(files, f)
	}
	c.mu.RUnlock()

	slices.SortFunc(files, func(a, b *File) int {
		return strings.Compare(a.Path, b.Path)
	})
	return files
}
