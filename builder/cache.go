package builder

import (
	"context"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"sync"
	"time"

	qgis2kepler "github.com/flywave/go-qgis2kepler"
	"go.uber.org/zap"
)

type export struct {
	format   qgis2kepler.OutputFormat
	project  string
	settings string
	sources  []string
	file     string
	tmpDir   string
}

func exportHash(format qgis2kepler.OutputFormat, project string, settings string) uint32 {
	f := fnv.New32()
	f.Write([]byte(format))
	f.Write([]byte(project))
	f.Write([]byte(settings))
	return f.Sum32()
}

func isNewer(file string, timestamp time.Time) bool {
	info, err := os.Stat(file)
	if err != nil {
		return true
	}
	return info.ModTime().After(timestamp)
}

func (e *export) isStale() (bool, error) {
	if e.file == "" {
		return true, nil
	}

	info, err := os.Stat(e.file)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return true, err
	}
	timestamp := info.ModTime()

	if isNewer(e.project, timestamp) {
		return true, nil
	}
	if e.settings != "" && isNewer(e.settings, timestamp) {
		return true, nil
	}
	for _, src := range e.sources {
		if isNewer(src, timestamp) {
			return true, nil
		}
	}
	return false, nil
}

// Cache re-exports projects only when one of their inputs changed since the
// last export.
type Cache struct {
	mu      sync.Mutex
	exports map[uint32]*export
	destDir string
	logger  *zap.Logger
}

func NewCache(logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		exports: make(map[uint32]*export),
		logger:  logger,
	}
}

// SetDestination sets the directory exports are written to. Without one
// every export gets its own temporary directory.
func (c *Cache) SetDestination(dest string) {
	c.destDir = dest
}

// ClearTill removes the temporary exports written before till. Exports in
// the destination directory are left alone.
func (c *Cache) ClearTill(till time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for hash, e := range c.exports {
		if e.tmpDir == "" {
			continue
		}
		fi, err := os.Stat(e.file)
		if err != nil || !fi.ModTime().Before(till) {
			continue
		}
		if err := os.RemoveAll(e.tmpDir); err != nil {
			c.logger.Warn("cleanup error", zap.Error(err))
		}
		delete(c.exports, hash)
	}
}

// ExportFile returns the output file of project, exporting it first when
// no export exists or the existing one is stale. settings may be empty to
// use the default settings.
func (c *Cache) ExportFile(ctx context.Context, format qgis2kepler.OutputFormat, project, settings string) (string, error) {
	e, err := c.export(ctx, format, project, settings)
	if err != nil {
		return "", err
	}
	return e.file, nil
}

func (c *Cache) export(ctx context.Context, format qgis2kepler.OutputFormat, project, settings string) (*export, error) {
	project, settings = absPath(project), absPath(settings)
	hash := exportHash(format, project, settings)
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.exports[hash]; ok {
		stale, err := e.isStale()
		if err != nil {
			return nil, err
		}
		if stale {
			if err := c.build(ctx, e); err != nil {
				return nil, err
			}
		} else {
			c.logger.Debug("export is up to date", zap.String("project", project), zap.String("file", e.file))
		}
		return e, nil
	}
	e := &export{format: format, project: project, settings: settings}
	if err := c.build(ctx, e); err != nil {
		return nil, err
	}
	c.exports[hash] = e
	return e, nil
}

type FilesMissingError struct {
	Files []string
}

func (e *FilesMissingError) Error() string {
	return fmt.Sprintf("missing files: %v", e.Files)
}

func (c *Cache) build(ctx context.Context, e *export) error {
	s, err := qgis2kepler.LoadSettings(e.settings)
	if err != nil {
		return err
	}
	p, err := qgis2kepler.ParseProjectFile(e.project)
	if err != nil {
		return err
	}

	var missing []string
	sources := []string{}
	for _, l := range p.Layers {
		if l.Datasource == nil {
			continue
		}
		for _, f := range l.Datasource.Files() {
			sources = append(sources, f)
			if _, err := os.Stat(f); err != nil {
				missing = append(missing, f)
			}
		}
	}
	if len(missing) > 0 {
		return &FilesMissingError{missing}
	}

	dest := c.destDir
	tmpDir := ""
	if dest == "" {
		tmp, err := os.MkdirTemp("", "qgis2kepler-export")
		if err != nil {
			return err
		}
		dest, tmpDir = tmp, tmp
	}

	b := New(s, Options{OutputDir: dest, Format: e.format}, c.logger)
	if e.file == "" && tmpDir == "" {
		// an output left by an earlier run is reused when still fresh
		prev := &export{project: e.project, settings: e.settings, sources: sources, file: b.OutputPath(p)}
		if stale, err := prev.isStale(); err == nil && !stale {
			c.logger.Info("export is up to date", zap.String("project", e.project), zap.String("file", prev.file))
			e.sources, e.file = sources, prev.file
			return nil
		}
	}
	res, err := b.Export(ctx, p)
	if err != nil {
		if tmpDir != "" {
			os.RemoveAll(tmpDir)
		}
		return err
	}
	if e.tmpDir != "" && e.tmpDir != tmpDir {
		os.RemoveAll(e.tmpDir)
	}

	c.logger.Info("rebuilt export",
		zap.String("project", e.project),
		zap.String("file", res.Path),
		zap.Strings("sources", sources))
	e.sources = sources
	e.file = res.Path
	e.tmpDir = tmpDir
	return nil
}

// absPath keeps cache keys stable for relative and absolute spellings of
// the same file.
func absPath(path string) string {
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
