package builder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	qgis2kepler "github.com/flywave/go-qgis2kepler"
	"github.com/flywave/go-qgis2kepler/dataset"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options controls a single export.
type Options struct {
	OutputDir string
	// Format overrides the output format of the settings when set.
	Format qgis2kepler.OutputFormat
	// SkipFailedLayers drops layers whose dataset or config could not be
	// built instead of aborting the whole export.
	SkipFailedLayers bool
}

// Builder turns a project into a visualization document.
type Builder struct {
	settings qgis2kepler.Settings
	opts     Options
	logger   *zap.Logger
	now      func() time.Time
}

// New returns a Builder. A nil logger disables logging.
func New(settings qgis2kepler.Settings, opts Options, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Format == "" {
		opts.Format = settings.OutputFormat
	}
	return &Builder{settings: settings, opts: opts, logger: logger, now: time.Now}
}

// SetClock replaces the clock used for the creation timestamp.
func (b *Builder) SetClock(now func() time.Time) {
	b.now = now
}

// LayerError records a layer left out of an export.
type LayerError struct {
	Layer string
	Unit  string
	Err   error
}

func (e *LayerError) Error() string {
	return fmt.Sprintf("layer %q %s: %v", e.Layer, e.Unit, e.Err)
}

func (e *LayerError) Unwrap() error {
	return e.Err
}

// Result describes a finished export.
type Result struct {
	Config  *qgis2kepler.MapConfig
	Path    string
	Skipped []*LayerError
}

const (
	unitDataset = "dataset"
	unitConfig  = "config"
)

// layerResult holds the outputs of the two units of a layer. Each unit only
// writes its own fields.
type layerResult struct {
	dataset    *qgis2kepler.Dataset
	datasetErr *LayerError
	config     *qgis2kepler.Layer
	configErr  *LayerError
}

func (r *layerResult) err() *LayerError {
	if r.datasetErr != nil {
		return r.datasetErr
	}
	return r.configErr
}

func (b *Builder) validate(p *qgis2kepler.Project, requireOutput bool) error {
	if len(p.Layers) == 0 {
		return &qgis2kepler.InvalidInputError{Msg: "no layers selected", Hint: "select at least one layer to continue export"}
	}
	owners := make(map[string]string, len(p.Layers))
	for _, l := range p.Layers {
		id := qgis2kepler.LayerID(l.ID)
		if owner, ok := owners[id]; ok {
			return &qgis2kepler.InvalidInputError{
				Msg:  fmt.Sprintf("layers %q and %q share layer id %s", owner, l.Name, id),
				Hint: "give every layer a unique id",
			}
		}
		owners[id] = l.Name
	}
	if requireOutput {
		if b.opts.OutputDir == "" {
			return &qgis2kepler.InvalidInputError{Msg: "output directory is not set", Hint: "set a correct output directory"}
		}
		if fi, err := os.Stat(b.opts.OutputDir); err != nil || !fi.IsDir() {
			return &qgis2kepler.InvalidInputError{
				Msg:  fmt.Sprintf("output directory %q does not exist", b.opts.OutputDir),
				Hint: "set a correct output directory",
				Err:  err,
			}
		}
	}
	if strings.TrimSpace(p.Title) == "" {
		return &qgis2kepler.InvalidInputError{Msg: "title not filled", Hint: "the title is used in the file name of the output"}
	}
	return nil
}

// Build runs the dataset and layer config units of every project layer and
// assembles the document. Datasets are written as CSV files to stagingDir,
// or kept inline when stagingDir is empty.
func (b *Builder) Build(ctx context.Context, p *qgis2kepler.Project, stagingDir string) (*qgis2kepler.MapConfig, []*LayerError, error) {
	if err := b.validate(p, false); err != nil {
		return nil, nil, err
	}
	b.logger.Info("started config creation", zap.String("title", p.Title), zap.Int("layers", len(p.Layers)))

	results := make([]layerResult, len(p.Layers))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())

	for i := range p.Layers {
		i, layer := i, &p.Layers[i]
		eg.Go(func() error {
			return b.runUnit(unitDataset, layer, &results[i].datasetErr, func() error {
				color := qgis2kepler.DatasetColor(i)
				if layer.Color != nil {
					color = *layer.Color
				}
				ds, err := dataset.Extract(ctx, layer, dataset.Options{OutputDir: stagingDir, CRS: b.settings.CRS, Color: color})
				results[i].dataset = ds
				return err
			})
		})
		eg.Go(func() error {
			return b.runUnit(unitConfig, layer, &results[i].configErr, func() error {
				if ctx.Err() != nil {
					return qgis2kepler.ErrInterrupted
				}
				cfg, err := b.settings.Size.BuildLayerConfig(layer, qgis2kepler.LayerID(layer.ID), layer.Visible)
				if err == nil {
					results[i].config = &cfg
				}
				return err
			})
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	var (
		kept     []*qgis2kepler.VectorLayer
		layers   []qgis2kepler.Layer
		datasets []qgis2kepler.Dataset
		skipped  []*LayerError
	)
	for i := range results {
		r := &results[i]
		if lerr := r.err(); lerr != nil {
			skipped = append(skipped, lerr)
			continue
		}
		kept = append(kept, &p.Layers[i])
		layers = append(layers, *r.config)
		datasets = append(datasets, *r.dataset)
	}
	if len(kept) == 0 {
		return nil, skipped, &qgis2kepler.InvalidInputError{Msg: "no layer could be exported", Err: skipped[0]}
	}

	b.logger.Info("creating map config", zap.Int("layers", len(layers)), zap.Int("skipped", len(skipped)))
	doc := b.document(p, kept, layers, datasets)
	return &doc, skipped, nil
}

// runUnit executes one unit of work. Failures are recorded on the layer when
// failed layers are skipped, otherwise they abort the group.
func (b *Builder) runUnit(unit string, layer *qgis2kepler.VectorLayer, failure **LayerError, fn func() error) error {
	log := b.logger.With(zap.String("layer", layer.Name), zap.String("layer_id", layer.ID.String()), zap.String("unit", unit))
	log.Debug("task started")
	err := fn()
	if err == nil {
		log.Debug("task completed")
		return nil
	}
	if errors.Is(err, qgis2kepler.ErrInterrupted) {
		log.Warn("task terminated")
		return err
	}
	lerr := &LayerError{Layer: layer.Name, Unit: unit, Err: err}
	if !b.opts.SkipFailedLayers {
		log.Error("task failed", zap.Error(err))
		return lerr
	}
	log.Warn("skipping layer", zap.Error(err))
	*failure = lerr
	return nil
}

// OutputPath is the file an export of p is written to.
func (b *Builder) OutputPath(p *qgis2kepler.Project) string {
	return filepath.Join(b.opts.OutputDir, strings.ReplaceAll(p.Title, " ", "_")+"."+string(b.opts.Format))
}

// Export builds the document of p and writes it to the output directory.
func (b *Builder) Export(ctx context.Context, p *qgis2kepler.Project) (*Result, error) {
	if err := b.validate(p, true); err != nil {
		return nil, err
	}

	var staging string
	if b.opts.Format == qgis2kepler.FormatZip {
		tmp, err := os.MkdirTemp("", "qgis2kepler")
		if err != nil {
			return nil, err
		}
		defer func() {
			b.logger.Debug("cleaning up", zap.String("dir", tmp))
			os.RemoveAll(tmp)
		}()
		staging = tmp
	}

	doc, skipped, err := b.Build(ctx, p, staging)
	if err != nil {
		return nil, err
	}

	path := b.OutputPath(p)
	switch b.opts.Format {
	case qgis2kepler.FormatZip:
		err = writeZip(path, doc, staging)
	case qgis2kepler.FormatJSON:
		err = writeJSON(path, doc)
	default:
		err = fmt.Errorf("unsupported output format %q", b.opts.Format)
	}
	if err != nil {
		return nil, err
	}
	b.logger.Info("configuration created successfully", zap.String("path", path))
	return &Result{Config: doc, Path: path, Skipped: skipped}, nil
}
