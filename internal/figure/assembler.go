// Package figure turns a resolved figure configuration and its plot
// descriptors into a rendered image on disk.
package figure

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"

	"github.com/vk/eva/internal/config"
	"github.com/vk/eva/internal/data"
	"github.com/vk/eva/internal/plotkit"
	"github.com/vk/eva/internal/registry"
	"github.com/vk/eva/internal/schema"
)

//go:embed defaults/figure.yaml
var defaultSchema []byte

// structuralKeys never reach the renderer as save arguments; they describe
// the figure itself or where its file goes.
var structuralKeys = []string{
	"layout",
	"figure file type",
	"output path",
	"output name",
	"figure size",
	"title",
	"schema",
}

// Assembler builds figures: it resolves layer classes through the registry
// and writes rendered files to fs.
type Assembler struct {
	registry *registry.Registry
	fs       billy.Filesystem
	logger   *slog.Logger
}

// New creates an Assembler over the given registry and output filesystem.
func New(r *registry.Registry, fs billy.Filesystem, logger *slog.Logger) *Assembler {
	return &Assembler{registry: r, fs: fs, logger: logger}
}

// ResolveSchema merges the figure overrides onto their default schema. An
// explicit "schema" key names a schema file on disk; otherwise the built-in
// figure schema applies. The "schema" key itself never survives the merge.
func ResolveSchema(overrides *config.Config) (*config.Config, error) {
	path := overrides.GetString("schema", "")
	overrides = overrides.Without("schema")
	if path != "" {
		return schema.MergeFile(path, overrides)
	}
	return schema.MergeBytes(defaultSchema, overrides)
}

// Assemble renders one figure from its merged configuration and plot
// descriptors, saves it, and returns the path written.
func (a *Assembler) Assemble(ctx context.Context, figureConf *config.Config, plotsConf []any, collections *data.Collections) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	plots := make([]*plotkit.Plot, 0, len(plotsConf))
	for i, raw := range plotsConf {
		pc, ok := raw.(*config.Config)
		if !ok {
			return "", &config.StructureError{Key: "plots", Msg: fmt.Sprintf("entry %d is not a mapping", i)}
		}
		p, err := a.buildPlot(pc, collections)
		if err != nil {
			return "", fmt.Errorf("plot %d: %w", i, err)
		}
		plots = append(plots, p)
	}

	rows, cols, err := layoutOf(figureConf)
	if err != nil {
		return "", err
	}
	width, height, err := sizeOf(figureConf)
	if err != nil {
		return "", err
	}

	fig, err := plotkit.NewFigure(rows, cols, width, height)
	if err != nil {
		return "", err
	}
	defer fig.Close()

	fig.SetPlots(plots)
	if err := fig.BuildLayout(); err != nil {
		return "", err
	}
	if title := figureConf.GetString("title", ""); title != "" {
		fig.AddTitle(title)
	}

	fileType := figureConf.GetString("figure file type", "png")
	outPath := filepath.Join(
		figureConf.GetString("output path", "./"),
		figureConf.GetString("output name", "figure")+"."+fileType,
	)
	if !filepath.IsAbs(outPath) {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolving output path: %w", err)
		}
		outPath = filepath.Join(wd, outPath)
	}

	opts, err := plotkit.ParseSaveOptions(saveArgs(figureConf, fileType))
	if err != nil {
		return "", err
	}
	if err := fig.Save(a.fs, outPath, opts); err != nil {
		return "", err
	}
	return outPath, nil
}

// buildPlot constructs one subplot: its layers first, then the mapping
// context, then every remaining key applied as a styling option in
// configuration order.
func (a *Assembler) buildPlot(pc *config.Config, collections *data.Collections) (*plotkit.Plot, error) {
	layerList, ok := pc.GetList("layers")
	if !ok {
		return nil, &config.StructureError{Key: "layers", Msg: "plot must provide layers"}
	}

	layers := make([]plotkit.Layer, 0, len(layerList))
	for i, raw := range layerList {
		lc, ok := raw.(*config.Config)
		if !ok {
			return nil, &config.StructureError{Key: "layers", Msg: fmt.Sprintf("entry %d is not a mapping", i)}
		}
		className := lc.GetString("type", "")
		if className == "" {
			return nil, &config.StructureError{Key: "layers", Msg: fmt.Sprintf("entry %d has no type", i)}
		}
		layer, err := a.registry.NewLayer(className, lc, a.logger, collections)
		if err != nil {
			return nil, err
		}
		layers = append(layers, layer)
	}

	var projection, domain string
	if mapping, ok := pc.GetSection("mapping"); ok {
		projection = mapping.GetString("projection", "plcarr")
		domain = mapping.GetString("domain", "global")
	}

	p := plotkit.NewPlot(layers, projection, domain)
	for _, key := range pc.Keys() {
		if key == "layers" || key == "mapping" {
			continue
		}
		v, _ := pc.Get(key)
		if err := p.ApplyOption(key, v); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// saveArgs reduces the merged figure configuration to the keys the renderer
// understands: everything structural is stripped, and the file type comes
// back as the render format.
func saveArgs(figureConf *config.Config, fileType string) *config.Config {
	return figureConf.Without(structuralKeys...).With("format", fileType)
}

func layoutOf(figureConf *config.Config) (rows, cols int, err error) {
	raw, ok := figureConf.GetList("layout")
	if !ok || len(raw) != 2 {
		return 0, 0, &config.StructureError{Key: "layout", Msg: "must be a [rows, columns] pair"}
	}
	rows, rok := intValue(raw[0])
	cols, cok := intValue(raw[1])
	if !rok || !cok {
		return 0, 0, &config.StructureError{Key: "layout", Msg: "must be a [rows, columns] pair"}
	}
	return rows, cols, nil
}

func sizeOf(figureConf *config.Config) (width, height float64, err error) {
	raw, ok := figureConf.GetList("figure size")
	if !ok || len(raw) != 2 {
		return 0, 0, &config.StructureError{Key: "figure size", Msg: "must be a [width, height] pair"}
	}
	width, wok := floatValue(raw[0])
	height, hok := floatValue(raw[1])
	if !wok || !hok {
		return 0, 0, &config.StructureError{Key: "figure size", Msg: "must be a [width, height] pair"}
	}
	return width, height, nil
}

func intValue(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	}
	return 0, false
}

func floatValue(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	}
	return 0, false
}
