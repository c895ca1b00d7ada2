package plotkit

import (
	"github.com/vk/eva/internal/config"
)

// SaveOptions carries the save-time options that pass through from the
// merged figure configuration.
type SaveOptions struct {
	Format      string
	DPI         int
	Transparent bool
}

// ParseSaveOptions interprets the passthrough save keys of a figure
// configuration. Keys the renderer does not understand fail with an
// UnsupportedOptionError rather than being dropped.
func ParseSaveOptions(cfg *config.Config) (SaveOptions, error) {
	opts := SaveOptions{Format: "png", DPI: 96}
	for _, key := range cfg.Keys() {
		switch key {
		case "format":
			opts.Format = cfg.GetString("format", opts.Format)
		case "dpi":
			opts.DPI = cfg.GetInt("dpi", opts.DPI)
		case "transparent":
			opts.Transparent = cfg.GetBool("transparent", false)
		default:
			return SaveOptions{}, &UnsupportedOptionError{Option: key}
		}
	}
	return opts, nil
}
