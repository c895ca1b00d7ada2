// Package batch expands templated "batch figure" specifications into
// concrete, per-variable and per-channel figure configurations.
package batch

import (
	"iter"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vk/eva/internal/config"
	"github.com/vk/eva/internal/tmpl"
)

// Pair is one concrete figure configuration produced by Expand.
type Pair struct {
	Figure *config.Config
	Plots  []any
}

// ConfigError reports a batch specification that cannot be expanded.
type ConfigError struct {
	Msg string
}

// Error implements the error interface for ConfigError.
func (e *ConfigError) Error() string {
	return "batch figure: " + e.Msg
}

var titleCaser = cases.Title(language.English)

// Expand validates the batch specification and returns the sequence of
// concrete (figure, plots) pairs. Validation is eager; iteration is lazy and
// restartable, a pure function of the inputs.
//
// With no batch specification the sequence holds exactly one pair, the
// inputs untouched. Otherwise the sequence covers the Cartesian product of
// variables (outer) and channels (inner), each pair template-filled from its
// batch context. An empty channel list collapses to a single no-channel
// iteration so the loop structure stays uniform.
func Expand(figureConf *config.Config, plots []any, batchConf *config.Config) (iter.Seq[Pair], error) {
	if batchConf.Len() == 0 {
		return func(yield func(Pair) bool) {
			yield(Pair{Figure: figureConf, Plots: plots})
		}, nil
	}

	variables := stringList(batchConf, "variables")
	if len(variables) == 0 {
		return nil, &ConfigError{Msg: "must provide variables, even if running with channels"}
	}

	rawChannels, _ := batchConf.Get("channels")
	channels, err := ParseChannelList(rawChannels)
	if err != nil {
		return nil, &ConfigError{Msg: err.Error()}
	}
	labels := make([]string, 0, len(channels))
	for _, ch := range channels {
		labels = append(labels, strconv.Itoa(ch))
	}
	if len(labels) == 0 {
		labels = []string{""}
	}

	return func(yield func(Pair) bool) {
		for _, variable := range variables {
			for _, channel := range labels {
				vars := contextFor(variable, channel)
				pair := Pair{
					Figure: tmpl.FillConfig(figureConf, vars),
					Plots:  tmpl.FillList(plots, vars),
				}
				if !yield(pair) {
					return
				}
			}
		}
	}, nil
}

// contextFor builds the substitution mapping for one variable/channel
// iteration.
func contextFor(variable, channel string) map[string]string {
	title := titleCaser.String(strings.ReplaceAll(variable, "_", " "))
	vars := map[string]string{
		"variable":       variable,
		"variable_title": title,
	}
	if channel != "" {
		vars["channel"] = channel
		vars["variable_title"] = title + " Ch. " + channel
	}
	return vars
}

func stringList(cfg *config.Config, key string) []string {
	raw, _ := cfg.GetList(key)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
