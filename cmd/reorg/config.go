package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"reorg/internal/astio"
	"reorg/internal/reorganize"
)

const configFileName = "reorg.toml"

// projectConfig mirrors reorg.toml. Every table is optional.
type projectConfig struct {
	Classify classifyConfig `toml:"classify"`
	Merge    mergeConfig    `toml:"merge"`
	Output   outputConfig   `toml:"output"`
	Harness  harnessConfig  `toml:"harness"`
}

type classifyConfig struct {
	SourceHeader  string   `toml:"source_header"`
	StdlibMarkers []string `toml:"stdlib_markers"`
}

type mergeConfig struct {
	StdlibName string `toml:"stdlib_name"`
	TieBreak   string `toml:"tie_break"`
}

type outputConfig struct {
	Format string `toml:"format"`
	Jobs   int    `toml:"jobs"`
}

type harnessConfig struct {
	Manifest  string `toml:"manifest"`
	LibDir    string `toml:"lib_dir"`
	CrateType string `toml:"crate_type"`
	FileCheck string `toml:"filecheck"`
}

type loadedConfig struct {
	Path   string // empty when no file was found
	Root   string
	Config projectConfig
}

func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadConfig reads an explicit path, or the nearest reorg.toml above startDir.
// A missing file is not an error.
func loadConfig(explicit, startDir string) (*loadedConfig, error) {
	path := explicit
	if path == "" {
		found, ok, err := findConfig(startDir)
		if err != nil {
			return nil, err
		}
		if !ok {
			return &loadedConfig{}, nil
		}
		path = found
	}
	cfg, err := decodeConfig(path)
	if err != nil {
		return nil, err
	}
	return &loadedConfig{Path: path, Root: filepath.Dir(path), Config: cfg}, nil
}

func decodeConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return projectConfig{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("merge", "tie_break") {
		if _, err := reorganize.ParseTieBreak(cfg.Merge.TieBreak); err != nil {
			return projectConfig{}, fmt.Errorf("%s: [merge].tie_break: %w", path, err)
		}
	}
	if meta.IsDefined("merge", "stdlib_name") && strings.TrimSpace(cfg.Merge.StdlibName) == "" {
		return projectConfig{}, fmt.Errorf("%s: [merge].stdlib_name is empty", path)
	}
	if meta.IsDefined("classify", "source_header") && strings.TrimSpace(cfg.Classify.SourceHeader) == "" {
		return projectConfig{}, fmt.Errorf("%s: [classify].source_header is empty", path)
	}
	if meta.IsDefined("output", "format") {
		if _, err := astio.ParseFormat(cfg.Output.Format); err != nil {
			return projectConfig{}, fmt.Errorf("%s: [output].format: %w", path, err)
		}
	}
	if cfg.Output.Jobs < 0 {
		return projectConfig{}, fmt.Errorf("%s: [output].jobs must not be negative", path)
	}
	return cfg, nil
}

// options turns the [classify] and [merge] tables into pipeline options.
func (c projectConfig) options() reorganize.Options {
	opts := reorganize.DefaultOptions()
	if c.Classify.SourceHeader != "" {
		opts.Classifier.SourceHeaderIdent = c.Classify.SourceHeader
	}
	if c.Classify.StdlibMarkers != nil {
		opts.Classifier.StdlibMarkers = append([]string(nil), c.Classify.StdlibMarkers...)
	}
	if c.Merge.StdlibName != "" {
		opts.StdlibName = c.Merge.StdlibName
	}
	if c.Merge.TieBreak != "" {
		// validated by decodeConfig
		opts.TieBreak, _ = reorganize.ParseTieBreak(c.Merge.TieBreak)
	}
	return opts
}

// resolve makes a config-relative path absolute against the config root.
func (l *loadedConfig) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || l.Root == "" {
		return p
	}
	return filepath.Join(l.Root, filepath.FromSlash(p))
}
