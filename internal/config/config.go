package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ganot/labelcap/internal/dataset"
)

// Config defines collector configuration.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Camera  CameraConfig  `yaml:"camera"`
	Classes []ClassConfig `yaml:"classes"`
	Export  ExportConfig  `yaml:"export"`
	Catalog CatalogConfig `yaml:"catalog"`
	Log     LogConfig     `yaml:"log"`
}

type DataConfig struct {
	OutputDir string      `yaml:"output_dir"`
	Image     ImageConfig `yaml:"image"`
}

type ImageConfig struct {
	Format  string `yaml:"format"`
	Quality int    `yaml:"quality"`
}

type CameraConfig struct {
	MaxDevices int `yaml:"max_devices"`
	// UpdateInterval is the preview refresh period in seconds.
	UpdateInterval float64 `yaml:"update_interval"`
}

// ClassConfig maps a class ID to its spec resource. The list is ordered;
// the first class is the session default.
type ClassConfig struct {
	ID   string `yaml:"id"`
	Spec string `yaml:"spec"`
}

type ExportConfig struct {
	CSV CSVConfig `yaml:"csv"`
}

type CSVConfig struct {
	Delimiter        string `yaml:"delimiter"`
	Encoding         string `yaml:"encoding"`
	IncludeTimestamp bool   `yaml:"include_timestamp"`
	BoolTrue         string `yaml:"bool_true"`
	BoolFalse        string `yaml:"bool_false"`
}

type CatalogConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Data: DataConfig{
			OutputDir: "dataset",
			Image:     ImageConfig{Format: "jpg", Quality: 95},
		},
		Camera: CameraConfig{
			MaxDevices:     10,
			UpdateInterval: 0.033,
		},
		Classes: []ClassConfig{
			{ID: "PET", Spec: "states/pet.yaml"},
			{ID: "CAN", Spec: "states/can.yaml"},
			{ID: "FOREIGN", Spec: "states/foreign.yaml"},
		},
		Export: ExportConfig{
			CSV: CSVConfig{
				Delimiter:        ",",
				Encoding:         dataset.EncodingUTF8SIG,
				IncludeTimestamp: true,
				BoolTrue:         "да",
				BoolFalse:        "нет",
			},
		},
		Catalog: CatalogConfig{Path: "dataset/catalog.db"},
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads configuration from an optional YAML file and environment
// variables. A missing or broken file never aborts startup: the defaults
// apply, the returned source is empty, and the returned error (if any)
// describes why the file was ignored so the caller can warn.
func Load(path string) (Config, string, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("LABELCAP_CONFIG_PATH")
	}

	source := ""
	var loadErr error
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to defaults
		case err != nil:
			loadErr = fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				cfg = Default()
				loadErr = fmt.Errorf("parse config file: %w", err)
			} else {
				source = path
			}
		}
	}

	if dir := os.Getenv("LABELCAP_OUTPUT_DIR"); dir != "" {
		cfg.Data.OutputDir = dir
	}
	if level := os.Getenv("LABELCAP_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if catalogPath := os.Getenv("LABELCAP_CATALOG_PATH"); catalogPath != "" {
		cfg.Catalog.Path = catalogPath
	}

	return cfg, source, loadErr
}

// CSVOptions converts the export section into the dataset package's options.
func (c Config) CSVOptions() dataset.CSVOptions {
	opts := dataset.CSVOptions{
		Encoding:         c.Export.CSV.Encoding,
		IncludeTimestamp: c.Export.CSV.IncludeTimestamp,
		BoolTrue:         c.Export.CSV.BoolTrue,
		BoolFalse:        c.Export.CSV.BoolFalse,
	}
	for _, r := range c.Export.CSV.Delimiter {
		opts.Delimiter = r
		break
	}
	return opts
}
