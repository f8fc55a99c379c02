// Package config loads the yaml manifest driving glbpack batch mode.
package config

// Manifest describes a batch of pack jobs.
type Manifest struct {
	Workers int           `yaml:"workers"`
	Logging LoggingConfig `yaml:"logging"`
	Jobs    []Job         `yaml:"jobs"`
}

// Job is a single glTF input packed to a GLB output. The input's parent
// directory is the base for the description's relative URIs.
type Job struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Manifest with sensible default values.
func Default() *Manifest {
	return &Manifest{
		Workers: 4,
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
