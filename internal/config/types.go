// Package config loads reporter settings from an optional YAML file,
// environment variables and .env files.
package config

// Storage kinds accepted by Storage.Kind.
const (
	StorageFile  = "file"
	StorageMinIO = "minio"
)

// DefaultOutputPath is where reports are written when nothing else is configured.
const DefaultOutputPath = "./test-report.xml"

// Config represents the reporter configuration document.
type Config struct {
	OutputPath string  `yaml:"output_path" validate:"required"`
	RootDir    string  `yaml:"root_dir,omitempty"`
	ReportLogs bool    `yaml:"report_logs,omitempty"`
	ReportName string  `yaml:"report_name,omitempty"`
	LogLevel   string  `yaml:"log_level,omitempty" validate:"omitempty,oneof=trace debug info warn error"`
	Storage    Storage `yaml:"storage,omitempty"`
}

// Storage selects where the generated report is persisted.
type Storage struct {
	Kind  string `yaml:"kind,omitempty" validate:"storage_kind"`
	MinIO *MinIO `yaml:"minio,omitempty" validate:"required_if=Kind minio"`
}

// MinIO holds the object storage destination for reports.
type MinIO struct {
	Endpoint   string `yaml:"endpoint" validate:"required,hostname_port"`
	AccessKey  string `yaml:"access_key" validate:"required"`
	SecretKey  string `yaml:"secret_key" validate:"required"`
	Bucket     string `yaml:"bucket" validate:"required,min=3,max=63"`
	ObjectName string `yaml:"object_name,omitempty"`
	UseSSL     bool   `yaml:"use_ssl,omitempty"`
}

// Default returns the configuration used when no file or overrides are given.
func Default() *Config {
	return &Config{
		OutputPath: DefaultOutputPath,
		LogLevel:   "info",
		Storage:    Storage{Kind: StorageFile},
	}
}
