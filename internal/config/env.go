package config

import (
	"strconv"

	"github.com/joho/godotenv"

	reporterrors "github.com/romanresh/test-runner-nunit-reporter/pkg/errors"
)

// Environment variables understood by ApplyEnv.
const (
	EnvOutputPath     = "NUNIT_REPORTER_OUTPUT_PATH"
	EnvRootDir        = "NUNIT_REPORTER_ROOT_DIR"
	EnvReportLogs     = "NUNIT_REPORTER_REPORT_LOGS"
	EnvReportName     = "NUNIT_REPORTER_REPORT_NAME"
	EnvLogLevel       = "NUNIT_REPORTER_LOG_LEVEL"
	EnvStorage        = "NUNIT_REPORTER_STORAGE"
	EnvMinIOEndpoint  = "NUNIT_REPORTER_MINIO_ENDPOINT"
	EnvMinIOAccessKey = "NUNIT_REPORTER_MINIO_ACCESS_KEY"
	EnvMinIOSecretKey = "NUNIT_REPORTER_MINIO_SECRET_KEY"
	EnvMinIOBucket    = "NUNIT_REPORTER_MINIO_BUCKET"
	EnvMinIOObject    = "NUNIT_REPORTER_MINIO_OBJECT"
	EnvMinIOUseSSL    = "NUNIT_REPORTER_MINIO_USE_SSL"
)

// ApplyEnv overrides cfg with any variables lookup resolves. Unparsable
// booleans leave the current value in place.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) {
	getenv := func(key string, target *string) {
		if value, ok := lookup(key); ok && value != "" {
			*target = value
		}
	}
	getenvBool := func(key string, target *bool) {
		if value, ok := lookup(key); ok {
			if parsed, err := strconv.ParseBool(value); err == nil {
				*target = parsed
			}
		}
	}

	getenv(EnvOutputPath, &cfg.OutputPath)
	getenv(EnvRootDir, &cfg.RootDir)
	getenvBool(EnvReportLogs, &cfg.ReportLogs)
	getenv(EnvReportName, &cfg.ReportName)
	getenv(EnvLogLevel, &cfg.LogLevel)
	getenv(EnvStorage, &cfg.Storage.Kind)

	if !anySet(lookup, EnvMinIOEndpoint, EnvMinIOAccessKey, EnvMinIOSecretKey, EnvMinIOBucket, EnvMinIOObject, EnvMinIOUseSSL) {
		return
	}
	if cfg.Storage.MinIO == nil {
		cfg.Storage.MinIO = &MinIO{}
	}
	m := cfg.Storage.MinIO
	getenv(EnvMinIOEndpoint, &m.Endpoint)
	getenv(EnvMinIOAccessKey, &m.AccessKey)
	getenv(EnvMinIOSecretKey, &m.SecretKey)
	getenv(EnvMinIOBucket, &m.Bucket)
	getenv(EnvMinIOObject, &m.ObjectName)
	getenvBool(EnvMinIOUseSSL, &m.UseSSL)
}

func anySet(lookup func(string) (string, bool), keys ...string) bool {
	for _, key := range keys {
		if value, ok := lookup(key); ok && value != "" {
			return true
		}
	}
	return false
}

// envFileLookup reads a .env file without touching the process environment.
func envFileLookup(path string) (func(string) (string, bool), error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, reporterrors.NewParseError(path, 0, err)
	}
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}, nil
}

// layered consults primary first and falls back to secondary.
func layered(primary, secondary func(string) (string, bool)) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if value, ok := primary(key); ok {
			return value, ok
		}
		return secondary(key)
	}
}
