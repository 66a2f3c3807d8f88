package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	appreport "github.com/romanresh/test-runner-nunit-reporter/internal/app/report"
	"github.com/romanresh/test-runner-nunit-reporter/internal/config"
	"github.com/romanresh/test-runner-nunit-reporter/internal/infrastructure/events"
	"github.com/romanresh/test-runner-nunit-reporter/internal/infrastructure/results"
	"github.com/romanresh/test-runner-nunit-reporter/internal/infrastructure/storage"
	"github.com/romanresh/test-runner-nunit-reporter/internal/logger"
	"github.com/romanresh/test-runner-nunit-reporter/internal/ports"
	"github.com/romanresh/test-runner-nunit-reporter/internal/report"
	"github.com/romanresh/test-runner-nunit-reporter/internal/ui/summary"
	reporterrors "github.com/romanresh/test-runner-nunit-reporter/pkg/errors"
)

type generateOptions struct {
	configPath    string
	outputPath    string
	rootDir       string
	reportLogs    bool
	name          string
	storage       string
	failOnFailure bool
	quiet         bool
}

func newGenerateCmd(root *rootFlags) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate [results files...]",
		Short: "Generate an NUnit report from JSON or YAML result files",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return reporterrors.NewValidationError("args", "at least one results file is required", nil)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, root, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML reporter configuration")
	f.StringVarP(&opts.outputPath, "output", "o", "", "Report path, relative to --root-dir (default ./test-report.xml)")
	f.StringVar(&opts.rootDir, "root-dir", "", "Directory that output and test file paths are relative to (default working directory)")
	f.BoolVar(&opts.reportLogs, "report-logs", false, "Attach browser logs to each session")
	f.StringVar(&opts.name, "name", "", "Value of the report's root name attribute")
	f.StringVar(&opts.storage, "storage", "", "Report destination: file or minio")
	f.BoolVar(&opts.failOnFailure, "fail-on-failure", false, "Exit with status 1 when the report contains failures")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress the summary table")

	return cmd
}

func runGenerate(cmd *cobra.Command, root *rootFlags, opts *generateOptions, args []string) error {
	cfg, err := config.Load(config.LoadOptions{
		Path:    opts.configPath,
		EnvFile: root.envFile,
		Overrides: func(c *config.Config) {
			applyGenerateFlags(cmd, c, opts)
			if root.verbose {
				c.LogLevel = "debug"
			}
		},
	})
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Options{
		Level:         cfg.LogLevel,
		HumanReadable: true,
		Writer:        cmd.ErrOrStderr(),
		Component:     "nunit-reporter",
	})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	ctx := ports.WithCorrelationID(cmd.Context(), ports.GenerateCorrelationID())

	rootDir, err := cfg.ResolveRootDir()
	if err != nil {
		return err
	}
	writer, err := newReportWriter(cfg)
	if err != nil {
		return err
	}

	generator := report.NewGenerator(report.Options{
		Name:       cfg.ReportName,
		RootDir:    rootDir,
		ReportLogs: cfg.ReportLogs,
	})
	publisher := events.NewLoggingPublisher(log.With("component", "events"))
	if !opts.quiet {
		sub, err := publisher.Subscribe(ports.EventReportWritten, printLocation(cmd.OutOrStdout()))
		if err != nil {
			return err
		}
		defer sub.Unsubscribe()
	}

	loader := results.NewLoader(log.With("component", "loader"))
	svc := appreport.NewService(loader, generator, writer, log, publisher)

	outcome, err := svc.Run(ctx, appreport.Request{Paths: args})
	if err != nil {
		return err
	}

	if !opts.quiet {
		out := cmd.OutOrStdout()
		if err := summary.Render(out, summary.Data{
			Sessions: outcome.PerSession,
			Totals:   outcome.Totals,
		}, summary.Options{Color: summary.ColorEnabled(out)}); err != nil {
			return fmt.Errorf("render summary: %w", err)
		}
	}

	if opts.failOnFailure && outcome.Failed() {
		return &exitError{code: exitFailure, msg: "report contains failures", silent: opts.quiet}
	}
	return nil
}

// printLocation tells the user where the report went once it is persisted.
func printLocation(w io.Writer) ports.EventHandler {
	return func(_ context.Context, event ports.DomainEvent) error {
		fields, _ := event.Payload().(map[string]interface{})
		location, ok := fields["location"].(string)
		if !ok || location == "" {
			return nil
		}
		_, err := fmt.Fprintf(w, "Report written to %s\n", location)
		return err
	}
}

// applyGenerateFlags overrides configuration with flags the user set explicitly.
func applyGenerateFlags(cmd *cobra.Command, cfg *config.Config, opts *generateOptions) {
	f := cmd.Flags()
	if f.Changed("output") {
		cfg.OutputPath = opts.outputPath
	}
	if f.Changed("root-dir") {
		cfg.RootDir = opts.rootDir
	}
	if f.Changed("report-logs") {
		cfg.ReportLogs = opts.reportLogs
	}
	if f.Changed("name") {
		cfg.ReportName = opts.name
	}
	if f.Changed("storage") {
		cfg.Storage.Kind = opts.storage
	}
	if opts.quiet {
		cfg.LogLevel = "error"
	}
}

func newReportWriter(cfg *config.Config) (ports.ReportWriter, error) {
	if cfg.Storage.Kind == config.StorageMinIO {
		m := cfg.Storage.MinIO
		object := m.ObjectName
		if object == "" {
			object = filepath.Base(cfg.OutputPath)
		}
		return storage.NewMinIOWriter(storage.MinIOConfig{
			Endpoint:   m.Endpoint,
			AccessKey:  m.AccessKey,
			SecretKey:  m.SecretKey,
			Bucket:     m.Bucket,
			ObjectName: object,
			UseSSL:     m.UseSSL,
		})
	}

	path, err := cfg.ResolveOutputPath()
	if err != nil {
		return nil, err
	}
	return storage.NewFileWriter(path), nil
}
