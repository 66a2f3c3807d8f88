// Package report coordinates loading results, generating the NUnit document
// and persisting it.
package report

import (
	"context"
	"errors"

	"github.com/romanresh/test-runner-nunit-reporter/internal/model"
	"github.com/romanresh/test-runner-nunit-reporter/internal/ports"
	domainreport "github.com/romanresh/test-runner-nunit-reporter/internal/report"
)

// Generator assembles a document from loaded sessions.
type Generator interface {
	Generate(sessions []model.Session) *domainreport.Document
}

// Service runs the load, generate, persist sequence.
type Service struct {
	loader    ports.ResultLoader
	generator Generator
	writer    ports.ReportWriter
	logger    ports.Logger
	events    ports.EventPublisher
}

// NewService constructs a Service. A nil writer skips persistence; logger and
// events may be nil.
func NewService(loader ports.ResultLoader, generator Generator, writer ports.ReportWriter, logger ports.Logger, events ports.EventPublisher) *Service {
	return &Service{
		loader:    loader,
		generator: generator,
		writer:    writer,
		logger:    logger,
		events:    events,
	}
}

// Request lists the result files to report on, in output order.
type Request struct {
	Paths []string
}

// Outcome describes a generated report.
type Outcome struct {
	Document   *domainreport.Document
	Data       []byte
	Totals     model.State
	PerSession []domainreport.SessionSummary
	// Location is where the report was written, empty when no writer is configured.
	Location string
}

// Failed reports whether any test in the report failed or any session
// recorded environment errors.
func (o *Outcome) Failed() bool {
	if o == nil {
		return false
	}
	if !o.Totals.Success {
		return true
	}
	for _, s := range o.PerSession {
		if s.EnvFails > 0 {
			return true
		}
	}
	return false
}

// Run executes the request. Load, serialization and write failures are
// returned unchanged after a report.failed event.
func (s *Service) Run(ctx context.Context, req Request) (*Outcome, error) {
	if s.loader == nil || s.generator == nil {
		return nil, errors.New("report service is not configured")
	}

	s.info(ctx, "generating report", "inputs", len(req.Paths))
	s.publish(ctx, ports.EventReportStarted, map[string]interface{}{
		"inputs": len(req.Paths),
	})

	sessions, err := s.loader.Load(ctx, req.Paths...)
	if err != nil {
		return nil, s.fail(ctx, "load", err)
	}

	doc := s.generator.Generate(sessions)
	s.publish(ctx, ports.EventReportGenerated, map[string]interface{}{
		"sessions": len(doc.Sessions),
		"total":    doc.Totals.Total,
		"failures": doc.Totals.Failures,
		"skipped":  doc.Totals.Skipped,
		"success":  doc.Totals.Success,
	})

	data, err := doc.Bytes()
	if err != nil {
		return nil, s.fail(ctx, "serialize", err)
	}

	outcome := &Outcome{
		Document:   doc,
		Data:       data,
		Totals:     doc.Totals,
		PerSession: doc.Sessions,
	}

	if s.writer == nil {
		s.debug(ctx, "no report writer configured")
		return outcome, nil
	}

	location, err := s.writer.Write(ctx, data)
	if err != nil {
		return nil, s.fail(ctx, "write", err)
	}
	outcome.Location = location

	s.publish(ctx, ports.EventReportWritten, map[string]interface{}{
		"location": location,
		"bytes":    len(data),
	})
	s.info(ctx, "report written", "location", location, "total", doc.Totals.Total, "failures", doc.Totals.Failures)

	return outcome, nil
}

// fail records the failed phase and hands err back. The caller owns
// reporting err, so it is logged at debug level only.
func (s *Service) fail(ctx context.Context, phase string, err error) error {
	s.debug(ctx, "report generation failed", "phase", phase, "error", err)
	s.publish(ctx, ports.EventReportFailed, map[string]interface{}{
		"phase": phase,
		"error": err,
	})
	return err
}

func (s *Service) info(ctx context.Context, msg string, fields ...interface{}) {
	if s.logger != nil {
		s.logger.Info(ctx, msg, fields...)
	}
}

func (s *Service) debug(ctx context.Context, msg string, fields ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(ctx, msg, fields...)
	}
}
