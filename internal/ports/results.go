package ports

import (
	"context"

	"github.com/romanresh/test-runner-nunit-reporter/internal/model"
)

// ResultLoader materializes test sessions from external result files.
// Sessions are returned in the order of paths, and within a file in the order
// they were recorded. Implementations must respect ctx before expensive work
// and report malformed input as *errors.ParseError or *errors.ValidationError.
type ResultLoader interface {
	Load(ctx context.Context, paths ...string) ([]model.Session, error)
}
