package ports

import "context"

// ReportWriter persists a serialized report in a single scoped write and
// returns the location it was written to. Failures must be returned as
// *errors.WriteError and never swallowed.
type ReportWriter interface {
	Write(ctx context.Context, data []byte) (string, error)
}
