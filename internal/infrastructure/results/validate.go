package results

import (
	"fmt"
	"math"

	"github.com/hashicorp/go-multierror"

	"github.com/romanresh/test-runner-nunit-reporter/internal/model"
	reporterrors "github.com/romanresh/test-runner-nunit-reporter/pkg/errors"
)

// Validate checks every session decoded from path and reports all problems
// at once. Each entry of the returned *multierror.Error is a
// *errors.ValidationError whose field is the document path of the value.
func Validate(path string, sessions []model.Session) error {
	var result *multierror.Error

	for i, session := range sessions {
		prefix := fmt.Sprintf("sessions[%d]", i)
		if session.Browser == "" {
			result = multierror.Append(result, invalid(path, prefix+".browser", "browser is required"))
		}
		if session.TestFile == "" {
			result = multierror.Append(result, invalid(path, prefix+".testFile", "test file is required"))
		}
		if session.Result != nil {
			result = validateSuite(result, path, prefix+".testResults", *session.Result)
		}
	}

	return result.ErrorOrNil()
}

func validateSuite(result *multierror.Error, path, prefix string, suite model.Suite) *multierror.Error {
	for i, child := range suite.Suites {
		childPrefix := fmt.Sprintf("%s.suites[%d]", prefix, i)
		if child.Name == "" {
			result = multierror.Append(result, invalid(path, childPrefix+".name", "suite name is required"))
		}
		result = validateSuite(result, path, childPrefix, child)
	}

	for i, test := range suite.Tests {
		testPrefix := fmt.Sprintf("%s.tests[%d]", prefix, i)
		if test.Name == "" {
			result = multierror.Append(result, invalid(path, testPrefix+".name", "test name is required"))
		}
		if test.Duration < 0 || math.IsNaN(test.Duration) || math.IsInf(test.Duration, 0) {
			result = multierror.Append(result, invalid(path, testPrefix+".duration", "duration must be a finite non-negative number"))
		}
	}

	return result
}

func invalid(path, field, message string) error {
	return reporterrors.NewValidationError(field, fmt.Sprintf("%s (in %s)", message, path), nil)
}
