package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	reporterrors "github.com/romanresh/test-runner-nunit-reporter/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	storageKinds = map[string]struct{}{StorageFile: {}, StorageMinIO: {}}
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation("storage_kind", func(fl validator.FieldLevel) bool {
			_, ok := storageKinds[fl.Field().String()]
			return ok
		})

		validateInst = v
	})

	return validateInst
}

// ValidateConfig performs schema validation on the configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return reporterrors.NewValidationError("config", "configuration is nil", nil)
	}

	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}
	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		ve := ves[0]
		field := yamlFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return reporterrors.NewValidationError(field, msg, err)
	}

	return reporterrors.NewValidationError("config", err.Error(), err)
}

// yamlFieldName drops the root struct name from the namespace, leaving the
// YAML path of the offending field.
func yamlFieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
