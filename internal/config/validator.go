package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aleister1102/tixwatch/internal/common"
	"github.com/aleister1102/tixwatch/internal/models"
	"github.com/go-playground/validator/v10"
)

// newValidator builds a validator with the application's custom rules registered
func newValidator() *validator.Validate {
	validate := validator.New()

	// Register custom validation for file existence
	_ = validate.RegisterValidation("fileexists", func(fl validator.FieldLevel) bool {
		filePath := fl.Field().String()
		if filePath == "" {
			return true
		}
		_, err := os.Stat(filePath)
		return !os.IsNotExist(err)
	})

	_ = validate.RegisterValidation("detectionmode", func(fl validator.FieldLevel) bool {
		_, err := models.ParseDetectionMode(fl.Field().String())
		return err == nil
	})

	// Register custom validation for LogLevel
	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "trace", "debug", "info", "warn", "error", "fatal", "panic":
			return true
		default:
			return false
		}
	})

	// Register custom validation for LogFormat
	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "text", "json":
			return true
		default:
			return false
		}
	})

	return validate
}

// ValidateConfig performs validation on the GlobalConfig structure.
// The first failing field is reported as a ConfigError; all failures are listed in its reason.
func ValidateConfig(cfg *GlobalConfig) error {
	if cfg == nil {
		return common.NewConfigError("", "configuration is nil", nil)
	}

	err := newValidator().Struct(cfg)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return common.NewConfigError("", "configuration validation error", err)
	}

	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		msg := fmt.Sprintf("'%s' failed rule '%s'", fieldPath(e), e.Tag())
		if e.Param() != "" {
			msg += fmt.Sprintf(" (expected: %s)", e.Param())
		}
		if e.Value() != nil && e.Value() != "" {
			msg += fmt.Sprintf(", actual: '%v'", e.Value())
		}
		messages = append(messages, msg)
	}

	return common.NewConfigError(fieldPath(errs[0]), strings.Join(messages, "; "), nil)
}

// fieldPath strips the root struct name from the validator namespace
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}
