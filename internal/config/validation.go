package config

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	serrors "github.com/macko911/nextjs-sitemap-generator/internal/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateConfig checks struct constraints and the cross-field rules that
// tags cannot express. The first violation is returned as a validation error.
func ValidateConfig(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fromValidator("", err)
	}

	keys := make([]string, 0, len(cfg.PagesConfig))
	for k := range cfg.PagesConfig {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := validate.Struct(cfg.PagesConfig[k]); err != nil {
			return fromValidator(fmt.Sprintf("pages_config[%s]", k), err)
		}
	}

	if len(cfg.ExportPathMap.Command) > 0 && cfg.ExportPathMap.File != "" {
		return serrors.ValidationFailed("export_path_map", "command and file are mutually exclusive")
	}
	if cfg.ExportPathMap.Timeout < 0 {
		return serrors.ValidationFailed("export_path_map.timeout", "must not be negative")
	}
	if strings.ContainsAny(cfg.SitemapFile, `/\`) {
		return serrors.ValidationFailed("sitemap_file", "must be a file name without directories")
	}
	return nil
}

// fromValidator converts the first validator failure into a SitemapError.
func fromValidator(prefix string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return serrors.Wrap(err, serrors.CategoryValidation, serrors.SeverityFatal, "validation failed")
	}
	fe := verrs[0]
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	if prefix != "" {
		field = prefix + "." + field
	}
	return serrors.ValidationFailed(field, describe(fe))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return fmt.Sprintf("must be an absolute URL, got %q", fmt.Sprint(fe.Value()))
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be <= %s", fe.Param())
	case "startswith":
		return fmt.Sprintf("must start with %q", fe.Param())
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}
