package config

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ruleNameRegexp = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// ValidationError is a single validation failure with context.
type ValidationError struct {
	ItemName  string // For sources/categories: the name of the item (e.g. "direct")
	FieldPath string // Dot-notation field path (e.g. "general.rules_dir")
	Message   string // Human-readable error message
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation failed with %d error(s):\n", len(ve)))
	for i, err := range ve {
		if err.ItemName != "" {
			sb.WriteString(fmt.Sprintf("  %d. [%s] %s: %s\n", i+1, err.ItemName, err.FieldPath, err.Message))
		} else {
			sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.FieldPath, err.Message))
		}
	}
	return sb.String()
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("rule_name", validateRuleName); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("url_template", validateURLTemplate); err != nil {
		panic(err)
	}

	// Report field names from the "toml" tag
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateRuleName(fl validator.FieldLevel) bool {
	return ruleNameRegexp.MatchString(fl.Field().String())
}

// validateURLTemplate requires the {{name}} placeholder so every source
// without an explicit URL expands to a distinct location.
func validateURLTemplate(fl validator.FieldLevel) bool {
	return strings.Contains(fl.Field().String(), "{{name}}")
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "required_if":
		return "field is required"
	case "min":
		return fmt.Sprintf("must be >= %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	case "url":
		return "must be a valid URL"
	case "rule_name":
		return "must start with a lowercase letter and consist only of [a-z0-9_-]"
	case "url_template":
		return "must contain the {{name}} placeholder"
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}

func convertValidatorErrors(err error, fieldPrefix string, itemName string) ValidationErrors {
	var out ValidationErrors

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{
			ItemName:  itemName,
			FieldPath: fieldPrefix,
			Message:   err.Error(),
		}}
	}

	for _, e := range verrs {
		path := e.Field()
		if fieldPrefix != "" {
			path = fieldPrefix + "." + path
		}
		out = append(out, ValidationError{
			ItemName:  itemName,
			FieldPath: path,
			Message:   getValidationMessage(e),
		})
	}
	return out
}

// ValidateConfig validates the whole configuration and returns all errors at once.
func (c *Config) ValidateConfig() error {
	var validationErrors ValidationErrors

	if c.General == nil {
		validationErrors = append(validationErrors, ValidationError{
			FieldPath: "general",
			Message:   "configuration must contain a 'general' section",
		})
		return validationErrors
	}

	if err := validate.Struct(c.General); err != nil {
		validationErrors = append(validationErrors, convertValidatorErrors(err, "general", "")...)
	}
	if err := validate.Struct(c.Output); err != nil {
		validationErrors = append(validationErrors, convertValidatorErrors(err, "output", "")...)
	}
	if err := validate.Struct(c.Compiler); err != nil {
		validationErrors = append(validationErrors, convertValidatorErrors(err, "compiler", "")...)
	}
	if err := validate.Struct(c.Server); err != nil {
		validationErrors = append(validationErrors, convertValidatorErrors(err, "server", "")...)
	}

	validationErrors = append(validationErrors, c.validateSources()...)
	validationErrors = append(validationErrors, c.validateCategories()...)

	if len(validationErrors) > 0 {
		return validationErrors
	}
	return nil
}

func (c *Config) validateSources() ValidationErrors {
	var validationErrors ValidationErrors

	if len(c.Sources) == 0 {
		validationErrors = append(validationErrors, ValidationError{
			FieldPath: "source",
			Message:   "configuration must contain at least one source",
		})
		return validationErrors
	}

	seenNames := make(map[string]bool)
	for i, src := range c.Sources {
		itemName := src.Name
		if itemName == "" {
			itemName = fmt.Sprintf("source[%d]", i)
		}

		if err := validate.Struct(src); err != nil {
			validationErrors = append(validationErrors, convertValidatorErrors(err, fmt.Sprintf("source.%d", i), itemName)...)
		}

		if seenNames[src.Name] {
			validationErrors = append(validationErrors, ValidationError{
				ItemName:  itemName,
				FieldPath: "name",
				Message:   fmt.Sprintf("duplicate source name: %s", src.Name),
			})
		}
		seenNames[src.Name] = true

		if src.URL == "" && c.General.URLTemplate == "" {
			validationErrors = append(validationErrors, ValidationError{
				ItemName:  itemName,
				FieldPath: "url",
				Message:   "source has no URL and general.url_template is not set",
			})
		}
	}
	return validationErrors
}

func (c *Config) validateCategories() ValidationErrors {
	var validationErrors ValidationErrors

	if len(c.Categories) == 0 {
		validationErrors = append(validationErrors, ValidationError{
			FieldPath: "category",
			Message:   "configuration must contain at least one category",
		})
		return validationErrors
	}

	seenNames := make(map[string]bool)
	for i, cat := range c.Categories {
		itemName := cat.Name
		if itemName == "" {
			itemName = fmt.Sprintf("category[%d]", i)
		}

		if err := validate.Struct(cat); err != nil {
			validationErrors = append(validationErrors, convertValidatorErrors(err, fmt.Sprintf("category.%d", i), itemName)...)
		}

		if seenNames[cat.Name] {
			validationErrors = append(validationErrors, ValidationError{
				ItemName:  itemName,
				FieldPath: "name",
				Message:   fmt.Sprintf("duplicate category name: %s", cat.Name),
			})
		}
		seenNames[cat.Name] = true

		if cat.Source != "" && c.GetSourceByName(cat.Source) == nil {
			validationErrors = append(validationErrors, ValidationError{
				ItemName:  itemName,
				FieldPath: "source",
				Message:   fmt.Sprintf("unknown source: %s", cat.Source),
			})
		}

		if cat.ExcludeSuffixesFrom != "" {
			if c.GetSourceByName(cat.ExcludeSuffixesFrom) == nil {
				validationErrors = append(validationErrors, ValidationError{
					ItemName:  itemName,
					FieldPath: "exclude_suffixes_from",
					Message:   fmt.Sprintf("unknown source: %s", cat.ExcludeSuffixesFrom),
				})
			}
			if cat.Kind == KindIPCIDR {
				validationErrors = append(validationErrors, ValidationError{
					ItemName:  itemName,
					FieldPath: "exclude_suffixes_from",
					Message:   "suffix exclusion applies to domain categories only",
				})
			}
		}
	}
	return validationErrors
}
