// internal/utils/validator.go
package utils

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/javajoker/jewelry-atelier/internal/models"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("jewelry_type", validateCatalogType)
	validate.RegisterValidation("design_type", validateDesignType)
	validate.RegisterValidation("material", validateMaterial)
	validate.RegisterValidation("gemstone", validateGemstone)
	validate.RegisterValidation("design_style", validateDesignStyle)
	validate.RegisterValidation("finish", validateFinish)
	validate.RegisterValidation("sort_by", validateSortBy)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidateVar checks a single value against a tag expression.
func ValidateVar(v interface{}, tag string) error {
	return validate.Var(v, tag)
}

func validateCatalogType(fl validator.FieldLevel) bool {
	return models.JewelryType(fl.Field().String()).IsCatalogType()
}

func validateDesignType(fl validator.FieldLevel) bool {
	return models.JewelryType(fl.Field().String()).IsDesignType()
}

func validateMaterial(fl validator.FieldLevel) bool {
	_, ok := models.LookupMaterial(models.Material(fl.Field().String()))
	return ok
}

func validateGemstone(fl validator.FieldLevel) bool {
	_, ok := models.LookupGemstone(models.Gemstone(fl.Field().String()))
	return ok
}

func validateDesignStyle(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "photorealistic", "artistic", "minimalist":
		return true
	}
	return false
}

func validateFinish(fl validator.FieldLevel) bool {
	return models.ValidFinish(models.Finish(fl.Field().String()))
}

func validateSortBy(fl validator.FieldLevel) bool {
	return models.SortBy(fl.Field().String()).Valid()
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   lowerFirst(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

// HasRequiredFailure reports whether any of the named fields failed "required".
func HasRequiredFailure(errs []ValidationError, fields ...string) bool {
	for _, e := range errs {
		if e.Tag != "required" {
			continue
		}
		for _, f := range fields {
			if e.Field == f {
				return true
			}
		}
	}
	return false
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func getValidationMessage(e validator.FieldError) string {
	field := lowerFirst(e.Field())
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "min", "gte":
		return field + " must be at least " + e.Param()
	case "max", "lte":
		return field + " must be at most " + e.Param()
	case "jewelry_type", "design_type":
		return field + " is not a supported jewelry type"
	case "material":
		return field + " is not a supported material"
	case "gemstone":
		return field + " is not a supported gemstone"
	case "design_style":
		return field + " must be one of photorealistic, artistic, minimalist"
	case "finish":
		return field + " must be one of polished, matte, brushed"
	case "sort_by":
		return field + " must be one of date, price-asc, price-desc, popular"
	case "url":
		return field + " must be a valid URL"
	default:
		return field + " is invalid"
	}
}
