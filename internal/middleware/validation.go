package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"pricecli/internal/config"
	apierrors "pricecli/internal/errors"
)

// DatasetNameParam is the chi URL parameter holding a dataset file name.
const DatasetNameParam = "name"

// datasetRequest is the validated view of a dataset route.
type datasetRequest struct {
	Name string `validate:"required,max=255,dataset_name"`
}

// ValidationMiddleware validates route parameters before handlers run.
type ValidationMiddleware struct {
	validator    *validator.Validate
	errorHandler *apierrors.ErrorHandler
}

// NewValidationMiddleware creates a new validation middleware
func NewValidationMiddleware(errorHandler *apierrors.ErrorHandler) *ValidationMiddleware {
	v := validator.New()
	// Registration only fails for an empty tag or a nil func.
	_ = v.RegisterValidation("dataset_name", isDatasetName)

	return &ValidationMiddleware{
		validator:    v,
		errorHandler: errorHandler,
	}
}

// DatasetName rejects requests whose {name} parameter is not a plain
// dataset file name in the base directory.
func (m *ValidationMiddleware) DatasetName(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := m.ValidateName(chi.URLParam(r, DatasetNameParam)); err != nil {
			m.errorHandler.HandleError(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ValidateName reports a validation AppError when name is not acceptable
// as a dataset file name.
func (m *ValidationMiddleware) ValidateName(name string) error {
	err := m.validator.Struct(datasetRequest{Name: name})
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apierrors.NewAppValidationError(err.Error())
	}
	return apierrors.NewAppValidationError(formatValidationError(name, fieldErrs[0])).
		WithContext("name", name)
}

// formatValidationError formats validation error messages
func formatValidationError(name string, err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "dataset name is required"
	case "max":
		return fmt.Sprintf("dataset name must be at most %s characters", err.Param())
	case "dataset_name":
		return fmt.Sprintf("%q is not a valid dataset name; expected a file name ending in %s",
			name, strings.Join(config.DatasetExtensions, " or "))
	default:
		return fmt.Sprintf("dataset name failed %s validation", err.Tag())
	}
}

// isDatasetName accepts a bare file name with a dataset extension. Path
// separators and parent references are rejected so a request cannot leave
// the base directory.
func isDatasetName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return false
	}
	if strings.TrimSpace(name) != name || strings.HasPrefix(name, ".") {
		return false
	}
	return slices.Contains(config.DatasetExtensions, strings.ToLower(filepath.Ext(name)))
}

// QueryEnum returns the value of an enum query parameter, or defaultValue
// when it is absent. An unknown value is answered with a 400 problem and
// ok is false.
func (m *ValidationMiddleware) QueryEnum(w http.ResponseWriter, r *http.Request, param string, allowed []string, defaultValue string) (string, bool) {
	value := r.URL.Query().Get(param)
	if value == "" {
		return defaultValue, true
	}
	if slices.Contains(allowed, value) {
		return value, true
	}

	m.errorHandler.HandleError(w, r, apierrors.ErrValidationField(param,
		fmt.Sprintf("%s must be one of: %s", param, strings.Join(allowed, ", "))))
	return "", false
}
