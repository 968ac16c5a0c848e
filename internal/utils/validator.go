// internal/utils/validator.go
package utils

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("webapp_category", validateCategory)
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag,omitempty"`
	Message string `json:"message"`
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func GetValidationErrors(err error) []ValidationError {
	var errors []ValidationError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			errors = append(errors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getErrorMessage(e),
			})
		}
	}

	return errors
}

func getErrorMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", strings.ToLower(e.Field()))
	case "email":
		return "invalid email format"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", strings.ToLower(e.Field()), e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", strings.ToLower(e.Field()), e.Param())
	case "webapp_category":
		return fmt.Sprintf("category must be one of: %s", strings.Join(ValidCategories, ", "))
	default:
		return fmt.Sprintf("%s is invalid", strings.ToLower(e.Field()))
	}
}

// ValidCategories are the only accepted webapp categories.
var ValidCategories = []string{"productivity", "design", "games", "api", "nocode", "other"}

func validateCategory(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, c := range ValidCategories {
		if value == c {
			return true
		}
	}
	return false
}

// WebappSubmission is the validated shape shared by create and update.
type WebappSubmission struct {
	Name             string
	Category         string
	DescriptionShort string
	URL              string
	GithubURL        string
	VideoURL         string
}

var blockedSchemes = []string{"javascript", "data", "file"}

// ValidateWebappSubmission applies the field rules that gate catalog entry.
// All failures are collected so the caller gets the full list in one pass.
func ValidateWebappSubmission(sub WebappSubmission) []ValidationError {
	var errors []ValidationError

	if n := len(sub.Name); n < 3 || n > 100 {
		errors = append(errors, ValidationError{
			Field:   "name",
			Message: "name must be between 3 and 100 characters",
		})
	}

	validCategory := false
	for _, c := range ValidCategories {
		if sub.Category == c {
			validCategory = true
			break
		}
	}
	if !validCategory {
		errors = append(errors, ValidationError{
			Field:   "category",
			Message: fmt.Sprintf("category must be one of: %s", strings.Join(ValidCategories, ", ")),
		})
	}

	if n := len(sub.DescriptionShort); n < 20 || n > 200 {
		errors = append(errors, ValidationError{
			Field:   "description_short",
			Message: "short description must be between 20 and 200 characters",
		})
	}

	if msg := validateWebappURL(sub.URL); msg != "" {
		errors = append(errors, ValidationError{Field: "url", Message: msg})
	}

	if sub.GithubURL != "" {
		if u, err := url.Parse(sub.GithubURL); err != nil || !strings.Contains(u.Host, "github.com") {
			errors = append(errors, ValidationError{
				Field:   "github_url",
				Message: "github_url must point to github.com",
			})
		}
	}

	if sub.VideoURL != "" {
		if u, err := url.Parse(sub.VideoURL); err != nil || !isVideoHost(u.Host) {
			errors = append(errors, ValidationError{
				Field:   "video_url",
				Message: "video_url must point to youtube.com or youtu.be",
			})
		}
	}

	return errors
}

func validateWebappURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "url is not a valid URL"
	}

	for _, scheme := range blockedSchemes {
		if u.Scheme == scheme {
			return "url scheme is not allowed"
		}
	}

	if u.Scheme != "https" {
		return "url must use https"
	}

	if isPrivateHost(u.Hostname()) {
		return "url must not point to a private or local address"
	}

	return ""
}

func isPrivateHost(host string) bool {
	if host == "localhost" {
		return true
	}
	if strings.HasPrefix(host, "127.") || strings.HasPrefix(host, "10.") || strings.HasPrefix(host, "192.168.") {
		return true
	}
	// 172.16.0.0/12
	for i := 16; i <= 31; i++ {
		if strings.HasPrefix(host, fmt.Sprintf("172.%d.", i)) {
			return true
		}
	}
	return false
}

func isVideoHost(host string) bool {
	host = strings.TrimPrefix(host, "www.")
	return host == "youtube.com" || host == "youtu.be"
}
