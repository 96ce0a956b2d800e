package validator

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

// Room codes encode block, floor and room number, e.g. "A304".
var roomCodeRe = regexp.MustCompile(`^[A-Z][0-9][0-9]{2}$`)

var timeHHMMRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validations
	registerCustomValidations()
}

func registerCustomValidations() {
	// Role validation
	validate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		role := fl.Field().String()
		validRoles := []string{"student", "class_representative", "admin"}
		for _, r := range validRoles {
			if role == r {
				return true
			}
		}
		return false
	})

	// Room code validation (block letter + floor digit + two-digit room number)
	validate.RegisterValidation("room_code", func(fl validator.FieldLevel) bool {
		return roomCodeRe.MatchString(fl.Field().String())
	})

	// Time of day validation, 24h "HH:MM"
	validate.RegisterValidation("time_hhmm", func(fl validator.FieldLevel) bool {
		return timeHHMMRe.MatchString(fl.Field().String())
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "datetime":
			errors[field] = "Invalid date format (expected " + err.Param() + ")"
		case "role":
			errors[field] = "Invalid role. Must be: student, class_representative, or admin"
		case "room_code":
			errors[field] = "Invalid room code. Expected block letter, floor and room number, e.g. A304"
		case "time_hhmm":
			errors[field] = "Invalid time. Expected 24h HH:MM"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
