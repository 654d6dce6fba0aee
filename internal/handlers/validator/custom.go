package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/powerguard/autonomy-planner/internal/autonomy"
)

func portTypeValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := autonomy.ParsePortType(val)
	return err == nil
}

func sourceTypeValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := autonomy.ParseSourceType(val)
	return err == nil
}

func deviceTypeValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := autonomy.ParseDeviceType(val)
	return err == nil
}

func uuidValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(uuid.UUID)
	if !ok {
		return false
	}
	return val != uuid.UUID{}
}

// instanceIDValidator accepts ids safe to use in a URL path segment.
func instanceIDValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return val != "" && !strings.ContainsAny(val, "/?# ")
}
