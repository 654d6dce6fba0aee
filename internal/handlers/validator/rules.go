package validator

import "github.com/go-playground/validator/v10"

func registerFn(tag string, fn func(fl validator.FieldLevel) bool) func(v *validator.Validate) {
	return func(v *validator.Validate) {
		_ = v.RegisterValidation(tag, fn)
	}
}

// NewPlanValidationRules registers the tags used by plan, workspace and catalog forms.
func NewPlanValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("portType", portTypeValidator),
		},
		{
			Rule: registerFn("sourceType", sourceTypeValidator),
		},
		{
			Rule: registerFn("deviceType", deviceTypeValidator),
		},
		{
			Rule: registerFn("instanceId", instanceIDValidator),
		},
		{
			Rule: registerFn("workspaceId", uuidValidator),
		},
	}
}
