package wizard

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"freight_admin/internal/models"
)

var phoneChars = regexp.MustCompile(`^[0-9+\-() ]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	if err := v.RegisterValidation("phonechars", func(fl validator.FieldLevel) bool {
		return phoneChars.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// ValidateFields checks the Information step.
func ValidateFields(f LoadFields) error {
	return structError(MsgRequiredFields, validate.Struct(f))
}

// ValidateStop checks one stop as entered in the stop form.
func ValidateStop(s models.Stop) error {
	if err := structError(MsgRequiredFields, validate.Struct(s)); err != nil {
		return err
	}
	if !s.Type().Valid() {
		return &ValidationError{
			Message: MsgRequiredFields,
			Fields:  []FieldError{{Field: "stopType", Message: "Please select stop type"}},
		}
	}
	return nil
}

// ValidateStops checks the pickup/delivery invariant of a stop sequence:
// at least one of each type and at least two stops.
func ValidateStops(stops []models.Stop) error {
	if len(stops) == 0 {
		return &ValidationError{Message: MsgTooFewStops}
	}
	var pickup, delivery bool
	for _, s := range stops {
		switch s.Type() {
		case models.StopPickup:
			pickup = true
		case models.StopDelivery:
			delivery = true
		}
	}
	if !pickup || !delivery {
		return &ValidationError{Message: MsgMissingStopTypes}
	}
	if len(stops) < 2 {
		return &ValidationError{Message: MsgTooFewStops}
	}
	return nil
}

func structError(message string, err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Message: message, Fields: []FieldError{{Field: "", Message: err.Error()}}}
	}
	out := &ValidationError{Message: message}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: ruleMessage(fe)})
	}
	return out
}

// fieldMessages holds the form wording per field and rule. Rules not
// listed fall back to ruleMessage's generic text.
var fieldMessages = map[string]map[string]string{
	"title": {
		"required": "Please enter load title",
		"max":      "Title cannot exceed 200 characters",
	},
	"description": {"max": "Description cannot exceed 1000 characters"},
	"weight":      {"gte": "Weight must be positive"},
	"volume":      {"gte": "Volume must be positive"},
	"contactPersonName": {
		"max": "Name cannot exceed 100 characters",
	},
	"contactPhone": {
		"max":        "Phone cannot exceed 20 characters",
		"phonechars": "Invalid phone number format",
	},
	"contactEmail": {
		"email": "Please enter a valid email",
		"max":   "Email cannot exceed 100 characters",
	},
	"stopType": {"required": "Please select stop type"},
	"address": {
		"required": "Please enter address",
		"max":      "Address cannot exceed 500 characters",
	},
	"city": {
		"required": "Please enter city",
		"max":      "City cannot exceed 100 characters",
	},
	"district": {
		"required": "Please enter district",
		"max":      "District cannot exceed 100 characters",
	},
	"country": {"max": "Country cannot exceed 100 characters"},
}

func ruleMessage(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()][fe.Tag()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("cannot exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("cannot exceed %s", fe.Param())
	case "min", "gte":
		return "must be positive"
	case "lte":
		return fmt.Sprintf("cannot exceed %s", fe.Param())
	case "email":
		return "must be a valid email"
	case "phonechars":
		return "invalid phone number format"
	default:
		return fmt.Sprintf("failed %q rule", fe.Tag())
	}
}
