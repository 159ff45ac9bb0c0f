package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator reports fields by their JSON name.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := RegisterWithValidator(v); err != nil {
		panic(err)
	}
	return v
}

// RegisterWithValidator adds the custom record rules to v.
func RegisterWithValidator(v *validator.Validate) error {
	return v.RegisterValidation("achievement_type", validateAchievementType)
}

func validateAchievementType(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	switch AchievementType(fl.Field().String()) {
	case AchievementAward:
		fallthrough
	case AchievementCertification:
		fallthrough
	case AchievementCompetition:
		fallthrough
	case AchievementPublication:
		return true
	}
	return false
}

// ServerFields are set by the store and dropped from client payloads.
var ServerFields = []string{"id", "createdAt", "updatedAt"}

// DecodeRecord parses and validates one client payload. Unknown fields are
// ignored and ServerFields are dropped. Failures are VALIDATION_ERRORs keyed
// by JSON field name.
func DecodeRecord[T any](v *validator.Validate, data []byte) (T, error) {
	var rec T
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return rec, NewValidationError("invalid body", nil)
	}
	for _, key := range ServerFields {
		delete(fields, key)
	}
	payload, err := json.Marshal(fields)
	if err != nil {
		return rec, NewValidationError("invalid body", nil)
	}

	if err := json.NewDecoder(bytes.NewReader(payload)).Decode(&rec); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return rec, NewValidationError("invalid field type", map[string]string{
				wireName(typeErr.Field): fmt.Sprintf("expected %s", typeErr.Type),
			})
		}
		return rec, NewValidationError("invalid body", nil)
	}
	if err := ValidateRecord(v, rec); err != nil {
		return rec, err
	}
	return rec, nil
}

// wireName drops the embedded struct path the decoder prefixes.
func wireName(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[i+1:]
	}
	return path
}

// ValidateRecord checks rec against its validate tags.
func ValidateRecord(v *validator.Validate, rec any) error {
	err := v.Struct(rec)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return NewValidationError("invalid record", nil)
	}
	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = fe.Tag()
	}
	return NewValidationError("validation failed", fields)
}
