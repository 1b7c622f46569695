package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Categories is the immutable set of valid blog categories, loaded once at startup.
type Categories struct {
	list []string
	set  map[string]struct{}
}

// NewCategories builds a category set from list, preserving order.
func NewCategories(list []string) Categories {
	c := Categories{set: make(map[string]struct{}, len(list))}
	for _, v := range list {
		if _, dup := c.set[v]; dup || v == "" {
			continue
		}
		c.set[v] = struct{}{}
		c.list = append(c.list, v)
	}
	return c
}

// Contains reports exact membership.
func (c Categories) Contains(v string) bool {
	_, ok := c.set[v]
	return ok
}

// List returns a copy of the categories in configured order.
func (c Categories) List() []string {
	return append([]string(nil), c.list...)
}

// Validator checks records against their schema constraints.
type Validator struct {
	v          *validator.Validate
	categories Categories
}

// NewValidator returns a Validator whose blog category rule accepts members of categories.
func NewValidator(categories Categories) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("blogcategory", func(fl validator.FieldLevel) bool {
		return categories.Contains(fl.Field().String())
	})
	return &Validator{v: v, categories: categories}
}

// Categories returns the configured blog categories.
func (val *Validator) Categories() Categories {
	return val.categories
}

// Product validates p, reporting every violation.
func (val *Validator) Product(p Product) error {
	return val.check(p)
}

// Blog validates b, reporting every violation.
func (val *Validator) Blog(b Blog) error {
	return val.check(b)
}

func (val *Validator) check(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate: %w", err)
	}
	out := &ValidationError{}
	for _, fe := range fieldErrs {
		out.Add(fieldName(fe), message(fe))
	}
	return out
}

// fieldName turns "tags[2]" into "tags" so clients can key messages by field.
func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if i := strings.IndexByte(name, '['); i > 0 {
		return name[:i]
	}
	return name
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s cannot exceed %s characters", fieldName(fe), fe.Param())
		}
		return fmt.Sprintf("%s cannot exceed %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s cannot exceed %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s cannot be less than %s", fe.Field(), fe.Param())
	case "blogcategory":
		return fmt.Sprintf("%v is not a valid category", fe.Value())
	}
	return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
}
