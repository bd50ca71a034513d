package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/edustar/intake-backend/internal/model"
	"github.com/edustar/intake-backend/internal/reference"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// trans is the English translator registered on Gin's binding engine.
var trans ut.Translator

// Setup registers the questionnaire rules and English translations on Gin's
// binding engine. Call once during application startup.
func Setup() {
	if v, ok := binding.Validator.Engine().(*govalidator.Validate); ok {
		trans = configure(v)
	}
}

// Validator is the authoritative questionnaire validator. It is safe for
// concurrent use once constructed.
type Validator struct {
	validate *govalidator.Validate
	trans    ut.Translator
	rules    []Rule
}

// New builds a Validator with the default cross-field rule table.
func New() *Validator {
	v := govalidator.New(govalidator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	return &Validator{
		validate: v,
		trans:    configure(v),
		rules:    DefaultRules(),
	}
}

// configure applies JSON field naming, custom tags and translations.
func configure(v *govalidator.Validate) ut.Translator {
	// Use JSON tag name for field names in error messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("option", func(fl govalidator.FieldLevel) bool {
		return model.IsOption(fl.Param(), fl.Field().String())
	})
	_ = v.RegisterValidation("refnum", func(fl govalidator.FieldLevel) bool {
		return reference.Valid(fl.Field().String())
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	t, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, t)

	registerTranslation(v, t, "option", "{0} must be one of the offered options")
	registerTranslation(v, t, "refnum", "{0} must look like EDU-XXXXXX")
	return t
}

func registerTranslation(v *govalidator.Validate, t ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, t,
		func(u ut.Translator) error {
			return u.Add(tag, text, true)
		},
		func(u ut.Translator, fe govalidator.FieldError) string {
			msg, err := u.T(tag, fe.Field())
			if err != nil {
				return fe.Error()
			}
			return msg
		},
	)
}

// ValidateSubmission decodes a raw request body and validates it.
// It returns either the typed input or a *ValidationError.
func (v *Validator) ValidateSubmission(raw []byte) (*model.SubmissionInput, error) {
	notObject := &ValidationError{Errors: []FieldError{{Path: "", Message: "Request body must be a JSON object"}}}

	exact, err := exactKeys(raw)
	if err != nil {
		return nil, notObject
	}

	var in model.SubmissionInput
	errs := newCollector()

	if err := json.Unmarshal(exact, &in); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) || typeErr.Field == "" {
			return nil, notObject
		}
		errs.add(typeErr.Field, fmt.Sprintf("Expected %s, received %s", typeErr.Type.String(), typeErr.Value))
	}

	v.collectStruct(errs, v.validate.Struct(&in))
	v.collectRules(errs, &in, nil, newOptions(nil))

	if err := errs.err(); err != nil {
		return nil, err
	}
	return &in, nil
}

// exactKeys drops every member whose key is not exactly a field name, so that
// "FULLNAME" never lands in fullName.
func exactKeys(raw []byte) ([]byte, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(raw, &members); err != nil {
		return nil, err
	}
	for key := range members {
		if _, ok := model.StructFieldName(key); !ok {
			delete(members, key)
		}
	}
	return json.Marshal(members)
}

// Validate checks an already decoded input against every rule.
func (v *Validator) Validate(in *model.SubmissionInput, opts ...Option) error {
	errs := newCollector()
	v.collectStruct(errs, v.validate.Struct(in))
	v.collectRules(errs, in, nil, newOptions(opts))
	return errs.err()
}

// ValidateFields checks only the named fields and the cross-field rules whose
// dependent field is among them. Unknown names are ignored.
func (v *Validator) ValidateFields(in *model.SubmissionInput, fields []string, opts ...Option) error {
	include := make(map[string]bool, len(fields))
	structNames := make([]string, 0, len(fields))
	for _, f := range fields {
		name, ok := model.StructFieldName(f)
		if !ok {
			continue
		}
		include[f] = true
		structNames = append(structNames, name)
	}

	errs := newCollector()
	if len(structNames) > 0 {
		v.collectStruct(errs, v.validate.StructPartial(in, structNames...))
	}
	v.collectRules(errs, in, include, newOptions(opts))
	return errs.err()
}

// IsVisible reports whether a conditional sub-field should be shown. Fields
// not governed by a conditional rule are always visible.
func (v *Validator) IsVisible(in *model.SubmissionInput, field string) bool {
	governed := false
	for _, r := range v.rules {
		if r.Section != "" || r.Dependent != field {
			continue
		}
		governed = true
		if r.When(in) {
			return true
		}
	}
	return !governed
}

// VisibleFields filters fields down to the ones currently visible.
func (v *Validator) VisibleFields(in *model.SubmissionInput, fields []string) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if v.IsVisible(in, f) {
			out = append(out, f)
		}
	}
	return out
}

func (v *Validator) collectStruct(errs *collector, err error) {
	if err == nil {
		return
	}
	var ve govalidator.ValidationErrors
	if !errors.As(err, &ve) {
		errs.add("", err.Error())
		return
	}
	for _, fe := range ve {
		path := fieldPath(fe)
		errs.add(path, messageFor(path, fe, v.trans))
	}
}

func (v *Validator) collectRules(errs *collector, in *model.SubmissionInput, include map[string]bool, o *options) {
	for _, r := range v.rules {
		if include != nil && !include[r.Dependent] {
			continue
		}
		if !r.active(in, o) || in.IsPresent(r.Dependent) {
			continue
		}
		errs.add(r.Dependent, r.Message)
	}
}

// fieldPath strips the root struct name from a validator namespace.
func fieldPath(fe govalidator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// collector keeps the first message per path.
type collector struct {
	seen   map[string]bool
	fields []FieldError
}

func newCollector() *collector {
	return &collector{seen: make(map[string]bool)}
}

func (c *collector) add(path, message string) {
	if c.seen[path] {
		return
	}
	c.seen[path] = true
	c.fields = append(c.fields, FieldError{Path: path, Message: message})
}

func (c *collector) err() error {
	if len(c.fields) == 0 {
		return nil
	}
	sort.SliceStable(c.fields, func(i, j int) bool {
		return model.FieldOrder(c.fields[i].Path) < model.FieldOrder(c.fields[j].Path)
	})
	return &ValidationError{Errors: c.fields}
}

// TranslateErrors takes a binding/validation error and returns a map of
// field name to human-readable error message. If the error is not a
// validation error, it returns a single-key map with "detail".
func TranslateErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fe.Field()] = fe.Translate(trans)
		}
		return fields
	}

	// Not a validation error (e.g., JSON syntax error).
	fields["detail"] = err.Error()
	return fields
}

// BindQuery binds and validates query parameters into dst.
// Returns nil on success or a translated field error map on failure.
func BindQuery(c *gin.Context, dst interface{}) map[string]string {
	if err := c.ShouldBindQuery(dst); err != nil {
		return TranslateErrors(err)
	}
	return nil
}
