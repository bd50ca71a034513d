// Package wizard is the questionnaire form controller: a step machine that
// validates only the current step before moving on and submits the whole form
// from the last step.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/edustar/intake-backend/internal/model"
	"github.com/edustar/intake-backend/internal/validator"
)

var (
	// ErrNotOnFinalStep is returned by Submit before the last step is reached.
	ErrNotOnFinalStep = errors.New("submit is only available on the final step")
	// ErrSubmitFailed wraps transport and server failures. The form keeps
	// every entered value so the user can retry.
	ErrSubmitFailed = errors.New("submission failed, please try again")
)

// Submitter sends a finished questionnaire. *client.Client implements it.
type Submitter interface {
	Create(ctx context.Context, in *model.SubmissionInput) (*model.CreateSubmissionResponse, error)
}

// fieldErrorer is implemented by errors that carry server-side field errors.
type fieldErrorer interface {
	FieldErrors() []validator.FieldError
}

// Confirmation is what the success view shows.
type Confirmation struct {
	ID              string
	ReferenceNumber string
}

// Controller drives one wizard session. It is not safe for concurrent use.
type Controller struct {
	validator   *validator.Validator
	variant     Variant
	steps       []Step
	opts        []validator.Option
	current     int
	form        model.SubmissionInput
	errors      []validator.FieldError
	scrollToTop bool
}

// New starts a wizard on step 1.
func New(v *validator.Validator, variant Variant) *Controller {
	c := &Controller{
		validator: v,
		variant:   variant,
		steps:     Steps(variant),
		current:   1,
	}
	if variant == VariantExtended {
		c.opts = append(c.opts, validator.RequireSection(model.SectionStudyAbroad))
	}
	return c
}

func (c *Controller) Variant() Variant { return c.variant }

// CurrentStep returns the 1-based step number.
func (c *Controller) CurrentStep() int { return c.current }

// TotalSteps returns N.
func (c *Controller) TotalSteps() int { return len(c.steps) }

// Step returns the step currently shown.
func (c *Controller) Step() Step { return c.steps[c.current-1] }

// Steps returns every step, for progress display.
func (c *Controller) Steps() []Step { return c.steps }

func (c *Controller) IsFinalStep() bool { return c.current == len(c.steps) }

// Form returns a copy of the values entered so far.
func (c *Controller) Form() model.SubmissionInput {
	form := c.form
	form.Challenges = append([]string(nil), c.form.Challenges...)
	form.StudyReasons = append([]string(nil), c.form.StudyReasons...)
	return form
}

// SetField updates one field by JSON name and clears its error.
func (c *Controller) SetField(name string, value any) error {
	if err := c.form.SetField(name, value); err != nil {
		return err
	}
	c.clearError(name)
	return nil
}

// VisibleFields lists the current step's fields, hiding conditional
// sub-fields whose trigger is not set.
func (c *Controller) VisibleFields() []string {
	return c.validator.VisibleFields(&c.form, c.Step().Fields)
}

// Errors returns the field errors from the last failed transition.
func (c *Controller) Errors() []validator.FieldError { return c.errors }

// ErrorFor returns the message shown next to field, if any.
func (c *Controller) ErrorFor(field string) string {
	for _, fe := range c.errors {
		if fe.Path == field || baseField(fe.Path) == field {
			return fe.Message
		}
	}
	return ""
}

// ScrollToTop reports, once, that the view should scroll back up after a
// step change.
func (c *Controller) ScrollToTop() bool {
	s := c.scrollToTop
	c.scrollToTop = false
	return s
}

// Next validates the current step. On success it advances (never past N) and
// returns true. On failure it stays and exposes the field errors.
func (c *Controller) Next() bool {
	if err := c.validateStep(); err != nil {
		return false
	}
	if c.current < len(c.steps) {
		c.current++
	}
	c.scrollToTop = true
	return true
}

// Previous goes back one step (never before 1) without validating.
func (c *Controller) Previous() {
	if c.current > 1 {
		c.current--
	}
	c.errors = nil
	c.scrollToTop = true
}

// Submit validates the final step, then the whole form, and sends it. The
// reference number in the Confirmation is the one the server stored.
func (c *Controller) Submit(ctx context.Context, s Submitter) (*Confirmation, error) {
	if !c.IsFinalStep() {
		return nil, ErrNotOnFinalStep
	}
	if err := c.validateStep(); err != nil {
		return nil, err
	}
	if err := c.validator.Validate(&c.form, c.opts...); err != nil {
		c.setErrors(err)
		return nil, err
	}

	form := c.Form()
	resp, err := s.Create(ctx, &form)
	if err != nil {
		var fe fieldErrorer
		if errors.As(err, &fe) && len(fe.FieldErrors()) > 0 {
			c.errors = fe.FieldErrors()
		}
		return nil, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}

	c.errors = nil
	return &Confirmation{ID: resp.ID, ReferenceNumber: resp.ReferenceNumber}, nil
}

func (c *Controller) validateStep() error {
	err := c.validator.ValidateFields(&c.form, c.Step().Fields, c.opts...)
	c.setErrors(err)
	return err
}

func (c *Controller) setErrors(err error) {
	c.errors = nil
	var ve *validator.ValidationError
	if errors.As(err, &ve) {
		c.errors = ve.Errors
	}
}

func (c *Controller) clearError(field string) {
	kept := make([]validator.FieldError, 0, len(c.errors))
	for _, fe := range c.errors {
		if fe.Path != field && baseField(fe.Path) != field {
			kept = append(kept, fe)
		}
	}
	c.errors = kept
}

// baseField strips an index suffix: "challenges[1]" -> "challenges".
func baseField(path string) string {
	if i := strings.IndexByte(path, '['); i >= 0 {
		return path[:i]
	}
	return path
}
