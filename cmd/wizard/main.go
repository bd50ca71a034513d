package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode"

	"golang.org/x/term"

	"github.com/edustar/intake-backend/internal/client"
	"github.com/edustar/intake-backend/internal/logger"
	"github.com/edustar/intake-backend/internal/model"
	"github.com/edustar/intake-backend/internal/validator"
	"github.com/edustar/intake-backend/internal/wizard"
)

// fieldOptions maps selector fields to the choices shown next to the prompt.
var fieldOptions = map[string][]string{
	"gender":         model.Genders,
	"educationLevel": model.EducationLevels,
	"programType":    model.ProgramTypes,
	"studyReasons":   model.StudyReasons,
	"fundingMethod":  model.FundingMethods,
	"challenges":     model.Challenges,
	"contactMethod":  model.ContactMethods,
}

var listFields = map[string]bool{"studyReasons": true, "challenges": true}

func main() {
	apiURL := flag.String("api", envOr("INTAKE_API_URL", "http://localhost:8080"), "base URL of the intake API")
	variant := flag.String("variant", string(wizard.VariantStandard), "form variant: standard or extended")
	flag.Parse()

	log := logger.New(os.Stderr, "pretty")

	if *variant != string(wizard.VariantStandard) && *variant != string(wizard.VariantExtended) {
		log.Fatal().Str("variant", *variant).Msg("Unknown -variant")
	}

	s := &session{
		ctrl:        wizard.New(validator.New(), wizard.Variant(*variant)),
		api:         client.New(*apiURL),
		in:          bufio.NewScanner(os.Stdin),
		out:         os.Stdout,
		interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}

	conf, err := s.run()
	if err != nil {
		log.Fatal().Err(err).Msg("Wizard aborted")
	}

	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "Thank you! Your questionnaire has been submitted.")
	fmt.Fprintf(s.out, "Your reference number is %s. Keep it to look up your submission.\n", conf.ReferenceNumber)
}

type session struct {
	ctrl        *wizard.Controller
	api         *client.Client
	in          *bufio.Scanner
	out         io.Writer
	interactive bool
}

func (s *session) run() (*wizard.Confirmation, error) {
	for {
		s.header()
		back, err := s.fillStep()
		if err != nil {
			return nil, err
		}
		if back {
			s.ctrl.Previous()
			continue
		}

		if !s.ctrl.IsFinalStep() {
			if !s.ctrl.Next() {
				s.printErrors()
			}
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		conf, err := s.ctrl.Submit(ctx, s.api)
		cancel()
		switch {
		case err == nil:
			return conf, nil
		case errors.Is(err, wizard.ErrSubmitFailed):
			fmt.Fprintf(s.out, "\nSubmission Failed: %v\nYour answers are kept.\n", err)
			s.printErrors()
			if !s.confirm("Try again?") {
				return nil, err
			}
		default:
			s.printErrors()
		}
	}
}

func (s *session) header() {
	step := s.ctrl.Step()
	width := 60
	if s.interactive {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && w < width {
			width = w
		}
	}
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, strings.Repeat("=", width))
	fmt.Fprintf(s.out, "Step %d of %d: %s\n", step.Number, s.ctrl.TotalSteps(), step.Label)
	fmt.Fprintln(s.out, progress(s.ctrl.Steps(), step.Number))
	fmt.Fprintln(s.out, strings.Repeat("=", width))
	if s.interactive {
		fmt.Fprintln(s.out, `Press Enter to keep a value, type "<" to go back.`)
	}
}

// fillStep prompts for every visible field of the current step. Visibility
// is re-evaluated after each answer so "Other" sub-fields appear in place.
func (s *session) fillStep() (back bool, err error) {
	asked := map[string]bool{}
	for {
		field, ok := nextField(s.ctrl.VisibleFields(), asked)
		if !ok {
			return false, nil
		}
		asked[field] = true

		answer, err := s.prompt(field)
		if err != nil {
			return false, err
		}
		if answer == "<" {
			if s.ctrl.CurrentStep() > 1 {
				return true, nil
			}
			delete(asked, field)
			continue
		}
		if answer == "" {
			continue
		}
		if err := s.ctrl.SetField(field, answer); err != nil {
			fmt.Fprintf(s.out, "  ! %v\n", err)
			delete(asked, field)
		}
	}
}

func nextField(visible []string, asked map[string]bool) (string, bool) {
	for _, f := range visible {
		if !asked[f] {
			return f, true
		}
	}
	return "", false
}

func (s *session) prompt(field string) (string, error) {
	label := humanize(field)
	if msg := s.ctrl.ErrorFor(field); msg != "" {
		fmt.Fprintf(s.out, "  ! %s\n", msg)
	}
	if opts, ok := fieldOptions[field]; ok {
		hint := "choose one"
		if listFields[field] {
			hint = "comma-separated"
		}
		fmt.Fprintf(s.out, "  %s (%s): %s\n", label, hint, strings.Join(opts, " | "))
	}

	form := s.ctrl.Form()
	current := ""
	if v, ok := form.Field(field); ok {
		switch val := v.Interface().(type) {
		case []string:
			current = strings.Join(val, ", ")
		default:
			current = fmt.Sprint(val)
		}
	}
	fmt.Fprintf(s.out, "%s [%s]: ", label, current)

	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *session) confirm(question string) bool {
	fmt.Fprintf(s.out, "%s [y/N]: ", question)
	if !s.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(s.in.Text()))
	return answer == "y" || answer == "yes"
}

func (s *session) printErrors() {
	errs := s.ctrl.Errors()
	if len(errs) == 0 {
		return
	}
	fmt.Fprintln(s.out, "\nPlease fix the following:")
	for _, fe := range errs {
		fmt.Fprintf(s.out, "  - %s: %s\n", humanize(fe.Path), fe.Message)
	}
}

func progress(steps []wizard.Step, current int) string {
	parts := make([]string, len(steps))
	for i, st := range steps {
		switch {
		case st.Number < current:
			parts[i] = "[x] " + st.ShortLabel
		case st.Number == current:
			parts[i] = "[>] " + st.ShortLabel
		default:
			parts[i] = "[ ] " + st.ShortLabel
		}
	}
	return strings.Join(parts, "  ")
}

// humanize turns "emergencyEmail" into "Emergency email".
func humanize(field string) string {
	var b strings.Builder
	for i, r := range field {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
			r = unicode.ToLower(r)
		}
		if i == 0 {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
