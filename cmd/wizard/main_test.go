package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edustar/intake-backend/internal/client"
	"github.com/edustar/intake-backend/internal/model"
	"github.com/edustar/intake-backend/internal/validator"
	"github.com/edustar/intake-backend/internal/wizard"
)

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Full name", humanize("fullName"))
	assert.Equal(t, "Emergency email", humanize("emergencyEmail"))
	assert.Equal(t, "Challenges", humanize("challenges"))
}

func TestProgress(t *testing.T) {
	steps := wizard.Steps(wizard.VariantStandard)
	assert.Equal(t, "[x] Personal  [>] Education  [ ] Challenges  [ ] Emergency", progress(steps, 2))
}

func TestNextField(t *testing.T) {
	f, ok := nextField([]string{"challenges", "challengesOther"}, map[string]bool{"challenges": true})
	assert.True(t, ok)
	assert.Equal(t, "challengesOther", f)

	_, ok = nextField([]string{"challenges"}, map[string]bool{"challenges": true})
	assert.False(t, ok)
}

func TestSession_ScriptedRun(t *testing.T) {
	var received model.SubmissionInput
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"id-1","referenceNumber":"EDU-CLI234"}`))
	}))
	defer srv.Close()

	answers := []string{
		// Personal
		"", // empty full name first: kept blank, step fails and is asked again
		"2000-01-01", "Female", "jane@example.com", "+233200000000", "Ghanaian", "Ghana", "G1234567",
		"Jane Doe", "", "", "", "", "", "", "",
		// Education
		"Bachelor's Degree", "X University", "CS", "2022",
		// Challenges
		"Visa process, Other", "Transcripts", "no",
		// Emergency
		"John Doe", "+233200000001", "123 St", "john@example.com", "Ghana", "Father", "Greater Accra", "Accra",
	}

	var out bytes.Buffer
	s := &session{
		ctrl: wizard.New(validator.New(), wizard.VariantStandard),
		api:  client.New(srv.URL),
		in:   bufio.NewScanner(strings.NewReader(strings.Join(answers, "\n") + "\n")),
		out:  &out,
	}

	conf, err := s.run()
	require.NoError(t, err, out.String())
	assert.Equal(t, "EDU-CLI234", conf.ReferenceNumber)
	assert.Equal(t, "Jane Doe", received.FullName)
	assert.Equal(t, []string{"Visa process", "Other"}, received.Challenges)
	assert.Equal(t, "Transcripts", received.ChallengesOther)
	assert.Contains(t, out.String(), "Full name is required")
}
