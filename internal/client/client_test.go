package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"

	"github.com/edustar/intake-backend/internal/config"
	"github.com/edustar/intake-backend/internal/events"
	"github.com/edustar/intake-backend/internal/handler"
	"github.com/edustar/intake-backend/internal/metrics"
	"github.com/edustar/intake-backend/internal/model"
	"github.com/edustar/intake-backend/internal/reference"
	"github.com/edustar/intake-backend/internal/repository"
	"github.com/edustar/intake-backend/internal/response"
	"github.com/edustar/intake-backend/internal/router"
	"github.com/edustar/intake-backend/internal/service"
	"github.com/edustar/intake-backend/internal/validator"
)

func janeDoe() *model.SubmissionInput {
	return &model.SubmissionInput{
		FullName:              "Jane Doe",
		DateOfBirth:           "2000-01-01",
		Gender:                "Female",
		Email:                 "jane@example.com",
		PhoneNumber:           "+233200000000",
		Nationality:           "Ghanaian",
		CurrentCountry:        "Ghana",
		PassportNumber:        "G1234567",
		EducationLevel:        "Bachelor's Degree",
		InstitutionName:       "X University",
		FieldOfStudy:          "CS",
		GraduationYear:        "2022",
		Challenges:            []string{"Visa process"},
		EmergencyName:         "John Doe",
		EmergencyContact:      "+233200000001",
		EmergencyAddress:      "123 St",
		EmergencyEmail:        "john@example.com",
		EmergencyCountry:      "Ghana",
		EmergencyRelationship: "Father",
		EmergencyProvince:     "Greater Accra",
		EmergencyCity:         "Accra",
	}
}

type ClientSuite struct {
	suite.Suite
	server *httptest.Server
	client *Client
	cancel context.CancelFunc
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	var ctx context.Context
	ctx, s.cancel = context.WithCancel(context.Background())

	log := zerolog.New(io.Discard)
	cfg := &config.Config{GinMode: "test", SubmitRateLimit: 100, SubmitRateWindow: time.Minute, CreateMaxAttempts: 5}
	m := metrics.New(prometheus.NewRegistry())
	repo := repository.NewSubmissionRepository(repository.NewMemoryStore(), reference.NewGenerator())
	svc := service.NewSubmissionService(repo, validator.New(), nil, events.NewLogPublisher(log), m, cfg, log)

	engine := router.SetupRouter(ctx, &router.Handlers{
		Submission: handler.NewSubmissionHandler(svc, log),
		Admin:      handler.NewAdminHandler(svc, log),
		System:     handler.NewSystemHandler(svc, nil, log),
	}, m, cfg, log)

	s.server = httptest.NewServer(engine)
	s.client = New(s.server.URL + "/")
}

func (s *ClientSuite) TearDownTest() {
	s.server.Close()
	s.cancel()
}

func (s *ClientSuite) TestCreateGetList() {
	ctx := context.Background()

	created, err := s.client.Create(ctx, janeDoe())
	s.Require().NoError(err)
	s.Regexp(`^EDU-[A-Z0-9]{6}$`, created.ReferenceNumber)

	sub, err := s.client.Get(ctx, created.ReferenceNumber)
	s.Require().NoError(err)
	s.Equal("Jane Doe", sub.FullName)
	s.Equal(created.ID, sub.ID)

	subs, err := s.client.List(ctx)
	s.Require().NoError(err)
	s.Len(subs, 1)
}

func (s *ClientSuite) TestCreate_ValidationError() {
	in := janeDoe()
	in.Challenges = []string{"Other"}

	_, err := s.client.Create(context.Background(), in)
	s.Require().Error(err)

	var apiErr *APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(http.StatusBadRequest, apiErr.StatusCode)
	s.Equal(response.ErrValidation, apiErr.Code)
	s.Require().NotEmpty(apiErr.FieldErrors())
	s.Equal("challengesOther", apiErr.FieldErrors()[0].Path)
	s.NotEmpty(apiErr.RequestID)
	s.Contains(err.Error(), "Validation failed")
}

func (s *ClientSuite) TestGet_NotFound() {
	_, err := s.client.Get(context.Background(), "EDU-ZZZZZZ")
	s.True(IsNotFound(err))
	s.False(IsNotFound(errors.New("other")))
}

func (s *ClientSuite) TestTransportError() {
	s.server.Close()

	_, err := s.client.List(context.Background())
	s.Require().Error(err)
	var apiErr *APIError
	s.False(errors.As(err, &apiErr))
}

func TestDecodeError_NonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream gone", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).List(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway || apiErr.Details != "upstream gone" {
		t.Fatalf("unexpected error %+v", apiErr)
	}
}
