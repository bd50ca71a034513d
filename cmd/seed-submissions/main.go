package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/edustar/intake-backend/internal/config"
	"github.com/edustar/intake-backend/internal/database"
	"github.com/edustar/intake-backend/internal/events"
	"github.com/edustar/intake-backend/internal/logger"
	"github.com/edustar/intake-backend/internal/metrics"
	"github.com/edustar/intake-backend/internal/model"
	"github.com/edustar/intake-backend/internal/reference"
	"github.com/edustar/intake-backend/internal/repository"
	"github.com/edustar/intake-backend/internal/service"
	"github.com/edustar/intake-backend/internal/validator"
)

var names = []string{
	"Ama Mensah", "Kwame Boateng", "Efua Owusu", "Kofi Asante", "Abena Osei",
	"Yaw Darko", "Akosua Adjei", "Kwabena Appiah", "Adwoa Frimpong", "Kojo Amoah",
	"Chioma Okafor", "Tunde Adeyemi", "Ngozi Eze", "Emeka Nwosu", "Zainab Bello",
	"Wanjiru Kamau", "Otieno Odhiambo", "Amina Hassan", "Thabo Nkosi", "Lerato Dlamini",
}

var countries = []string{"Ghana", "Nigeria", "Kenya", "South Africa"}

func main() {
	count := flag.Int("count", 20, "number of submissions to create")
	seed := flag.Uint64("seed", 1, "random seed, for reproducible data")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	store, closeStore, err := repository.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open submission store")
	}
	defer closeStore()

	// Seeded submissions go through the same cache and queue as live ones.
	rdb, err := database.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	if rdb != nil {
		defer rdb.Close()
	}

	repo := repository.NewSubmissionRepository(store, reference.NewGenerator())
	svc := service.NewSubmissionService(repo, validator.New(), rdb, events.NewLogPublisher(log),
		metrics.New(prometheus.NewRegistry()), cfg, log)

	fmt.Printf("=== Seeding %d Submissions ===\n", *count)

	rng := rand.New(rand.NewPCG(*seed, *seed))
	created := 0
	for i := 0; i < *count; i++ {
		in := demoSubmission(rng, i)
		sub, err := svc.CreateInput(ctx, in)
		if err != nil {
			var ve *validator.ValidationError
			if errors.As(err, &ve) {
				log.Fatal().Err(err).Msg("Seed data failed validation")
			}
			log.Error().Err(err).Str("full_name", in.FullName).Msg("Failed to create submission")
			continue
		}
		created++
		fmt.Printf("[%d/%d] %s  %s\n", i+1, *count, sub.ReferenceNumber, sub.FullName)
	}

	fmt.Printf("=== Done: %d created ===\n", created)
}

func demoSubmission(rng *rand.Rand, i int) *model.SubmissionInput {
	name := names[i%len(names)]
	country := countries[rng.IntN(len(countries))]
	email := strings.ToLower(strings.ReplaceAll(name, " ", ".")) + fmt.Sprintf("%d@example.com", i)

	in := &model.SubmissionInput{
		FullName:              name,
		DateOfBirth:           fmt.Sprintf("%d-%02d-%02d", 1995+rng.IntN(10), 1+rng.IntN(12), 1+rng.IntN(28)),
		Gender:                pick(rng, model.Genders),
		Email:                 email,
		PhoneNumber:           fmt.Sprintf("+233%09d", rng.IntN(1_000_000_000)),
		Nationality:           country,
		CurrentCountry:        country,
		PassportNumber:        fmt.Sprintf("P%07d", rng.IntN(10_000_000)),
		EducationLevel:        pick(rng, model.EducationLevels),
		InstitutionName:       "University of " + country,
		FieldOfStudy:          pick(rng, []string{"Computer Science", "Economics", "Nursing", "Civil Engineering"}),
		GraduationYear:        fmt.Sprintf("%d", 2015+rng.IntN(10)),
		Challenges:            []string{pick(rng, model.Challenges)},
		EmergencyName:         "Parent of " + name,
		EmergencyContact:      fmt.Sprintf("+233%09d", rng.IntN(1_000_000_000)),
		EmergencyAddress:      fmt.Sprintf("%d Independence Ave", 1+rng.IntN(200)),
		EmergencyEmail:        "family." + email,
		EmergencyCountry:      country,
		EmergencyRelationship: pick(rng, []string{"Mother", "Father", "Sibling", "Guardian"}),
		EmergencyProvince:     "Central",
		EmergencyCity:         "Capital City",
	}

	if in.EducationLevel == model.OptionOther {
		in.EducationLevelOther = "Professional certificate"
	}
	if in.Challenges[0] == model.OptionOther {
		in.ChallengesOther = "Recognition of prior learning"
	}

	// Every other applicant fills in the study-abroad section.
	if i%2 == 0 {
		in.InstitutionsPreference = "University of Toronto, TU Munich"
		in.ProgramType = pick(rng, model.ProgramTypes[:len(model.ProgramTypes)-1])
		in.FieldOfStudyAbroad = in.FieldOfStudy
		in.StudyReasons = []string{pick(rng, model.StudyReasons[:len(model.StudyReasons)-1])}
		in.FundingMethod = pick(rng, model.FundingMethods[:len(model.FundingMethods)-1])
		in.IELTSScore = fmt.Sprintf("%.1f", 5.5+float64(rng.IntN(7))*0.5)
	}
	if rng.IntN(3) == 0 {
		in.OpenToContact = true
		in.ContactMethod = "Email"
	}
	return in
}

func pick(rng *rand.Rand, options []string) string {
	return options[rng.IntN(len(options))]
}
