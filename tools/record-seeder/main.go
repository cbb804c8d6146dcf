package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/crisil-hrops/preonboarding/internal/models"
)

var (
	apiURL      = flag.String("url", "http://localhost:8080", "pre-onboarding API base URL")
	token       = flag.String("token", "", "Token header value (required)")
	companyCode = flag.String("company-code", "", "CompanyCode header value (required)")
	count       = flag.Int("count", 100, "Number of records to generate")
	interval    = flag.Duration("interval", 100*time.Millisecond, "Interval between requests")
	invalidPct  = flag.Int("invalid-pct", 0, "Percentage of payloads to corrupt, for exercising validation")
)

func main() {
	flag.Parse()

	if *token == "" || *companyCode == "" {
		log.Fatal("both -token and -company-code are required")
	}

	gofakeit.Seed(time.Now().UnixNano())

	log.Printf("Starting record seeder:")
	log.Printf("  API URL: %s", *apiURL)
	log.Printf("  Record count: %d", *count)
	log.Printf("  Interval: %v", *interval)
	log.Printf("  Invalid payloads: %d%%", *invalidPct)

	client := &http.Client{
		Timeout: 10 * time.Second,
	}

	successCount := 0
	rejectCount := 0
	failCount := 0

	for i := 0; i < *count; i++ {
		rec := generateRecord(i)
		if rand.Intn(100) < *invalidPct {
			corrupt(rec)
		}

		status, err := send(client, rec)
		switch {
		case err != nil:
			log.Printf("Failed to send record %d: %v", i, err)
			failCount++
		case status == http.StatusOK:
			successCount++
			if successCount%50 == 0 {
				log.Printf("Progress: %d/%d records accepted", successCount, *count)
			}
		default:
			rejectCount++
		}

		if *interval > 0 && i < *count-1 {
			time.Sleep(*interval)
		}
	}

	log.Printf("Seeding complete:")
	log.Printf("  Accepted: %d records", successCount)
	log.Printf("  Rejected: %d records", rejectCount)
	log.Printf("  Failed: %d records", failCount)
}

func generateRecord(i int) *models.CandidateRecord {
	joining := time.Now().AddDate(0, 0, rand.Intn(90))
	dob := gofakeit.DateRange(
		time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2002, 12, 31, 0, 0, 0, 0, time.UTC),
	)
	ctc := gofakeit.Float64Range(300000, 5000000)

	return &models.CandidateRecord{
		ExternalCandidateID: fmt.Sprintf("CAND-%06d-%s", i, gofakeit.LetterN(4)),
		CrisilOfferID:       fmt.Sprintf("OFF-%06d", i),
		JoiningStatus:       gofakeit.RandomString([]string{"OnboardingInitiated", "Joined", "OnHold"}),
		JoiningDate:         joining.Format(models.DateFormat),
		FirstName:           gofakeit.FirstName(),
		LastName:            gofakeit.LastName(),
		DateOfBirth:         dob.Format(models.DateFormat),
		Gender:              gofakeit.RandomString([]string{"Male", "Female", "Other"}),
		Nationality:         "Indian",
		PersonalEmail:       gofakeit.Email(),
		MobileCountryCode:   "+91",
		MobileNumber:        gofakeit.Numerify("##########"),
		Address: &models.Address{
			Line1:      gofakeit.Street(),
			Line2:      gofakeit.StreetName(),
			City:       gofakeit.City(),
			State:      gofakeit.State(),
			PostalCode: gofakeit.Numerify("######"),
			Country:    "India",
		},
		Job: &models.Job{
			DesignationTitle: gofakeit.JobTitle(),
			DepartmentCode:   strings.ToUpper(gofakeit.LetterN(3)),
			ManagerEmail:     gofakeit.Email(),
			WorkLocationType: gofakeit.RandomString([]string{"Onsite", "Remote", "Hybrid"}),
			EmployeeType:     gofakeit.RandomString([]string{"Permanent", "Intern", "Third Party"}),
		},
		Pay: &models.Pay{
			CtcAnnualInInr: &ctc,
			PayrollCycle:   gofakeit.RandomString([]string{"Monthly", "Annually"}),
		},
		Kyc: &models.Kyc{
			Pan:          strings.ToUpper(gofakeit.LetterN(5)) + gofakeit.Numerify("####") + strings.ToUpper(gofakeit.LetterN(1)),
			AadhaarLast4: gofakeit.Numerify("############"),
		},
		EmergencyContact: &models.EmergencyContact{
			Name:         gofakeit.Name(),
			Relationship: gofakeit.RandomString([]string{"Spouse", "Parent", "Sibling"}),
			Phone:        gofakeit.Numerify("##########"),
		},
	}
}

// corrupt flips a few fields into states the validator must reject.
func corrupt(rec *models.CandidateRecord) {
	switch rand.Intn(4) {
	case 0:
		rec.PersonalEmail = "not-an-email"
	case 1:
		rec.JoiningDate = "2025-01-31"
	case 2:
		rec.MobileNumber = "12"
	default:
		rec.ExternalCandidateID = ""
	}
}

func send(client *http.Client, rec *models.CandidateRecord) (int, error) {
	body, err := json.Marshal(rec)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequest(http.MethodPost, *apiURL+"/api/v1/pre-onboarding", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Token", *token)
	req.Header.Set("CompanyCode", *companyCode)

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}
