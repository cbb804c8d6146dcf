// Package validator checks candidate records against the intake rule set.
// Validation is total: every applicable rule runs and all violations are
// collected, so a client can fix everything in one round-trip. The rule list
// is static and ordered, which makes the violation sequence deterministic for
// identical input.
package validator

import (
	"strings"
	"time"

	"github.com/crisil-hrops/preonboarding/internal/models"
)

// Violation is a single failed rule, located by a lower_snake_case dotted
// path into the wire schema.
type Violation struct {
	Field     string
	ErrorCode string
	Message   string
}

// Error codes carried by violations.
const (
	CodeRequired           = "REQUIRED"
	CodeMaxLength          = "MAX_LENGTH"
	CodeInvalid            = "INVALID"
	CodeInvalidEmail       = "INVALID_EMAIL"
	CodeInvalidMobile      = "INVALID_MOBILE"
	CodeInvalidDate        = "INVALID_DATE"
	CodeInvalidEnum        = "INVALID_ENUM"
	CodeInvalidCountryCode = "INVALID_COUNTRY_CODE"
	CodeInvalidPostal      = "INVALID_POSTAL"
	CodeInvalidRange       = "INVALID_RANGE"
	CodeInvalidPan         = "INVALID_PAN"
	CodeInvalidAadhaar     = "INVALID_AADHAAR_LAST4"
)

// rule inspects the record and reports at most one violation.
type rule func(rec *models.CandidateRecord, now time.Time) *Violation

// Validator runs the static rule list against candidate records.
type Validator struct {
	rules []rule
}

// New constructs a Validator with the full intake rule set.
func New() *Validator {
	return &Validator{rules: buildRules()}
}

// Validate runs every rule and returns the ordered violation list.
// An empty slice means the record is valid.
func (v *Validator) Validate(rec *models.CandidateRecord) []Violation {
	now := time.Now().UTC()
	var out []Violation
	for _, r := range v.rules {
		if viol := r(rec, now); viol != nil {
			out = append(out, *viol)
		}
	}
	return out
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
