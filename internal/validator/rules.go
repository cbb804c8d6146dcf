package validator

import (
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/crisil-hrops/preonboarding/internal/models"
)

var (
	mobileRe      = regexp.MustCompile(`^\d{8,15}$`)
	countryCodeRe = regexp.MustCompile(`^\+\d{1,4}$`)
	postalRe      = regexp.MustCompile(`^\d{4,10}$`)
	panRe         = regexp.MustCompile(`^[A-Z]{5}\d{4}[A-Z]$`)
	aadhaarRe     = regexp.MustCompile(`^\d{12}$`)
)

// Allowed enum values, matched case-insensitively.
var (
	allowedJoiningStatus    = []string{"OnboardingInitiated", "Joined", "Cancelled", "OnHold"}
	allowedGender           = []string{"Male", "Female", "Other", "Do not prefer to disclose"}
	allowedWorkLocationType = []string{"Onsite", "Remote", "Hybrid"}
	allowedEmployeeType     = []string{"Third Party", "Permanent", "Intern"}
	allowedPayrollCycle     = []string{"Monthly", "Annually"}
)

func inEnum(value string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return true
		}
	}
	return false
}

func validEmail(value string) bool {
	addr, err := mail.ParseAddress(value)
	return err == nil && addr.Address == value
}

// buildRules assembles the static, ordered rule list. Each closure reports at
// most one violation; a blank mandatory field reports only REQUIRED so the
// client is not told a missing value is also malformed.
func buildRules() []rule {
	var rules []rule

	// external_candidate_id
	rules = append(rules,
		requiredMaxLen("external_candidate_id", 50,
			func(r *models.CandidateRecord) string { return r.ExternalCandidateID }),
		// crisil_offer_id
		requiredMaxLen("crisil_offer_id", 50,
			func(r *models.CandidateRecord) string { return r.CrisilOfferID }),
	)

	// joining_date
	rules = append(rules, func(r *models.CandidateRecord, _ time.Time) *Violation {
		if blank(r.JoiningDate) {
			return &Violation{Field: "joining_date", ErrorCode: CodeRequired, Message: "joining_date is mandatory."}
		}
		if _, err := models.ParseDate(r.JoiningDate); err != nil {
			return &Violation{Field: "joining_date", ErrorCode: CodeInvalid, Message: "joining_date must be in dd-MM-yyyy format."}
		}
		return nil
	})

	// first_name, last_name
	rules = append(rules,
		requiredMaxLen("first_name", 100,
			func(r *models.CandidateRecord) string { return r.FirstName }),
		requiredMaxLen("last_name", 100,
			func(r *models.CandidateRecord) string { return r.LastName }),
	)

	// date_of_birth: mandatory, parseable and strictly in the past
	rules = append(rules, func(r *models.CandidateRecord, now time.Time) *Violation {
		if blank(r.DateOfBirth) {
			return &Violation{Field: "date_of_birth", ErrorCode: CodeRequired, Message: "date_of_birth is mandatory."}
		}
		dob, err := models.ParseDate(r.DateOfBirth)
		if err != nil {
			return &Violation{Field: "date_of_birth", ErrorCode: CodeInvalid, Message: "date_of_birth must be in dd-MM-yyyy format."}
		}
		if !dob.Time.Before(now) {
			return &Violation{Field: "date_of_birth", ErrorCode: CodeInvalidDate, Message: "date_of_birth must be in the past."}
		}
		return nil
	})

	// personal_email
	rules = append(rules, func(r *models.CandidateRecord, _ time.Time) *Violation {
		if blank(r.PersonalEmail) {
			return &Violation{Field: "personal_email", ErrorCode: CodeRequired, Message: "personal_email is mandatory."}
		}
		if !validEmail(r.PersonalEmail) {
			return &Violation{Field: "personal_email", ErrorCode: CodeInvalidEmail, Message: "personal_email is not a valid email."}
		}
		return nil
	})

	// mobile_number
	rules = append(rules, func(r *models.CandidateRecord, _ time.Time) *Violation {
		if blank(r.MobileNumber) {
			return &Violation{Field: "mobile_number", ErrorCode: CodeRequired, Message: "mobile_number is mandatory."}
		}
		if !mobileRe.MatchString(r.MobileNumber) {
			return &Violation{Field: "mobile_number", ErrorCode: CodeInvalidMobile, Message: "mobile_number must be 8-15 digits."}
		}
		return nil
	})

	// joining_status / gender enums, only checked when non-blank
	rules = append(rules,
		enumRule("joining_status", allowedJoiningStatus,
			"joining_status is invalid. Allowed: OnboardingInitiated/Joined/Cancelled/OnHold.",
			func(r *models.CandidateRecord) string { return r.JoiningStatus }),
		enumRule("gender", allowedGender,
			"gender is invalid. Allowed: Male/Female/Other/Do not prefer to disclose.",
			func(r *models.CandidateRecord) string { return r.Gender }),
	)

	// nationality
	rules = append(rules, func(r *models.CandidateRecord, _ time.Time) *Violation {
		if !blank(r.Nationality) && len(r.Nationality) > 50 {
			return &Violation{Field: "nationality", ErrorCode: CodeMaxLength, Message: "nationality max length is 50."}
		}
		return nil
	})

	// mobile_country_code
	rules = append(rules, func(r *models.CandidateRecord, _ time.Time) *Violation {
		if !blank(r.MobileCountryCode) && !countryCodeRe.MatchString(r.MobileCountryCode) {
			return &Violation{Field: "mobile_country_code", ErrorCode: CodeInvalidCountryCode, Message: "mobile_country_code must be like +91."}
		}
		return nil
	})

	rules = append(rules, addressRules()...)
	rules = append(rules, jobRules()...)
	rules = append(rules, payRules()...)
	rules = append(rules, kycRules()...)
	rules = append(rules, emergencyContactRules()...)

	return rules
}

// requiredMaxLen covers the common mandatory-with-length-cap pattern.
func requiredMaxLen(field string, max int, get func(*models.CandidateRecord) string) rule {
	return func(r *models.CandidateRecord, _ time.Time) *Violation {
		v := get(r)
		if blank(v) {
			return &Violation{Field: field, ErrorCode: CodeRequired, Message: field + " is mandatory."}
		}
		if len(v) > max {
			return &Violation{Field: field, ErrorCode: CodeMaxLength, Message: field + " max length is " + strconv.Itoa(max) + "."}
		}
		return nil
	}
}

func enumRule(field string, allowed []string, message string, get func(*models.CandidateRecord) string) rule {
	return func(r *models.CandidateRecord, _ time.Time) *Violation {
		v := get(r)
		if !blank(v) && !inEnum(v, allowed) {
			return &Violation{Field: field, ErrorCode: CodeInvalidEnum, Message: message}
		}
		return nil
	}
}

// addressRules apply only when the address section is present; an absent
// section skips the whole group.
func addressRules() []rule {
	return []rule{
		func(r *models.CandidateRecord, _ time.Time) *Violation {
			if r.Address == nil {
				return nil
			}
			if blank(r.Address.Line1) {
				return &Violation{Field: "address.line1", ErrorCode: CodeRequired, Message: "address.line1 is required when address is provided."}
			}
			if len(r.Address.Line1) > 200 {
				return &Violation{Field: "address.line1", ErrorCode: CodeMaxLength, Message: "address.line1 max length is 200."}
			}
			return nil
		},
		func(r *models.CandidateRecord, _ time.Time) *Violation {
			if r.Address == nil {
				return nil
			}
			if blank(r.Address.City) {
				return &Violation{Field: "address.city", ErrorCode: CodeRequired, Message: "address.city is required when address is provided."}
			}
			if len(r.Address.City) > 80 {
				return &Violation{Field: "address.city", ErrorCode: CodeMaxLength, Message: "address.city max length is 80."}
			}
			return nil
		},
		func(r *models.CandidateRecord, _ time.Time) *Violation {
			if r.Address == nil || blank(r.Address.PostalCode) {
				return nil
			}
			if !postalRe.MatchString(r.Address.PostalCode) {
				return &Violation{Field: "address.postal_code", ErrorCode: CodeInvalidPostal, Message: "address.postal_code must be 4-10 digits."}
			}
			return nil
		},
	}
}

func jobRules() []rule {
	return []rule{
		func(r *models.CandidateRecord, _ time.Time) *Violation {
			if r.Job == nil || blank(r.Job.ManagerEmail) {
				return nil
			}
			if !validEmail(r.Job.ManagerEmail) {
				return &Violation{Field: "job.manager_email", ErrorCode: CodeInvalidEmail, Message: "job.manager_email is not a valid email."}
			}
			return nil
		},
		func(r *models.CandidateRecord, _ time.Time) *Violation {
			if r.Job == nil || blank(r.Job.WorkLocationType) {
				return nil
			}
			if !inEnum(r.Job.WorkLocationType, allowedWorkLocationType) {
				return &Violation{Field: "job.work_location_type", ErrorCode: CodeInvalidEnum, Message: "job.work_location_type is invalid. Allowed: Onsite/Remote/Hybrid."}
			}
			return nil
		},
		func(r *models.CandidateRecord, _ time.Time) *Violation {
			if r.Job == nil || blank(r.Job.EmployeeType) {
				return nil
			}
			if !inEnum(r.Job.EmployeeType, allowedEmployeeType) {
				return &Violation{Field: "job.employee_type", ErrorCode: CodeInvalidEnum, Message: "job.employee_type is invalid. Allowed: Third Party/Permanent/Intern."}
			}
			return nil
		},
	}
}

func payRules() []rule {
	return []rule{
		func(r *models.CandidateRecord, _ time.Time) *Violation {
			if r.Pay == nil || r.Pay.CtcAnnualInInr == nil {
				return nil
			}
			if *r.Pay.CtcAnnualInInr <= 0 {
				return &Violation{Field: "pay.ctc_annual_in_inr", ErrorCode: CodeInvalidRange, Message: "pay.ctc_annual_in_inr must be > 0."}
			}
			return nil
		},
		func(r *models.CandidateRecord, _ time.Time) *Violation {
			if r.Pay == nil || blank(r.Pay.PayrollCycle) {
				return nil
			}
			if !inEnum(r.Pay.PayrollCycle, allowedPayrollCycle) {
				return &Violation{Field: "pay.payroll_cycle", ErrorCode: CodeInvalidEnum, Message: "pay.payroll_cycle is invalid. Allowed: Monthly/Annually."}
			}
			return nil
		},
	}
}

func kycRules() []rule {
	return []rule{
		func(r *models.CandidateRecord, _ time.Time) *Violation {
			if r.Kyc == nil || blank(r.Kyc.Pan) {
				return nil
			}
			if !panRe.MatchString(r.Kyc.Pan) {
				return &Violation{Field: "kyc.pan", ErrorCode: CodeInvalidPan, Message: "kyc.pan is invalid."}
			}
			return nil
		},
		// aadhaar_last4 is validated as 12 digits, not 4. The field name is a
		// known inconsistency in the accepted contract; the 12-digit rule is
		// what shipped, so it stays until product says otherwise.
		func(r *models.CandidateRecord, _ time.Time) *Violation {
			if r.Kyc == nil || blank(r.Kyc.AadhaarLast4) {
				return nil
			}
			if !aadhaarRe.MatchString(r.Kyc.AadhaarLast4) {
				return &Violation{Field: "kyc.aadhaar_last4", ErrorCode: CodeInvalidAadhaar, Message: "kyc.aadhaar_last4 must be 12 digits."}
			}
			return nil
		},
	}
}

func emergencyContactRules() []rule {
	return []rule{
		func(r *models.CandidateRecord, _ time.Time) *Violation {
			if r.EmergencyContact == nil || blank(r.EmergencyContact.Phone) {
				return nil
			}
			if !mobileRe.MatchString(r.EmergencyContact.Phone) {
				return &Violation{Field: "emergency_contact.phone", ErrorCode: CodeInvalidMobile, Message: "emergency_contact.phone must be 8-15 digits."}
			}
			return nil
		},
	}
}

