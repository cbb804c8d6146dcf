// Package models holds the wire and storage shapes for pre-onboarding records.
// All JSON keys are lower_snake_case and absent optional fields are omitted
// rather than emitted as null.
package models

import "time"

// CandidateRecord is the untrusted intake payload. Every field is optional at
// the type level; the validator decides what is mandatory. Date fields stay
// raw strings here so a malformed date is collected alongside the other
// violations instead of aborting the bind.
type CandidateRecord struct {
	ExternalCandidateID string `json:"external_candidate_id,omitempty"`
	CrisilOfferID       string `json:"crisil_offer_id,omitempty"`
	JoiningStatus       string `json:"joining_status,omitempty"`
	JoiningDate         string `json:"joining_date,omitempty"`
	FirstName           string `json:"first_name,omitempty"`
	LastName            string `json:"last_name,omitempty"`
	DateOfBirth         string `json:"date_of_birth,omitempty"`
	Gender              string `json:"gender,omitempty"`
	Nationality         string `json:"nationality,omitempty"`
	PersonalEmail       string `json:"personal_email,omitempty"`
	MobileCountryCode   string `json:"mobile_country_code,omitempty"`
	MobileNumber        string `json:"mobile_number,omitempty"`

	Address          *Address          `json:"address,omitempty"`
	Job              *Job              `json:"job,omitempty"`
	Pay              *Pay              `json:"pay,omitempty"`
	Kyc              *Kyc              `json:"kyc,omitempty"`
	EmergencyContact *EmergencyContact `json:"emergency_contact,omitempty"`
}

// Address is an optional nested section of the candidate record.
type Address struct {
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Job is an optional nested section of the candidate record.
type Job struct {
	DesignationTitle  string `json:"designation_title,omitempty"`
	DepartmentCode    string `json:"department_code,omitempty"`
	CostCenterCode    string `json:"cost_center_code,omitempty"`
	Grade             string `json:"grade,omitempty"`
	LocationCode      string `json:"location_code,omitempty"`
	WorkLocationType  string `json:"work_location_type,omitempty"`
	ManagerEmployeeID string `json:"manager_employee_id,omitempty"`
	ManagerEmail      string `json:"manager_email,omitempty"`
	EmployeeType      string `json:"employee_type,omitempty"`
	ProbationEndDate  string `json:"probation_end_date,omitempty"`
}

// Pay is an optional nested section of the candidate record.
type Pay struct {
	CtcAnnualInInr *float64 `json:"ctc_annual_in_inr,omitempty"`
	PayrollCycle   string   `json:"payroll_cycle,omitempty"`
}

// Kyc is an optional nested section of the candidate record.
type Kyc struct {
	Pan          string `json:"pan,omitempty"`
	AadhaarLast4 string `json:"aadhaar_last4,omitempty"`
	Uan          string `json:"uan,omitempty"`
	EsiNumber    string `json:"esi_number,omitempty"`
}

// EmergencyContact is an optional nested section of the candidate record.
type EmergencyContact struct {
	Name         string `json:"name,omitempty"`
	Relationship string `json:"relationship,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// StoredRecord is the durable row. Nested sections are kept as opaque JSON
// text; nothing queries inside them, they are only round-tripped.
type StoredRecord struct {
	ID                  int64
	ExternalCandidateID string
	CrisilOfferID       string
	JoiningStatus       *string
	JoiningDate         time.Time
	FirstName           string
	LastName            string
	DateOfBirth         time.Time
	Gender              *string
	Nationality         *string
	PersonalEmail       string
	MobileCountryCode   *string
	MobileNumber        string

	AddressJSON          *string
	JobJSON              *string
	PayJSON              *string
	KycJSON              *string
	EmergencyContactJSON *string

	CreatedUTC     time.Time
	UpdatedUTC     *time.Time
	CreatedBy      *string
	UpdatedBy      *string
	RawRequestJSON *string
	Status         string
}

// RecordStatusActive is the status assigned to every newly stored record.
const RecordStatusActive = "Active"

// CreateData is the success payload of a POST.
type CreateData struct {
	ID                  int64  `json:"id"`
	ExternalCandidateID string `json:"external_candidate_id"`
	CrisilOfferID       string `json:"crisil_offer_id"`
}

// RecordResponse is the read-path projection of a StoredRecord.
type RecordResponse struct {
	ID                  int64   `json:"id"`
	ExternalCandidateID string  `json:"external_candidate_id"`
	CrisilOfferID       string  `json:"crisil_offer_id"`
	JoiningStatus       *string `json:"joining_status,omitempty"`
	JoiningDate         Date    `json:"joining_date"`
	FirstName           string  `json:"first_name"`
	LastName            string  `json:"last_name"`
	DateOfBirth         Date    `json:"date_of_birth"`
	Gender              *string `json:"gender,omitempty"`
	Nationality         *string `json:"nationality,omitempty"`
	PersonalEmail       string  `json:"personal_email"`
	MobileCountryCode   *string `json:"mobile_country_code,omitempty"`
	MobileNumber        string  `json:"mobile_number"`

	Address          *Address          `json:"address,omitempty"`
	Job              *Job              `json:"job,omitempty"`
	Pay              *Pay              `json:"pay,omitempty"`
	Kyc              *Kyc              `json:"kyc,omitempty"`
	EmergencyContact *EmergencyContact `json:"emergency_contact,omitempty"`

	CreatedUTC time.Time  `json:"created_utc"`
	UpdatedUTC *time.Time `json:"updated_utc,omitempty"`
}

// SearchRequest carries the search filters and paging inputs. Nil dates mean
// no predicate on that bound.
type SearchRequest struct {
	ExternalCandidateID string
	CrisilOfferID       string
	From                *time.Time
	To                  *time.Time
	Page                int
	PageSize            int
}

// SearchData is the success payload of a search.
type SearchData struct {
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Total    int               `json:"total"`
	Items    []*RecordResponse `json:"items"`
}
