package service

import (
	"encoding/json"

	"github.com/crisil-hrops/preonboarding/internal/models"
)

// toResponse projects a stored row back to the wire shape. Nested blobs are
// deserialized defensively: a corrupt blob degrades to a nil section instead
// of failing the whole response.
func toResponse(rec *models.StoredRecord) *models.RecordResponse {
	return &models.RecordResponse{
		ID:                  rec.ID,
		ExternalCandidateID: rec.ExternalCandidateID,
		CrisilOfferID:       rec.CrisilOfferID,
		JoiningStatus:       rec.JoiningStatus,
		JoiningDate:         models.Date{Time: rec.JoiningDate},
		FirstName:           rec.FirstName,
		LastName:            rec.LastName,
		DateOfBirth:         models.Date{Time: rec.DateOfBirth},
		Gender:              rec.Gender,
		Nationality:         rec.Nationality,
		PersonalEmail:       rec.PersonalEmail,
		MobileCountryCode:   rec.MobileCountryCode,
		MobileNumber:        rec.MobileNumber,

		Address:          decodeSection[models.Address](rec.AddressJSON),
		Job:              decodeSection[models.Job](rec.JobJSON),
		Pay:              decodeSection[models.Pay](rec.PayJSON),
		Kyc:              decodeSection[models.Kyc](rec.KycJSON),
		EmergencyContact: decodeSection[models.EmergencyContact](rec.EmergencyContactJSON),

		CreatedUTC: rec.CreatedUTC,
		UpdatedUTC: rec.UpdatedUTC,
	}
}

// decodeSection unmarshals an opaque nested blob, returning nil on any
// malformed content. The read path never surfaces a 500 for this reason.
func decodeSection[T any](blob *string) *T {
	if blob == nil || *blob == "" {
		return nil
	}
	var out T
	if err := json.Unmarshal([]byte(*blob), &out); err != nil {
		return nil
	}
	return &out
}
