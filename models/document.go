package models

import "time"

// PatientDocument references an uploaded file (intake form, referral letter,
// report) stored in Cloudinary.
type PatientDocument struct {
	ID         string    `bson:"id" json:"id,omitempty"`
	ProviderID string    `bson:"providerId" json:"providerId"`
	PatientID  string    `bson:"patientId" json:"patientId"`
	FileName   string    `bson:"fileName" json:"fileName"`
	PublicID   string    `bson:"publicId" json:"-"` // cloudinary asset ID
	URL        string    `bson:"url" json:"url"`
	UploadedAt time.Time `bson:"uploadedAt" json:"uploadedAt"`
}
