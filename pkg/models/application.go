package models

import (
	"strings"

	"github.com/google/uuid"
)

// Verification application statuses. An application is pending until it
// reaches one of the two terminal states; transitions are one-way.
const (
	StatusApproved = "approved"
	StatusDeclined = "declined"
)

// Application is a user verification request submitted from the app.
type Application struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Institution string    `json:"institution"`
	Status      string    `json:"status"`
	FileURL     string    `json:"file_url"`
}

// IsTerminalStatus reports whether status is approved or declined.
func IsTerminalStatus(status string) bool {
	return status == StatusApproved || status == StatusDeclined
}

// IsValidDecision reports whether decision is an allowed resolution.
func IsValidDecision(decision string) bool {
	return decision == StatusApproved || decision == StatusDeclined
}

// IsPDF reports whether the application's attachment should go through the
// download-with-filename path rather than opening directly.
func IsPDF(fileURL string) bool {
	return strings.HasSuffix(strings.ToLower(fileURL), ".pdf")
}

// ApplicationFromDocument builds a typed view over an applications document.
func ApplicationFromDocument(doc *Document) *Application {
	return &Application{
		ID:          doc.ID,
		Email:       doc.Fields.String("gmail"),
		Institution: doc.Fields.String("institution"),
		Status:      doc.Fields.String("status"),
		FileURL:     doc.Fields.String("fileUrl"),
	}
}
