package booking

// Booking is the backend booking DTO.
type Booking struct {
	ID          string `json:"id"`
	VetID       string `json:"vetId"`
	UserID      string `json:"userId"`
	VisitType   string `json:"visitType"`
	ScheduledAt string `json:"scheduledAt"`
	CaseID      string `json:"caseId,omitempty"`
	Notes       string `json:"notes,omitempty"`
	Status      string `json:"status"`
	VetName     string `json:"vetName,omitempty"`
	ClinicName  string `json:"clinicName,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}
