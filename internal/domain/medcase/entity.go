package medcase

import "strings"

const (
	StatusOpen   = "open"
	StatusClosed = "closed"

	ScopeOwner = "owner"
	ScopeVet   = "vet"
)

// AIAssessment is the triage result attached to a case once analysis finishes.
type AIAssessment struct {
	Status      string   `json:"status"`
	Confidence  *float64 `json:"confidence,omitempty"`
	Severity    *string  `json:"severity,omitempty"`
	CompletedAt string   `json:"completedAt,omitempty"`
}

// Case is a reported health problem for an animal.
type Case struct {
	ID           string        `json:"id"`
	AnimalType   string        `json:"animalType"`
	ImageURLs    []string      `json:"imageUrls"`
	Symptoms     []string      `json:"symptoms"`
	Notes        *string       `json:"notes,omitempty"`
	Location     *string       `json:"location,omitempty"`
	District     *string       `json:"district,omitempty"`
	Status       string        `json:"status"`
	AIAssessment *AIAssessment `json:"aiAssessment,omitempty"`
	AnimalID     *string       `json:"animalId,omitempty"`
	CreatedAt    string        `json:"createdAt,omitempty"`
	UpdatedAt    string        `json:"updatedAt,omitempty"`
}

func (c *Case) IsClosed() bool {
	return strings.EqualFold(c.Status, StatusClosed)
}

// ListFilter narrows a case listing. Empty fields are not sent upstream.
type ListFilter struct {
	AnimalID string
	Status   string
	Scope    string
}
