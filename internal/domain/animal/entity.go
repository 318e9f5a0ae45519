package animal

// Animal is an owner's animal profile.
type Animal struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Type               string   `json:"type"`
	Breed              string   `json:"breed,omitempty"`
	DateOfBirth        string   `json:"dateOfBirth,omitempty"`
	Gender             string   `json:"gender,omitempty"`
	Color              string   `json:"color,omitempty"`
	TagNumber          string   `json:"tagNumber,omitempty"`
	ImageURL           string   `json:"imageUrl,omitempty"`
	VaccinationRecords []string `json:"vaccinationRecords,omitempty"`
	TreatmentRecords   []string `json:"treatmentRecords,omitempty"`
	CaseIDs            []string `json:"caseIds,omitempty"`
	CreatedAt          string   `json:"createdAt,omitempty"`
	UpdatedAt          string   `json:"updatedAt,omitempty"`
}

func animalID(a Animal) string { return a.ID }
