package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// DatasetFile is the top-level JSON structure of a contacts dataset: a
// bare array of people with calendar-date strings.
type DatasetFile []PersonImport

// PersonImport defines one contact in the dataset file.
type PersonImport struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	ProfileImage       string           `json:"profileImage,omitempty"`
	Role               string           `json:"role"`
	Company            string           `json:"company"`
	Email              string           `json:"email,omitempty"`
	Phone              string           `json:"phone,omitempty"`
	ReputationScore    *int             `json:"reputationScore,omitempty"`
	LastContactedDate  string           `json:"lastContactedDate,omitempty"`
	SocialMedia        []SocialImport   `json:"socialMedia,omitempty"`
	RelationshipStatus string           `json:"relationshipStatus,omitempty"`
	Meetings           []MeetingImport  `json:"meetings,omitempty"`
	Tasks              []TaskImport     `json:"tasks,omitempty"`
	Finances           []FinanceImport  `json:"finances,omitempty"`
	Timeline           []TimelineImport `json:"timeline,omitempty"`
}

type SocialImport struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
	Username string `json:"username"`
}

type MeetingImport struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Sentiment string `json:"sentiment,omitempty"`
}

type TaskImport struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	DueDate  string `json:"dueDate"`
	Status   string `json:"status,omitempty"`
	Priority string `json:"priority,omitempty"`
}

type FinanceImport struct {
	ID          string  `json:"id"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency,omitempty"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
}

type TimelineImport struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// LoadDataset reads and parses a contacts dataset file.
func LoadDataset(path string) (DatasetFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file DatasetFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing dataset file: %w", err)
	}
	return file, nil
}

// WriteDataset writes file as indented JSON to path.
func WriteDataset(path string, file DatasetFile) error {
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding dataset: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing dataset file: %w", err)
	}
	return nil
}
