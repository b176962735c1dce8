package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type Resume struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	UserID         uint           `json:"userId" gorm:"not null;index"`
	FileURL        string         `json:"fileUrl" gorm:"not null;size:1000"`
	FileName       string         `json:"fileName" gorm:"not null;size:255"`
	ParsedData     datatypes.JSON `json:"parsedData"`
	SuggestedRoles datatypes.JSON `json:"suggestedRoles"`
	UploadedAt     time.Time      `json:"uploadedAt" gorm:"index"`
}

func (Resume) TableName() string {
	return "resumes"
}

// ParsedResume is the tagged document stored in Resume.ParsedData. Unknown
// keys are preserved by callers that round-trip the raw JSON instead.
type ParsedResume struct {
	Skills     []string        `json:"skills,omitempty"`
	Experience json.RawMessage `json:"experience,omitempty"`
	Education  json.RawMessage `json:"education,omitempty"`
	Summary    string          `json:"summary,omitempty"`
}

// Parsed decodes ParsedData. A missing or malformed document yields an empty value.
func (r *Resume) Parsed() ParsedResume {
	var parsed ParsedResume
	if len(r.ParsedData) == 0 {
		return parsed
	}
	_ = json.Unmarshal(r.ParsedData, &parsed)
	return parsed
}

// HasExperience reports whether the experience entry carries any content.
func (p ParsedResume) HasExperience() bool {
	switch string(p.Experience) {
	case "", "null", "[]", `""`, "{}":
		return false
	}
	return true
}
