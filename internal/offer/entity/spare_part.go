package entity

import "fmt"

// Spare part note types
const (
	SparePartPreCommissioning = "pre-commissioning"
	SparePartTwoYear          = "two-year"
)

// ValidSparePartType reports whether t names a spare part category.
func ValidSparePartType(t string) bool {
	return t == SparePartPreCommissioning || t == SparePartTwoYear
}

// SparePartNote is a free text note kept per project and spare part category.
type SparePartNote struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
}

// SparePartCollection names the store collection holding notes of one project and type.
func SparePartCollection(projectID, noteType string) string {
	return fmt.Sprintf("spare-parts-%s-%s", projectID, noteType)
}
