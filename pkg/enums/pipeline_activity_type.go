package enums

import "fmt"

// PipelineActivityType captures the kind of an append-only lead activity entry.
type PipelineActivityType string

const (
	PipelineActivityCreated      PipelineActivityType = "created"
	PipelineActivityStageChanged PipelineActivityType = "stage_changed"
	PipelineActivityNote         PipelineActivityType = "note"
	PipelineActivityConverted    PipelineActivityType = "converted"
)

var validPipelineActivityTypes = []PipelineActivityType{
	PipelineActivityCreated,
	PipelineActivityStageChanged,
	PipelineActivityNote,
	PipelineActivityConverted,
}

// String implements fmt.Stringer.
func (p PipelineActivityType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PipelineActivityType.
func (p PipelineActivityType) IsValid() bool {
	for _, candidate := range validPipelineActivityTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePipelineActivityType converts raw input into a PipelineActivityType.
func ParsePipelineActivityType(value string) (PipelineActivityType, error) {
	for _, candidate := range validPipelineActivityTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pipeline activity type %q", value)
}
