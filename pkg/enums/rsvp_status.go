package enums

import "fmt"

// RSVPStatus captures a guest's response to the invitation.
type RSVPStatus string

const (
	RSVPStatusPending   RSVPStatus = "pending"
	RSVPStatusAttending RSVPStatus = "attending"
	RSVPStatusDeclined  RSVPStatus = "declined"
)

var validRSVPStatuses = []RSVPStatus{
	RSVPStatusPending,
	RSVPStatusAttending,
	RSVPStatusDeclined,
}

// String implements fmt.Stringer.
func (r RSVPStatus) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RSVPStatus.
func (r RSVPStatus) IsValid() bool {
	for _, candidate := range validRSVPStatuses {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRSVPStatus converts raw input into a RSVPStatus.
func ParseRSVPStatus(value string) (RSVPStatus, error) {
	for _, candidate := range validRSVPStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid rsvp status %q", value)
}
