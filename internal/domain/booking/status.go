package booking

import "strings"

// Status is the backend-owned booking status. The gateway never invents values.
type Status string

const (
	StatusRequested  Status = "REQUESTED"
	StatusConfirmed  Status = "CONFIRMED"
	StatusDeclined   Status = "DECLINED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// AllStatuses lists every status the backend is known to send.
var AllStatuses = []Status{
	StatusRequested,
	StatusConfirmed,
	StatusDeclined,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

// OwnerTab partitions bookings on the owner appointments screen.
type OwnerTab string

const (
	OwnerTabPending   OwnerTab = "pending"
	OwnerTabUpcoming  OwnerTab = "upcoming"
	OwnerTabPast      OwnerTab = "past"
	OwnerTabCancelled OwnerTab = "cancelled"
)

var OwnerTabs = []OwnerTab{OwnerTabPending, OwnerTabUpcoming, OwnerTabPast, OwnerTabCancelled}

// VetTab filters bookings on the vet appointments screen.
type VetTab string

const (
	VetTabAll       VetTab = "all"
	VetTabRequested VetTab = "requested"
	VetTabConfirmed VetTab = "confirmed"
	VetTabCompleted VetTab = "completed"
)

var VetTabs = []VetTab{VetTabAll, VetTabRequested, VetTabConfirmed, VetTabCompleted}

// AppointmentStatus is the label rendered on an appointment card.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentUpcoming  AppointmentStatus = "upcoming"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentRejected  AppointmentStatus = "rejected"
)

var appointmentStatuses = map[Status]AppointmentStatus{
	StatusRequested:  AppointmentPending,
	StatusConfirmed:  AppointmentUpcoming,
	StatusInProgress: AppointmentUpcoming,
	StatusCompleted:  AppointmentCompleted,
	StatusDeclined:   AppointmentRejected,
	StatusCancelled:  AppointmentCancelled,
}

func normalize(status string) Status {
	return Status(strings.ToUpper(strings.TrimSpace(status)))
}

// IsKnownStatus reports whether status (any case) is one of AllStatuses.
func IsKnownStatus(status string) bool {
	_, ok := appointmentStatuses[normalize(status)]
	return ok
}

// OwnerTabOf maps a backend status to its owner tab.
// Unrecognized statuses land in the pending tab.
func OwnerTabOf(status string) OwnerTab {
	switch normalize(status) {
	case StatusRequested:
		return OwnerTabPending
	case StatusConfirmed, StatusInProgress:
		return OwnerTabUpcoming
	case StatusCompleted:
		return OwnerTabPast
	case StatusDeclined, StatusCancelled:
		return OwnerTabCancelled
	default:
		return OwnerTabPending
	}
}

// IsPending reports whether the booking is awaiting vet action.
func IsPending(status string) bool {
	return normalize(status) == StatusRequested
}

// IsUpcoming reports whether the booking is confirmed or already under way.
func IsUpcoming(status string) bool {
	s := normalize(status)
	return s == StatusConfirmed || s == StatusInProgress
}

// AppointmentStatusOf maps a backend status to the card label, defaulting to pending.
func AppointmentStatusOf(status string) AppointmentStatus {
	if a, ok := appointmentStatuses[normalize(status)]; ok {
		return a
	}
	return AppointmentPending
}

// VetTabOf returns the specific vet tab a status belongs to besides "all".
// Declined and cancelled bookings only show up under "all".
func VetTabOf(status string) (VetTab, bool) {
	switch normalize(status) {
	case StatusRequested:
		return VetTabRequested, true
	case StatusConfirmed, StatusInProgress:
		return VetTabConfirmed, true
	case StatusCompleted:
		return VetTabCompleted, true
	default:
		return "", false
	}
}

// VetTabMatches reports whether a booking with status is listed under tab.
func VetTabMatches(tab VetTab, status string) bool {
	if tab == VetTabAll {
		return true
	}
	t, ok := VetTabOf(status)
	return ok && t == tab
}

// ParseOwnerTab parses a tab query value. Empty input returns ("", true) meaning no filter.
func ParseOwnerTab(s string) (OwnerTab, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", true
	}
	for _, t := range OwnerTabs {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// ParseVetTab parses a tab query value; anything unrecognized selects "all".
func ParseVetTab(s string) VetTab {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range VetTabs {
		if string(t) == s {
			return t
		}
	}
	return VetTabAll
}
