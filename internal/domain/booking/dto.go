package booking

import "anilink/internal/cache"

type CreateBookingRequest struct {
	VetID       string `json:"vetId" binding:"required"`
	CaseID      string `json:"caseId,omitempty"`
	VisitType   string `json:"visitType" binding:"required"`
	ScheduledAt string `json:"scheduledAt" binding:"required"`
	Notes       string `json:"notes,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// View is a booking annotated with the tab and card label it renders under.
type View struct {
	Booking
	OwnerTab          OwnerTab          `json:"ownerTab"`
	AppointmentStatus AppointmentStatus `json:"appointmentStatus"`
	VetTab            VetTab            `json:"vetTab,omitempty"`
	IsPending         bool              `json:"isPending"`
	IsUpcoming        bool              `json:"isUpcoming"`
}

func NewView(b Booking) View {
	v := View{
		Booking:           b,
		OwnerTab:          OwnerTabOf(b.Status),
		AppointmentStatus: AppointmentStatusOf(b.Status),
		IsPending:         IsPending(b.Status),
		IsUpcoming:        IsUpcoming(b.Status),
	}
	if tab, ok := VetTabOf(b.Status); ok {
		v.VetTab = tab
	}
	return v
}

type ListResponse struct {
	Bookings []View         `json:"bookings"`
	Tab      string         `json:"tab,omitempty"`
	Counts   map[string]int `json:"counts"`
	Meta     cache.Meta     `json:"meta"`
}

type DetailResponse struct {
	Booking View       `json:"booking"`
	Meta    cache.Meta `json:"meta"`
}
