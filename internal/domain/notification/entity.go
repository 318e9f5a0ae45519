package notification

import "strings"

// EntityType names the resource a notification points at.
type EntityType string

const (
	EntityBooking EntityType = "booking"
	EntityOrder   EntityType = "order"
	EntityCase    EntityType = "case"
	EntityScan    EntityType = "scan"
	EntityProduct EntityType = "product"
	EntitySystem  EntityType = "system"
)

var EntityTypes = []EntityType{EntityBooking, EntityOrder, EntityCase, EntityScan, EntityProduct, EntitySystem}

func parseEntityType(s string) EntityType {
	return EntityType(strings.ToLower(strings.TrimSpace(s)))
}

// Notification is the backend notification DTO. It is created server-side and
// only ever mutated by the client through the mark-read endpoint.
type Notification struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Message    string `json:"message"`
	Type       string `json:"type,omitempty"`
	EntityType string `json:"entityType,omitempty"`
	EntityID   string `json:"entityId,omitempty"`
	RelatedID  string `json:"relatedId,omitempty"`
	ActionURL  string `json:"actionUrl,omitempty"`
	IsRead     bool   `json:"isRead"`
	CreatedAt  string `json:"createdAt"`
}

// TargetID returns the referenced entity id, preferring EntityID over RelatedID.
func (n *Notification) TargetID() string {
	if id := strings.TrimSpace(n.EntityID); id != "" {
		return id
	}
	return strings.TrimSpace(n.RelatedID)
}

// UnreadIDs returns ids of unread notifications in list order.
func UnreadIDs(list []Notification) []string {
	ids := make([]string, 0, len(list))
	for _, n := range list {
		if !n.IsRead {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// CountUnread counts notifications not yet marked read.
func CountUnread(list []Notification) int {
	count := 0
	for _, n := range list {
		if !n.IsRead {
			count++
		}
	}
	return count
}
