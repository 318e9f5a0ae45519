package notification

import "anilink/internal/cache"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// View is a notification with its resolved deep link.
type View struct {
	Notification
	Href    string `json:"href,omitempty"`
	CanView bool   `json:"canView"`
}

type ListQuery struct {
	Limit      int  `form:"limit"`
	Offset     int  `form:"offset"`
	UnreadOnly bool `form:"unread"`
}

func (q ListQuery) normalized() ListQuery {
	if q.Limit <= 0 {
		q.Limit = DefaultPageSize
	}
	if q.Limit > MaxPageSize {
		q.Limit = MaxPageSize
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return q
}

type ListResponse struct {
	Notifications []View     `json:"notifications"`
	UnreadCount   int        `json:"unreadCount"`
	Total         int        `json:"total"`
	Meta          cache.Meta `json:"meta"`
}

type UnreadCountResponse struct {
	UnreadCount int        `json:"unreadCount"`
	Meta        cache.Meta `json:"meta"`
}

// MarkAllResult reports how a mark-all-read run went.
type MarkAllResult struct {
	Requested int `json:"requested"`
	Failed    int `json:"failed"`
}
