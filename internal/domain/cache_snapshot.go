package domain

import "time"

// CacheSnapshot keeps the last result applied for one cache key of one user,
// so a cold session can still answer while the backend is unreachable.
type CacheSnapshot struct {
	Owner string `json:"owner" gorm:"primaryKey;size:128"`
	Key   string `json:"key" gorm:"column:cache_key;primaryKey;size:512"`

	Data []byte `json:"-" gorm:"not null"`

	FetchedAt time.Time `json:"fetched_at" gorm:"index;not null"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CacheSnapshot) TableName() string {
	return "cache_snapshots"
}

func (s *CacheSnapshot) IsOlderThan(cutoff time.Time) bool {
	return s.FetchedAt.Before(cutoff)
}
