package store

import (
	"context"

	"github.com/imgoedu/imgo-backend/internal/model"
)

// List caps: appends keep only the most recent N records.
const (
	MaxEvents     = 20000
	MaxLeads      = 5000
	MaxAgreements = 5000
)

// Database is the full snapshot held by the store. Reads and writes always
// move the whole snapshot; concurrent writers race and the last writer wins,
// which is acceptable for this low-traffic demo store only.
type Database struct {
	Events     []model.Event     `json:"events"`
	Leads      []model.Lead      `json:"leads"`
	Agreements []model.Agreement `json:"agreements"`
}

// Store is the persistence contract. Write returns an explicit error so
// callers can decide whether to surface or just log it; nothing is swallowed
// at this layer.
type Store interface {
	Read(ctx context.Context) (Database, error)
	Write(ctx context.Context, db Database) error
}

// CapTail returns the most recent max elements of list, preserving order.
func CapTail[T any](list []T, max int) []T {
	if len(list) <= max {
		return list
	}
	return list[len(list)-max:]
}

func normalize(db Database) Database {
	if db.Events == nil {
		db.Events = []model.Event{}
	}
	if db.Leads == nil {
		db.Leads = []model.Lead{}
	}
	if db.Agreements == nil {
		db.Agreements = []model.Agreement{}
	}
	return db
}
