package interfaces

import "rundash/internal/models"

// TableStoreInterface persists the activity table. Save replaces the whole
// table; Load fails when no table exists yet.
type TableStoreInterface interface {
	Save(activities []*models.Activity) error
	Load() ([]*models.Activity, error)
	Path() string
	Close()
}
