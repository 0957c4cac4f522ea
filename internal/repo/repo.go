package repo

import "gorm.io/gorm"

// GormRepo is the storage adapter for every record type. Multi-step writes
// (session replacement, membership seeding, bulk member addition) run inside
// a single transaction so partial application cannot happen.
type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}
