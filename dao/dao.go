package dao

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/streakbeast/beastcore/stores/gdb/streak"
)

// Dao is the durability mirror of the in-memory ledger. The ledger is the
// source of truth while the process lives; the dao rebuilds it after a
// restart.
type Dao struct {
	ctx context.Context
	DB  *gorm.DB
}

func New(ctx context.Context, db *gorm.DB) *Dao {
	return &Dao{
		ctx: ctx,
		DB:  db,
	}
}

func (d *Dao) AutoMigrate() error {
	err := d.DB.AutoMigrate(
		&streak.HabitRecord{},
		&streak.PoolRecord{},
		&streak.PoolStreakRecord{},
		&streak.RewardRecord{},
		&streak.PayoutRecord{},
		&streak.MetaRecord{},
	)
	return errors.Wrap(err, "auto migrate")
}
