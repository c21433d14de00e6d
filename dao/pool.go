package dao

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/streakbeast/beastcore/stores/gdb/streak"
)

func (d *Dao) UpsertPool(c context.Context, rec *streak.PoolRecord) error {
	return d.DB.WithContext(c).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "pool_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_staked", "total_successful_streaks", "distributed", "residual", "updated_at",
			}),
		}).Create(rec).Error
}

func (d *Dao) UpsertPoolStreak(c context.Context, rec *streak.PoolStreakRecord) error {
	return d.DB.WithContext(c).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "pool_id"}, {Name: "user"}},
			DoUpdates: clause.AssignmentColumns([]string{"streak", "updated_at"}),
		}).Create(rec).Error
}

func (d *Dao) GetPool(c context.Context, poolID uint64) (*streak.PoolRecord, error) {
	var rec streak.PoolRecord
	err := d.DB.WithContext(c).
		Table(streak.PoolTableName()).Where("pool_id = ?", poolID).First(&rec).Error
	return &rec, err
}

func (d *Dao) ListPools(c context.Context) ([]streak.PoolRecord, error) {
	var recs []streak.PoolRecord
	err := d.DB.WithContext(c).
		Table(streak.PoolTableName()).Order("pool_id asc").Find(&recs).Error
	return recs, err
}

func (d *Dao) ListPoolStreaks(c context.Context, poolID uint64) ([]streak.PoolStreakRecord, error) {
	var recs []streak.PoolStreakRecord
	err := d.DB.WithContext(c).
		Table(streak.PoolStreakTableName()).Where("pool_id = ?", poolID).Order("join_order asc").Find(&recs).Error
	return recs, err
}

func (d *Dao) ListAllPoolStreaks(c context.Context) ([]streak.PoolStreakRecord, error) {
	var recs []streak.PoolStreakRecord
	err := d.DB.WithContext(c).
		Table(streak.PoolStreakTableName()).Order("pool_id asc, join_order asc").Find(&recs).Error
	return recs, err
}

func (d *Dao) CountPoolStreaks(c context.Context, poolID uint64) (int64, error) {
	var n int64
	err := d.DB.WithContext(c).
		Table(streak.PoolStreakTableName()).Where("pool_id = ?", poolID).Count(&n).Error
	return n, err
}
