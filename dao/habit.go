package dao

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/streakbeast/beastcore/stores/gdb/streak"
)

func (d *Dao) UpsertHabit(c context.Context, rec *streak.HabitRecord) error {
	return d.DB.WithContext(c).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "habit_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"last_check_in", "current_streak", "longest_streak", "active", "claimed", "updated_at",
			}),
		}).Create(rec).Error
}

func (d *Dao) GetHabit(c context.Context, habitID uint64) (*streak.HabitRecord, error) {
	var rec streak.HabitRecord
	err := d.DB.WithContext(c).
		Table(streak.HabitTableName()).Where("habit_id = ?", habitID).First(&rec).Error
	return &rec, err
}

func (d *Dao) ListHabits(c context.Context) ([]streak.HabitRecord, error) {
	var recs []streak.HabitRecord
	err := d.DB.WithContext(c).
		Table(streak.HabitTableName()).Order("habit_id asc").Find(&recs).Error
	return recs, err
}

func (d *Dao) ListUserHabits(c context.Context, owner string) ([]streak.HabitRecord, error) {
	var recs []streak.HabitRecord
	err := d.DB.WithContext(c).
		Table(streak.HabitTableName()).Where("owner = ?", owner).Order("habit_id asc").Find(&recs).Error
	return recs, err
}
