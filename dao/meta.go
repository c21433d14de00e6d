package dao

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/streakbeast/beastcore/stores/gdb/streak"
)

func (d *Dao) SetMeta(c context.Context, key, value string) error {
	return d.DB.WithContext(c).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "meta_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"meta_value", "updated_at"}),
		}).Create(&streak.MetaRecord{Key: key, Value: value}).Error
}

func (d *Dao) GetMeta(c context.Context, key string) (string, error) {
	var rec streak.MetaRecord
	err := d.DB.WithContext(c).
		Table(streak.MetaTableName()).Where("meta_key = ?", key).First(&rec).Error
	return rec.Value, err
}
