package dao

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/streakbeast/beastcore/stores/gdb/streak"
)

func (d *Dao) UpsertReward(c context.Context, rec *streak.RewardRecord) error {
	return d.DB.WithContext(c).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "pool_id"}, {Name: "user"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
		}).Create(rec).Error
}

// DeleteReward removes the unclaimed balance row once a claim is committed.
func (d *Dao) DeleteReward(c context.Context, poolID uint64, user string) error {
	return d.DB.WithContext(c).
		Where("pool_id = ? and user = ?", poolID, user).
		Delete(&streak.RewardRecord{}).Error
}

func (d *Dao) ListRewards(c context.Context) ([]streak.RewardRecord, error) {
	var recs []streak.RewardRecord
	err := d.DB.WithContext(c).
		Table(streak.RewardTableName()).Order("pool_id asc, user asc").Find(&recs).Error
	return recs, err
}

func (d *Dao) CreatePayout(c context.Context, rec *streak.PayoutRecord) error {
	return d.DB.WithContext(c).Create(rec).Error
}

func (d *Dao) UpdatePayoutStatus(c context.Context, id int64, status streak.PayoutStatus, txHash string) error {
	return d.DB.WithContext(c).
		Model(&streak.PayoutRecord{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "tx_hash": txHash}).Error
}

func (d *Dao) ListUserPayouts(c context.Context, user string) ([]streak.PayoutRecord, error) {
	var recs []streak.PayoutRecord
	err := d.DB.WithContext(c).
		Table(streak.PayoutTableName()).Where("user = ?", user).Order("id desc").Find(&recs).Error
	return recs, err
}
