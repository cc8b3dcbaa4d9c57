package psm

import (
	"context"
	"time"

	"vcop/core"

	"github.com/fox-one/pkg/store/db"
)

type psmStore struct {
	db *db.DB
}

// New new psm snapshot store
func New(db *db.DB) core.IPSMStore {
	return &psmStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.PSMStats{})
		if err := tx.AutoMigrate(core.PSMStats{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *psmStore) Create(ctx context.Context, stats *core.PSMStats) error {
	return s.db.Update().Create(stats).Error
}

func (s *psmStore) Latest(ctx context.Context) (*core.PSMStats, error) {
	var stats core.PSMStats
	if err := s.db.View().Order("id DESC").First(&stats).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

func (s *psmStore) DeleteBefore(ctx context.Context, t time.Time) error {
	return s.db.Update().Where("created_at < ?", t).Delete(core.PSMStats{}).Error
}
