package repo

import (
	"context"

	"github.com/joripage/matchengine/pkg/report"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TradeSQLRepo struct {
	db *gorm.DB
}

func NewTradeSQLRepo(db *gorm.DB) *TradeSQLRepo {
	return &TradeSQLRepo{
		db: db,
	}
}

func (s *TradeSQLRepo) dbWithContext(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// Create inserts one trade; redelivered events are ignored on conflict so the
// worker can ack at-least-once without duplicating rows.
func (s *TradeSQLRepo) Create(ctx context.Context, record *report.TradeEvent) (*report.TradeEvent, error) {
	return record, s.dbWithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(record).Error
}

func (s *TradeSQLRepo) BulkCreate(ctx context.Context, records []*report.TradeEvent) ([]*report.TradeEvent, error) {
	return records, s.dbWithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(records).Error
}
