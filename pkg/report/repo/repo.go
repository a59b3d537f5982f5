package repo

import (
	"context"

	"github.com/joripage/matchengine/pkg/report"
	"gorm.io/gorm"
)

type IRepo interface {
	Trade() ITrade
}

type ITrade interface {
	Create(ctx context.Context, record *report.TradeEvent) (*report.TradeEvent, error)
	BulkCreate(ctx context.Context, records []*report.TradeEvent) ([]*report.TradeEvent, error)
}

type Repo struct {
	tradeDB *gorm.DB
}

func NewRepo(tradeDB *gorm.DB) IRepo {
	return &Repo{
		tradeDB: tradeDB,
	}
}

func (r *Repo) Trade() ITrade {
	return NewTradeSQLRepo(r.tradeDB)
}
