package price

import (
	"context"
	"errors"
	"strings"

	"vcop/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/lib/pq"
)

type priceStore struct {
	db *db.DB
}

// New new price store
func New(db *db.DB) core.IPriceStore {
	return &priceStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Price{})

		if err := tx.AutoMigrate(core.Price{}).Error; err != nil {
			return err
		}

		return nil
	})
}

// uniqueViolation postgres unique_violation
const uniqueViolation = "23505"

// Save upsert the last good price of a symbol
func (s *priceStore) Save(ctx context.Context, price *core.Price) error {
	price.Symbol = strings.ToUpper(price.Symbol)

	err := s.save(price)
	// another writer inserted the symbol first, update it instead
	if isUniqueViolation(err) {
		price.ID = 0
		err = s.save(price)
	}

	return err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func (s *priceStore) save(price *core.Price) error {
	return s.db.Tx(func(tx *db.DB) error {
		var current core.Price
		if err := tx.Update().Where("symbol = ?", price.Symbol).FirstOrInit(&current).Error; err != nil {
			return err
		}

		if current.ID == 0 {
			return tx.Update().Create(price).Error
		}

		updates := map[string]interface{}{
			"price":   price.Price,
			"source":  price.Source,
			"content": price.Content,
			"version": current.Version + 1,
		}

		return tx.Update().Model(core.Price{}).Where("symbol = ? AND version = ?", price.Symbol, current.Version).Updates(updates).Error
	})
}

func (s *priceStore) Find(ctx context.Context, symbol string) (*core.Price, error) {
	var price core.Price
	if err := s.db.View().Where("symbol = ?", strings.ToUpper(symbol)).First(&price).Error; err != nil {
		return nil, err
	}

	return &price, nil
}

func (s *priceStore) All(ctx context.Context) ([]*core.Price, error) {
	var prices []*core.Price
	if err := s.db.View().Order("symbol").Find(&prices).Error; err != nil {
		return nil, err
	}

	return prices, nil
}
