package storage

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/dmsavelev/caloriebot/internal/config"
	"github.com/dmsavelev/caloriebot/internal/domain"
)

type productRow struct {
	ID       uint   `gorm:"primaryKey"`
	Position int    `gorm:"index"`
	Name     string `gorm:"uniqueIndex"`
	Kcal     int
}

func (productRow) TableName() string { return "products" }

type accountRow struct {
	ID     uint   `gorm:"primaryKey"`
	UserID string `gorm:"uniqueIndex"`
	Total  int
}

func (accountRow) TableName() string { return "accounts" }

type entryRow struct {
	ID        uint `gorm:"primaryKey"`
	AccountID uint `gorm:"index"`
	Position  int
	Product   string
	Amount    int
	Calories  int
	Date      string
}

func (entryRow) TableName() string { return "entries" }

// PostgresStorage keeps the same snapshot semantics as the file store:
// every save replaces the whole catalog or ledger inside a transaction.
// Row volume is tiny, so the simplicity wins over incremental updates.
type PostgresStorage struct {
	db *gorm.DB
}

// NewPostgresStorage connects to Postgres, migrates the schema and seeds
// the default catalog when the products table is empty.
func NewPostgresStorage(cfg config.DBConfig) (*PostgresStorage, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&productRow{}, &accountRow{}, &entryRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	var count int64
	if err := db.Model(&productRow{}).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to inspect products table: %w", err)
	}
	if count == 0 {
		s := &PostgresStorage{db: db}
		if err := s.SaveCatalog(context.Background(), DefaultCatalog()); err != nil {
			return nil, err
		}
	}

	return &PostgresStorage{db: db}, nil
}

func (s *PostgresStorage) LoadCatalog(ctx context.Context) ([]domain.Product, error) {
	var rows []productRow
	if err := s.db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	products := make([]domain.Product, 0, len(rows))
	for _, r := range rows {
		products = append(products, domain.Product{Name: r.Name, Kcal: r.Kcal})
	}
	return products, nil
}

func (s *PostgresStorage) SaveCatalog(ctx context.Context, products []domain.Product) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&productRow{}).Error; err != nil {
			return err
		}
		for i, p := range products {
			row := productRow{Position: i, Name: p.Name, Kcal: p.Kcal}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *PostgresStorage) LoadUsers(ctx context.Context) (map[string]*domain.UserAccount, error) {
	var accounts []accountRow
	if err := s.db.WithContext(ctx).Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	users := make(map[string]*domain.UserAccount, len(accounts))
	for _, a := range accounts {
		var entries []entryRow
		if err := s.db.WithContext(ctx).Where("account_id = ?", a.ID).Order("position").Find(&entries).Error; err != nil {
			return nil, fmt.Errorf("failed to load history for %s: %w", a.UserID, err)
		}
		acc := &domain.UserAccount{Total: a.Total, History: make([]domain.ConsumptionEntry, 0, len(entries))}
		for _, e := range entries {
			acc.History = append(acc.History, domain.ConsumptionEntry{
				Product:  e.Product,
				Amount:   e.Amount,
				Calories: e.Calories,
				Date:     e.Date,
			})
		}
		users[a.UserID] = acc
	}
	return users, nil
}

func (s *PostgresStorage) SaveUsers(ctx context.Context, users map[string]*domain.UserAccount) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entryRow{}).Error; err != nil {
			return err
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&accountRow{}).Error; err != nil {
			return err
		}
		for id, acc := range users {
			row := accountRow{UserID: id, Total: acc.Total}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			for i, e := range acc.History {
				entry := entryRow{
					AccountID: row.ID,
					Position:  i,
					Product:   e.Product,
					Amount:    e.Amount,
					Calories:  e.Calories,
					Date:      e.Date,
				}
				if err := tx.Create(&entry).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (s *PostgresStorage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
