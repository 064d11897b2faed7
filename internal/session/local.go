package session

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nivelabs/loop/client/internal/models"
)

// LocalStore is the on-device database holding the persisted session record.
// It is what lets Init restore identity on app start without a network call.
type LocalStore struct {
	db *gorm.DB
}

// OpenLocalStore opens (or creates) the device database at path. Tests use
// ":memory:".
func OpenLocalStore(path string) (*LocalStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	if err := db.AutoMigrate(&models.LocalSession{}); err != nil {
		return nil, fmt.Errorf("failed to migrate local store: %w", err)
	}
	return &LocalStore{db: db}, nil
}

// Save replaces whatever session record exists with the given one. The device
// holds at most one session.
func (s *LocalStore) Save(ls *models.LocalSession) error {
	if err := s.Clear(); err != nil {
		return err
	}
	return s.db.Create(ls).Error
}

// Load returns the persisted session record, or gorm.ErrRecordNotFound.
func (s *LocalStore) Load() (*models.LocalSession, error) {
	var ls models.LocalSession
	if err := s.db.First(&ls).Error; err != nil {
		return nil, err
	}
	return &ls, nil
}

// Clear removes any persisted session record.
func (s *LocalStore) Clear() error {
	return s.db.Where("1 = 1").Delete(&models.LocalSession{}).Error
}

// Close closes the underlying database.
func (s *LocalStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
