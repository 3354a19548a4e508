package ledger

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the repository for all ledger records. It has no business rules.
//
// A Store obtained inside Atomic is bound to a database transaction; all
// reads and writes through it are committed or rolled back together.
type Store struct {
	db *gorm.DB
}

// NewStore returns a Store for the database.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Atomic runs fn in a database transaction. If fn returns an error, every
// change made through the Store passed to fn is rolled back.
func (s *Store) Atomic(fn func(*Store) error) error {
	return wrap(s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	}))
}

// Get returns the record with the given ID.
func Get[T any](s *Store, id uint) (T, error) {
	var record T
	err := s.db.First(&record, id).Error
	return record, wrap(err)
}

// First returns the first record matching all non-zero fields of filter.
// found is false if no record matches.
func First[T any](s *Store, filter T) (record T, found bool, err error) {
	var records []T
	err = s.db.Where(&filter).Order("id").Limit(1).Find(&records).Error
	if err != nil || len(records) == 0 {
		return record, false, wrap(err)
	}

	return records[0], true, nil
}

// Find returns all records matching the non-zero fields of filter in the given order.
// Associations named in preload are loaded with the records.
func Find[T any](s *Store, filter T, order string, preload ...string) ([]T, error) {
	query := s.db.Where(&filter)
	for _, association := range preload {
		query = query.Preload(association)
	}

	if order != "" {
		query = query.Order(order)
	}

	var records []T
	err := query.Find(&records).Error
	return records, wrap(err)
}

// Upsert creates the record if its ID is zero and updates all its fields otherwise.
// Associations are never written.
func Upsert[T any](s *Store, record *T) error {
	return wrap(s.db.Omit(clause.Associations).Save(record).Error)
}

// Delete removes the record with the given ID.
func Delete[T any](s *Store, id uint) error {
	var record T
	result := s.db.Delete(&record, id)
	if result.Error != nil {
		return wrap(result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: there is no %s with id %d", ErrNotFound, result.Statement.Table, id)
	}

	return nil
}
