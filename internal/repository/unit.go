// Package repository provides data access for tracked units and
// manifest repository sync operations.
package repository

import (
	"database/sql"
	"time"
)

// Unit represents a record in the units table. Tracked units are the
// ones unit-ops wrote, which bounds what sync is allowed to prune.
// Name is the complete unit name including the kind suffix, Type is
// "service" or "timer", and SHA1Hash is the hex hash of the rendered
// content. CreatedAt is set by the database and not updated on change.
type Unit struct {
	ID        int64     `db:"id" json:"id" yaml:"id"`
	Name      string    `db:"name" json:"name" yaml:"name"`
	Type      string    `db:"type" json:"type" yaml:"type"`
	SHA1Hash  string    `db:"sha1_hash" json:"sha1Hash" yaml:"sha1Hash"`
	UserMode  bool      `db:"user_mode" json:"userMode" yaml:"userMode"`
	CreatedAt time.Time `db:"created_at" json:"createdAt" yaml:"createdAt"`
}

// Repository defines the interface for unit data access operations.
type Repository interface {
	FindAll() ([]Unit, error)
	FindByUnitType(unitType string) ([]Unit, error)
	FindByName(name string) (Unit, error)
	Create(unit *Unit) (int64, error)
	Delete(id int64) error
}

// SQLRepository implements Repository interface with SQL database.
type SQLRepository struct {
	db *sql.DB
}

// NewRepository creates a new SQL-based unit repository.
func NewRepository(db *sql.DB) Repository {
	return &SQLRepository{db: db}
}

// FindAll retrieves all tracked units from the database.
func (r *SQLRepository) FindAll() ([]Unit, error) {
	rows, err := r.db.Query("SELECT id, name, type, sha1_hash, user_mode, created_at FROM units")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return rowsToUnits(rows)
}

// FindByUnitType retrieves tracked units filtered by type.
func (r *SQLRepository) FindByUnitType(unitType string) ([]Unit, error) {
	rows, err := r.db.Query("SELECT id, name, type, sha1_hash, user_mode, created_at FROM units WHERE type = ?", unitType)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return rowsToUnits(rows)
}

// FindByName retrieves a single tracked unit by its complete name.
// sql.ErrNoRows passes through when the unit is not tracked.
func (r *SQLRepository) FindByName(name string) (Unit, error) {
	row := r.db.QueryRow("SELECT id, name, type, sha1_hash, user_mode, created_at FROM units WHERE name = ?", name)
	return rowToUnit(row)
}

// Create inserts or updates a tracked unit in the database.
func (r *SQLRepository) Create(unit *Unit) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO units (name, type, sha1_hash, user_mode)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name, type) DO UPDATE SET
		sha1_hash = excluded.sha1_hash,
		user_mode = excluded.user_mode
	`, unit.Name, unit.Type, unit.SHA1Hash, unit.UserMode)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Delete removes a tracked unit from the database.
func (r *SQLRepository) Delete(id int64) error {
	_, err := r.db.Exec("DELETE FROM units WHERE id = ?", id)
	return err
}

func rowToUnit(row *sql.Row) (Unit, error) {
	var unit Unit
	if err := row.Scan(&unit.ID, &unit.Name, &unit.Type, &unit.SHA1Hash, &unit.UserMode, &unit.CreatedAt); err != nil {
		return Unit{}, err
	}
	return unit, nil
}

func rowsToUnits(rows *sql.Rows) ([]Unit, error) {
	var units []Unit
	for rows.Next() {
		var unit Unit
		if err := rows.Scan(&unit.ID, &unit.Name, &unit.Type, &unit.SHA1Hash, &unit.UserMode, &unit.CreatedAt); err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	return units, rows.Err()
}
