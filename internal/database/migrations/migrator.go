package migrations

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/vladimiradmaev/recipebox/internal/logger"
)

//go:embed sql/*.sql
var embedded embed.FS

// SQLFiles returns the SQL migrations shipped with the binary
func SQLFiles() fs.FS {
	sub, err := fs.Sub(embedded, "sql")
	if err != nil {
		panic(err)
	}
	return sub
}

// Migration represents a database migration
type Migration struct {
	ID   string
	Up   func(*gorm.DB) error
	Down func(*gorm.DB) error
}

// Migrator runs registered migrations once each, in ID order
type Migrator struct {
	migrations map[string]Migration
}

// NewMigrator creates an empty migrator
func NewMigrator() *Migrator {
	return &Migrator{migrations: make(map[string]Migration)}
}

// Register adds a new migration to the registry
func (m *Migrator) Register(id string, up, down func(*gorm.DB) error) {
	m.migrations[id] = Migration{
		ID:   id,
		Up:   up,
		Down: down,
	}
}

// IDs returns the registered migration IDs in execution order
func (m *Migrator) IDs() []string {
	ids := make([]string, 0, len(m.migrations))
	for id := range m.migrations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// MigrationRecord represents a record of executed migrations
type MigrationRecord struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt int64  `gorm:"autoCreateTime"`
}

// Run executes all pending migrations
func (m *Migrator) Run(db *gorm.DB) error {
	// Create migrations table if it doesn't exist
	if err := db.AutoMigrate(&MigrationRecord{}); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var executed []MigrationRecord
	if err := db.Find(&executed).Error; err != nil {
		return fmt.Errorf("failed to get executed migrations: %w", err)
	}

	done := make(map[string]bool)
	for _, rec := range executed {
		done[rec.ID] = true
	}

	for _, id := range m.IDs() {
		if done[id] {
			continue
		}

		migration := m.migrations[id]
		logger.Info("Running migration", "id", id)
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Up(tx); err != nil {
				return err
			}
			return tx.Create(&MigrationRecord{ID: id}).Error
		})
		if err != nil {
			return fmt.Errorf("failed to run migration %s: %w", id, err)
		}
		logger.Info("Completed migration", "id", id)
	}

	return nil
}

// LoadSQL registers every *.sql file at the root of fsys as a migration named
// after the file
func (m *Migrator) LoadSQL(fsys fs.FS) error {
	files, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || path.Ext(file.Name()) != ".sql" {
			continue
		}

		content, err := fs.ReadFile(fsys, file.Name())
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file.Name(), err)
		}

		stmt := strings.TrimSpace(string(content))
		if stmt == "" {
			continue
		}
		m.Register(strings.TrimSuffix(file.Name(), ".sql"), func(db *gorm.DB) error {
			return db.Exec(stmt).Error
		}, nil) // No down migration for SQL files
	}

	return nil
}
