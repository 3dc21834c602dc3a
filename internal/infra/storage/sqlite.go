package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"flowex/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store persists execution reports and session summaries for audit.
type Store struct {
	db *gorm.DB
}

// NewStore opens (creating if needed) the SQLite audit database. An
// empty path selects the per-user default location.
func NewStore(path string) (*Store, error) {
	dbPath := path
	if dbPath == "" {
		defaultPath, err := defaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve DB path: %w", err)
		}
		dbPath = defaultPath
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create DB directory: %w", err)
	}

	// Pure Go SQLite
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&domain.ExecutionReport{}, &domain.Session{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Store{db: db}, nil
}

func defaultDBPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "Flowex", "data", "flowex.db"), nil
}

// SaveReports appends a batch of execution reports.
func (s *Store) SaveReports(reports []domain.ExecutionReport) error {
	if len(reports) == 0 {
		return nil
	}
	return s.db.Create(&reports).Error
}

// ListReports returns reports for a session in emission order. A zero
// limit returns everything.
func (s *Store) ListReports(sessionID string, limit int) ([]domain.ExecutionReport, error) {
	var reports []domain.ExecutionReport
	q := s.db.Order("seq asc")
	if sessionID != "" {
		q = q.Where("session_id = ?", sessionID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&reports).Error
	return reports, err
}

// SaveSession records a completed run.
func (s *Store) SaveSession(session *domain.Session) error {
	return s.db.Save(session).Error
}

// GetSession retrieves one session summary by id.
func (s *Store) GetSession(id string) (*domain.Session, error) {
	var session domain.Session
	err := s.db.First(&session, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// ListSessions returns session summaries, most recent first.
func (s *Store) ListSessions(limit int) ([]domain.Session, error) {
	var sessions []domain.Session
	q := s.db.Order("started_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&sessions).Error
	return sessions, err
}
