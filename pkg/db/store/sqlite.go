package store

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/mwantia/govportal/pkg/db/migrations"
	"github.com/mwantia/govportal/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ PortalStore = (*SQLiteStore)(nil)

// SQLiteStore implements PortalStore using SQLite
type SQLiteStore struct {
	db           *gorm.DB
	path         string
	maxOpenConns int
}

// DB returns the underlying GORM database instance
func (s *SQLiteStore) DB() *gorm.DB {
	return s.db
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	Path         string
	MaxOpenConns int
	LogLevel     logger.LogLevel
}

// NewSQLiteStore creates a new SQLite-backed portal store
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	// Default to silent logging
	if cfg.LogLevel == 0 {
		cfg.LogLevel = logger.Silent
	}

	// SQLite only supports 1 writer
	if cfg.MaxOpenConns <= 0 {
		cfg.MaxOpenConns = 1
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(cfg.LogLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	return &SQLiteStore{
		db:           db,
		path:         cfg.Path,
		maxOpenConns: cfg.MaxOpenConns,
	}, nil
}

// Connect initializes the database connection
func (s *SQLiteStore) Connect(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(s.maxOpenConns)
	sqlDB.SetMaxIdleConns(s.maxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}

// Migrate runs all pending versioned migrations
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	return migrations.NewMigrator(s.db).Migrate(ctx)
}

// Health checks database connectivity
func (s *SQLiteStore) Health(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Project operations

func (s *SQLiteStore) CreateProject(ctx context.Context, project *models.Project) error {
	return s.db.WithContext(ctx).Create(project).Error
}

func (s *SQLiteStore) GetProject(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := s.db.WithContext(ctx).First(&project, id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *SQLiteStore) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.WithContext(ctx).
		Order("display_order ASC").
		Order("id DESC").
		Find(&projects).Error
	return projects, err
}

func (s *SQLiteStore) UpdateProject(ctx context.Context, project *models.Project) error {
	return s.db.WithContext(ctx).Save(project).Error
}

// Document operations

func (s *SQLiteStore) CreateDocument(ctx context.Context, document *models.Document) error {
	return s.db.WithContext(ctx).Create(document).Error
}

func (s *SQLiteStore) GetDocument(ctx context.Context, id uint) (*models.Document, error) {
	var document models.Document
	err := s.db.WithContext(ctx).Preload("Family").First(&document, id).Error
	if err != nil {
		return nil, err
	}
	return &document, nil
}

func (s *SQLiteStore) ListDocuments(ctx context.Context) ([]models.Document, error) {
	var documents []models.Document
	err := s.db.WithContext(ctx).
		Preload("Family").
		Order("display_order ASC").
		Order("id DESC").
		Find(&documents).Error
	return documents, err
}

func (s *SQLiteStore) UpdateDocument(ctx context.Context, document *models.Document) error {
	return s.db.WithContext(ctx).Save(document).Error
}

// Family operations

func (s *SQLiteStore) CreateFamily(ctx context.Context, family *models.Family) error {
	return s.db.WithContext(ctx).Create(family).Error
}

func (s *SQLiteStore) GetFamily(ctx context.Context, id uint) (*models.Family, error) {
	var family models.Family
	err := s.db.WithContext(ctx).First(&family, id).Error
	if err != nil {
		return nil, err
	}
	return &family, nil
}

func (s *SQLiteStore) ListFamilies(ctx context.Context) ([]models.Family, error) {
	var families []models.Family
	err := s.db.WithContext(ctx).
		Order("display_order ASC").
		Order("id DESC").
		Find(&families).Error
	return families, err
}

func (s *SQLiteStore) UpdateFamily(ctx context.Context, family *models.Family) error {
	return s.db.WithContext(ctx).Save(family).Error
}

// Bulk operations

func modelFor(table string) (any, error) {
	switch table {
	case TableProjects:
		return &models.Project{}, nil
	case TableDocuments:
		return &models.Document{}, nil
	case TableFamilies:
		return &models.Family{}, nil
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownTable, table)
	}
}

func (s *SQLiteStore) SetActive(ctx context.Context, table string, ids []uint, active bool) (int64, error) {
	model, err := modelFor(table)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	result := s.db.WithContext(ctx).
		Model(model).
		Where("id IN ?", ids).
		Update("is_active", active)
	return result.RowsAffected, result.Error
}

func (s *SQLiteStore) SoftDelete(ctx context.Context, table string, ids []uint) (int64, error) {
	model, err := modelFor(table)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	result := s.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(model)
	return result.RowsAffected, result.Error
}

// Dashboard

func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{ProjectsByStatus: make(map[string]int64)}

	for table, target := range map[string]*TableStats{
		TableProjects:  &stats.Projects,
		TableDocuments: &stats.Documents,
		TableFamilies:  &stats.Families,
	} {
		if err := s.tableStats(ctx, table, target); err != nil {
			return nil, err
		}
	}

	var byStatus []struct {
		Status string
		Count  int64
	}
	err := s.db.WithContext(ctx).
		Model(&models.Project{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count projects by status: %w", err)
	}
	for _, row := range byStatus {
		stats.ProjectsByStatus[row.Status] = row.Count
	}

	return stats, nil
}

func (s *SQLiteStore) tableStats(ctx context.Context, table string, target *TableStats) error {
	model, err := modelFor(table)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Model(model).Count(&target.Total).Error; err != nil {
		return fmt.Errorf("failed to count %s: %w", table, err)
	}
	if err := s.db.WithContext(ctx).Model(model).Where("is_active = ?", true).Count(&target.Active).Error; err != nil {
		return fmt.Errorf("failed to count active %s: %w", table, err)
	}
	target.Inactive = target.Total - target.Active
	return nil
}
