package store

import (
	"context"
	"errors"

	"github.com/mwantia/govportal/pkg/db/models"
)

// Catalog table names understood by the bulk operations.
const (
	TableProjects  = "projects"
	TableDocuments = "documents"
	TableFamilies  = "families"
)

var ErrUnknownTable = errors.New("unknown table")

// PortalStore defines the interface for database operations
type PortalStore interface {
	// Lifecycle
	Connect(ctx context.Context) error
	Close() error
	Migrate(ctx context.Context) error
	Health(ctx context.Context) error

	// Project operations
	CreateProject(ctx context.Context, project *models.Project) error
	GetProject(ctx context.Context, id uint) (*models.Project, error)
	ListProjects(ctx context.Context) ([]models.Project, error)
	UpdateProject(ctx context.Context, project *models.Project) error

	// Document operations
	CreateDocument(ctx context.Context, document *models.Document) error
	GetDocument(ctx context.Context, id uint) (*models.Document, error)
	ListDocuments(ctx context.Context) ([]models.Document, error)
	UpdateDocument(ctx context.Context, document *models.Document) error

	// Family operations
	CreateFamily(ctx context.Context, family *models.Family) error
	GetFamily(ctx context.Context, id uint) (*models.Family, error)
	ListFamilies(ctx context.Context) ([]models.Family, error)
	UpdateFamily(ctx context.Context, family *models.Family) error

	// Bulk operations, addressed by table name
	SetActive(ctx context.Context, table string, ids []uint, active bool) (int64, error)
	SoftDelete(ctx context.Context, table string, ids []uint) (int64, error)

	// Dashboard
	Stats(ctx context.Context) (*Stats, error)
}

// TableStats counts the rows of one table that are not soft-deleted
type TableStats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
}

// Stats aggregates the figures shown on the admin dashboard
type Stats struct {
	Projects         TableStats       `json:"projects"`
	Documents        TableStats       `json:"documents"`
	Families         TableStats       `json:"families"`
	ProjectsByStatus map[string]int64 `json:"projects_by_status"`
}
