package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/mwantia/govportal/pkg/db/models"
	"github.com/mwantia/govportal/pkg/db/store"
)

var (
	seedCategories   = []string{"infrastructure", "sante", "education", "agriculture", "energie"}
	seedPriorities   = []string{models.ProjectPriorityLow, models.ProjectPriorityMedium, models.ProjectPriorityHigh}
	seedStatuses     = []string{models.ProjectStatusPlanning, models.ProjectStatusInProgress, models.ProjectStatusOnHold, models.ProjectStatusCompleted, models.ProjectStatusCancelled}
	seedResponsibles = []string{"Aminata Diallo", "Jean Martin", "Fatou Ndiaye", "Claire Dubois", "Moussa Traore"}
	seedDepartments  = []string{"Travaux publics", "Sante publique", "Finances", "Education nationale"}
)

var seedFamilies = []models.Family{
	{Code: "FAM-LOIS", Name: "Lois et decrets", Icon: "gavel", DisplayOrder: 1},
	{Code: "FAM-RAPPORTS", Name: "Rapports annuels", Icon: "file-text", DisplayOrder: 2},
	{Code: "FAM-FORMULAIRES", Name: "Formulaires", Icon: "clipboard", DisplayOrder: 3},
}

// SeedResult counts the rows inserted by Seed.
type SeedResult struct {
	Projects  int `json:"projects"`
	Documents int `json:"documents"`
	Families  int `json:"families"`
}

// Seed inserts count sample projects plus a fixed set of families with two
// documents each. Values are deterministic so repeated runs on an empty
// store produce the same catalog.
func Seed(ctx context.Context, s store.PortalStore, count int) (SeedResult, error) {
	var result SeedResult

	for i := range seedFamilies {
		family := seedFamilies[i]
		family.IsActive = true
		if err := s.CreateFamily(ctx, &family); err != nil {
			return result, fmt.Errorf("failed to create family '%s': %w", family.Code, err)
		}
		result.Families++

		for j := 1; j <= 2; j++ {
			document := models.Document{
				Name:             fmt.Sprintf("%s %d", family.Name, j),
				File:             fmt.Sprintf("%s-%d.pdf", family.Code, j),
				OriginalFilename: fmt.Sprintf("%s-%d.pdf", family.Code, j),
				MimeType:         "application/pdf",
				FileSize:         int64(1024 * (i + 1) * j),
				DisplayOrder:     j,
				IsActive:         j == 1,
				FamilyID:         &family.ID,
			}
			if err := s.CreateDocument(ctx, &document); err != nil {
				return result, fmt.Errorf("failed to create document '%s': %w", document.Name, err)
			}
			result.Documents++
		}
	}

	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= count; i++ {
		start := base.AddDate(0, 0, i*7)
		end := start.AddDate(0, 6, 0)

		project := models.Project{
			Code:        fmt.Sprintf("PRJ-%04d", i),
			Name:        fmt.Sprintf("Projet %s %d", seedCategories[i%len(seedCategories)], i),
			Category:    seedCategories[i%len(seedCategories)],
			Priority:    seedPriorities[i%len(seedPriorities)],
			Status:      seedStatuses[i%len(seedStatuses)],
			Responsible: seedResponsibles[i%len(seedResponsibles)],
			Department:  seedDepartments[i%len(seedDepartments)],
			Budget:      float64(50000 * ((i*37)%40 + 1)),
			StartDate:   &start,
			EndDate:     &end,
			IsActive:    i%4 != 0,
		}
		if err := s.CreateProject(ctx, &project); err != nil {
			return result, fmt.Errorf("failed to create project '%s': %w", project.Code, err)
		}
		result.Projects++
	}

	return result, nil
}
