package memory

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vsinha/scacmatch/pkg/domain/entities"
	"github.com/vsinha/scacmatch/pkg/domain/repositories"
)

func loadTestRows(t *testing.T, containers ...string) *InventoryRepository {
	t.Helper()

	repo := NewInventoryRepository(len(containers))
	rows := make([]*entities.InventoryRow, 0, len(containers))
	for i, container := range containers {
		row, err := entities.NewInventoryRow(i, "TEP", container, decimal.NewFromInt(1), decimal.NewFromInt(1))
		if err != nil {
			t.Fatalf("Failed to build row: %v", err)
		}
		rows = append(rows, row)
	}

	if err := repo.LoadRows(rows); err != nil {
		t.Fatalf("Failed to load rows: %v", err)
	}
	return repo
}

func TestInventoryRepository_LoadAndGetRows(t *testing.T) {
	repo := loadTestRows(t, "TGHU8000011;", "MSCU1234567")

	if repo.Count() != 2 {
		t.Fatalf("Expected 2 rows, got %d", repo.Count())
	}

	rows, err := repo.GetAllRows()
	if err != nil {
		t.Fatalf("Failed to get rows: %v", err)
	}

	for i, row := range rows {
		if row.Position != i {
			t.Errorf("Expected position %d, got %d", i, row.Position)
		}
	}

	if rows[0].ContainerNumber != "TGHU8000011" {
		t.Errorf("Expected normalized container, got %q", rows[0].ContainerNumber)
	}
}

func TestInventoryRepository_ContainerPositions(t *testing.T) {
	repo := loadTestRows(t, "TGHU8000011", "MSCU1234567;TGHU8000011", "", "ZIMU1112223")

	positions, err := repo.ContainerPositions(func(container string) bool {
		return strings.Contains(container, "TGHU8000011")
	})
	if err != nil {
		t.Fatalf("Failed to find positions: %v", err)
	}

	if len(positions) != 2 || positions[0] != 0 || positions[1] != 1 {
		t.Errorf("Expected positions [0 1], got %v", positions)
	}
}

func TestInventoryRepository_SetSCAC(t *testing.T) {
	repo := loadTestRows(t, "TGHU8000011")

	if err := repo.SetSCAC(0, "ZIMU"); err != nil {
		t.Fatalf("Failed to set SCAC: %v", err)
	}

	row, err := repo.GetRow(0)
	if err != nil {
		t.Fatalf("Failed to get row: %v", err)
	}
	if row.SCAC != "ZIMU" {
		t.Errorf("Expected SCAC ZIMU, got %s", row.SCAC)
	}

	err = repo.SetSCAC(5, "ZIMU")
	if !errors.Is(err, repositories.ErrRowNotFound) {
		t.Errorf("Expected ErrRowNotFound, got %v", err)
	}
}
