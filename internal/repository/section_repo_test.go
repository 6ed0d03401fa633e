package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/acadsuite/campus-api/internal/models"
)

func TestSectionNaturalKeyUniqueness(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSectionRepository(db)
	ctx := context.Background()
	department := createTestDepartment(t, db, "Computer Science", "CS")

	first := models.Section{DepartmentID: department.ID, Semester: "3", Name: "A", Size: 60}
	require.NoError(t, repo.Create(ctx, &first))

	duplicate := models.Section{DepartmentID: department.ID, Semester: "3", Name: "A", Size: 30}
	err := repo.Create(ctx, &duplicate)
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// The same name is fine in another semester.
	other := models.Section{DepartmentID: department.ID, Semester: "4", Name: "A", Size: 55}
	require.NoError(t, repo.Create(ctx, &other))
}
