package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/acadsuite/campus-api/internal/models"
)

func TestFacultyBulkUpsertCreatesAndResolvesDepartments(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFacultyRepository(db)
	ctx := context.Background()

	existing := createTestDepartment(t, db, "Computer Science", "CS")

	rows := []FacultyImportRow{
		{FirstName: "Alice", LastName: "Johnson", Email: "alice@example.com", DepartmentCode: "CS", ExperienceYears: 5, WorkloadCapacityHours: 16},
		{FirstName: "Bob", LastName: "Stone", Email: "bob@example.com", DepartmentCode: "MATH", DepartmentName: "Mathematics", ExperienceYears: 2, WorkloadCapacityHours: 12},
	}

	processed, err := repo.BulkUpsert(ctx, rows)
	require.NoError(t, err)
	require.Equal(t, 2, processed)

	var alice models.Faculty
	require.NoError(t, db.Where("email = ?", "alice@example.com").First(&alice).Error)
	require.Equal(t, existing.ID, alice.DepartmentID, "existing department resolved by code")

	var math models.Department
	require.NoError(t, db.Where("code = ?", "MATH").First(&math).Error)
	require.Equal(t, "Mathematics", math.Name)

	var bob models.Faculty
	require.NoError(t, db.Where("email = ?", "bob@example.com").First(&bob).Error)
	require.Equal(t, math.ID, bob.DepartmentID)
}

func TestFacultyBulkUpsertUpdatesByEmailLastRowWins(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFacultyRepository(db)
	ctx := context.Background()
	createTestDepartment(t, db, "Computer Science", "CS")

	_, err := repo.BulkUpsert(ctx, []FacultyImportRow{
		{FirstName: "Alice", LastName: "Johnson", Email: "alice@example.com", DepartmentCode: "CS", ExperienceYears: 5, WorkloadCapacityHours: 16},
	})
	require.NoError(t, err)

	// The same email appearing twice resolves to the later row's values.
	processed, err := repo.BulkUpsert(ctx, []FacultyImportRow{
		{FirstName: "Alice", LastName: "Johnson", Email: "alice@example.com", DepartmentCode: "CS", ExperienceYears: 6, WorkloadCapacityHours: 16},
		{FirstName: "Alicia", LastName: "Johnson-Smith", Email: "alice@example.com", DepartmentCode: "CS", ExperienceYears: 7, WorkloadCapacityHours: 18},
	})
	require.NoError(t, err)
	require.Equal(t, 2, processed)

	var count int64
	require.NoError(t, db.Model(&models.Faculty{}).Count(&count).Error)
	require.Equal(t, int64(1), count)

	var alice models.Faculty
	require.NoError(t, db.Where("email = ?", "alice@example.com").First(&alice).Error)
	require.Equal(t, "Alicia", alice.FirstName)
	require.Equal(t, 7, alice.ExperienceYears)
	require.Equal(t, 18, alice.WorkloadCapacityHours)
}

func TestFacultyListFiltersByCollege(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFacultyRepository(db)
	ctx := context.Background()

	college := models.College{Name: "Engineering College", Code: "ENG"}
	require.NoError(t, db.Create(&college).Error)

	inside := models.Department{Name: "Computer Science", Code: "CS", CollegeID: &college.ID, Active: true}
	outside := models.Department{Name: "Fine Arts", Code: "ART", Active: true}
	require.NoError(t, db.Create(&inside).Error)
	require.NoError(t, db.Create(&outside).Error)

	require.NoError(t, repo.Create(ctx, &models.Faculty{FirstName: "Alice", LastName: "Johnson", Email: "alice@example.com", DepartmentID: inside.ID}))
	require.NoError(t, repo.Create(ctx, &models.Faculty{FirstName: "Bob", LastName: "Stone", Email: "bob@example.com", DepartmentID: outside.ID}))

	listed, total, err := repo.List(ctx, FacultyFilter{CollegeID: &college.ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "alice@example.com", listed[0].Email)
}
