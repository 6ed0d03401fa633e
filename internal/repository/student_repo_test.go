package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/acadsuite/campus-api/internal/models"
)

func TestStudentBulkUpsertKeyedByEnrollmentNo(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)
	ctx := context.Background()
	createTestDepartment(t, db, "Computer Science", "CS")

	processed, err := repo.BulkUpsert(ctx, []StudentImportRow{
		{FirstName: "Alice", LastName: "Johnson", Email: "alice@example.com", EnrollmentNo: "EN-001", DepartmentCode: "CS", CurrentSemester: "3"},
		{FirstName: "Bob", LastName: "Stone", Email: "bob@example.com", EnrollmentNo: "EN-002", DepartmentCode: "CS", CurrentSemester: "1"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, processed)

	// Re-importing the same enrollment number updates in place, including a
	// changed email address.
	processed, err = repo.BulkUpsert(ctx, []StudentImportRow{
		{FirstName: "Alice", LastName: "Johnson", Email: "alice.johnson@example.com", EnrollmentNo: "EN-001", DepartmentCode: "CS", CurrentSemester: "4"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, processed)

	var count int64
	require.NoError(t, db.Model(&models.Student{}).Count(&count).Error)
	require.Equal(t, int64(2), count)

	var alice models.Student
	require.NoError(t, db.Where("enrollment_no = ?", "EN-001").First(&alice).Error)
	require.Equal(t, "alice.johnson@example.com", alice.Email)
	require.Equal(t, "4", alice.CurrentSemester)
}

func TestStudentBulkUpsertRollsBackOnRowError(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)
	ctx := context.Background()
	createTestDepartment(t, db, "Computer Science", "CS")

	taken := models.Student{FirstName: "Bob", LastName: "Stone", Email: "bob@example.com", EnrollmentNo: "EN-002"}
	require.NoError(t, db.Create(&taken).Error)

	// The second row collides with an email owned by a different enrollment
	// number; the whole batch must roll back.
	_, err := repo.BulkUpsert(ctx, []StudentImportRow{
		{FirstName: "Alice", LastName: "Johnson", Email: "alice@example.com", EnrollmentNo: "EN-001", DepartmentCode: "CS"},
		{FirstName: "Eve", LastName: "Miller", Email: "bob@example.com", EnrollmentNo: "EN-003", DepartmentCode: "CS"},
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Student{}).Count(&count).Error)
	require.Equal(t, int64(1), count, "no row from the failed batch may persist")
}

func TestStudentListFiltersBySemesterAndSearch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)
	ctx := context.Background()
	department := createTestDepartment(t, db, "Computer Science", "CS")

	students := []models.Student{
		{FirstName: "Alice", LastName: "Johnson", Email: "alice@example.com", EnrollmentNo: "EN-001", DepartmentID: &department.ID, CurrentSemester: "3"},
		{FirstName: "Bob", LastName: "Stone", Email: "bob@example.com", EnrollmentNo: "EN-002", DepartmentID: &department.ID, CurrentSemester: "1"},
	}
	for i := range students {
		require.NoError(t, repo.Create(ctx, &students[i]))
	}

	listed, total, err := repo.List(ctx, StudentFilter{CurrentSemester: "3"})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "EN-001", listed[0].EnrollmentNo)

	listed, total, err = repo.List(ctx, StudentFilter{Search: "en-002"})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "bob@example.com", listed[0].Email)
}
