package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/campuslink/portal-api/internal/models"
)

func setupAttendanceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.AttendanceRecord{}))

	return db
}

func TestAttendanceRepositoryUpsertCreatesThenUpdates(t *testing.T) {
	db := setupAttendanceTestDB(t)
	repo := NewAttendanceRepository(db)
	ctx := context.Background()

	record := models.AttendanceRecord{StudentID: 1, Subject: "Mathematics", Attended: 18, Total: 20}
	require.NoError(t, repo.Upsert(ctx, &record))

	// Same student and subject again must replace the counters, not add a row.
	updated := models.AttendanceRecord{StudentID: 1, Subject: "Mathematics", Attended: 19, Total: 22}
	require.NoError(t, repo.Upsert(ctx, &updated))

	records, err := repo.ListByStudent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, 19, records[0].Attended)
	require.Equal(t, 22, records[0].Total)
}

func TestAttendanceRepositoryListByStudentSortsBySubject(t *testing.T) {
	db := setupAttendanceTestDB(t)
	repo := NewAttendanceRepository(db)
	ctx := context.Background()

	for _, record := range []models.AttendanceRecord{
		{StudentID: 1, Subject: "Physics", Attended: 10, Total: 12},
		{StudentID: 1, Subject: "Chemistry", Attended: 9, Total: 12},
		{StudentID: 2, Subject: "Biology", Attended: 8, Total: 12},
	} {
		r := record
		require.NoError(t, repo.Upsert(ctx, &r))
	}

	records, err := repo.ListByStudent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "Chemistry", records[0].Subject)
	require.Equal(t, "Physics", records[1].Subject)
}
