package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/campuslink/portal-api/internal/dto"
	"github.com/campuslink/portal-api/internal/models"
	"github.com/campuslink/portal-api/internal/repository"
)

func setupAttendanceService(t *testing.T) (AttendanceService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.AttendanceRecord{}))

	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewAttendanceService(repository.NewAttendanceRepository(db), repository.NewUserRepository(db), validate, zerolog.Nop())

	return svc, db
}

func seedUser(t *testing.T, db *gorm.DB, user models.User) models.User {
	t.Helper()
	user.PasswordHash = "x"
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestAttendanceRecordAndSummary(t *testing.T) {
	svc, db := setupAttendanceService(t)
	ctx := context.Background()

	target := seedUser(t, db, models.User{Name: "Asha", Email: "asha@example.edu", Role: models.RoleStudent})

	summary, err := svc.Record(ctx, teacher, target.ID, dto.AttendanceUpsertRequest{Subject: "Mathematics", Attended: 18, Total: 20})
	require.NoError(t, err)
	require.Len(t, summary.Subjects, 1)
	require.InDelta(t, 90.0, summary.Overall, 0.01)
	require.True(t, summary.IsEligible)

	// Pulling the overall percentage under the eligibility bar flips the flag.
	summary, err = svc.Record(ctx, teacher, target.ID, dto.AttendanceUpsertRequest{Subject: "Physics", Attended: 5, Total: 20})
	require.NoError(t, err)
	require.Len(t, summary.Subjects, 2)
	require.InDelta(t, 57.5, summary.Overall, 0.01)
	require.False(t, summary.IsEligible)
}

func TestAttendanceRecordGuards(t *testing.T) {
	svc, db := setupAttendanceService(t)
	ctx := context.Background()
	payload := dto.AttendanceUpsertRequest{Subject: "Mathematics", Attended: 10, Total: 12}

	_, err := svc.Record(ctx, student, 1, payload)
	require.ErrorIs(t, err, ErrRoleNotAllowed)

	_, err = svc.Record(ctx, teacher, 404, payload)
	require.ErrorIs(t, err, ErrStudentNotFound)

	// Teachers are not valid attendance targets.
	colleague := seedUser(t, db, models.User{Name: "Prof. Rao", Email: "rao@example.edu", Role: models.RoleTeacher})
	_, err = svc.Record(ctx, teacher, colleague.ID, payload)
	require.ErrorIs(t, err, ErrStudentNotFound)

	// Attended may not exceed total.
	target := seedUser(t, db, models.User{Name: "Asha", Email: "asha2@example.edu", Role: models.RoleStudent})
	_, err = svc.Record(ctx, teacher, target.ID, dto.AttendanceUpsertRequest{Subject: "Mathematics", Attended: 13, Total: 12})
	require.Error(t, err)
}

func TestAttendanceRosterCoversEveryStudent(t *testing.T) {
	svc, db := setupAttendanceService(t)
	ctx := context.Background()

	asha := seedUser(t, db, models.User{Name: "Asha Verma", Email: "asha@example.edu", Role: models.RoleStudent, RollNumber: "2023-CS-042", Class: "CS-3A"})
	ravi := seedUser(t, db, models.User{Name: "Ravi Kumar", Email: "ravi@example.edu", Role: models.RoleStudent, RollNumber: "2023-CS-051", Class: "CS-3A"})
	seedUser(t, db, models.User{Name: "Prof. Rao", Email: "rao@example.edu", Role: models.RoleTeacher})

	_, err := svc.Record(ctx, teacher, asha.ID, dto.AttendanceUpsertRequest{Subject: "Mathematics", Attended: 18, Total: 20})
	require.NoError(t, err)
	_, err = svc.Record(ctx, teacher, ravi.ID, dto.AttendanceUpsertRequest{Subject: "Mathematics", Attended: 10, Total: 20})
	require.NoError(t, err)

	roster, err := svc.Roster(ctx, teacher)
	require.NoError(t, err)
	require.Len(t, roster, 2, "teacher accounts stay off the roster")

	byID := map[uint]dto.AttendanceRosterEntry{}
	for _, entry := range roster {
		byID[entry.StudentID] = entry
	}

	require.InDelta(t, 90.0, byID[asha.ID].Overall, 0.01)
	require.True(t, byID[asha.ID].IsEligible)
	require.Equal(t, "2023-CS-042", byID[asha.ID].RollNumber)
	require.InDelta(t, 50.0, byID[ravi.ID].Overall, 0.01)
	require.False(t, byID[ravi.ID].IsEligible)
}

func TestAttendanceRosterIncludesStudentsWithoutRecords(t *testing.T) {
	svc, db := setupAttendanceService(t)

	fresh := seedUser(t, db, models.User{Name: "Meera Nair", Email: "meera@example.edu", Role: models.RoleStudent})

	roster, err := svc.Roster(context.Background(), teacher)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	require.Equal(t, fresh.ID, roster[0].StudentID)
	require.Zero(t, roster[0].Overall)
	require.False(t, roster[0].IsEligible)
}

func TestAttendanceRosterTeacherOnly(t *testing.T) {
	svc, _ := setupAttendanceService(t)

	_, err := svc.Roster(context.Background(), student)
	require.ErrorIs(t, err, ErrRoleNotAllowed)
}

func TestAttendanceSummaryForEmptySchedule(t *testing.T) {
	svc, _ := setupAttendanceService(t)

	summary, err := svc.SummaryFor(context.Background(), 1)
	require.NoError(t, err)
	require.Empty(t, summary.Subjects)
	require.Zero(t, summary.Overall)
	require.False(t, summary.IsEligible)
}
