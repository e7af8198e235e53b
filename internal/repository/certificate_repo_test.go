package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/campuslink/portal-api/internal/models"
)

func setupCertificateTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	for _, table := range []string{models.BonafideRequestsTable, models.MigrationRequestsTable} {
		require.NoError(t, db.Table(table).AutoMigrate(&models.CertificateRequest{}))
	}

	return db
}

func TestCertificateRepositoryListByStudentFiltersAndOrders(t *testing.T) {
	db := setupCertificateTestDB(t)
	repo := NewCertificateRepository(db, models.BonafideRequestsTable)
	ctx := context.Background()

	older := models.CertificateRequest{StudentID: 1, StudentName: "Asha", Purpose: "Bank Account Opening", Status: models.CertificateStatusPending, DocumentPath: "2026/08/a.pdf", CreatedAt: time.Now().Add(-2 * time.Hour)}
	newer := models.CertificateRequest{StudentID: 1, StudentName: "Asha", Purpose: "Passport Application", Status: models.CertificateStatusPending, DocumentPath: "2026/08/b.pdf", CreatedAt: time.Now().Add(-time.Hour)}
	other := models.CertificateRequest{StudentID: 2, StudentName: "Ravi", Purpose: "Scholarship Application", Status: models.CertificateStatusPending, DocumentPath: "2026/08/c.pdf", CreatedAt: time.Now()}

	require.NoError(t, repo.Create(ctx, &older))
	require.NoError(t, repo.Create(ctx, &newer))
	require.NoError(t, repo.Create(ctx, &other))

	requests, err := repo.ListByStudent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	require.Equal(t, "Passport Application", requests[0].Purpose, "newest request should come first")
	require.Equal(t, "Bank Account Opening", requests[1].Purpose)

	for _, request := range requests {
		require.Equal(t, uint(1), request.StudentID)
	}
}

func TestCertificateRepositoryListByStudentEmptyIsNotAnError(t *testing.T) {
	db := setupCertificateTestDB(t)
	repo := NewCertificateRepository(db, models.BonafideRequestsTable)

	requests, err := repo.ListByStudent(context.Background(), 99)
	require.NoError(t, err)
	require.Empty(t, requests)
}

func TestCertificateRepositoryTablesAreIsolated(t *testing.T) {
	db := setupCertificateTestDB(t)
	bonafide := NewCertificateRepository(db, models.BonafideRequestsTable)
	migration := NewCertificateRepository(db, models.MigrationRequestsTable)
	ctx := context.Background()

	request := models.CertificateRequest{StudentID: 1, StudentName: "Asha", Purpose: "Transfer", Status: models.CertificateStatusPending, DocumentPath: "2026/08/t.pdf"}
	require.NoError(t, migration.Create(ctx, &request))

	fromBonafide, err := bonafide.ListAll(ctx)
	require.NoError(t, err)
	require.Empty(t, fromBonafide)

	fromMigration, err := migration.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, fromMigration, 1)
}

func TestCertificateRepositoryDecideIsCompareAndSet(t *testing.T) {
	db := setupCertificateTestDB(t)
	repo := NewCertificateRepository(db, models.BonafideRequestsTable)
	ctx := context.Background()

	request := models.CertificateRequest{StudentID: 1, StudentName: "Asha", Purpose: "Bank Account Opening", Status: models.CertificateStatusPending, DocumentPath: "2026/08/a.pdf"}
	require.NoError(t, repo.Create(ctx, &request))

	affected, err := repo.Decide(ctx, request.ID, models.CertificateStatusApproved, "Verified", 7, time.Now())
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)

	decided, err := repo.GetByID(ctx, request.ID)
	require.NoError(t, err)
	require.Equal(t, models.CertificateStatusApproved, decided.Status)
	require.Equal(t, "Verified", decided.Comments)
	require.NotNil(t, decided.DecidedBy)
	require.Equal(t, uint(7), *decided.DecidedBy)

	// A competing decision on the already-decided row must not win.
	affected, err = repo.Decide(ctx, request.ID, models.CertificateStatusRejected, "too late", 8, time.Now())
	require.NoError(t, err)
	require.Zero(t, affected)

	unchanged, err := repo.GetByID(ctx, request.ID)
	require.NoError(t, err)
	require.Equal(t, models.CertificateStatusApproved, unchanged.Status)
	require.Equal(t, "Verified", unchanged.Comments)
}

func TestCertificateRepositoryDecideUnknownID(t *testing.T) {
	db := setupCertificateTestDB(t)
	repo := NewCertificateRepository(db, models.BonafideRequestsTable)

	affected, err := repo.Decide(context.Background(), 404, models.CertificateStatusApproved, "", 1, time.Now())
	require.NoError(t, err)
	require.Zero(t, affected)
}

func TestCertificateRepositoryCounts(t *testing.T) {
	db := setupCertificateTestDB(t)
	repo := NewCertificateRepository(db, models.MigrationRequestsTable)
	ctx := context.Background()

	for i, status := range []string{models.CertificateStatusPending, models.CertificateStatusPending, models.CertificateStatusApproved} {
		request := models.CertificateRequest{StudentID: uint(1 + i%2), StudentName: "S", Purpose: "Transfer", Status: status, DocumentPath: "d.pdf"}
		require.NoError(t, repo.Create(ctx, &request))
	}

	pending, err := repo.CountByStatus(ctx, models.CertificateStatusPending)
	require.NoError(t, err)
	require.Equal(t, int64(2), pending)

	approved, err := repo.CountByStatus(ctx, models.CertificateStatusApproved)
	require.NoError(t, err)
	require.Equal(t, int64(1), approved)

	studentPending, err := repo.CountByStudentAndStatus(ctx, 1, models.CertificateStatusPending)
	require.NoError(t, err)
	require.Equal(t, int64(1), studentPending)
}
