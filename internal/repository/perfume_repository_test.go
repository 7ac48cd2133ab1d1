package repository

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB opens a GORM session over sqlmock so tests can assert the
// exact SQL shape a repository emits.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db, mock
}

func TestPerfumeRepositoryList_ScopesAndOrders(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPerfumeRepository(db)

	pattern := regexp.QuoteMeta("perfumes.user_id = ?") +
		".*" +
		regexp.QuoteMeta("ORDER BY perfumes.created_at DESC, perfumes.id DESC")
	mock.ExpectQuery(pattern).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	perfumes, err := repo.List(PerfumeFilter{OwnerID: 7})
	require.NoError(t, err)
	require.Empty(t, perfumes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPerfumeRepositoryList_FilterEmitsExistsProbes(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPerfumeRepository(db)

	// Owner scope first, then one EXISTS probe per filter dimension
	pattern := regexp.QuoteMeta("perfumes.user_id = ?") +
		".*" +
		regexp.QuoteMeta("EXISTS (SELECT 1 FROM") +
		".*" +
		regexp.QuoteMeta("perfume_designers.perfume_id = perfumes.id") +
		".*" +
		regexp.QuoteMeta("perfume_designers.designer_id IN (?,?)") +
		".*" +
		regexp.QuoteMeta("perfume_notes.perfume_id = perfumes.id") +
		".*" +
		regexp.QuoteMeta("perfume_notes.note_id IN (?)")
	mock.ExpectQuery(pattern).
		WithArgs(7, 1, 2, 3).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	perfumes, err := repo.List(PerfumeFilter{
		OwnerID:     7,
		DesignerIDs: []uint64{1, 2},
		NoteIDs:     []uint64{3},
	})
	require.NoError(t, err)
	require.Empty(t, perfumes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPerfumeRepositoryFindByID_ScopesToOwner(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPerfumeRepository(db)

	// First() binds the limit as a parameter as well
	pattern := regexp.QuoteMeta("perfumes.user_id = ?")
	mock.ExpectQuery(pattern).
		WithArgs(7, 42, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID(42, 7)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPerfumeRepositoryDelete_RemovesJoinRowsFirst(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPerfumeRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `perfume_notes`")).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `perfume_designers`")).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `perfumes`")).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(42))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTagRepositoryList_AssignedOnlyShape(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewNoteRepository(db)

	pattern := regexp.QuoteMeta("EXISTS (SELECT 1 FROM perfume_notes WHERE perfume_notes.note_id = notes.id)") +
		".*" +
		regexp.QuoteMeta("ORDER BY name DESC")
	mock.ExpectQuery(pattern).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	notes, err := repo.List(TagFilter{AssignedOnly: true})
	require.NoError(t, err)
	require.Empty(t, notes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTagRepositoryDelete_Shape(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDesignerRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM perfume_designers WHERE designer_id = ?")).
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `designers`")).
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(9))
	require.NoError(t, mock.ExpectationsWereMet())
}
