package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testUpA   = "CREATE TABLE a (id INT);"
	testDownA = "DROP TABLE a;"
	testUpB   = "CREATE TABLE b (id INT);"
	testDownB = "DROP TABLE b;"
)

func twoMigrations() fstest.MapFS {
	return fstest.MapFS{
		"sql/migrations/0002_second.down.sql": {Data: []byte(testDownB)},
		"sql/migrations/0001_first.up.sql":    {Data: []byte(testUpA)},
		"sql/migrations/0002_second.up.sql":   {Data: []byte(testUpB + "\n\n")},
		"sql/migrations/0001_first.down.sql":  {Data: []byte(testDownA)},
	}
}

func TestParseMigrations_SortsAndTrims(t *testing.T) {
	t.Parallel()

	migrations, err := parseMigrations(twoMigrations())
	require.NoError(t, err)
	require.Len(t, migrations, 2)

	assert.Equal(t, "0001_first", migrations[0].String())
	assert.Equal(t, "0002_second", migrations[1].String())
	assert.Equal(t, testUpB, migrations[1].Up)
	assert.Equal(t, testDownA, migrations[0].Down)
}

func TestParseMigrations_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		fsys    fstest.MapFS
		wantErr string
	}{
		{
			name:    "no directory",
			fsys:    fstest.MapFS{},
			wantErr: "list migrations",
		},
		{
			name:    "only subdirectories",
			fsys:    fstest.MapFS{"sql/migrations/archive/0001_old.up.sql": {Data: []byte(testUpA)}},
			wantErr: "no migration files found",
		},
		{
			name: "missing down",
			fsys: fstest.MapFS{
				"sql/migrations/0001_first.up.sql": {Data: []byte(testUpA)},
			},
			wantErr: "both up and down",
		},
		{
			name: "blank script",
			fsys: fstest.MapFS{
				"sql/migrations/0001_first.up.sql":   {Data: []byte(" \n\t")},
				"sql/migrations/0001_first.down.sql": {Data: []byte(testDownA)},
			},
			wantErr: "is empty",
		},
		{
			name: "name clash",
			fsys: fstest.MapFS{
				"sql/migrations/0001_first.up.sql":   {Data: []byte(testUpA)},
				"sql/migrations/0001_other.down.sql": {Data: []byte(testDownA)},
			},
			wantErr: "two names",
		},
		{
			name: "not a migration",
			fsys: fstest.MapFS{
				"sql/migrations/readme.md": {Data: []byte("docs")},
			},
			wantErr: "invalid migration file name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := parseMigrations(tt.fsys)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseMigrationName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		file        string
		wantVersion int64
		wantName    string
		wantUp      bool
		wantErr     bool
	}{
		{file: "0001_catalog.up.sql", wantVersion: 1, wantName: "catalog", wantUp: true},
		{file: "0012_outbox_stats.down.sql", wantVersion: 12, wantName: "outbox_stats"},
		{file: "0001_catalog.sql", wantErr: true},
		{file: "0001.up.sql", wantErr: true},
		{file: "0001_.up.sql", wantErr: true},
		{file: "abc_catalog.up.sql", wantErr: true},
		{file: "0000_zero.up.sql", wantErr: true},
		{file: "0001_catalog.up.txt", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			t.Parallel()

			version, name, up, err := parseMigrationName(tt.file)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantVersion, version)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantUp, up)
		})
	}
}

func TestPendingMigrations(t *testing.T) {
	t.Parallel()

	all, err := parseMigrations(twoMigrations())
	require.NoError(t, err)

	pending, err := pendingMigrations(all, []appliedMigration{{Version: 1, Checksum: all[0].checksum()}})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, int64(2), pending[0].Version)

	_, err = pendingMigrations(all, []appliedMigration{{Version: 1, Checksum: "stale"}})
	assert.ErrorIs(t, err, ErrMigrationChanged)
}

func newMigratorMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &Store{db: db, migrations: twoMigrations()}, mock
}

func expectLockAndTable(mock sqlmock.Sqlmock) {
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_lock($1)")).
		WithArgs(migrationLockKey).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS shop_schema_migrations")).
		WillReturnResult(sqlmock.NewResult(0, 0))
}

func expectUnlock(mock sqlmock.Sqlmock) {
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_unlock($1)")).
		WithArgs(migrationLockKey).
		WillReturnResult(sqlmock.NewResult(0, 0))
}

func TestMigrateUp_AppliesOnlyPendingSteps(t *testing.T) {
	store, mock := newMigratorMockStore(t)
	first := migration{Version: 1, Name: "first", Up: testUpA}
	second := migration{Version: 2, Name: "second", Up: testUpB}

	expectLockAndTable(mock)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT version, checksum FROM shop_schema_migrations")).
		WillReturnRows(sqlmock.NewRows([]string{"version", "checksum"}).AddRow(int64(1), first.checksum()))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(testUpB)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO shop_schema_migrations")).
		WithArgs(int64(2), "second", second.checksum()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	expectUnlock(mock)

	require.NoError(t, store.MigrateUp(context.Background(), 0))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateUp_RollsBackFailedScript(t *testing.T) {
	store, mock := newMigratorMockStore(t)
	scriptErr := errors.New("syntax error")

	expectLockAndTable(mock)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT version, checksum FROM shop_schema_migrations")).
		WillReturnRows(sqlmock.NewRows([]string{"version", "checksum"}))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(testUpA)).WillReturnError(scriptErr)
	mock.ExpectRollback()
	expectUnlock(mock)

	err := store.MigrateUp(context.Background(), 1)
	require.ErrorIs(t, err, scriptErr)
	assert.Contains(t, err.Error(), "0001_first")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateUp_RefusesChangedMigration(t *testing.T) {
	store, mock := newMigratorMockStore(t)

	expectLockAndTable(mock)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT version, checksum FROM shop_schema_migrations")).
		WillReturnRows(sqlmock.NewRows([]string{"version", "checksum"}).AddRow(int64(1), "edited"))
	expectUnlock(mock)

	err := store.MigrateUp(context.Background(), 0)
	assert.ErrorIs(t, err, ErrMigrationChanged)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateDown_DefaultsToOneStep(t *testing.T) {
	store, mock := newMigratorMockStore(t)

	expectLockAndTable(mock)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT version, checksum FROM shop_schema_migrations")).
		WillReturnRows(sqlmock.NewRows([]string{"version", "checksum"}).
			AddRow(int64(1), "a").
			AddRow(int64(2), "b"))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(testDownB)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM shop_schema_migrations")).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	expectUnlock(mock)

	require.NoError(t, store.MigrateDown(context.Background(), 0))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateDown_UnknownVersion(t *testing.T) {
	store, mock := newMigratorMockStore(t)

	expectLockAndTable(mock)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT version, checksum FROM shop_schema_migrations")).
		WillReturnRows(sqlmock.NewRows([]string{"version", "checksum"}).AddRow(int64(9), "x"))
	expectUnlock(mock)

	err := store.MigrateDown(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown migration version 9")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrationStatus_FromMock(t *testing.T) {
	store, mock := newMigratorMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS shop_schema_migrations")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(MAX(version), 0), COUNT(*)")).
		WillReturnRows(sqlmock.NewRows([]string{"max", "count"}).AddRow(int64(2), 2))

	version, count, err := store.MigrationStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)
	assert.Equal(t, 2, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrator_NilStore(t *testing.T) {
	var store *Store
	ctx := context.Background()

	assert.ErrorIs(t, store.MigrateUp(ctx, 0), errStoreNotInitialized)
	assert.ErrorIs(t, store.MigrateDown(ctx, 1), errStoreNotInitialized)
	_, _, err := store.MigrationStatus(ctx)
	assert.ErrorIs(t, err, errStoreNotInitialized)
}
