package database

import (
	"context"
	"testing"
	"testing/fstest"

	"matchboard/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMigrations() fstest.MapFS {
	return fstest.MapFS{
		"m/000002_add_notes.up.sql":   {Data: []byte("CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT);")},
		"m/000002_add_notes.down.sql": {Data: []byte("DROP TABLE notes;")},
		"m/000001_init.up.sql":        {Data: []byte("CREATE TABLE widgets (id INTEGER PRIMARY KEY);")},
		"m/000001_init.down.sql":      {Data: []byte("DROP TABLE widgets;")},
		"m/README.md":                 {Data: []byte("ignored")},
	}
}

func TestLoadMigrations_SortsByVersion(t *testing.T) {
	set, err := LoadMigrations(testMigrations(), "m")
	require.NoError(t, err)
	require.Len(t, set, 2)
	assert.Equal(t, 1, set[0].Version)
	assert.Equal(t, "init", set[0].Name)
	assert.Equal(t, "000002_add_notes", set[1].String())
	assert.Contains(t, set[1].DownScript, "DROP TABLE notes")
}

func TestLoadMigrations_Errors(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{"missing down", fstest.MapFS{"m/000001_init.up.sql": {Data: []byte("SELECT 1;")}}},
		{"bad version", fstest.MapFS{
			"m/abc_init.up.sql":   {Data: []byte("SELECT 1;")},
			"m/abc_init.down.sql": {Data: []byte("SELECT 1;")},
		}},
		{"no name", fstest.MapFS{"m/000001.up.sql": {Data: []byte("SELECT 1;")}}},
		{"duplicate version", fstest.MapFS{
			"m/000001_a.up.sql":   {Data: []byte("SELECT 1;")},
			"m/000001_a.down.sql": {Data: []byte("SELECT 1;")},
			"m/1_b.up.sql":        {Data: []byte("SELECT 1;")},
			"m/1_b.down.sql":      {Data: []byte("SELECT 1;")},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadMigrations(tt.fsys, "m")
			assert.Error(t, err)
		})
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	set, err := Migrations()
	require.NoError(t, err)
	require.NotEmpty(t, set)
	assert.Equal(t, 1, set[0].Version)
	assert.Contains(t, set[0].UpScript, "matches_user2_id_fkey")
	assert.Contains(t, set[0].UpScript, "messages_sender_id_fkey")
}

func TestRunMigrations_AppliesPendingOnce(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	set, err := LoadMigrations(testMigrations(), "m")
	require.NoError(t, err)

	ran, err := RunMigrations(ctx, db, set)
	require.NoError(t, err)
	assert.Len(t, ran, 2)
	assert.True(t, db.Migrator().HasTable("widgets"))
	assert.True(t, db.Migrator().HasTable("notes"))

	ran, err = RunMigrations(ctx, db, set)
	require.NoError(t, err)
	assert.Empty(t, ran)
}

func TestRunMigrations_RejectsUnknownAppliedVersion(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	set, err := LoadMigrations(testMigrations(), "m")
	require.NoError(t, err)

	_, err = RunMigrations(ctx, db, set)
	require.NoError(t, err)

	_, err = RunMigrations(ctx, db, set[:1])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "000002")
}

func TestRollbackMigration(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	set, err := LoadMigrations(testMigrations(), "m")
	require.NoError(t, err)

	_, err = RunMigrations(ctx, db, set)
	require.NoError(t, err)

	require.NoError(t, RollbackMigration(ctx, db, set, 2))
	assert.False(t, db.Migrator().HasTable("notes"))
	assert.True(t, db.Migrator().HasTable("widgets"))

	assert.Error(t, RollbackMigration(ctx, db, set, 2), "already rolled back")
	assert.Error(t, RollbackMigration(ctx, db, set, 99), "unknown version")
}

func TestPlanSchema(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		runSQL  bool
		runAuto bool
		wantErr bool
	}{
		{"hybrid dev", config.Config{Env: "development"}, true, true, false},
		{"hybrid prod", config.Config{Env: "production", DBSchemaMode: SchemaModeHybrid}, true, false, false},
		{"sql", config.Config{Env: "development", DBSchemaMode: SchemaModeSQL}, true, false, false},
		{"auto dev", config.Config{Env: "development", DBSchemaMode: SchemaModeAuto}, false, true, false},
		{"auto prod", config.Config{Env: "production", DBSchemaMode: SchemaModeAuto}, false, false, true},
		{"unknown", config.Config{DBSchemaMode: "yolo"}, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := planSchema(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.runSQL, plan.sql)
			assert.Equal(t, tt.runAuto, plan.auto)
		})
	}
}

func TestApplySchema_AutoMode(t *testing.T) {
	db := openTestDB(t)
	cfg := &config.Config{Env: "test", DBSchemaMode: SchemaModeAuto}

	require.NoError(t, ApplySchema(context.Background(), db, cfg))
	assert.True(t, db.Migrator().HasTable("matches"))
	assert.False(t, db.Migrator().HasTable("migration_logs"))
}

func TestGetSchemaStatus_ReportsPending(t *testing.T) {
	db := openTestDB(t)
	cfg := &config.Config{Env: "production", DBSchemaMode: SchemaModeSQL}

	status, err := GetSchemaStatus(context.Background(), db, cfg)
	require.NoError(t, err)
	assert.True(t, status.WillRunSQL)
	assert.False(t, status.WillRunAutoMigrate)
	assert.Empty(t, status.AppliedVersions)
	require.NotEmpty(t, status.PendingMigrations)
	assert.Equal(t, "dashboard_schema", status.PendingMigrations[0].Name)
}
