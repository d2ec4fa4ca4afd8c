package setting

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fieldcms/fieldcms/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	// Migrate the schema
	err = db.AutoMigrate(&models.Setting{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// seedSettings inserts test data into the database.
func seedSettings(t *testing.T, db *gorm.DB, settings []models.Setting) {
	t.Helper()
	for _, setting := range settings {
		err := db.Create(&setting).Error
		require.NoError(t, err, "failed to seed test data")
	}
}

func TestGet(t *testing.T) {
	db := setupTestDB(t)
	seedSettings(t, db, []models.Setting{
		{Name: "site_name", Value: []byte("FieldCMS")},
	})

	testCases := []struct {
		name        string
		db          *gorm.DB
		settingName string
		expected    string
		expectedErr error
	}{
		{
			name:        "existing setting",
			db:          db,
			settingName: "site_name",
			expected:    "FieldCMS",
		},
		{
			name:        "missing setting",
			db:          db,
			settingName: "nope",
			expectedErr: ErrSettingNotFound,
		},
		{
			name:        "empty name",
			db:          db,
			settingName: "",
			expectedErr: ErrSettingNameEmpty,
		},
		{
			name:        "nil database",
			db:          nil,
			settingName: "site_name",
			expectedErr: ErrDBNil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Get(tc.db, tc.settingName)
			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)
				assert.Nil(t, s)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, string(s.Value))
		})
	}
}

func TestGetAll(t *testing.T) {
	db := setupTestDB(t)

	all, err := GetAll(db)
	require.NoError(t, err)
	assert.Empty(t, all)

	seedSettings(t, db, []models.Setting{
		{Name: "b", Value: []byte("2")},
		{Name: "a", Value: []byte("1")},
	})

	all, err = GetAll(db)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Name)
	assert.Equal(t, "b", all[1].Name)

	_, err = GetAll(nil)
	require.ErrorIs(t, err, ErrDBNil)
}

func TestSet(t *testing.T) {
	db := setupTestDB(t)

	created, err := Set(db, "field_defaults", []byte(`{"date_format":"Y-m-d"}`))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	updated, err := Set(db, "field_defaults", []byte(`{"date_format":"d/m/Y"}`))
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.JSONEq(t, `{"date_format":"d/m/Y"}`, string(updated.Value))

	var count int64
	require.NoError(t, db.Model(&models.Setting{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	_, err = Set(db, "", nil)
	require.ErrorIs(t, err, ErrSettingNameEmpty)
}

func TestJSON(t *testing.T) {
	db := setupTestDB(t)

	type defaults struct {
		DateFormat string `json:"date_format"`
	}

	require.NoError(t, SetJSON(db, "field_defaults", defaults{DateFormat: "j.n.Y"}))

	var got defaults
	require.NoError(t, GetJSON(db, "field_defaults", &got))
	assert.Equal(t, "j.n.Y", got.DateFormat)

	require.ErrorIs(t, GetJSON(db, "missing", &got), ErrSettingNotFound)

	_, err := Set(db, "broken", []byte("{"))
	require.NoError(t, err)
	require.Error(t, GetJSON(db, "broken", &got))
}

func TestDeleteByName(t *testing.T) {
	db := setupTestDB(t)
	seedSettings(t, db, []models.Setting{{Name: "field_defaults", Value: []byte("{}")}})

	require.NoError(t, DeleteByName(db, "field_defaults"))
	require.ErrorIs(t, DeleteByName(db, "field_defaults"), ErrSettingNotFound)
	require.ErrorIs(t, DeleteByName(db, ""), ErrSettingNameEmpty)
	require.ErrorIs(t, DeleteByName(nil, "x"), ErrDBNil)
}
