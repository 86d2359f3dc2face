package repository

import (
	"fmt"
	"strings"
	"testing"

	"funcity/internal/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Connect(fmt.Sprintf("file:repo_test_%s?mode=memory&cache=shared", name), nil)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}
