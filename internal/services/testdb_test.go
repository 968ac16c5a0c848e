// internal/services/testdb_test.go
package services

import (
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nexushub/webhub-backend/internal/database"
	"github.com/nexushub/webhub-backend/internal/models"
)

// setupTestDB connects to the database named by TEST_DATABASE_URL and
// migrates the schema. Tests that need storage are skipped when the
// variable is unset so the pure-function tests still run everywhere.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func truncateAll(t *testing.T, db *gorm.DB) {
	t.Helper()

	tables := []string{
		"notifications", "collection_items", "collections", "reports",
		"review_votes", "reviews", "webapp_shares", "webapp_clicks",
		"webapp_views", "webapp_versions", "webapps", "users",
	}
	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			t.Fatalf("failed to truncate %s: %v", table, err)
		}
	}
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{Email: email, Name: "Tester " + uuid.NewString()[:8]}
	if err := user.SetPassword("password123"); err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func createTestWebapp(t *testing.T, db *gorm.DB, creatorID uuid.UUID) *models.Webapp {
	t.Helper()

	webapp := &models.Webapp{
		CreatorID:        creatorID,
		Name:             "Test App " + uuid.NewString()[:8],
		DescriptionShort: "A test webapp for the service tests",
		URL:              "https://example.com/" + uuid.NewString(),
		Category:         "productivity",
		Status:           models.WebappStatusApproved,
		TrustScore:       60,
	}
	if err := db.Create(webapp).Error; err != nil {
		t.Fatalf("failed to create test webapp: %v", err)
	}
	return webapp
}
