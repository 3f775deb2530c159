//go:build integration
// +build integration

package integration

import (
	"log"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/formhub/formhub-go/config"
	"github.com/formhub/formhub-go/db"
	"github.com/formhub/formhub-go/internal/testutils"
	"github.com/formhub/formhub-go/middleware"
	"github.com/formhub/formhub-go/models"
	"github.com/formhub/formhub-go/routes"
	"github.com/formhub/formhub-go/storage"
)

var (
	router  *gin.Engine
	cleanup func()
)

func TestMain(m *testing.M) {
	if err := setupTestEnvironment(); err != nil {
		log.Fatalf("Failed to setup test environment: %v", err)
	}

	code := m.Run()

	if cleanup != nil {
		cleanup()
	}
	os.Exit(code)
}

func setupTestEnvironment() error {
	_ = os.Setenv("JWT_SECRET", "test-secret-key-for-integration-testing")
	_ = os.Setenv("ISSUER", "test-formhub")
	_ = os.Setenv("STORAGE_BACKEND", "local")
	uploadDir, err := os.MkdirTemp("", "formhub-uploads-*")
	if err != nil {
		return err
	}
	_ = os.Setenv("UPLOAD_DIR", uploadDir)

	config.LoadConfig()
	middleware.Init()

	dsn, dbCleanup := testutils.SetupPostgresForIntegration()
	cleanup = func() {
		dbCleanup()
		_ = os.RemoveAll(uploadDir)
	}

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return err
	}
	db.InitWithGormDB(gormDB)
	if err := db.Migrate(); err != nil {
		return err
	}

	if err := seedSuperAdmin(); err != nil {
		return err
	}

	store, err := storage.NewFromConfig()
	if err != nil {
		return err
	}

	gin.SetMode(gin.TestMode)
	router = gin.New()
	routes.RegisterRoutes(router, store)
	return nil
}

func seedSuperAdmin() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte("rootpass"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Email:    "root@formhub.test",
		Username: "root",
		Password: string(hashed),
		Role:     models.RoleSuperAdmin,
		IsActive: true,
	}
	return db.DB.Create(&admin).Error
}
