package database

import (
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"precon-tracker/internal/models"
)

var DB *gorm.DB

func Init(dsn string) {
	var err error

	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		zap.L().Info("connecting to database", zap.Int("attempt", i), zap.Int("max_attempts", maxAttempts))

		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			zap.L().Info("connected to database")
			break
		}

		zap.L().Warn("database connection failed", zap.Error(err))
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		zap.L().Fatal("giving up connecting to database", zap.Int("attempts", maxAttempts), zap.Error(err))
	}

	if err := Migrate(DB); err != nil {
		zap.L().Fatal("migration failed", zap.Error(err))
	}

	createDefaultAdmin()
	seedReferenceData()
}

// Migrate creates or updates the schema for every model. Also used by
// tests against an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserPosition{},
		&models.Position{},
		&models.Builder{},
		&models.Estimator{},
		&models.Supervisor{},
		&models.Location{},
		&models.Status{},
		&models.Priority{},
		&models.ProjectType{},
		&models.ProjectStyle{},
		&models.ResidentialBuilder{},
		&models.ResidentialStatus{},
		&models.ProgressStatus{},
		&models.Subcontractor{},
		&models.Project{},
		&models.ResidentialProject{},
		&models.Contact{},
		&models.NoteEntry{},
		&models.Drawing{},
		&models.AuditLog{},
	)
}

// admin account only comes from config, never from an API call
func createDefaultAdmin() {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@precon.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "Admin123!"
	}

	var count int64
	if err := DB.Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error; err != nil {
		zap.L().Error("failed to check for admin user", zap.Error(err))
		return
	}
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		zap.L().Error("failed to hash default admin password", zap.Error(err))
		return
	}

	admin := models.User{
		Email:        email,
		Name:         "Administrator",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		Active:       true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		zap.L().Error("failed to create default admin", zap.Error(err))
		return
	}

	zap.L().Info("created default admin user", zap.String("email", email))
}

// seedReferenceData fills the status/priority lookups the dashboard
// expects on a fresh database. Rows added by users later are untouched.
func seedReferenceData() {
	seedNames("statuses",
		"Bidding", "Awarded", "In Progress", "On Hold", "Complete")
	seedNames("priorities",
		"Low", "Medium", "High")
	seedNames("progress_statuses",
		"Not Started", "Framing", "Rough-In", "Finishing", "Done")
}

func seedNames(table string, names ...string) {
	for _, name := range names {
		var count int64
		if err := DB.Table(table).Where("name = ?", name).Count(&count).Error; err != nil {
			zap.L().Error("failed to check seed row", zap.String("table", table), zap.Error(err))
			return
		}
		if count > 0 {
			continue
		}
		if err := DB.Table(table).Create(map[string]any{
			"name":       name,
			"created_at": time.Now(),
			"updated_at": time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to seed row",
				zap.String("table", table), zap.String("name", name), zap.Error(err))
		}
	}
}
