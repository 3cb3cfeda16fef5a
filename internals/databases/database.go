package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	libModel "librarydesk_backend/internals/features/libraries/model"
	stuModel "librarydesk_backend/internals/features/students/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Connecting to PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=librarydesk&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // plays nice with PgBouncer transaction pooling
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate creates the tables plus the partial unique index that is the final
// backstop for seat uniqueness: only rows that are active and not soft-deleted
// compete for a seat.
func Migrate() {
	if err := DB.AutoMigrate(
		&libModel.LibraryModel{},
		&stuModel.StudentModel{},
	); err != nil {
		log.Fatalf("❌ migrate failed: %v", err)
	}

	if err := DB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uq_students_active_seat
		ON students (student_library_id, student_seat_number)
		WHERE student_is_active = TRUE AND student_deleted_at IS NULL
	`).Error; err != nil {
		log.Fatalf("❌ seat index migrate failed: %v", err)
	}

	if err := DB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uq_libraries_owner_phone
		ON libraries (library_owner_phone)
		WHERE library_deleted_at IS NULL
	`).Error; err != nil {
		log.Fatalf("❌ owner phone index migrate failed: %v", err)
	}

	log.Println("✅ Schema migrated.")
}

func WarmUpQueries() {
	// light ping so the pool is filled and ready before traffic lands
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
