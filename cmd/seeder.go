package cmd

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/lukmanhakim/user-portal/internal"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample accounts",
	Long:  `Seed the database with sample accounts for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := openSeedDB(cfg)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if err := seedAccounts(db); err != nil {
			log.Fatalf("failed to seed accounts: %v", err)
		}
	},
}

func openSeedDB(cfg *internal.Config) (*gorm.DB, error) {
	sqlDB, err := initDB(cfg.Database)
	if err != nil {
		return nil, err
	}
	return gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB.DB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
}

type seedAccount struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Role      string
}

// seedAccounts inserts the sample accounts if they are not already present.
// It is idempotent so the reseed command can run it repeatedly.
func seedAccounts(db *gorm.DB) error {
	password := "password"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	accounts := []seedAccount{
		{"Lukman", "Hakim", "lukman", "lukman@mail.com", "ROLE_SUPER_ADMIN"},
		{"Rina", "Wati", "rina", "rina@mail.com", "ROLE_ADMIN"},
		{"Budi", "Santoso", "budi", "budi@mail.com", "ROLE_USER"},
	}

	for _, a := range accounts {
		var exists int
		row := db.Raw("SELECT 1 FROM users WHERE username = ?", a.Username).Row()
		if err := row.Scan(&exists); err == nil {
			fmt.Printf("user %s already exists; skipping\n", a.Username)
			continue
		}

		if err := db.Exec(
			`INSERT INTO users (public_id, first_name, last_name, username, email, password_hash, profile_image_url, role, is_active, is_locked, joined_at, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, true, false, now(), now(), now())`,
			uuid.NewString(), a.FirstName, a.LastName, a.Username, a.Email, string(hash),
			"https://robohash.org/"+a.Username, a.Role,
		).Error; err != nil {
			return fmt.Errorf("failed to insert user %s: %w", a.Username, err)
		}
		fmt.Println("Seeded user:", a.Username)
	}

	fmt.Println("Sample accounts seeded successfully")
	return nil
}
