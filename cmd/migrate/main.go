package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ikarolaborda/open-asm-sub000/internal/model"
	"github.com/ikarolaborda/open-asm-sub000/pkg/config"
	"github.com/ikarolaborda/open-asm-sub000/pkg/database"
)

func main() {
	_ = godotenv.Load() // optionally load environment file

	rootCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Asset registry database tool",
	}

	rootCmd.AddCommand(migrateCmd(), seedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openDB() (*gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return database.Connect(&cfg.DB)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			if err := database.Migrate(db, model.All()...); err != nil {
				return err
			}
			fmt.Println("Migrations completed")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	var (
		orgName    string
		orgCode    string
		adminEmail string
		adminPass  string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a default organization and super-admin user",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			if err := database.Migrate(db, model.All()...); err != nil {
				return err
			}

			var org model.Organization
			err = db.Where("code = ?", orgCode).First(&org).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				org = model.Organization{Name: orgName, Code: orgCode, Active: true}
				if err := db.Create(&org).Error; err != nil {
					return fmt.Errorf("failed to create organization: %w", err)
				}
				fmt.Printf("Organization %q created (id=%d)\n", org.Name, org.ID)
			} else if err != nil {
				return err
			} else {
				fmt.Printf("Organization %q already exists (id=%d)\n", org.Name, org.ID)
			}

			var count int64
			if err := db.Model(&model.User{}).Where("email = ?", adminEmail).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				fmt.Printf("User %q already exists\n", adminEmail)
				return nil
			}

			hash, err := bcrypt.GenerateFromPassword([]byte(adminPass), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			admin := model.User{
				Email:        adminEmail,
				Password:     string(hash),
				IsSuperAdmin: true,
				Active:       true,
			}
			if err := db.Create(&admin).Error; err != nil {
				return fmt.Errorf("failed to create admin user: %w", err)
			}
			fmt.Printf("Super-admin %q created\n", admin.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&orgName, "org-name", "Default Organization", "seed organization name")
	cmd.Flags().StringVar(&orgCode, "org-code", "default", "seed organization code")
	cmd.Flags().StringVar(&adminEmail, "admin-email", "admin@localhost", "super-admin email")
	cmd.Flags().StringVar(&adminPass, "admin-password", "changeme", "super-admin password")

	return cmd
}
