package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	roleDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/role"
	"github.com/nanihealth/clinic-management/internal/storage"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := storage.Open(cfg.Database)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		if err := storage.AutoMigrate(db); err != nil {
			log.Fatalf("failed to migrate schema: %v", err)
		}

		if clearData {
			for _, table := range []string{"finances", "medical_records", "appointments", "patients", "staff"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		if err := storage.SeedRoles(db); err != nil {
			log.Fatalf("failed to seed roles: %v", err)
		}
		fmt.Println("Default roles seeded")

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		staffMembers := []struct {
			Username  string
			FullName  string
			Role      string
			Email     string
			Phone     string
			Specialty string
		}{
			{"dr.siti", "Siti Rahma", roleDatamodel.NameDoctor, "siti@clinic.local", "0812-1111-2222", "General Practice"},
			{"dr.budi", "Budi Santoso", roleDatamodel.NameDoctor, "budi@clinic.local", "0812-3333-4444", "Pediatrics"},
			{"nurse.ayu", "Ayu Lestari", roleDatamodel.NameNurse, "ayu@clinic.local", "0812-5555-6666", ""},
			{"admin", "Clinic Admin", roleDatamodel.NameAdmin, "admin@clinic.local", "", ""},
			{"frontdesk", "Rina Wulandari", roleDatamodel.NameReceptionist, "rina@clinic.local", "0812-7777-8888", ""},
		}

		for _, s := range staffMembers {
			var exists int
			if err := db.Raw("SELECT 1 FROM staff WHERE username = ?", s.Username).Row().Scan(&exists); err == nil {
				continue
			}

			var roleID int64
			if err := db.Raw("SELECT id FROM roles WHERE name = ?", s.Role).Row().Scan(&roleID); err != nil {
				log.Fatalf("role not found %s: %v", s.Role, err)
			}

			if err := db.Exec(
				"INSERT INTO staff (username, password, full_name, role_id, email, phone, specialty, is_active, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, true, CURRENT_TIMESTAMP)",
				s.Username, string(hash), s.FullName, roleID, s.Email, s.Phone, s.Specialty,
			).Error; err != nil {
				log.Fatalf("failed to insert staff %s: %v", s.Username, err)
			}
			fmt.Println("Seeded staff member:", s.Username)
		}

		patients := []struct {
			Name    string
			Contact string
			Email   string
			History string
			Doctor  string
		}{
			{"Jane Doe", "0813-0001-0001", "jane@mail.com", "Hypertension, controlled", "dr.siti"},
			{"Andi Wijaya", "0813-0002-0002", "andi@mail.com", "", "dr.budi"},
			{"Maria Tan", "0813-0003-0003", "", "Type 2 diabetes", "dr.siti"},
		}

		for _, p := range patients {
			var exists int
			if err := db.Raw("SELECT 1 FROM patients WHERE name = ? AND contact = ?", p.Name, p.Contact).Row().Scan(&exists); err == nil {
				continue
			}

			var doctorID int64
			if err := db.Raw("SELECT id FROM staff WHERE username = ?", p.Doctor).Row().Scan(&doctorID); err != nil {
				log.Fatalf("doctor not found %s: %v", p.Doctor, err)
			}

			if err := db.Exec(
				"INSERT INTO patients (name, contact, email, medical_history, assigned_doctor_id, created_at) VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)",
				p.Name, p.Contact, p.Email, p.History, doctorID,
			).Error; err != nil {
				log.Fatalf("failed to insert patient %s: %v", p.Name, err)
			}
			fmt.Println("Seeded patient:", p.Name)
		}

		fmt.Println("Sample data seeded successfully")
	},
}
