package cmd

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample companies, users, categories, RFQs and delegations for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			clearTables(db)
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		companies := []struct {
			Name string
			Desc string
		}{
			{"Acme Industrial", "Heavy machinery buyer"},
			{"Bolt Supply Co", "Fastener and fitting supplier"},
		}

		companyIDs := make(map[string]int64, len(companies))
		for _, c := range companies {
			var id int64
			err := db.QueryRow("SELECT id FROM companies WHERE name = $1", c.Name).Scan(&id)
			if err != nil {
				err = db.QueryRow(
					"INSERT INTO companies (name, description, is_active, created_at, updated_at) VALUES ($1, $2, true, now(), now()) RETURNING id",
					c.Name, c.Desc).Scan(&id)
				if err != nil {
					log.Fatalf("failed to insert company %s: %v", c.Name, err)
				}
				fmt.Println("Seeded company:", c.Name)
			}
			companyIDs[c.Name] = id
		}

		users := []struct {
			Email   string
			Name    string
			Role    string
			Company string
		}{
			{"admin@bidquo.dev", "Site Admin", "ADMIN", ""},
			{"maya@acme.example", "Maya Buyer", "BUYER", "Acme Industrial"},
			{"sam@bolt.example", "Sam Supplier", "SUPPLIER", "Bolt Supply Co"},
		}

		userIDs := make(map[string]int64, len(users))
		for _, u := range users {
			var id int64
			err := db.QueryRow("SELECT id FROM users WHERE email = $1", u.Email).Scan(&id)
			if err == nil {
				fmt.Println("user already exists:", u.Email)
				userIDs[u.Email] = id
				continue
			}

			var companyID interface{}
			if u.Company != "" {
				companyID = companyIDs[u.Company]
			}

			err = db.QueryRow(
				"INSERT INTO users (email, name, password_hash, role, company_id, is_active, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, true, now(), now()) RETURNING id",
				u.Email, u.Name, string(hash), u.Role, companyID).Scan(&id)
			if err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Email, err)
			}
			userIDs[u.Email] = id
			fmt.Printf("Seeded user: %s (%s)\n", u.Email, u.Role)
		}

		categories := []struct {
			Name string
			Desc string
		}{
			{"fasteners", "Bolts, screws, nuts and fittings"},
			{"electronics", "Components, boards and assemblies"},
			{"packaging", "Boxes, crates and wrapping"},
		}
		for _, c := range categories {
			var id int64
			err := db.QueryRow("SELECT id FROM rfq_categories WHERE name = $1", c.Name).Scan(&id)
			if err != nil {
				if _, err := db.Exec(
					"INSERT INTO rfq_categories (name, description, is_active, created_at, updated_at) VALUES ($1, $2, true, now(), now())",
					c.Name, c.Desc); err != nil {
					log.Fatalf("failed to insert category %s: %v", c.Name, err)
				}
				fmt.Println("Seeded category:", c.Name)
			}
		}

		var rfqID int64
		err = db.QueryRow("SELECT id FROM rfqs WHERE title = $1", "5000x M8 hex bolts").Scan(&rfqID)
		if err != nil {
			err = db.QueryRow(
				"INSERT INTO rfqs (buyer_id, company_id, title, description, category, quantity, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, 'open', now(), now()) RETURNING id",
				userIDs["maya@acme.example"], companyIDs["Acme Industrial"],
				"5000x M8 hex bolts", "Zinc plated, DIN 933", "fasteners", 5000).Scan(&rfqID)
			if err != nil {
				log.Fatalf("failed to insert sample rfq: %v", err)
			}
			fmt.Println("Seeded sample RFQ")
		}

		// Maya hands editing of her RFQ to the admin's teammate account;
		// demonstrates a specific-resource grant in a fresh environment.
		var exists int
		err = db.QueryRow(
			"SELECT 1 FROM delegations WHERE from_user_id = $1 AND to_user_id = $2 AND resource_type = 'rfq'",
			userIDs["maya@acme.example"], userIDs["sam@bolt.example"]).Scan(&exists)
		if err != nil {
			_, err = db.Exec(
				"INSERT INTO delegations (from_user_id, to_user_id, resource_type, resource_id, permission, is_active, expires_at, created_at, updated_at) VALUES ($1, $2, 'rfq', $3, 'view', true, NULL, now(), now())",
				userIDs["maya@acme.example"], userIDs["sam@bolt.example"], fmt.Sprintf("%d", rfqID))
			if err != nil {
				log.Fatalf("failed to insert sample delegation: %v", err)
			}
			fmt.Println("Seeded sample delegation")
		}

		fmt.Println("Seeding complete. All users share the password:", password)
	},
}

func clearTables(db *sqlx.DB) {
	// child tables first
	for _, table := range []string{"delegations", "bids", "rfqs", "rfq_categories", "products", "users", "companies"} {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			log.Fatalf("failed to clear table %s: %v", table, err)
		}
	}
	fmt.Println("Cleared existing data")
}
