package main

import (
	"log"
	"os"
	"time"

	"spa-registry-be/internal/model"
	"spa-registry-be/internal/service"
	"spa-registry-be/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func strptr(s string) *string { return &s }

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding demo registry data...")

	now := time.Now()
	nextPayment := now.AddDate(0, 12, 0)
	verifier := uint(1)

	spas := []model.Spa{
		{
			ReferenceNumber: service.NewReferenceNumber("SPA"),
			Name:            "Serenity Wellness Spa",
			Email:           "admin@serenity.example",
			Phone:           "+60 3-2141 0001",
			Address:         "12 Jalan Bukit, Kuala Lumpur",
			Region:          "Kuala Lumpur",
			AdminUserId:     1001,
			Status:          "verified",
			AnnualFeePaid:   true,
			NextPaymentDate: &nextPayment,
			VerifiedBy:      &verifier,
			VerifiedAt:      &now,
		},
		{
			ReferenceNumber: service.NewReferenceNumber("SPA"),
			Name:            "Lotus Garden Retreat",
			Email:           "admin@lotusgarden.example",
			Phone:           "+60 4-226 0002",
			Address:         "88 Lebuh Chulia, George Town",
			Region:          "Penang",
			AdminUserId:     1002,
			Status:          "verified",
			VerifiedBy:      &verifier,
			VerifiedAt:      &now,
		},
		{
			ReferenceNumber: service.NewReferenceNumber("SPA"),
			Name:            "Harbour View Spa",
			Email:           "admin@harbourview.example",
			Phone:           "+60 7-333 0003",
			Address:         "5 Jalan Wong Ah Fook, Johor Bahru",
			Region:          "Johor",
			AdminUserId:     1003,
			Status:          "pending",
		},
		{
			ReferenceNumber: service.NewReferenceNumber("SPA"),
			Name:            "Golden Palm Massage House",
			Email:           "admin@goldenpalm.example",
			Region:          "Kuala Lumpur",
			AdminUserId:     1004,
			Status:          "verified",
			BlacklistReason: strptr("Operating with unlicensed staff"),
			BlacklistedAt:   &now,
			VerifiedBy:      &verifier,
			VerifiedAt:      &now,
		},
	}

	for i := range spas {
		spa := &spas[i]
		var existing model.Spa
		if err := db.Where("admin_user_id = ?", spa.AdminUserId).First(&existing).Error; err == nil {
			log.Printf("Spa for admin user %d already exists, skipping...", spa.AdminUserId)
			spas[i] = existing
			continue
		}
		if err := db.Create(spa).Error; err != nil {
			log.Printf("Error creating spa '%s': %v", spa.Name, err)
		} else {
			log.Printf("Created spa: %s (%s)", spa.Name, spa.ReferenceNumber)
		}
	}

	log.Println("Seeding demo therapists...")
	seedTherapists(db, spas, now)

	log.Println("Seeding completed!")
}

func seedTherapists(db *gorm.DB, spas []model.Spa, now time.Time) {
	if len(spas) < 2 || spas[0].Id == 0 || spas[1].Id == 0 {
		log.Println("Skipping therapists: spa rows unavailable")
		return
	}

	approver := uint(1)
	therapists := []model.Therapist{
		{
			SpaId:          spas[0].Id,
			FullName:       "Aisyah Rahman",
			Email:          "aisyah@serenity.example",
			IdentityNumber: "880101-14-5001",
			Status:         "approved",
			ApprovedBy:     &approver,
			ApprovedAt:     &now,
		},
		{
			SpaId:          spas[0].Id,
			FullName:       "Mei Ling Tan",
			Email:          "meiling@serenity.example",
			IdentityNumber: "910305-07-5002",
			Status:         "pending",
		},
		{
			SpaId:          spas[1].Id,
			FullName:       "Priya Nair",
			Email:          "priya@lotusgarden.example",
			IdentityNumber: "930712-08-5003",
			Status:         "approved",
			ApprovedBy:     &approver,
			ApprovedAt:     &now,
		},
	}

	for i := range therapists {
		th := &therapists[i]
		var existing model.Therapist
		if err := db.Where("identity_number = ?", th.IdentityNumber).First(&existing).Error; err == nil {
			log.Printf("Therapist '%s' already exists, skipping...", th.FullName)
			continue
		}
		if err := db.Create(th).Error; err != nil {
			log.Printf("Error creating therapist '%s': %v", th.FullName, err)
		} else {
			log.Printf("Created therapist: %s", th.FullName)
		}
	}
}
