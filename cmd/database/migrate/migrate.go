package migration

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"BloodLink/entities"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.DonorProfile{}); err != nil {
		log.Fatalf("Error migrating donor profile database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.HospitalProfile{}); err != nil {
		log.Fatalf("Error migrating hospital profile database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Donation{}); err != nil {
		log.Fatalf("Error migrating donation database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.BloodInventory{}); err != nil {
		log.Fatalf("Error migrating blood inventory database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.InventoryAdjustment{}); err != nil {
		log.Fatalf("Error migrating inventory adjustment database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Notification{}); err != nil {
		log.Fatalf("Error migrating notification database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
