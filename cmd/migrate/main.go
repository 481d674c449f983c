package main

import (
	"careledger/internal/app/ds"
	"careledger/internal/app/dsn"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()
	db, err := gorm.Open(postgres.Open(dsn.FromEnv()), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	err = db.AutoMigrate(
		&ds.User{},
		&ds.CareRecipient{},
		&ds.Caregiver{},
		&ds.CareRecipientAccess{},
		&ds.CareLog{},
		&ds.AuditEntry{},
		&ds.ViewRecord{},
	)
	if err != nil {
		panic(err)
	}
}
