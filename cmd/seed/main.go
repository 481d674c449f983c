package main

import (
	"time"

	"careledger/internal/app/ds"
	"careledger/internal/app/dsn"
	"careledger/internal/app/pkg/auth"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()
	db, err := gorm.Open(postgres.Open(dsn.FromEnv()), &gorm.Config{})
	if err != nil {
		log.WithError(err).Fatal("failed to connect database")
	}

	adminPass, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := ds.User{Email: "admin@example.com", Password: string(adminPass), Name: "Alice Admin", Role: ds.RoleAdmin, IsActive: true}
	if err := db.Where(ds.User{Email: admin.Email}).FirstOrCreate(&admin).Error; err != nil {
		log.WithError(err).Fatal("seed admin")
	}

	memberPass, _ := bcrypt.GenerateFromPassword([]byte("member123"), bcrypt.DefaultCost)
	member := ds.User{Email: "member@example.com", Password: string(memberPass), Name: "Mark Member", Role: ds.RoleMember, IsActive: true}
	if err := db.Where(ds.User{Email: member.Email}).FirstOrCreate(&member).Error; err != nil {
		log.WithError(err).Fatal("seed member")
	}

	recipient := ds.CareRecipient{Name: "Rose Recipient", AdminUserID: admin.ID, CreatedAt: time.Now()}
	if err := db.Where(ds.CareRecipient{Name: recipient.Name, AdminUserID: admin.ID}).FirstOrCreate(&recipient).Error; err != nil {
		log.WithError(err).Fatal("seed recipient")
	}

	pinHash, err := auth.HashPIN("1234")
	if err != nil {
		log.WithError(err).Fatal("hash pin")
	}
	caregiver := ds.Caregiver{Name: "Carol Caregiver", Phone: "+1-555-0100", PIN: pinHash, CareRecipientID: recipient.ID, IsActive: true, CreatedAt: time.Now()}
	if err := db.Where(ds.Caregiver{Name: caregiver.Name, CareRecipientID: recipient.ID}).FirstOrCreate(&caregiver).Error; err != nil {
		log.WithError(err).Fatal("seed caregiver")
	}

	grant := ds.CareRecipientAccess{CareRecipientID: recipient.ID, UserID: member.ID, GrantedBy: admin.ID, GrantedAt: time.Now()}
	if err := db.Where(ds.CareRecipientAccess{CareRecipientID: recipient.ID, UserID: member.ID}).FirstOrCreate(&grant).Error; err != nil {
		log.WithError(err).Fatal("seed grant")
	}

	log.Info("seed complete")
}
