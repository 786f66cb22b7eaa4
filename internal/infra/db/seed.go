package db

import (
	"errors"
	"log"

	"app/internal/domain/model"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed は初期データを投入する。既にある行はそのまま。
func Seed(gormDB *gorm.DB) error {
	if err := seedAdminUser(gormDB); err != nil {
		return err
	}
	return seedSampleProducts(gormDB)
}

func seedAdminUser(gormDB *gorm.DB) error {
	var existing model.AdminUser
	err := gormDB.Where("username = ?", "admin").First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
	if err != nil {
		return err
	}

	admin := model.AdminUser{
		Username:     "admin",
		PasswordHash: string(hashed),
		Email:        "admin@bhadrakhealth.com",
	}
	if err := gormDB.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("admin user seeded: %s (ID: %d)", admin.Username, admin.ID)
	return nil
}

func seedSampleProducts(gormDB *gorm.DB) error {
	samples := []model.Product{
		{
			Name:          "Whey Protein Powder",
			Description:   "High-quality whey protein for muscle building and recovery",
			Price:         decimal.NewFromFloat(2500.00),
			Category:      "Protein",
			StockQuantity: 50,
			ImageURL:      "https://via.placeholder.com/300x300?text=Whey+Protein",
			IsActive:      true,
		},
		{
			Name:          "Creatine Monohydrate",
			Description:   "Pure creatine monohydrate for strength and power",
			Price:         decimal.NewFromFloat(1200.00),
			Category:      "Performance",
			StockQuantity: 30,
			ImageURL:      "https://via.placeholder.com/300x300?text=Creatine",
			IsActive:      true,
		},
		{
			Name:          "BCAA Powder",
			Description:   "Branch-chain amino acids for muscle recovery",
			Price:         decimal.NewFromFloat(1800.00),
			Category:      "Recovery",
			StockQuantity: 25,
			ImageURL:      "https://via.placeholder.com/300x300?text=BCAA",
			IsActive:      true,
		},
		{
			Name:          "Pre-Workout",
			Description:   "Energy booster for intense workout sessions",
			Price:         decimal.NewFromFloat(2200.00),
			Category:      "Energy",
			StockQuantity: 20,
			ImageURL:      "https://via.placeholder.com/300x300?text=Pre-Workout",
			IsActive:      true,
		},
		{
			Name:          "Multivitamin",
			Description:   "Complete multivitamin for daily health support",
			Price:         decimal.NewFromFloat(800.00),
			Category:      "Vitamins",
			StockQuantity: 40,
			ImageURL:      "https://via.placeholder.com/300x300?text=Multivitamin",
			IsActive:      true,
		},
	}

	for _, p := range samples {
		var existing model.Product
		err := gormDB.Where("name = ?", p.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := gormDB.Create(&p).Error; err != nil {
			log.Printf("failed to seed product %s: %v", p.Name, err)
			return err
		}
	}

	return nil
}
