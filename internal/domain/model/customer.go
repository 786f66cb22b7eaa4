package model

import "time"

// 会員・ゲスト兼用。ゲスト注文は customers 行を作らない。
type Customer struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"type:varchar(255);not null" json:"name"`
	Phone        string `gorm:"type:varchar(20);not null" json:"phone"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`
	Address      string `gorm:"type:text" json:"address"`
	IsRegistered bool   `gorm:"not null;default:false" json:"is_registered"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
