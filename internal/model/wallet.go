package model

import (
	"time"

	"gorm.io/gorm"
)

// Wallet 用户钱包：balance 为缓存余额，只能随支付结算/退款成对变动
type Wallet struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	UserID   uint    `json:"user_id" gorm:"uniqueIndex;not null"`
	Balance  float64 `json:"balance" gorm:"default:0"`
	Currency string  `json:"currency" gorm:"default:'USD'"`

	// 关联
	Transactions []WalletTransaction `json:"transactions,omitempty" gorm:"foreignKey:WalletID"`
}

// WalletTransaction 钱包流水
type WalletTransaction struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	WalletID    uint                  `json:"wallet_id" gorm:"not null;index"`
	Type        WalletTransactionType `json:"type" gorm:"not null"`
	Amount      float64               `json:"amount" gorm:"not null"`
	Description string                `json:"description"`
}

// WalletTransactionType 钱包流水类型
type WalletTransactionType string

const (
	WalletTransactionCredit WalletTransactionType = "credit" // 入账
	WalletTransactionDebit  WalletTransactionType = "debit"  // 出账
)
