package model

import (
	"time"

	"gorm.io/gorm"
)

// Payment 支付记录：pending -> completed|failed，completed -> refunded
type Payment struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	TransactionID string  `json:"transaction_id" gorm:"uniqueIndex;not null"`
	ProjectID     uint    `json:"project_id" gorm:"not null;index"`
	PayerID       uint    `json:"payer_id" gorm:"not null;index"`
	PayeeID       uint    `json:"payee_id" gorm:"not null;index"`
	Amount        float64 `json:"amount" gorm:"not null"`
	Currency      string  `json:"currency" gorm:"default:'USD'"`
	Description   string  `json:"description" gorm:"type:text"`

	Status        PaymentStatus `json:"status" gorm:"default:'pending'"`
	PaymentMethod string        `json:"payment_method"`
	RefundReason  string        `json:"refund_reason" gorm:"type:text"`
	ProcessedAt   *time.Time    `json:"processed_at"`
	RefundedAt    *time.Time    `json:"refunded_at"`

	// 关联
	Project Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
}

// PaymentStatus 支付状态
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"   // 待处理
	PaymentStatusCompleted PaymentStatus = "completed" // 已完成
	PaymentStatusFailed    PaymentStatus = "failed"    // 失败
	PaymentStatusRefunded  PaymentStatus = "refunded"  // 已退款
)
