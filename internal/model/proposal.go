package model

import (
	"time"

	"gorm.io/gorm"
)

// Proposal 提案模型：剪辑师针对需求单的报价
type Proposal struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	JobID       uint           `json:"job_id" gorm:"not null;index"`
	EditorID    uint           `json:"editor_id" gorm:"not null;index"`
	Price       float64        `json:"price" gorm:"not null"`
	CoverLetter string         `json:"cover_letter" gorm:"type:text"`
	Status      ProposalStatus `json:"status" gorm:"default:'pending'"`

	// 关联
	Job Job `json:"job,omitempty" gorm:"foreignKey:JobID"`
}

// ProposalStatus 提案状态
type ProposalStatus string

const (
	ProposalStatusPending  ProposalStatus = "pending"  // 待处理
	ProposalStatusAccepted ProposalStatus = "accepted" // 已接受
	ProposalStatusRejected ProposalStatus = "rejected" // 已拒绝
)
