package model

import (
	"time"

	"gorm.io/gorm"
)

// Job 需求单模型：客户发布的剪辑需求
type Job struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	ClientID    uint      `json:"client_id" gorm:"not null;index"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	Budget      float64   `json:"budget" gorm:"default:0"`
	Status      JobStatus `json:"status" gorm:"default:'open'"`

	// 关联
	Proposals []Proposal `json:"proposals,omitempty" gorm:"foreignKey:JobID"`
}

// JobStatus 需求单状态
type JobStatus string

const (
	JobStatusOpen       JobStatus = "open"        // 招募中
	JobStatusInProgress JobStatus = "in_progress" // 已立项
	JobStatusClosed     JobStatus = "closed"      // 已关闭
)
