package model

import (
	"time"

	"gorm.io/gorm"
)

// Milestone 项目里程碑
type Milestone struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	ProjectID    uint            `json:"project_id" gorm:"not null;index"`
	Title        string          `json:"title" gorm:"not null"`
	Description  string          `json:"description" gorm:"type:text"`
	Status       MilestoneStatus `json:"status" gorm:"default:'pending'"`
	DueDate      *time.Time      `json:"due_date"`
	DisplayOrder int             `json:"display_order" gorm:"default:0"`
	CompletedAt  *time.Time      `json:"completed_at"`

	// 关联
	Project Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
}

// MilestoneStatus 里程碑状态
type MilestoneStatus string

const (
	MilestoneStatusPending    MilestoneStatus = "pending"     // 待开始
	MilestoneStatusInProgress MilestoneStatus = "in_progress" // 进行中
	MilestoneStatusCompleted  MilestoneStatus = "completed"   // 已完成
)

// Valid 判断是否为合法的里程碑状态
func (s MilestoneStatus) Valid() bool {
	switch s {
	case MilestoneStatusPending, MilestoneStatusInProgress, MilestoneStatusCompleted:
		return true
	}
	return false
}
