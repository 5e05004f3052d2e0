package model

import (
	"time"

	"gorm.io/gorm"
)

// Project 项目模型：客户接受提案后生成的合作项目
type Project struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	// 关联方
	JobID    uint `json:"job_id" gorm:"not null;index"`
	ClientID uint `json:"client_id" gorm:"not null;index"`
	EditorID uint `json:"editor_id" gorm:"not null;index"`

	// 状态
	Status ProjectStatus `json:"status" gorm:"default:'in_progress'"`

	// 托管金额：创建时从被接受提案的报价复制，此后不再增加
	EscrowAmount float64 `json:"escrow_amount" gorm:"default:0"`

	// 修改记录
	RevisionCount int    `json:"revision_count" gorm:"default:0"`
	RevisionNotes string `json:"revision_notes" gorm:"type:text"`

	// 终态与暂停信息
	HoldReason         string     `json:"hold_reason" gorm:"type:text"`
	CancellationReason string     `json:"cancellation_reason" gorm:"type:text"`
	CompletedAt        *time.Time `json:"completed_at"`
	CancelledAt        *time.Time `json:"cancelled_at"`

	// 关联
	Job        Job               `json:"job,omitempty" gorm:"foreignKey:JobID"`
	Milestones []Milestone       `json:"milestones,omitempty" gorm:"foreignKey:ProjectID"`
	Activities []ProjectActivity `json:"activities,omitempty" gorm:"foreignKey:ProjectID"`
}

// ProjectStatus 项目状态
type ProjectStatus string

const (
	ProjectStatusInProgress        ProjectStatus = "in_progress"        // 进行中（初始状态）
	ProjectStatusUnderReview       ProjectStatus = "under_review"       // 待客户审核
	ProjectStatusRevisionRequested ProjectStatus = "revision_requested" // 已要求修改
	ProjectStatusOnHold            ProjectStatus = "on_hold"            // 暂停
	ProjectStatusCompleted         ProjectStatus = "completed"          // 已完成（终态）
	ProjectStatusCancelled         ProjectStatus = "cancelled"          // 已取消（终态）
)

// statusTransitions 状态流转表：当前状态 -> 允许的下一状态
var statusTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectStatusInProgress:        {ProjectStatusUnderReview, ProjectStatusOnHold, ProjectStatusCancelled},
	ProjectStatusUnderReview:       {ProjectStatusRevisionRequested, ProjectStatusCompleted, ProjectStatusCancelled},
	ProjectStatusRevisionRequested: {ProjectStatusUnderReview, ProjectStatusOnHold, ProjectStatusCancelled},
	ProjectStatusOnHold:            {ProjectStatusInProgress, ProjectStatusCancelled},
	ProjectStatusCompleted:         {},
	ProjectStatusCancelled:         {},
}

// Valid 判断是否为合法的项目状态
func (s ProjectStatus) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// Terminal 判断是否为终态（无任何出边）
func (s ProjectStatus) Terminal() bool {
	return s == ProjectStatusCompleted || s == ProjectStatusCancelled
}

// CanTransition 判断状态流转是否合法
func CanTransition(from, to ProjectStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AllowedTransitions 返回指定状态允许流转到的状态列表（终态返回空列表）
func AllowedTransitions(s ProjectStatus) []ProjectStatus {
	next := statusTransitions[s]
	out := make([]ProjectStatus, len(next))
	copy(out, next)
	return out
}
