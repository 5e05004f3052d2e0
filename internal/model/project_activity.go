package model

import (
	"time"
)

// ProjectActivity 项目动态：只增不改的审计记录
type ProjectActivity struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	ProjectID    uint         `json:"project_id" gorm:"not null;index"`
	UserID       uint         `json:"user_id" gorm:"not null;index"`
	ActivityType ActivityType `json:"activity_type" gorm:"not null;index"`
	Description  string       `json:"description" gorm:"type:text"`
	Metadata     string       `json:"metadata" gorm:"type:text"` // JSON 序列化的附加信息
}

// ActivityType 项目动态类型（闭合集合，禁止自由字符串）
type ActivityType string

const (
	ActivityProjectCreated     ActivityType = "project_created"     // 项目创建
	ActivityStatusChanged      ActivityType = "status_changed"      // 状态变更
	ActivityMilestoneAdded     ActivityType = "milestone_added"     // 新增里程碑
	ActivityMilestoneCompleted ActivityType = "milestone_completed" // 里程碑完成
	ActivityFileUploaded       ActivityType = "file_uploaded"       // 文件上传
	ActivityFileApproved       ActivityType = "file_approved"       // 文件通过
	ActivityMessageSent        ActivityType = "message_sent"        // 消息发送
	ActivityPaymentMade        ActivityType = "payment_made"        // 支付完成
	ActivityReviewSubmitted    ActivityType = "review_submitted"    // 评价提交
	ActivityProjectCompleted   ActivityType = "project_completed"   // 项目完成
	ActivityProjectCancelled   ActivityType = "project_cancelled"   // 项目取消
)

// Valid 判断是否为合法的动态类型
func (t ActivityType) Valid() bool {
	switch t {
	case ActivityProjectCreated, ActivityStatusChanged,
		ActivityMilestoneAdded, ActivityMilestoneCompleted,
		ActivityFileUploaded, ActivityFileApproved,
		ActivityMessageSent, ActivityPaymentMade,
		ActivityReviewSubmitted, ActivityProjectCompleted, ActivityProjectCancelled:
		return true
	}
	return false
}
