package handler

import (
	"github.com/Ajinkya-07/Freelance-Website/internal/logic"
)

// UpdateStatusRequest 通用状态变更请求
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// RevisionRequest 要求修改请求
type RevisionRequest struct {
	Notes string `json:"notes" binding:"required"`
}

// CompleteRequest 确认完成请求
type CompleteRequest struct {
	Feedback string `json:"feedback"`
}

// ReasonRequest 取消/暂停请求
type ReasonRequest struct {
	Reason string `json:"reason"`
}

// CreateMilestoneRequest 创建里程碑请求
type CreateMilestoneRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"` // RFC3339 或 2006-01-02
	Order       int    `json:"order"`
}

// UpdateMilestoneRequest 更新里程碑请求（指针字段表示未提供）
type UpdateMilestoneRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	DueDate      *string `json:"due_date"`
	DisplayOrder *int    `json:"display_order"`
	Status       *string `json:"status"`
}

// ReorderRequest 里程碑重排序请求
type ReorderRequest struct {
	Orders []logic.MilestoneOrder `json:"orders" binding:"required"`
}

// CreatePaymentRequest 创建支付请求
type CreatePaymentRequest struct {
	ProjectID   uint    `json:"project_id" binding:"required"`
	PayeeID     uint    `json:"payee_id" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	Description string  `json:"description"`
}

// ProcessPaymentRequest 结算支付请求
type ProcessPaymentRequest struct {
	Method string `json:"method"`
}

// RefundRequest 退款请求
type RefundRequest struct {
	Reason string `json:"reason"`
}
