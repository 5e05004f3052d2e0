package handler

import (
	"net/http"
	"strconv"

	"github.com/Ajinkya-07/Freelance-Website/internal/logic"
	"github.com/gin-gonic/gin"
)

// PaymentHandler 支付与钱包接口
type PaymentHandler struct {
	paymentLogic *logic.PaymentLogic
}

// NewPaymentHandler 创建支付接口处理器
func NewPaymentHandler(paymentLogic *logic.PaymentLogic) *PaymentHandler {
	return &PaymentHandler{paymentLogic: paymentLogic}
}

// CreatePayment 创建待处理支付
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	payment, err := h.paymentLogic.CreatePayment(req.ProjectID, currentUserID(c), req.PayeeID, req.Amount, req.Description)
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "支付已创建", gin.H{"payment": payment})
}

// ProcessPayment 结算支付
func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	paymentID, err := parseID(c, "id")
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的支付ID")
		return
	}

	var req ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Method == "" {
		req.Method = "demo_card"
	}

	payment, err := h.paymentLogic.ProcessPayment(paymentID, req.Method)
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "支付成功", gin.H{"payment": payment})
}

// RefundPayment 退款
func (h *PaymentHandler) RefundPayment(c *gin.Context) {
	paymentID, err := parseID(c, "id")
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的支付ID")
		return
	}

	var req RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	payment, err := h.paymentLogic.RefundPayment(paymentID, req.Reason)
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "退款成功", gin.H{"payment": payment})
}

// GetProjectPayments 获取项目支付记录
func (h *PaymentHandler) GetProjectPayments(c *gin.Context) {
	projectID, err := parseID(c, "projectId")
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	payments, err := h.paymentLogic.FindByProject(projectID, currentUserID(c))
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{"payments": payments, "count": len(payments)})
}

// GetMyPayments 获取当前用户的支付记录
func (h *PaymentHandler) GetMyPayments(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	payments, err := h.paymentLogic.FindByUser(currentUserID(c), c.DefaultQuery("role", "all"), limit, offset)
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{"payments": payments, "count": len(payments)})
}

// GetMyPaymentStats 获取当前用户支付统计
func (h *PaymentHandler) GetMyPaymentStats(c *gin.Context) {
	stats, err := h.paymentLogic.GetUserPaymentStats(currentUserID(c))
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{"stats": stats})
}

// GetWallet 获取当前用户钱包
func (h *PaymentHandler) GetWallet(c *gin.Context) {
	wallet, err := h.paymentLogic.GetWallet(currentUserID(c))
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{"wallet": wallet})
}

// GetWalletTransactions 获取当前用户钱包流水
func (h *PaymentHandler) GetWalletTransactions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	transactions, err := h.paymentLogic.GetWalletTransactions(currentUserID(c), limit, offset)
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{"transactions": transactions, "count": len(transactions)})
}
