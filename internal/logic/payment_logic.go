package logic

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Ajinkya-07/Freelance-Website/internal/activity"
	"github.com/Ajinkya-07/Freelance-Website/internal/errs"
	"github.com/Ajinkya-07/Freelance-Website/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentLogic 支付与钱包结算逻辑
type PaymentLogic struct {
	db       *gorm.DB
	gateway  PaymentGateway
	recorder *activity.Recorder
}

// NewPaymentLogic 创建支付逻辑
func NewPaymentLogic(db *gorm.DB, gateway PaymentGateway, recorder *activity.Recorder) *PaymentLogic {
	return &PaymentLogic{db: db, gateway: gateway, recorder: recorder}
}

// UserPaymentStats 用户支付统计
type UserPaymentStats struct {
	TotalPaid        float64 `json:"total_paid"`
	TotalReceived    float64 `json:"total_received"`
	PaymentsMade     int64   `json:"payments_made"`
	PaymentsReceived int64   `json:"payments_received"`
	PendingPayments  int64   `json:"pending_payments"`
}

// CreatePayment 创建待处理支付并生成交易号
func (l *PaymentLogic) CreatePayment(projectID, payerID, payeeID uint, amount float64, description string) (*model.Payment, error) {
	if amount <= 0 {
		return nil, errs.Validation("支付金额必须大于0")
	}
	if payerID == payeeID {
		return nil, errs.Validation("付款方和收款方不能相同")
	}

	var project model.Project
	if err := l.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("项目不存在")
		}
		return nil, err
	}

	payment := model.Payment{
		TransactionID: newTransactionID(),
		ProjectID:     projectID,
		PayerID:       payerID,
		PayeeID:       payeeID,
		Amount:        amount,
		Currency:      "USD",
		Description:   description,
		Status:        model.PaymentStatusPending,
	}
	if err := l.db.Create(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// ProcessPayment 结算待处理支付。
// 网关批准后，支付状态翻转与收付双方的钱包变动在同一事务内完成，
// 任何一步失败都整体回滚，不会出现只记一边的情况。
func (l *PaymentLogic) ProcessPayment(paymentID uint, method string) (*model.Payment, error) {
	var payment model.Payment
	if err := l.db.First(&payment, paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("支付记录不存在")
		}
		return nil, err
	}
	if payment.Status != model.PaymentStatusPending {
		return nil, errs.Validation(fmt.Sprintf("支付状态为 %s，只有待处理的支付可以结算", payment.Status))
	}

	result, err := l.gateway.Charge(&payment, method)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if !result.Approved {
		err := l.db.Model(&model.Payment{}).
			Where("id = ? AND status = ?", payment.ID, model.PaymentStatusPending).
			Updates(map[string]interface{}{
				"status":         model.PaymentStatusFailed,
				"payment_method": method,
				"processed_at":   &now,
			}).Error
		if err != nil {
			return nil, err
		}
		return nil, errs.Validation("支付失败: " + result.DeclineReason)
	}

	err = l.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Payment{}).
			Where("id = ? AND status = ?", payment.ID, model.PaymentStatusPending).
			Updates(map[string]interface{}{
				"status":         model.PaymentStatusCompleted,
				"payment_method": method,
				"processed_at":   &now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.Conflict("支付已被并发处理")
		}
		if err := adjustBalance(tx, payment.PayeeID, payment.Amount, model.WalletTransactionCredit, "Payment received"); err != nil {
			return err
		}
		return adjustBalance(tx, payment.PayerID, payment.Amount, model.WalletTransactionDebit, "Payment sent")
	})
	if err != nil {
		return nil, err
	}

	l.recorder.Record(payment.ProjectID, payment.PayerID, model.ActivityPaymentMade,
		fmt.Sprintf("支付完成，金额 %.2f", payment.Amount),
		map[string]interface{}{"payment_id": payment.ID, "transaction_id": payment.TransactionID, "amount": payment.Amount})

	var processed model.Payment
	if err := l.db.First(&processed, payment.ID).Error; err != nil {
		return nil, err
	}
	return &processed, nil
}

// RefundPayment 退款：仅已完成的支付可退，钱包变动原路反向
func (l *PaymentLogic) RefundPayment(paymentID uint, reason string) (*model.Payment, error) {
	var payment model.Payment
	if err := l.db.First(&payment, paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("支付记录不存在")
		}
		return nil, err
	}
	if payment.Status != model.PaymentStatusCompleted {
		return nil, errs.Validation(fmt.Sprintf("支付状态为 %s，只有已完成的支付可以退款", payment.Status))
	}
	if reason == "" {
		reason = "Customer requested refund"
	}

	now := time.Now()
	err := l.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Payment{}).
			Where("id = ? AND status = ?", payment.ID, model.PaymentStatusCompleted).
			Updates(map[string]interface{}{
				"status":        model.PaymentStatusRefunded,
				"refund_reason": reason,
				"refunded_at":   &now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.Conflict("支付已被并发处理")
		}
		if err := adjustBalance(tx, payment.PayeeID, payment.Amount, model.WalletTransactionDebit, "Payment refunded"); err != nil {
			return err
		}
		return adjustBalance(tx, payment.PayerID, payment.Amount, model.WalletTransactionCredit, "Refund received")
	})
	if err != nil {
		return nil, err
	}

	var refunded model.Payment
	if err := l.db.First(&refunded, payment.ID).Error; err != nil {
		return nil, err
	}
	return &refunded, nil
}

// FindByProject 获取项目的全部支付记录
func (l *PaymentLogic) FindByProject(projectID, actorID uint) ([]model.Payment, error) {
	var project model.Project
	if err := l.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("项目不存在")
		}
		return nil, err
	}
	if project.ClientID != actorID && project.EditorID != actorID {
		return nil, errs.Forbidden("无权访问该项目")
	}

	var payments []model.Payment
	err := l.db.Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// FindByUser 获取用户相关的支付记录，role 可取 payer/payee/all
func (l *PaymentLogic) FindByUser(userID uint, role string, limit, offset int) ([]model.Payment, error) {
	limit, offset = normalizePage(limit, offset, 50)

	query := l.db.Model(&model.Payment{})
	switch role {
	case "payer":
		query = query.Where("payer_id = ?", userID)
	case "payee":
		query = query.Where("payee_id = ?", userID)
	default:
		query = query.Where("payer_id = ? OR payee_id = ?", userID, userID)
	}

	var payments []model.Payment
	err := query.Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// GetWallet 获取用户钱包，不存在时创建零余额钱包
func (l *PaymentLogic) GetWallet(userID uint) (*model.Wallet, error) {
	var wallet model.Wallet
	err := l.db.Where(model.Wallet{UserID: userID}).
		Attrs(model.Wallet{Balance: 0, Currency: "USD"}).
		FirstOrCreate(&wallet).Error
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// GetWalletTransactions 获取用户钱包流水
func (l *PaymentLogic) GetWalletTransactions(userID uint, limit, offset int) ([]model.WalletTransaction, error) {
	wallet, err := l.GetWallet(userID)
	if err != nil {
		return nil, err
	}
	limit, offset = normalizePage(limit, offset, 50)

	var transactions []model.WalletTransaction
	err = l.db.Where("wallet_id = ?", wallet.ID).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

// GetUserPaymentStats 获取用户支付统计
func (l *PaymentLogic) GetUserPaymentStats(userID uint) (*UserPaymentStats, error) {
	stats := &UserPaymentStats{}

	err := l.db.Model(&model.Payment{}).
		Where("payer_id = ? AND status = ?", userID, model.PaymentStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").Scan(&stats.TotalPaid).Error
	if err != nil {
		return nil, err
	}
	err = l.db.Model(&model.Payment{}).
		Where("payee_id = ? AND status = ?", userID, model.PaymentStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").Scan(&stats.TotalReceived).Error
	if err != nil {
		return nil, err
	}
	err = l.db.Model(&model.Payment{}).
		Where("payer_id = ? AND status = ?", userID, model.PaymentStatusCompleted).
		Count(&stats.PaymentsMade).Error
	if err != nil {
		return nil, err
	}
	err = l.db.Model(&model.Payment{}).
		Where("payee_id = ? AND status = ?", userID, model.PaymentStatusCompleted).
		Count(&stats.PaymentsReceived).Error
	if err != nil {
		return nil, err
	}
	err = l.db.Model(&model.Payment{}).
		Where("(payer_id = ? OR payee_id = ?) AND status = ?", userID, userID, model.PaymentStatusPending).
		Count(&stats.PendingPayments).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// adjustBalance 在事务内调整钱包余额并写入流水。
// 余额字段与流水必须同事务更新，余额永远不靠汇总流水推算。
func adjustBalance(tx *gorm.DB, userID uint, amount float64, txType model.WalletTransactionType, description string) error {
	var wallet model.Wallet
	err := tx.Where(model.Wallet{UserID: userID}).
		Attrs(model.Wallet{Balance: 0, Currency: "USD"}).
		FirstOrCreate(&wallet).Error
	if err != nil {
		return err
	}

	delta := amount
	if txType == model.WalletTransactionDebit {
		delta = -amount
	}
	err = tx.Model(&model.Wallet{}).
		Where("id = ?", wallet.ID).
		Update("balance", gorm.Expr("balance + ?", delta)).Error
	if err != nil {
		return err
	}

	return tx.Create(&model.WalletTransaction{
		WalletID:    wallet.ID,
		Type:        txType,
		Amount:      amount,
		Description: description,
	}).Error
}

// newTransactionID 生成对外唯一的交易号
func newTransactionID() string {
	return "PAY-" + strings.ToUpper(uuid.NewString()[:8])
}
