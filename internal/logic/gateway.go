package logic

import "github.com/Ajinkya-07/Freelance-Website/internal/model"

// ChargeResult 支付网关扣款结果
type ChargeResult struct {
	Approved      bool   // 是否扣款成功
	DeclineReason string // 拒绝原因（Approved 为 false 时有值）
}

// PaymentGateway 支付网关接口。
// 真实环境接 Stripe/PayPal 等渠道，本仓库内置确定性的演示实现。
type PaymentGateway interface {
	Charge(payment *model.Payment, method string) (ChargeResult, error)
}

// demoGateway 演示网关：总是扣款成功
type demoGateway struct{}

// NewDemoGateway 创建演示网关
func NewDemoGateway() PaymentGateway {
	return demoGateway{}
}

func (demoGateway) Charge(_ *model.Payment, _ string) (ChargeResult, error) {
	return ChargeResult{Approved: true}, nil
}
