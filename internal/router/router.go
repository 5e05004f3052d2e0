package router

import (
	"github.com/Ajinkya-07/Freelance-Website/internal/activity"
	"github.com/Ajinkya-07/Freelance-Website/internal/config"
	"github.com/Ajinkya-07/Freelance-Website/internal/handler"
	"github.com/Ajinkya-07/Freelance-Website/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, recorder *activity.Recorder, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "freelance-marketplace",
		})
	})

	projectLogic := logic.NewProjectLogic(db, recorder)
	milestoneLogic := logic.NewMilestoneLogic(db, recorder)
	activityLogic := logic.NewActivityLogic(db)
	paymentLogic := logic.NewPaymentLogic(db, logic.NewDemoGateway(), recorder)

	projectHandler := handler.NewProjectHandler(projectLogic)
	milestoneHandler := handler.NewMilestoneHandler(milestoneLogic)
	activityHandler := handler.NewActivityHandler(activityLogic)
	paymentHandler := handler.NewPaymentHandler(paymentLogic)

	// API版本组，全部接口需要登录
	v1 := r.Group("/api/v1")
	v1.Use(authMiddleware(cfg.Auth.JWTSecret))
	{
		// 项目生命周期
		projects := v1.Group("/projects")
		{
			projects.GET("", projectHandler.GetMyProjects)
			projects.GET("/status/:status", projectHandler.GetProjectsByStatus)
			projects.POST("/accept/:proposalId", projectHandler.AcceptProposal)
			projects.GET("/:id", projectHandler.GetProject)
			projects.GET("/:id/progress", projectHandler.GetProgress)
			projects.GET("/:id/stats", projectHandler.GetStats)
			projects.PUT("/:id/status", projectHandler.UpdateStatus)
			projects.POST("/:id/submit-for-review", projectHandler.SubmitForReview)
			projects.POST("/:id/request-revision", projectHandler.RequestRevision)
			projects.POST("/:id/complete", projectHandler.Complete)
			projects.POST("/:id/cancel", projectHandler.Cancel)
			projects.POST("/:id/hold", projectHandler.PutOnHold)
			projects.POST("/:id/resume", projectHandler.Resume)
		}

		// 里程碑
		milestones := v1.Group("/milestones")
		{
			milestones.GET("/project/:projectId", milestoneHandler.GetProjectMilestones)
			milestones.POST("/project/:projectId", milestoneHandler.CreateMilestone)
			milestones.POST("/project/:projectId/defaults", milestoneHandler.CreateDefaultMilestones)
			milestones.PUT("/project/:projectId/reorder", milestoneHandler.Reorder)
			milestones.PUT("/:id", milestoneHandler.UpdateMilestone)
			milestones.POST("/:id/complete", milestoneHandler.CompleteMilestone)
			milestones.DELETE("/:id", milestoneHandler.DeleteMilestone)
			milestones.GET("/overdue", milestoneHandler.GetOverdueMilestones)
			milestones.GET("/upcoming", milestoneHandler.GetUpcomingMilestones)
		}

		// 项目动态
		activities := v1.Group("/activities")
		{
			activities.GET("/recent", activityHandler.GetMyRecentActivity)
			activities.GET("/project/:projectId", activityHandler.GetProjectActivity)
			activities.GET("/project/:projectId/summary", activityHandler.GetProjectActivitySummary)
			activities.GET("/project/:projectId/type/:type", activityHandler.GetProjectActivityByType)
		}

		// 支付与钱包
		payments := v1.Group("/payments")
		{
			payments.POST("", paymentHandler.CreatePayment)
			payments.POST("/:id/process", paymentHandler.ProcessPayment)
			payments.POST("/:id/refund", paymentHandler.RefundPayment)
			payments.GET("/project/:projectId", paymentHandler.GetProjectPayments)
			payments.GET("/my", paymentHandler.GetMyPayments)
			payments.GET("/my/stats", paymentHandler.GetMyPaymentStats)
		}
		wallet := v1.Group("/wallet")
		{
			wallet.GET("", paymentHandler.GetWallet)
			wallet.GET("/transactions", paymentHandler.GetWalletTransactions)
		}
	}

	return r
}
