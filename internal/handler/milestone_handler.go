package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Ajinkya-07/Freelance-Website/internal/logic"
	"github.com/Ajinkya-07/Freelance-Website/internal/model"
	"github.com/gin-gonic/gin"
)

// MilestoneHandler 里程碑接口
type MilestoneHandler struct {
	milestoneLogic *logic.MilestoneLogic
}

// NewMilestoneHandler 创建里程碑接口处理器
func NewMilestoneHandler(milestoneLogic *logic.MilestoneLogic) *MilestoneHandler {
	return &MilestoneHandler{milestoneLogic: milestoneLogic}
}

// GetProjectMilestones 获取项目里程碑及进度
func (h *MilestoneHandler) GetProjectMilestones(c *gin.Context) {
	projectID, err := parseID(c, "projectId")
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}
	actorID := currentUserID(c)

	milestones, err := h.milestoneLogic.FindByProject(projectID, actorID)
	if err != nil {
		FailFromError(c, err)
		return
	}
	progress, err := h.milestoneLogic.GetProjectProgress(projectID, actorID)
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"milestones": milestones,
		"progress":   progress,
		"count":      len(milestones),
	})
}

// CreateMilestone 创建里程碑
func (h *MilestoneHandler) CreateMilestone(c *gin.Context) {
	projectID, err := parseID(c, "projectId")
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	var req CreateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	milestone := model.Milestone{
		Title:        req.Title,
		Description:  req.Description,
		DisplayOrder: req.Order,
	}
	if req.DueDate != "" {
		due, err := parseDate(req.DueDate)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "无效的截止日期格式")
			return
		}
		milestone.DueDate = &due
	}

	if err := h.milestoneLogic.CreateMilestone(projectID, currentUserID(c), &milestone); err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "里程碑创建成功", gin.H{"milestone": milestone})
}

// CreateDefaultMilestones 生成默认里程碑模板
func (h *MilestoneHandler) CreateDefaultMilestones(c *gin.Context) {
	projectID, err := parseID(c, "projectId")
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	milestones, err := h.milestoneLogic.CreateDefaultMilestones(projectID, currentUserID(c))
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "默认里程碑已生成", gin.H{"milestones": milestones})
}

// UpdateMilestone 部分更新里程碑
func (h *MilestoneHandler) UpdateMilestone(c *gin.Context) {
	milestoneID, err := parseID(c, "id")
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的里程碑ID")
		return
	}

	var req UpdateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.DueDate != nil {
		due, err := parseDate(*req.DueDate)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "无效的截止日期格式")
			return
		}
		updates["due_date"] = &due
	}
	if req.DisplayOrder != nil {
		updates["display_order"] = *req.DisplayOrder
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	milestone, err := h.milestoneLogic.UpdateMilestone(milestoneID, currentUserID(c), updates)
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "里程碑已更新", gin.H{"milestone": milestone})
}

// CompleteMilestone 完成里程碑
func (h *MilestoneHandler) CompleteMilestone(c *gin.Context) {
	milestoneID, err := parseID(c, "id")
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的里程碑ID")
		return
	}

	milestone, err := h.milestoneLogic.CompleteMilestone(milestoneID, currentUserID(c))
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "里程碑已完成", gin.H{"milestone": milestone})
}

// DeleteMilestone 删除里程碑
func (h *MilestoneHandler) DeleteMilestone(c *gin.Context) {
	milestoneID, err := parseID(c, "id")
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的里程碑ID")
		return
	}

	if err := h.milestoneLogic.DeleteMilestone(milestoneID, currentUserID(c)); err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "里程碑已删除", nil)
}

// Reorder 批量调整项目内里程碑顺序
func (h *MilestoneHandler) Reorder(c *gin.Context) {
	projectID, err := parseID(c, "projectId")
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.milestoneLogic.Reorder(projectID, currentUserID(c), req.Orders); err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "里程碑顺序已更新", nil)
}

// GetOverdueMilestones 获取当前用户的逾期里程碑
func (h *MilestoneHandler) GetOverdueMilestones(c *gin.Context) {
	milestones, err := h.milestoneLogic.GetOverdueMilestones(currentUserID(c))
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{"milestones": milestones, "count": len(milestones)})
}

// GetUpcomingMilestones 获取当前用户即将到期的里程碑
func (h *MilestoneHandler) GetUpcomingMilestones(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))

	milestones, err := h.milestoneLogic.GetUpcomingMilestones(currentUserID(c), days)
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{"milestones": milestones, "count": len(milestones)})
}

// parseDate 支持日期或完整时间两种格式
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
