package handler

import (
	"net/http"
	"strconv"

	"github.com/Ajinkya-07/Freelance-Website/internal/logic"
	"github.com/Ajinkya-07/Freelance-Website/internal/model"
	"github.com/gin-gonic/gin"
)

// ActivityHandler 项目动态接口
type ActivityHandler struct {
	activityLogic *logic.ActivityLogic
}

// NewActivityHandler 创建项目动态接口处理器
func NewActivityHandler(activityLogic *logic.ActivityLogic) *ActivityHandler {
	return &ActivityHandler{activityLogic: activityLogic}
}

// GetProjectActivity 获取项目动态列表
func (h *ActivityHandler) GetProjectActivity(c *gin.Context) {
	projectID, err := parseID(c, "projectId")
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	activities, err := h.activityLogic.FindByProject(projectID, currentUserID(c), limit, offset)
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{"activities": activities, "count": len(activities)})
}

// GetMyRecentActivity 获取当前用户所有项目的最近动态
func (h *ActivityHandler) GetMyRecentActivity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	activities, err := h.activityLogic.FindByUser(currentUserID(c), limit, offset)
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{"activities": activities, "count": len(activities)})
}

// GetProjectActivityByType 按类型查询项目动态
func (h *ActivityHandler) GetProjectActivityByType(c *gin.Context) {
	projectID, err := parseID(c, "projectId")
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	activityType := model.ActivityType(c.Param("type"))
	activities, err := h.activityLogic.FindByType(projectID, currentUserID(c), activityType)
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{"activities": activities, "count": len(activities)})
}

// GetProjectActivitySummary 按类型汇总项目动态
func (h *ActivityHandler) GetProjectActivitySummary(c *gin.Context) {
	projectID, err := parseID(c, "projectId")
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	summary, err := h.activityLogic.GetProjectSummary(projectID, currentUserID(c))
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{"summary": summary})
}
