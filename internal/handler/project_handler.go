package handler

import (
	"net/http"
	"strconv"

	"github.com/Ajinkya-07/Freelance-Website/internal/logic"
	"github.com/Ajinkya-07/Freelance-Website/internal/model"
	"github.com/gin-gonic/gin"
)

// ProjectHandler 项目生命周期接口
type ProjectHandler struct {
	projectLogic *logic.ProjectLogic
}

// NewProjectHandler 创建项目接口处理器
func NewProjectHandler(projectLogic *logic.ProjectLogic) *ProjectHandler {
	return &ProjectHandler{projectLogic: projectLogic}
}

// AcceptProposal 接受提案并创建项目
func (h *ProjectHandler) AcceptProposal(c *gin.Context) {
	proposalID, err := parseID(c, "proposalId")
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的提案ID")
		return
	}

	project, err := h.projectLogic.AcceptProposal(proposalID, currentUserID(c))
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "项目创建成功", projectPayload(project))
}

// GetMyProjects 获取当前用户参与的项目列表（支持筛选与排序）
func (h *ProjectHandler) GetMyProjects(c *gin.Context) {
	// 无筛选条件时直接走用户维度查询
	if c.Query("status") == "" && c.Query("q") == "" && c.Query("sort_by") == "" {
		projects, err := h.projectLogic.FindByUser(currentUserID(c))
		if err != nil {
			FailFromError(c, err)
			return
		}
		SuccessResponse(c, http.StatusOK, "", gin.H{
			"projects": projects,
			"count":    len(projects),
		})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	projects, err := h.projectLogic.Search(logic.SearchParams{
		UserID:    currentUserID(c),
		Status:    model.ProjectStatus(c.Query("status")),
		Query:     c.Query("q"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"projects": projects,
		"count":    len(projects),
	})
}

// GetProjectsByStatus 按状态分页查询项目
func (h *ProjectHandler) GetProjectsByStatus(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	projects, err := h.projectLogic.FindByStatus(model.ProjectStatus(c.Param("status")), limit, offset)
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{
		"projects": projects,
		"count":    len(projects),
	})
}

// GetProject 获取项目详情，附带进度、统计与允许的下一状态
func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, err := parseID(c, "id")
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}
	actorID := currentUserID(c)

	project, err := h.projectLogic.GetProject(projectID, actorID)
	if err != nil {
		FailFromError(c, err)
		return
	}
	progress, err := h.projectLogic.GetProgress(projectID, actorID)
	if err != nil {
		FailFromError(c, err)
		return
	}
	stats, err := h.projectLogic.GetStats(projectID, actorID)
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"project":             project,
		"progress":            progress,
		"stats":               stats,
		"allowed_transitions": model.AllowedTransitions(project.Status),
	})
}

// GetProgress 获取项目进度
func (h *ProjectHandler) GetProgress(c *gin.Context) {
	projectID, err := parseID(c, "id")
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	progress, err := h.projectLogic.GetProgress(projectID, currentUserID(c))
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{"progress": progress})
}

// GetStats 获取项目统计信息
func (h *ProjectHandler) GetStats(c *gin.Context) {
	projectID, err := parseID(c, "id")
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	stats, err := h.projectLogic.GetStats(projectID, currentUserID(c))
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{"stats": stats})
}

// UpdateStatus 通用状态变更
func (h *ProjectHandler) UpdateStatus(c *gin.Context) {
	projectID, err := parseID(c, "id")
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	project, err := h.projectLogic.UpdateStatus(projectID, currentUserID(c), model.ProjectStatus(req.Status), req.Notes)
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "项目状态已更新", projectPayload(project))
}

// SubmitForReview 剪辑师提交审核
func (h *ProjectHandler) SubmitForReview(c *gin.Context) {
	projectID, err := parseID(c, "id")
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	project, err := h.projectLogic.SubmitForReview(projectID, currentUserID(c))
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "已提交审核", projectPayload(project))
}

// RequestRevision 客户要求修改
func (h *ProjectHandler) RequestRevision(c *gin.Context) {
	projectID, err := parseID(c, "id")
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	var req RevisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	project, err := h.projectLogic.RequestRevision(projectID, currentUserID(c), req.Notes)
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "已要求修改", projectPayload(project))
}

// Complete 客户确认完成
func (h *ProjectHandler) Complete(c *gin.Context) {
	projectID, err := parseID(c, "id")
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	var req CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	project, err := h.projectLogic.Complete(projectID, currentUserID(c), req.Feedback)
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "项目已完成", projectPayload(project))
}

// Cancel 取消项目
func (h *ProjectHandler) Cancel(c *gin.Context) {
	projectID, err := parseID(c, "id")
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	var req ReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	project, err := h.projectLogic.Cancel(projectID, currentUserID(c), req.Reason)
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "项目已取消", projectPayload(project))
}

// PutOnHold 暂停项目
func (h *ProjectHandler) PutOnHold(c *gin.Context) {
	projectID, err := parseID(c, "id")
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	var req ReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	project, err := h.projectLogic.PutOnHold(projectID, currentUserID(c), req.Reason)
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "项目已暂停", projectPayload(project))
}

// Resume 恢复项目
func (h *ProjectHandler) Resume(c *gin.Context) {
	projectID, err := parseID(c, "id")
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	project, err := h.projectLogic.Resume(projectID, currentUserID(c))
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "项目已恢复", projectPayload(project))
}

// projectPayload 生命周期操作统一返回项目与允许的下一状态
func projectPayload(project *model.Project) gin.H {
	return gin.H{
		"project":             project,
		"allowed_transitions": model.AllowedTransitions(project.Status),
	}
}

// parseID 解析路径中的数字ID
func parseID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	return uint(id), err
}
