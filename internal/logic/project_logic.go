package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/Ajinkya-07/Freelance-Website/internal/activity"
	"github.com/Ajinkya-07/Freelance-Website/internal/errs"
	"github.com/Ajinkya-07/Freelance-Website/internal/model"
	"gorm.io/gorm"
)

// ProjectLogic 项目生命周期业务逻辑
type ProjectLogic struct {
	db       *gorm.DB
	recorder *activity.Recorder
}

// NewProjectLogic 创建项目业务逻辑
func NewProjectLogic(db *gorm.DB, recorder *activity.Recorder) *ProjectLogic {
	return &ProjectLogic{db: db, recorder: recorder}
}

// ProjectProgress 项目进度（按里程碑完成数计算）
type ProjectProgress struct {
	Total      int64 `json:"total"`
	Completed  int64 `json:"completed"`
	Percentage int   `json:"percentage"`
}

// ProjectStats 项目统计信息
type ProjectStats struct {
	Milestones struct {
		Total     int64 `json:"total"`
		Completed int64 `json:"completed"`
	} `json:"milestones"`
	Files struct {
		Total  int64 `json:"total"`
		Drafts int64 `json:"drafts"`
		Finals int64 `json:"finals"`
	} `json:"files"`
	ActivityCount int64 `json:"activity_count"`
}

// AcceptProposal 客户接受提案并创建项目：
// 托管金额取提案报价，初始状态 in_progress，同时生成默认里程碑模板。
func (p *ProjectLogic) AcceptProposal(proposalID, actorID uint) (*model.Project, error) {
	var proposal model.Proposal
	if err := p.db.First(&proposal, proposalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("提案不存在")
		}
		return nil, err
	}

	var job model.Job
	if err := p.db.First(&job, proposal.JobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("需求单不存在")
		}
		return nil, err
	}

	if job.ClientID != actorID {
		return nil, errs.Forbidden("只有需求单的发布者可以接受提案")
	}
	if proposal.Status != model.ProposalStatusPending {
		return nil, errs.Conflict("提案已被处理")
	}

	project := model.Project{
		JobID:        job.ID,
		ClientID:     job.ClientID,
		EditorID:     proposal.EditorID,
		Status:       model.ProjectStatusInProgress,
		EscrowAmount: proposal.Price,
	}

	err := p.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Proposal{}).Where("id = ?", proposal.ID).
			Update("status", model.ProposalStatusAccepted).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Job{}).Where("id = ?", job.ID).
			Update("status", model.JobStatusInProgress).Error; err != nil {
			return err
		}
		return insertDefaultMilestones(tx, project.ID)
	})
	if err != nil {
		return nil, err
	}

	p.recorder.Record(project.ID, actorID, model.ActivityProjectCreated,
		fmt.Sprintf("项目创建成功，托管金额 %.2f", project.EscrowAmount),
		map[string]interface{}{"job_id": job.ID, "proposal_id": proposal.ID, "escrow_amount": project.EscrowAmount})
	p.recorder.Record(project.ID, actorID, model.ActivityMilestoneAdded,
		"已生成默认里程碑", map[string]interface{}{"count": len(defaultMilestones)})

	return &project, nil
}

// GetProject 获取项目（校验访问权限）
func (p *ProjectLogic) GetProject(projectID, actorID uint) (*model.Project, error) {
	return p.loadForActor(projectID, actorID)
}

// FindByUser 获取用户参与的全部项目（客户或剪辑师身份）
func (p *ProjectLogic) FindByUser(userID uint) ([]model.Project, error) {
	var projects []model.Project
	err := p.db.Preload("Job").
		Where("client_id = ? OR editor_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// FindByStatus 按状态分页查询项目
func (p *ProjectLogic) FindByStatus(status model.ProjectStatus, limit, offset int) ([]model.Project, error) {
	if !status.Valid() {
		return nil, errs.Validation(fmt.Sprintf("无效的项目状态: %s", status))
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var projects []model.Project
	err := p.db.Where("status = ?", status).
		Order("updated_at DESC").
		Limit(limit).Offset(offset).
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// SearchParams 项目搜索条件
type SearchParams struct {
	UserID    uint
	Status    model.ProjectStatus
	Query     string
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}

// Search 按条件搜索项目
func (p *ProjectLogic) Search(params SearchParams) ([]model.Project, error) {
	query := p.db.Model(&model.Project{}).
		Joins("JOIN jobs ON jobs.id = projects.job_id")

	if params.UserID != 0 {
		query = query.Where("projects.client_id = ? OR projects.editor_id = ?", params.UserID, params.UserID)
	}
	if params.Status != "" {
		if !params.Status.Valid() {
			return nil, errs.Validation(fmt.Sprintf("无效的项目状态: %s", params.Status))
		}
		query = query.Where("projects.status = ?", params.Status)
	}
	if params.Query != "" {
		like := "%" + params.Query + "%"
		query = query.Where("jobs.title LIKE ? OR jobs.description LIKE ?", like, like)
	}

	// 排序字段走白名单，避免拼接任意列名
	sortBy := "created_at"
	switch params.SortBy {
	case "created_at", "updated_at", "status", "escrow_amount":
		sortBy = params.SortBy
	}
	order := "DESC"
	if params.SortOrder == "asc" || params.SortOrder == "ASC" {
		order = "ASC"
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	var projects []model.Project
	err := query.Order(fmt.Sprintf("projects.%s %s", sortBy, order)).
		Limit(limit).Offset(offset).
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// SubmitForReview 剪辑师提交审核
func (p *ProjectLogic) SubmitForReview(projectID, actorID uint) (*model.Project, error) {
	project, err := p.loadForActor(projectID, actorID)
	if err != nil {
		return nil, err
	}
	if actorID != project.EditorID {
		return nil, errs.Forbidden("只有剪辑师可以提交审核")
	}
	if !statusIn(project.Status, model.ProjectStatusInProgress, model.ProjectStatusRevisionRequested) {
		return nil, errs.Validation(fmt.Sprintf("当前状态 %s 不能提交审核", project.Status))
	}

	return p.transition(project, actorID, transitionUpdate{
		target:       model.ProjectStatusUnderReview,
		activityType: model.ActivityStatusChanged,
		description:  "剪辑师已提交项目等待审核",
	})
}

// RequestRevision 客户要求修改，修改次数加一
func (p *ProjectLogic) RequestRevision(projectID, actorID uint, notes string) (*model.Project, error) {
	project, err := p.loadForActor(projectID, actorID)
	if err != nil {
		return nil, err
	}
	if actorID != project.ClientID {
		return nil, errs.Forbidden("只有客户可以要求修改")
	}
	if project.Status != model.ProjectStatusUnderReview {
		return nil, errs.Validation(fmt.Sprintf("当前状态 %s 不能要求修改", project.Status))
	}

	return p.transition(project, actorID, transitionUpdate{
		target: model.ProjectStatusRevisionRequested,
		updates: map[string]interface{}{
			"revision_notes": notes,
			"revision_count": gorm.Expr("revision_count + 1"),
		},
		activityType: model.ActivityStatusChanged,
		description:  "客户要求修改",
		metadata:     map[string]interface{}{"notes": notes},
	})
}

// Complete 客户确认项目完成。
// 允许从 under_review 或 revision_requested 直接完成，
// 后者是对流转表的既有例外（仅此专用操作，generic 路径不适用）。
func (p *ProjectLogic) Complete(projectID, actorID uint, feedback string) (*model.Project, error) {
	project, err := p.loadForActor(projectID, actorID)
	if err != nil {
		return nil, err
	}
	if actorID != project.ClientID {
		return nil, errs.Forbidden("只有客户可以确认完成")
	}
	if !statusIn(project.Status, model.ProjectStatusUnderReview, model.ProjectStatusRevisionRequested) {
		return nil, errs.Validation(fmt.Sprintf("当前状态 %s 不能确认完成", project.Status))
	}

	now := time.Now()
	return p.transition(project, actorID, transitionUpdate{
		target: model.ProjectStatusCompleted,
		updates: map[string]interface{}{
			"completed_at": &now,
		},
		activityType: model.ActivityProjectCompleted,
		description:  "项目已完成",
		metadata:     map[string]interface{}{"feedback": feedback},
	})
}

// Cancel 取消项目，客户和剪辑师都可以发起
func (p *ProjectLogic) Cancel(projectID, actorID uint, reason string) (*model.Project, error) {
	project, err := p.loadForActor(projectID, actorID)
	if err != nil {
		return nil, err
	}
	if project.Status.Terminal() {
		return nil, errs.Validation(fmt.Sprintf("项目已处于终态 %s，不能取消", project.Status))
	}

	role := "client"
	if actorID == project.EditorID {
		role = "editor"
	}

	now := time.Now()
	return p.transition(project, actorID, transitionUpdate{
		target: model.ProjectStatusCancelled,
		updates: map[string]interface{}{
			"cancellation_reason": reason,
			"cancelled_at":        &now,
		},
		activityType: model.ActivityProjectCancelled,
		description:  "项目已取消",
		metadata:     map[string]interface{}{"reason": reason, "cancelled_by": role},
	})
}

// PutOnHold 暂停项目
func (p *ProjectLogic) PutOnHold(projectID, actorID uint, reason string) (*model.Project, error) {
	project, err := p.loadForActor(projectID, actorID)
	if err != nil {
		return nil, err
	}
	if !statusIn(project.Status, model.ProjectStatusInProgress, model.ProjectStatusRevisionRequested) {
		return nil, errs.Validation(fmt.Sprintf("当前状态 %s 不能暂停", project.Status))
	}

	return p.transition(project, actorID, transitionUpdate{
		target: model.ProjectStatusOnHold,
		updates: map[string]interface{}{
			"hold_reason": reason,
		},
		activityType: model.ActivityStatusChanged,
		description:  "项目已暂停",
		metadata:     map[string]interface{}{"reason": reason},
	})
}

// Resume 恢复暂停中的项目
func (p *ProjectLogic) Resume(projectID, actorID uint) (*model.Project, error) {
	project, err := p.loadForActor(projectID, actorID)
	if err != nil {
		return nil, err
	}
	if project.Status != model.ProjectStatusOnHold {
		return nil, errs.Validation(fmt.Sprintf("当前状态 %s 不能恢复", project.Status))
	}

	return p.transition(project, actorID, transitionUpdate{
		target:       model.ProjectStatusInProgress,
		activityType: model.ActivityStatusChanged,
		description:  "项目已恢复",
	})
}

// UpdateStatus 通用状态变更入口，严格按流转表校验。
// 注意：revision_requested -> completed 的捷径只存在于 Complete 专用操作，这里不放行。
func (p *ProjectLogic) UpdateStatus(projectID, actorID uint, target model.ProjectStatus, notes string) (*model.Project, error) {
	if !target.Valid() {
		return nil, errs.Validation(fmt.Sprintf("无效的目标状态: %s", target))
	}

	project, err := p.loadForActor(projectID, actorID)
	if err != nil {
		return nil, err
	}
	if !model.CanTransition(project.Status, target) {
		return nil, errs.Validation(fmt.Sprintf("不允许从 %s 流转到 %s", project.Status, target))
	}

	// 按目标状态补齐伴随字段，保证终态时间戳等不变式在任何入口都成立
	now := time.Now()
	updates := map[string]interface{}{}
	switch target {
	case model.ProjectStatusRevisionRequested:
		updates["revision_notes"] = notes
		updates["revision_count"] = gorm.Expr("revision_count + 1")
	case model.ProjectStatusOnHold:
		updates["hold_reason"] = notes
	case model.ProjectStatusCompleted:
		updates["completed_at"] = &now
	case model.ProjectStatusCancelled:
		updates["cancellation_reason"] = notes
		updates["cancelled_at"] = &now
	}

	return p.transition(project, actorID, transitionUpdate{
		target:       target,
		updates:      updates,
		activityType: model.ActivityStatusChanged,
		description:  fmt.Sprintf("项目状态由 %s 变更为 %s", project.Status, target),
		metadata:     map[string]interface{}{"notes": notes},
	})
}

// GetProgress 获取项目进度，零里程碑时返回全零
func (p *ProjectLogic) GetProgress(projectID, actorID uint) (*ProjectProgress, error) {
	if _, err := p.loadForActor(projectID, actorID); err != nil {
		return nil, err
	}

	var total, completed int64
	if err := p.db.Model(&model.Milestone{}).
		Where("project_id = ?", projectID).Count(&total).Error; err != nil {
		return nil, err
	}
	if err := p.db.Model(&model.Milestone{}).
		Where("project_id = ? AND status = ?", projectID, model.MilestoneStatusCompleted).
		Count(&completed).Error; err != nil {
		return nil, err
	}

	progress := &ProjectProgress{Total: total, Completed: completed}
	if total > 0 {
		progress.Percentage = int(float64(completed)/float64(total)*100 + 0.5)
	}
	return progress, nil
}

// GetStats 获取项目统计信息（里程碑、文件、动态数）
func (p *ProjectLogic) GetStats(projectID, actorID uint) (*ProjectStats, error) {
	if _, err := p.loadForActor(projectID, actorID); err != nil {
		return nil, err
	}

	stats := &ProjectStats{}
	if err := p.db.Model(&model.Milestone{}).
		Where("project_id = ?", projectID).Count(&stats.Milestones.Total).Error; err != nil {
		return nil, err
	}
	if err := p.db.Model(&model.Milestone{}).
		Where("project_id = ? AND status = ?", projectID, model.MilestoneStatusCompleted).
		Count(&stats.Milestones.Completed).Error; err != nil {
		return nil, err
	}
	if err := p.db.Model(&model.ProjectFile{}).
		Where("project_id = ?", projectID).Count(&stats.Files.Total).Error; err != nil {
		return nil, err
	}
	if err := p.db.Model(&model.ProjectFile{}).
		Where("project_id = ? AND file_type = ?", projectID, model.FileTypeDraft).
		Count(&stats.Files.Drafts).Error; err != nil {
		return nil, err
	}
	if err := p.db.Model(&model.ProjectFile{}).
		Where("project_id = ? AND file_type = ?", projectID, model.FileTypeFinal).
		Count(&stats.Files.Finals).Error; err != nil {
		return nil, err
	}
	if err := p.db.Model(&model.ProjectActivity{}).
		Where("project_id = ?", projectID).Count(&stats.ActivityCount).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// transitionUpdate 一次状态流转要写入的内容
type transitionUpdate struct {
	target       model.ProjectStatus
	updates      map[string]interface{}
	activityType model.ActivityType
	description  string
	metadata     map[string]interface{}
}

// transition 执行状态流转。
// 条件更新绑定当前状态（UPDATE ... WHERE id=? AND status=?），
// 并发请求只有一个能命中，其余按冲突处理，保证同一项目的流转串行化。
func (p *ProjectLogic) transition(project *model.Project, actorID uint, tu transitionUpdate) (*model.Project, error) {
	updates := tu.updates
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = tu.target

	res := p.db.Model(&model.Project{}).
		Where("id = ? AND status = ?", project.ID, project.Status).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, errs.Conflict("项目状态已被并发修改，请刷新后重试")
	}

	var updated model.Project
	if err := p.db.First(&updated, project.ID).Error; err != nil {
		return nil, err
	}

	metadata := map[string]interface{}{
		"old_status": string(project.Status),
		"new_status": string(tu.target),
	}
	for k, v := range tu.metadata {
		metadata[k] = v
	}
	p.recorder.Record(project.ID, actorID, tu.activityType, tu.description, metadata)

	return &updated, nil
}

// loadForActor 加载项目并校验操作者是项目参与方
func (p *ProjectLogic) loadForActor(projectID, actorID uint) (*model.Project, error) {
	var project model.Project
	if err := p.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("项目不存在")
		}
		return nil, err
	}
	if project.ClientID != actorID && project.EditorID != actorID {
		return nil, errs.Forbidden("无权访问该项目")
	}
	return &project, nil
}

// statusIn 判断状态是否在给定集合中
func statusIn(s model.ProjectStatus, set ...model.ProjectStatus) bool {
	for _, candidate := range set {
		if s == candidate {
			return true
		}
	}
	return false
}
