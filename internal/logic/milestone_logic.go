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

// MilestoneLogic 里程碑业务逻辑
type MilestoneLogic struct {
	db       *gorm.DB
	recorder *activity.Recorder
}

// NewMilestoneLogic 创建里程碑业务逻辑
func NewMilestoneLogic(db *gorm.DB, recorder *activity.Recorder) *MilestoneLogic {
	return &MilestoneLogic{db: db, recorder: recorder}
}

// defaultMilestones 新项目的默认里程碑模板
var defaultMilestones = []model.Milestone{
	{Title: "Project Kickoff", Description: "Initial project setup and requirements gathering", DisplayOrder: 1},
	{Title: "First Draft", Description: "Initial draft delivery for review", DisplayOrder: 2},
	{Title: "Revision Round 1", Description: "Incorporate first round of feedback", DisplayOrder: 3},
	{Title: "Final Delivery", Description: "Final edited video delivery", DisplayOrder: 4},
	{Title: "Project Approval", Description: "Client approval and project completion", DisplayOrder: 5},
}

// MilestoneProgress 里程碑进度统计
type MilestoneProgress struct {
	Total      int64 `json:"total"`
	Completed  int64 `json:"completed"`
	InProgress int64 `json:"in_progress"`
	Pending    int64 `json:"pending"`
	Percentage int   `json:"percentage"`
}

// MilestoneOrder 重排序的单项：里程碑ID与新的展示顺序
type MilestoneOrder struct {
	ID    uint `json:"id" binding:"required"`
	Order int  `json:"order"`
}

// CreateMilestone 创建里程碑
func (m *MilestoneLogic) CreateMilestone(projectID, actorID uint, milestone *model.Milestone) error {
	if _, err := m.projectForActor(projectID, actorID); err != nil {
		return err
	}
	if milestone.Title == "" {
		return errs.Validation("里程碑标题不能为空")
	}
	if milestone.Status == "" {
		milestone.Status = model.MilestoneStatusPending
	}
	if !milestone.Status.Valid() {
		return errs.Validation(fmt.Sprintf("无效的里程碑状态: %s", milestone.Status))
	}
	milestone.ProjectID = projectID

	if err := m.db.Create(milestone).Error; err != nil {
		return err
	}

	m.recorder.Record(projectID, actorID, model.ActivityMilestoneAdded,
		fmt.Sprintf("新增里程碑: %s", milestone.Title),
		map[string]interface{}{"milestone_id": milestone.ID, "title": milestone.Title})
	return nil
}

// CreateDefaultMilestones 为项目生成默认里程碑模板。
// 项目已有任何里程碑时整体拒绝，不会插入任何行。
func (m *MilestoneLogic) CreateDefaultMilestones(projectID, actorID uint) ([]model.Milestone, error) {
	if _, err := m.projectForActor(projectID, actorID); err != nil {
		return nil, err
	}

	err := m.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Milestone{}).
			Where("project_id = ?", projectID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errs.Conflict("项目已存在里程碑，不能重复生成默认模板")
		}
		return insertDefaultMilestones(tx, projectID)
	})
	if err != nil {
		return nil, err
	}

	m.recorder.Record(projectID, actorID, model.ActivityMilestoneAdded,
		"已生成默认里程碑", map[string]interface{}{"count": len(defaultMilestones)})

	return m.findByProject(projectID)
}

// insertDefaultMilestones 插入默认模板（调用方负责事务与冲突检查）
func insertDefaultMilestones(tx *gorm.DB, projectID uint) error {
	for _, tpl := range defaultMilestones {
		milestone := model.Milestone{
			ProjectID:    projectID,
			Title:        tpl.Title,
			Description:  tpl.Description,
			DisplayOrder: tpl.DisplayOrder,
			Status:       model.MilestoneStatusPending,
		}
		if err := tx.Create(&milestone).Error; err != nil {
			return err
		}
	}
	return nil
}

// FindByProject 获取项目全部里程碑（按展示顺序、截止日期排序）
func (m *MilestoneLogic) FindByProject(projectID, actorID uint) ([]model.Milestone, error) {
	if _, err := m.projectForActor(projectID, actorID); err != nil {
		return nil, err
	}
	return m.findByProject(projectID)
}

func (m *MilestoneLogic) findByProject(projectID uint) ([]model.Milestone, error) {
	var milestones []model.Milestone
	err := m.db.Where("project_id = ?", projectID).
		Order("display_order ASC, due_date ASC").
		Find(&milestones).Error
	if err != nil {
		return nil, err
	}
	return milestones, nil
}

// UpdateMilestone 部分更新里程碑，未指定的字段保持原值
func (m *MilestoneLogic) UpdateMilestone(milestoneID, actorID uint, updates map[string]interface{}) (*model.Milestone, error) {
	milestone, err := m.loadForActor(milestoneID, actorID)
	if err != nil {
		return nil, err
	}

	// 只允许更新特定字段
	allowedFields := map[string]bool{
		"title": true, "description": true, "due_date": true,
		"display_order": true, "status": true,
	}
	for key := range updates {
		if !allowedFields[key] {
			delete(updates, key)
		}
	}
	if len(updates) == 0 {
		return nil, errs.Validation("没有要更新的字段")
	}

	// 状态变更时维护 completed_at：完成时打点，退回时清空
	if raw, ok := updates["status"]; ok {
		status := model.MilestoneStatus(fmt.Sprint(raw))
		if !status.Valid() {
			return nil, errs.Validation(fmt.Sprintf("无效的里程碑状态: %s", status))
		}
		updates["status"] = status
		if status == model.MilestoneStatusCompleted {
			now := time.Now()
			updates["completed_at"] = &now
		} else {
			updates["completed_at"] = nil
		}
	}

	if err := m.db.Model(milestone).Updates(updates).Error; err != nil {
		return nil, err
	}

	var updated model.Milestone
	if err := m.db.First(&updated, milestoneID).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// CompleteMilestone 完成里程碑，状态与完成时间一次更新
func (m *MilestoneLogic) CompleteMilestone(milestoneID, actorID uint) (*model.Milestone, error) {
	milestone, err := m.loadForActor(milestoneID, actorID)
	if err != nil {
		return nil, err
	}
	if milestone.Status == model.MilestoneStatusCompleted {
		return nil, errs.Conflict("里程碑已完成")
	}

	now := time.Now()
	err = m.db.Model(milestone).Updates(map[string]interface{}{
		"status":       model.MilestoneStatusCompleted,
		"completed_at": &now,
	}).Error
	if err != nil {
		return nil, err
	}

	m.recorder.Record(milestone.ProjectID, actorID, model.ActivityMilestoneCompleted,
		fmt.Sprintf("里程碑完成: %s", milestone.Title),
		map[string]interface{}{"milestone_id": milestone.ID, "title": milestone.Title})

	var updated model.Milestone
	if err := m.db.First(&updated, milestoneID).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteMilestone 删除里程碑
func (m *MilestoneLogic) DeleteMilestone(milestoneID, actorID uint) error {
	milestone, err := m.loadForActor(milestoneID, actorID)
	if err != nil {
		return err
	}
	return m.db.Delete(milestone).Error
}

// Reorder 批量更新项目内里程碑的展示顺序。
// 整批在一个事务内执行；每条更新都绑定 project_id，
// 不属于该项目的里程碑ID命中零行，不会被跨项目挪动。
func (m *MilestoneLogic) Reorder(projectID, actorID uint, orders []MilestoneOrder) error {
	if _, err := m.projectForActor(projectID, actorID); err != nil {
		return err
	}
	if len(orders) == 0 {
		return errs.Validation("重排序列表不能为空")
	}

	return m.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range orders {
			err := tx.Model(&model.Milestone{}).
				Where("id = ? AND project_id = ?", item.ID, projectID).
				Update("display_order", item.Order).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// GetProjectProgress 统计项目里程碑进度，零里程碑时百分比为 0
func (m *MilestoneLogic) GetProjectProgress(projectID, actorID uint) (*MilestoneProgress, error) {
	if _, err := m.projectForActor(projectID, actorID); err != nil {
		return nil, err
	}

	progress := &MilestoneProgress{}
	counts := []struct {
		status model.MilestoneStatus
		target *int64
	}{
		{model.MilestoneStatusCompleted, &progress.Completed},
		{model.MilestoneStatusInProgress, &progress.InProgress},
		{model.MilestoneStatusPending, &progress.Pending},
	}

	if err := m.db.Model(&model.Milestone{}).
		Where("project_id = ?", projectID).Count(&progress.Total).Error; err != nil {
		return nil, err
	}
	for _, c := range counts {
		if err := m.db.Model(&model.Milestone{}).
			Where("project_id = ? AND status = ?", projectID, c.status).
			Count(c.target).Error; err != nil {
			return nil, err
		}
	}

	if progress.Total > 0 {
		progress.Percentage = int(float64(progress.Completed)/float64(progress.Total)*100 + 0.5)
	}
	return progress, nil
}

// GetOverdueMilestones 获取用户参与项目中已逾期且未完成的里程碑
func (m *MilestoneLogic) GetOverdueMilestones(userID uint) ([]model.Milestone, error) {
	var milestones []model.Milestone
	err := m.db.
		Joins("JOIN projects ON projects.id = milestones.project_id").
		Where("projects.client_id = ? OR projects.editor_id = ?", userID, userID).
		Where("milestones.status <> ?", model.MilestoneStatusCompleted).
		Where("milestones.due_date IS NOT NULL AND milestones.due_date < ?", time.Now()).
		Order("milestones.due_date ASC").
		Find(&milestones).Error
	if err != nil {
		return nil, err
	}
	return milestones, nil
}

// GetUpcomingMilestones 获取未来 days 天内到期且未完成的里程碑
func (m *MilestoneLogic) GetUpcomingMilestones(userID uint, days int) ([]model.Milestone, error) {
	if days <= 0 {
		days = 7
	}
	now := time.Now()
	until := now.AddDate(0, 0, days)

	var milestones []model.Milestone
	err := m.db.
		Joins("JOIN projects ON projects.id = milestones.project_id").
		Where("projects.client_id = ? OR projects.editor_id = ?", userID, userID).
		Where("milestones.status <> ?", model.MilestoneStatusCompleted).
		Where("milestones.due_date >= ? AND milestones.due_date <= ?", now, until).
		Order("milestones.due_date ASC").
		Find(&milestones).Error
	if err != nil {
		return nil, err
	}
	return milestones, nil
}

// loadForActor 加载里程碑并校验操作者对所属项目的访问权限
func (m *MilestoneLogic) loadForActor(milestoneID, actorID uint) (*model.Milestone, error) {
	var milestone model.Milestone
	if err := m.db.First(&milestone, milestoneID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("里程碑不存在")
		}
		return nil, err
	}
	if _, err := m.projectForActor(milestone.ProjectID, actorID); err != nil {
		return nil, err
	}
	return &milestone, nil
}

// projectForActor 加载项目并校验操作者是参与方
func (m *MilestoneLogic) projectForActor(projectID, actorID uint) (*model.Project, error) {
	var project model.Project
	if err := m.db.First(&project, projectID).Error; err != nil {
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
