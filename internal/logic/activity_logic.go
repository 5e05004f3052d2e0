package logic

import (
	"errors"
	"fmt"

	"github.com/Ajinkya-07/Freelance-Website/internal/errs"
	"github.com/Ajinkya-07/Freelance-Website/internal/model"
	"gorm.io/gorm"
)

// ActivityLogic 项目动态查询逻辑（写入统一走 activity.Recorder）
type ActivityLogic struct {
	db *gorm.DB
}

// NewActivityLogic 创建项目动态查询逻辑
func NewActivityLogic(db *gorm.DB) *ActivityLogic {
	return &ActivityLogic{db: db}
}

// ActivitySummary 按动态类型汇总
type ActivitySummary struct {
	ActivityType model.ActivityType `json:"activity_type"`
	Count        int64              `json:"count"`
	LastActivity string             `json:"last_activity"`
}

// FindByProject 获取项目动态（按时间倒序分页）
func (a *ActivityLogic) FindByProject(projectID, actorID uint, limit, offset int) ([]model.ProjectActivity, error) {
	if err := a.checkProjectAccess(projectID, actorID); err != nil {
		return nil, err
	}
	limit, offset = normalizePage(limit, offset, 50)

	var activities []model.ProjectActivity
	err := a.db.Where("project_id = ?", projectID).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

// FindByUser 获取用户参与的所有项目的最近动态
func (a *ActivityLogic) FindByUser(userID uint, limit, offset int) ([]model.ProjectActivity, error) {
	limit, offset = normalizePage(limit, offset, 20)

	var activities []model.ProjectActivity
	err := a.db.
		Joins("JOIN projects ON projects.id = project_activities.project_id").
		Where("projects.client_id = ? OR projects.editor_id = ?", userID, userID).
		Order("project_activities.created_at DESC, project_activities.id DESC").
		Limit(limit).Offset(offset).
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

// FindByType 按动态类型查询项目动态
func (a *ActivityLogic) FindByType(projectID, actorID uint, activityType model.ActivityType) ([]model.ProjectActivity, error) {
	if !activityType.Valid() {
		return nil, errs.Validation(fmt.Sprintf("无效的动态类型: %s", activityType))
	}
	if err := a.checkProjectAccess(projectID, actorID); err != nil {
		return nil, err
	}

	var activities []model.ProjectActivity
	err := a.db.Where("project_id = ? AND activity_type = ?", projectID, activityType).
		Order("created_at DESC, id DESC").
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

// GetProjectSummary 按类型汇总项目动态及最近发生时间
func (a *ActivityLogic) GetProjectSummary(projectID, actorID uint) ([]ActivitySummary, error) {
	if err := a.checkProjectAccess(projectID, actorID); err != nil {
		return nil, err
	}

	var summaries []ActivitySummary
	err := a.db.Model(&model.ProjectActivity{}).
		Select("activity_type, COUNT(*) as count, MAX(created_at) as last_activity").
		Where("project_id = ?", projectID).
		Group("activity_type").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// checkProjectAccess 校验操作者是项目参与方
func (a *ActivityLogic) checkProjectAccess(projectID, actorID uint) error {
	var project model.Project
	if err := a.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("项目不存在")
		}
		return err
	}
	if project.ClientID != actorID && project.EditorID != actorID {
		return errs.Forbidden("无权访问该项目")
	}
	return nil
}

// normalizePage 规范化分页参数
func normalizePage(limit, offset, defaultLimit int) (int, int) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
