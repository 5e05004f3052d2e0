package scheduler

import (
	"time"

	"github.com/Ajinkya-07/Freelance-Website/internal/config"
	"github.com/Ajinkya-07/Freelance-Website/internal/logger"
	"github.com/Ajinkya-07/Freelance-Website/internal/model"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// OverdueMilestoneJob 逾期里程碑巡检任务。
// 只产出告警日志，不改动里程碑状态，状态变更始终由用户操作触发。
type OverdueMilestoneJob struct {
	db     *gorm.DB
	config *config.Config
}

// NewOverdueMilestoneJob 创建逾期里程碑巡检任务
func NewOverdueMilestoneJob(db *gorm.DB, cfg *config.Config) *OverdueMilestoneJob {
	return &OverdueMilestoneJob{
		db:     db,
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *OverdueMilestoneJob) GetName() string {
	return "overdue_milestone_checker"
}

// GetSchedule 获取调度配置
func (j *OverdueMilestoneJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Scheduler.Interval) * time.Second)
}

// Execute 执行任务
func (j *OverdueMilestoneJob) Execute() {
	logger.Info("Starting overdue milestone check")

	now := time.Now()

	var milestones []model.Milestone
	err := j.db.
		Joins("JOIN projects ON projects.id = milestones.project_id").
		Where("projects.status NOT IN ?", []model.ProjectStatus{
			model.ProjectStatusCompleted,
			model.ProjectStatusCancelled,
		}).
		Where("milestones.status != ?", model.MilestoneStatusCompleted).
		Where("milestones.due_date IS NOT NULL AND milestones.due_date < ?", now).
		Find(&milestones).Error
	if err != nil {
		logger.Error("Failed to fetch overdue milestones: %v", err)
		return
	}

	for _, m := range milestones {
		logger.Warn("Milestone %d (%s) of project %d is overdue since %s",
			m.ID, m.Title, m.ProjectID, m.DueDate.Format("2006-01-02"))
	}

	logger.Info("Overdue milestone check completed. Found %d overdue milestones", len(milestones))
}
