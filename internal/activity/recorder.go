package activity

import (
	"encoding/json"
	"sync"

	"github.com/Ajinkya-07/Freelance-Website/internal/logger"
	"github.com/Ajinkya-07/Freelance-Website/internal/model"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

// Recorder 项目动态记录器。
// 动态写入是主操作的旁路副作用：写入失败只进运维日志，绝不回滚或阻塞主操作。
type Recorder struct {
	db   *gorm.DB
	pool *ants.Pool
	wg   sync.WaitGroup
}

// NewRecorder 创建记录器，poolSize 为异步写入协程池大小
func NewRecorder(db *gorm.DB, poolSize int) (*Recorder, error) {
	if poolSize <= 0 {
		poolSize = 4
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}
	return &Recorder{db: db, pool: pool}, nil
}

// Record 异步追加一条项目动态。非法的动态类型直接丢弃并告警。
func (r *Recorder) Record(projectID, userID uint, activityType model.ActivityType, description string, metadata map[string]interface{}) {
	if !activityType.Valid() {
		logger.Warn("Dropping activity with unknown type %q for project %d", activityType, projectID)
		return
	}

	raw := "{}"
	if len(metadata) > 0 {
		if data, err := json.Marshal(metadata); err == nil {
			raw = string(data)
		} else {
			logger.Warn("Failed to encode activity metadata for project %d: %v", projectID, err)
		}
	}

	record := model.ProjectActivity{
		ProjectID:    projectID,
		UserID:       userID,
		ActivityType: activityType,
		Description:  description,
		Metadata:     raw,
	}

	r.wg.Add(1)
	err := r.pool.Submit(func() {
		defer r.wg.Done()
		if err := r.db.Create(&record).Error; err != nil {
			logger.Error("Failed to record activity %s for project %d: %v", activityType, projectID, err)
		}
	})
	if err != nil {
		r.wg.Done()
		logger.Error("Failed to submit activity %s for project %d: %v", activityType, projectID, err)
	}
}

// Wait 等待所有已提交的动态写入完成（用于优雅退出和测试）
func (r *Recorder) Wait() {
	r.wg.Wait()
}

// Release 关闭协程池
func (r *Recorder) Release() {
	r.wg.Wait()
	r.pool.Release()
}
