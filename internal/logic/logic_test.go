package logic

import (
	"testing"

	"github.com/Ajinkya-07/Freelance-Website/internal/activity"
	"github.com/Ajinkya-07/Freelance-Website/internal/database"
	"github.com/Ajinkya-07/Freelance-Website/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	testClientID = 1
	testEditorID = 2
	strangerID   = 99
)

// newTestDB 基于内存 sqlite 构建测试库。
// 单连接，保证动态记录器的后台写入看到同一个内存库。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// testEnv 测试夹具：共享库与单协程动态记录器
type testEnv struct {
	db       *gorm.DB
	recorder *activity.Recorder
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	recorder, err := activity.NewRecorder(db, 1)
	if err != nil {
		t.Fatalf("create recorder: %v", err)
	}
	t.Cleanup(recorder.Release)
	return &testEnv{db: db, recorder: recorder}
}

// seedUsers 写入测试客户与剪辑师
func seedUsers(t *testing.T, db *gorm.DB) {
	t.Helper()
	users := []model.User{
		{ID: testClientID, Name: "Test Client", Email: "client@example.com", Role: model.UserRoleClient},
		{ID: testEditorID, Name: "Test Editor", Email: "editor@example.com", Role: model.UserRoleEditor},
	}
	if err := db.Create(&users).Error; err != nil {
		t.Fatalf("seed users: %v", err)
	}
}

// seedJobAndProposal 写入一张需求单及待处理提案
func seedJobAndProposal(t *testing.T, db *gorm.DB, price float64) (model.Job, model.Proposal) {
	t.Helper()

	job := model.Job{
		ClientID:    testClientID,
		Title:       "Wedding highlight reel",
		Description: "Edit a 5 minute highlight video from raw footage",
		Budget:      price,
		Status:      model.JobStatusOpen,
	}
	if err := db.Create(&job).Error; err != nil {
		t.Fatalf("seed job: %v", err)
	}

	proposal := model.Proposal{
		JobID:    job.ID,
		EditorID: testEditorID,
		Price:    price,
		Status:   model.ProposalStatusPending,
	}
	if err := db.Create(&proposal).Error; err != nil {
		t.Fatalf("seed proposal: %v", err)
	}
	return job, proposal
}

// seedProject 直接写入一个指定状态的项目（不经过提案流程）
func seedProject(t *testing.T, db *gorm.DB, status model.ProjectStatus) model.Project {
	t.Helper()

	job := model.Job{
		ClientID: testClientID,
		Title:    "Product demo video",
		Status:   model.JobStatusInProgress,
	}
	if err := db.Create(&job).Error; err != nil {
		t.Fatalf("seed job: %v", err)
	}

	project := model.Project{
		JobID:        job.ID,
		ClientID:     testClientID,
		EditorID:     testEditorID,
		Status:       status,
		EscrowAmount: 400,
	}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return project
}

func reloadProject(t *testing.T, db *gorm.DB, id uint) model.Project {
	t.Helper()
	var project model.Project
	if err := db.First(&project, id).Error; err != nil {
		t.Fatalf("reload project %d: %v", id, err)
	}
	return project
}
