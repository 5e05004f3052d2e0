package logic

import (
	"testing"

	"github.com/Ajinkya-07/Freelance-Website/internal/errs"
	"github.com/Ajinkya-07/Freelance-Website/internal/model"
)

func newActivityLogic(t *testing.T) (*ActivityLogic, *testEnv) {
	t.Helper()
	env := newEnv(t)
	return NewActivityLogic(env.db), env
}

func seedActivities(t *testing.T, env *testEnv, projectID uint) {
	t.Helper()
	records := []struct {
		activityType model.ActivityType
		description  string
	}{
		{model.ActivityProjectCreated, "project created"},
		{model.ActivityStatusChanged, "submitted for review"},
		{model.ActivityStatusChanged, "revision requested"},
		{model.ActivityMilestoneCompleted, "first draft done"},
	}
	for _, r := range records {
		env.recorder.Record(projectID, testClientID, r.activityType, r.description, nil)
	}
	env.recorder.Wait()
}

func TestFindActivityByProject(t *testing.T) {
	logic, env := newActivityLogic(t)
	project := seedProject(t, env.db, model.ProjectStatusInProgress)
	seedActivities(t, env, project.ID)

	activities, err := logic.FindByProject(project.ID, testClientID, 10, 0)
	if err != nil {
		t.Fatalf("FindByProject: %v", err)
	}
	if len(activities) != 4 {
		t.Fatalf("got %d activities, want 4", len(activities))
	}
	// 时间倒序，最新的在前
	if activities[0].Description != "first draft done" {
		t.Errorf("first activity = %q, want newest", activities[0].Description)
	}

	if _, err := logic.FindByProject(project.ID, strangerID, 10, 0); errs.KindOf(err) != errs.KindForbidden {
		t.Errorf("stranger: kind = %v, want Forbidden", errs.KindOf(err))
	}
	if _, err := logic.FindByProject(9999, testClientID, 10, 0); errs.KindOf(err) != errs.KindNotFound {
		t.Errorf("missing project: kind = %v, want NotFound", errs.KindOf(err))
	}
}

func TestFindActivityByType(t *testing.T) {
	logic, env := newActivityLogic(t)
	project := seedProject(t, env.db, model.ProjectStatusInProgress)
	seedActivities(t, env, project.ID)

	activities, err := logic.FindByType(project.ID, testClientID, model.ActivityStatusChanged)
	if err != nil {
		t.Fatalf("FindByType: %v", err)
	}
	if len(activities) != 2 {
		t.Errorf("got %d status_changed activities, want 2", len(activities))
	}

	if _, err := logic.FindByType(project.ID, testClientID, "project_liked"); errs.KindOf(err) != errs.KindValidation {
		t.Errorf("bogus type: kind = %v, want Validation", errs.KindOf(err))
	}
}

func TestFindActivityByUser(t *testing.T) {
	logic, env := newActivityLogic(t)
	mine := seedProject(t, env.db, model.ProjectStatusInProgress)
	seedActivities(t, env, mine.ID)

	// 与当前用户无关的项目动态不出现在结果里
	other := model.Project{JobID: mine.JobID, ClientID: 50, EditorID: 51, Status: model.ProjectStatusInProgress}
	if err := env.db.Create(&other).Error; err != nil {
		t.Fatalf("seed other project: %v", err)
	}
	env.recorder.Record(other.ID, 50, model.ActivityProjectCreated, "other project", nil)
	env.recorder.Wait()

	activities, err := logic.FindByUser(testClientID, 10, 0)
	if err != nil {
		t.Fatalf("FindByUser: %v", err)
	}
	if len(activities) != 4 {
		t.Fatalf("got %d activities, want 4", len(activities))
	}
	for _, a := range activities {
		if a.ProjectID != mine.ID {
			t.Errorf("activity from foreign project %d leaked", a.ProjectID)
		}
	}
}

func TestGetProjectActivitySummary(t *testing.T) {
	logic, env := newActivityLogic(t)
	project := seedProject(t, env.db, model.ProjectStatusInProgress)
	seedActivities(t, env, project.ID)

	summaries, err := logic.GetProjectSummary(project.ID, testClientID)
	if err != nil {
		t.Fatalf("GetProjectSummary: %v", err)
	}

	byType := map[model.ActivityType]int64{}
	for _, s := range summaries {
		byType[s.ActivityType] = s.Count
	}
	if byType[model.ActivityStatusChanged] != 2 {
		t.Errorf("status_changed count = %d, want 2", byType[model.ActivityStatusChanged])
	}
	if byType[model.ActivityProjectCreated] != 1 {
		t.Errorf("project_created count = %d, want 1", byType[model.ActivityProjectCreated])
	}
}
