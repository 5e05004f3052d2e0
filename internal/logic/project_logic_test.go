package logic

import (
	"strings"
	"testing"

	"github.com/Ajinkya-07/Freelance-Website/internal/errs"
	"github.com/Ajinkya-07/Freelance-Website/internal/model"
)

func newProjectLogic(t *testing.T) (*ProjectLogic, *testEnv) {
	t.Helper()
	env := newEnv(t)
	return NewProjectLogic(env.db, env.recorder), env
}

func TestAcceptProposalCreatesProject(t *testing.T) {
	logic, env := newProjectLogic(t)
	_, proposal := seedJobAndProposal(t, env.db, 500)

	project, err := logic.AcceptProposal(proposal.ID, testClientID)
	if err != nil {
		t.Fatalf("AcceptProposal: %v", err)
	}
	if project.Status != model.ProjectStatusInProgress {
		t.Errorf("status = %s, want in_progress", project.Status)
	}
	if project.EscrowAmount != 500 {
		t.Errorf("escrow = %v, want 500", project.EscrowAmount)
	}
	if project.ClientID != testClientID || project.EditorID != testEditorID {
		t.Errorf("parties = (%d, %d), want (%d, %d)",
			project.ClientID, project.EditorID, testClientID, testEditorID)
	}

	var updatedProposal model.Proposal
	if err := env.db.First(&updatedProposal, proposal.ID).Error; err != nil {
		t.Fatalf("reload proposal: %v", err)
	}
	if updatedProposal.Status != model.ProposalStatusAccepted {
		t.Errorf("proposal status = %s, want accepted", updatedProposal.Status)
	}

	var job model.Job
	if err := env.db.First(&job, proposal.JobID).Error; err != nil {
		t.Fatalf("reload job: %v", err)
	}
	if job.Status != model.JobStatusInProgress {
		t.Errorf("job status = %s, want in_progress", job.Status)
	}

	var milestoneCount int64
	env.db.Model(&model.Milestone{}).Where("project_id = ?", project.ID).Count(&milestoneCount)
	if milestoneCount != 5 {
		t.Errorf("default milestones = %d, want 5", milestoneCount)
	}

	env.recorder.Wait()
	var activities []model.ProjectActivity
	env.db.Where("project_id = ?", project.ID).Find(&activities)
	types := map[model.ActivityType]bool{}
	for _, a := range activities {
		types[a.ActivityType] = true
	}
	if !types[model.ActivityProjectCreated] || !types[model.ActivityMilestoneAdded] {
		t.Errorf("missing creation activities, got %v", types)
	}
}

func TestAcceptProposalOnlyJobOwner(t *testing.T) {
	logic, env := newProjectLogic(t)
	_, proposal := seedJobAndProposal(t, env.db, 300)

	if _, err := logic.AcceptProposal(proposal.ID, testEditorID); errs.KindOf(err) != errs.KindForbidden {
		t.Errorf("accept by editor: kind = %v, want Forbidden (err = %v)", errs.KindOf(err), err)
	}
}

func TestAcceptProposalAlreadyHandled(t *testing.T) {
	logic, env := newProjectLogic(t)
	_, proposal := seedJobAndProposal(t, env.db, 300)

	if _, err := logic.AcceptProposal(proposal.ID, testClientID); err != nil {
		t.Fatalf("first accept: %v", err)
	}
	if _, err := logic.AcceptProposal(proposal.ID, testClientID); errs.KindOf(err) != errs.KindConflict {
		t.Errorf("second accept: kind = %v, want Conflict", errs.KindOf(err))
	}
}

func TestRevisionFlow(t *testing.T) {
	logic, env := newProjectLogic(t)
	project := seedProject(t, env.db, model.ProjectStatusInProgress)

	// 剪辑师提交审核
	updated, err := logic.SubmitForReview(project.ID, testEditorID)
	if err != nil {
		t.Fatalf("SubmitForReview: %v", err)
	}
	if updated.Status != model.ProjectStatusUnderReview {
		t.Fatalf("status = %s, want under_review", updated.Status)
	}

	// 客户要求修改
	updated, err = logic.RequestRevision(project.ID, testClientID, "Please shorten the intro")
	if err != nil {
		t.Fatalf("RequestRevision: %v", err)
	}
	if updated.Status != model.ProjectStatusRevisionRequested {
		t.Fatalf("status = %s, want revision_requested", updated.Status)
	}
	if updated.RevisionCount != 1 {
		t.Errorf("revision count = %d, want 1", updated.RevisionCount)
	}
	if updated.RevisionNotes != "Please shorten the intro" {
		t.Errorf("revision notes = %q", updated.RevisionNotes)
	}

	// 再次提交并由客户确认完成
	if _, err := logic.SubmitForReview(project.ID, testEditorID); err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	updated, err = logic.Complete(project.ID, testClientID, "Great work")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if updated.Status != model.ProjectStatusCompleted {
		t.Errorf("status = %s, want completed", updated.Status)
	}
	if updated.CompletedAt == nil {
		t.Error("completed_at should be set")
	}
}

func TestCompleteBypassOnlyOnDedicatedOperation(t *testing.T) {
	logic, env := newProjectLogic(t)

	// 专用完成操作允许从 revision_requested 直接完成
	project := seedProject(t, env.db, model.ProjectStatusRevisionRequested)
	updated, err := logic.Complete(project.ID, testClientID, "")
	if err != nil {
		t.Fatalf("Complete from revision_requested: %v", err)
	}
	if updated.Status != model.ProjectStatusCompleted {
		t.Errorf("status = %s, want completed", updated.Status)
	}

	// 通用状态入口不放行这条捷径
	other := seedProject(t, env.db, model.ProjectStatusRevisionRequested)
	_, err = logic.UpdateStatus(other.ID, testClientID, model.ProjectStatusCompleted, "")
	if errs.KindOf(err) != errs.KindValidation {
		t.Errorf("UpdateStatus bypass: kind = %v, want Validation (err = %v)", errs.KindOf(err), err)
	}
	if got := reloadProject(t, env.db, other.ID); got.Status != model.ProjectStatusRevisionRequested {
		t.Errorf("status mutated to %s on rejected transition", got.Status)
	}
}

func TestSubmitForReviewRequiresEditor(t *testing.T) {
	logic, env := newProjectLogic(t)
	project := seedProject(t, env.db, model.ProjectStatusInProgress)

	if _, err := logic.SubmitForReview(project.ID, testClientID); errs.KindOf(err) != errs.KindForbidden {
		t.Errorf("submit by client: kind = %v, want Forbidden", errs.KindOf(err))
	}
}

func TestRequestRevisionRequiresClient(t *testing.T) {
	logic, env := newProjectLogic(t)
	project := seedProject(t, env.db, model.ProjectStatusUnderReview)

	if _, err := logic.RequestRevision(project.ID, testEditorID, "notes"); errs.KindOf(err) != errs.KindForbidden {
		t.Errorf("revision by editor: kind = %v, want Forbidden", errs.KindOf(err))
	}
}

func TestCancelRecordsReasonAndTimestamp(t *testing.T) {
	logic, env := newProjectLogic(t)
	project := seedProject(t, env.db, model.ProjectStatusInProgress)

	updated, err := logic.Cancel(project.ID, testEditorID, "Client unresponsive")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if updated.Status != model.ProjectStatusCancelled {
		t.Errorf("status = %s, want cancelled", updated.Status)
	}
	if updated.CancellationReason != "Client unresponsive" {
		t.Errorf("cancellation reason = %q", updated.CancellationReason)
	}
	if updated.CancelledAt == nil {
		t.Error("cancelled_at should be set")
	}

	// 终态后任何流转都被拒绝
	if _, err := logic.Cancel(project.ID, testClientID, "again"); errs.KindOf(err) != errs.KindValidation {
		t.Errorf("cancel terminal: kind = %v, want Validation", errs.KindOf(err))
	}
	if _, err := logic.SubmitForReview(project.ID, testEditorID); err == nil {
		t.Error("submit on cancelled project should fail")
	}

	env.recorder.Wait()
	var cancelActivity model.ProjectActivity
	err = env.db.Where("project_id = ? AND activity_type = ?", project.ID, model.ActivityProjectCancelled).
		First(&cancelActivity).Error
	if err != nil {
		t.Fatalf("load cancel activity: %v", err)
	}
	if !strings.Contains(cancelActivity.Metadata, `"cancelled_by":"editor"`) {
		t.Errorf("metadata should record cancelling role, got %s", cancelActivity.Metadata)
	}
}

func TestHoldAndResume(t *testing.T) {
	logic, env := newProjectLogic(t)
	project := seedProject(t, env.db, model.ProjectStatusInProgress)

	updated, err := logic.PutOnHold(project.ID, testClientID, "Waiting for raw footage")
	if err != nil {
		t.Fatalf("PutOnHold: %v", err)
	}
	if updated.Status != model.ProjectStatusOnHold {
		t.Errorf("status = %s, want on_hold", updated.Status)
	}
	if updated.HoldReason != "Waiting for raw footage" {
		t.Errorf("hold reason = %q", updated.HoldReason)
	}

	updated, err = logic.Resume(project.ID, testEditorID)
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if updated.Status != model.ProjectStatusInProgress {
		t.Errorf("status = %s, want in_progress", updated.Status)
	}
	// 暂停原因保留作为历史记录
	if updated.HoldReason != "Waiting for raw footage" {
		t.Errorf("hold reason cleared on resume: %q", updated.HoldReason)
	}
}

func TestUpdateStatusValidation(t *testing.T) {
	logic, env := newProjectLogic(t)
	project := seedProject(t, env.db, model.ProjectStatusInProgress)

	if _, err := logic.UpdateStatus(project.ID, testClientID, "archived", ""); errs.KindOf(err) != errs.KindValidation {
		t.Errorf("unknown target: kind = %v, want Validation", errs.KindOf(err))
	}
	if _, err := logic.UpdateStatus(project.ID, testClientID, model.ProjectStatusCompleted, ""); errs.KindOf(err) != errs.KindValidation {
		t.Errorf("in_progress -> completed: kind = %v, want Validation", errs.KindOf(err))
	}

	// 合法流转同样补齐伴随字段
	updated, err := logic.UpdateStatus(project.ID, testClientID, model.ProjectStatusOnHold, "vacation")
	if err != nil {
		t.Fatalf("UpdateStatus to on_hold: %v", err)
	}
	if updated.HoldReason != "vacation" {
		t.Errorf("hold reason = %q, want vacation", updated.HoldReason)
	}
}

func TestProjectAccessControl(t *testing.T) {
	logic, env := newProjectLogic(t)
	project := seedProject(t, env.db, model.ProjectStatusInProgress)

	if _, err := logic.GetProject(project.ID, strangerID); errs.KindOf(err) != errs.KindForbidden {
		t.Errorf("stranger access: kind = %v, want Forbidden", errs.KindOf(err))
	}
	if _, err := logic.GetProject(9999, testClientID); errs.KindOf(err) != errs.KindNotFound {
		t.Errorf("missing project: kind = %v, want NotFound", errs.KindOf(err))
	}
}

func TestGetProgressZeroMilestones(t *testing.T) {
	logic, env := newProjectLogic(t)
	project := seedProject(t, env.db, model.ProjectStatusInProgress)

	progress, err := logic.GetProgress(project.ID, testClientID)
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if progress.Total != 0 || progress.Completed != 0 || progress.Percentage != 0 {
		t.Errorf("progress = %+v, want all zero", progress)
	}
}

func TestFindByUser(t *testing.T) {
	logic, env := newProjectLogic(t)
	mine := seedProject(t, env.db, model.ProjectStatusInProgress)

	other := model.Project{JobID: mine.JobID, ClientID: 50, EditorID: 51, Status: model.ProjectStatusInProgress}
	if err := env.db.Create(&other).Error; err != nil {
		t.Fatalf("seed other project: %v", err)
	}

	projects, err := logic.FindByUser(testEditorID)
	if err != nil {
		t.Fatalf("FindByUser: %v", err)
	}
	if len(projects) != 1 || projects[0].ID != mine.ID {
		t.Errorf("got %d projects, want only the editor's own", len(projects))
	}
}

func TestFindByStatus(t *testing.T) {
	logic, env := newProjectLogic(t)
	seedProject(t, env.db, model.ProjectStatusInProgress)
	seedProject(t, env.db, model.ProjectStatusOnHold)

	projects, err := logic.FindByStatus(model.ProjectStatusOnHold, 10, 0)
	if err != nil {
		t.Fatalf("FindByStatus: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("got %d projects, want 1", len(projects))
	}
	if projects[0].Status != model.ProjectStatusOnHold {
		t.Errorf("status = %s, want on_hold", projects[0].Status)
	}

	if _, err := logic.FindByStatus("bogus", 10, 0); errs.KindOf(err) != errs.KindValidation {
		t.Errorf("bogus status: kind = %v, want Validation", errs.KindOf(err))
	}
}

func TestSearchByKeywordAndStatus(t *testing.T) {
	logic, env := newProjectLogic(t)
	seedUsers(t, env.db)
	_, proposal := seedJobAndProposal(t, env.db, 250)
	if _, err := logic.AcceptProposal(proposal.ID, testClientID); err != nil {
		t.Fatalf("AcceptProposal: %v", err)
	}

	projects, err := logic.Search(SearchParams{UserID: testClientID, Query: "Wedding"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("got %d projects, want 1", len(projects))
	}

	projects, err = logic.Search(SearchParams{UserID: testClientID, Query: "nonexistent"})
	if err != nil {
		t.Fatalf("Search miss: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("got %d projects, want 0", len(projects))
	}

	if _, err := logic.Search(SearchParams{Status: "bogus"}); errs.KindOf(err) != errs.KindValidation {
		t.Errorf("bogus status: kind = %v, want Validation", errs.KindOf(err))
	}
}
