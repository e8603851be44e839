package progress

import "github.com/ariel-frischer/beamscheck/internal/subscribe"

// WorkflowObserver adapts a ProgressDisplay to subscribe.Observer
type WorkflowObserver struct {
	display *ProgressDisplay
}

var _ subscribe.Observer = (*WorkflowObserver)(nil)

// NewWorkflowObserver returns an observer that renders workflow stages on display
func NewWorkflowObserver(display *ProgressDisplay) *WorkflowObserver {
	return &WorkflowObserver{display: display}
}

// StageStarted implements subscribe.Observer
func (o *WorkflowObserver) StageStarted(stage subscribe.StageInfo) {
	_ = o.display.StartStage(fromWorkflow(stage, StageInProgress))
}

// StageCompleted implements subscribe.Observer
func (o *WorkflowObserver) StageCompleted(stage subscribe.StageInfo) {
	_ = o.display.CompleteStage(fromWorkflow(stage, StageCompleted))
}

// StageFailed implements subscribe.Observer
func (o *WorkflowObserver) StageFailed(stage subscribe.StageInfo, err error) {
	_ = o.display.FailStage(fromWorkflow(stage, StageFailed), err)
}

func fromWorkflow(stage subscribe.StageInfo, status StageStatus) StageInfo {
	return StageInfo{
		Name:        stage.Name,
		Number:      stage.Number,
		TotalStages: stage.Total,
		Status:      status,
	}
}
