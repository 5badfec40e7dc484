package parsing

// Stage is a step of the linear parse pipeline. Error is absorbing.
type Stage string

const (
	StageReceived      Stage = "received"
	StageKindDetected  Stage = "kind_detected"
	StageTextExtracted Stage = "text_extracted"
	StageModelInvoked  Stage = "model_invoked"
	StageValidated     Stage = "validated"
	StageDone          Stage = "done"
	StageError         Stage = "error"
)

var stageOrder = map[Stage]int{
	StageReceived:      0,
	StageKindDetected:  1,
	StageTextExtracted: 2,
	StageModelInvoked:  3,
	StageValidated:     4,
	StageDone:          5,
}

// tracker records the furthest stage reached by one request.
type tracker struct {
	stage  Stage
	failed bool
}

// advance moves forward only; going back or leaving Error is ignored.
func (t *tracker) advance(next Stage) {
	if t.failed {
		return
	}
	if next == StageError {
		t.failed = true
		return
	}
	if stageOrder[next] > stageOrder[t.stage] {
		t.stage = next
	}
}

// Reached is the last stage completed before any failure.
func (t *tracker) Reached() Stage {
	return t.stage
}

// Final is the stage reported for the request: Error once failed.
func (t *tracker) Final() Stage {
	if t.failed {
		return StageError
	}
	return t.stage
}
