package progress_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ariel-frischer/beamscheck/internal/progress"
	"github.com/ariel-frischer/beamscheck/internal/subscribe"
)

func TestWorkflowObserver(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	obs := progress.NewWorkflowObserver(progress.NewProgressDisplayWithWriter(plainCaps, &buf))

	obs.StageStarted(subscribe.StageInfo{Name: "cleanup", Number: 1, Total: 4})
	obs.StageCompleted(subscribe.StageInfo{Name: "cleanup", Number: 1, Total: 4})
	obs.StageStarted(subscribe.StageInfo{Name: "register", Number: 2, Total: 4})
	obs.StageFailed(subscribe.StageInfo{Name: "register", Number: 2, Total: 4}, errors.New("404"))

	assert.Equal(t,
		"[1/4] Running Cleanup stage\n"+
			"[OK] [1/4] Cleanup stage complete\n"+
			"[2/4] Running Register stage\n"+
			"[FAIL] [2/4] Register stage failed: 404\n",
		buf.String())
}
