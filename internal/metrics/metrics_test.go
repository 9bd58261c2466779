package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestWorkflow(t *testing.T) {
	ok := testutil.ToFloat64(workflowRuns.WithLabelValues("edit", "ok"))
	failed := testutil.ToFloat64(workflowRuns.WithLabelValues("edit", "error"))

	Workflow("edit", nil)
	Workflow("edit", errors.New("boom"))
	Workflow("edit", nil)

	assert.Equal(t, ok+2, testutil.ToFloat64(workflowRuns.WithLabelValues("edit", "ok")))
	assert.Equal(t, failed+1, testutil.ToFloat64(workflowRuns.WithLabelValues("edit", "error")))
}

func TestMonthLoad(t *testing.T) {
	before := testutil.ToFloat64(monthLoads.WithLabelValues(LoadStale))
	MonthLoad(LoadStale)
	assert.Equal(t, before+1, testutil.ToFloat64(monthLoads.WithLabelValues(LoadStale)))
}
