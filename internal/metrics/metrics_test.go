package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveHTTP(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("POST", "/analyze-resume", "200"))
	ObserveHTTP("POST", "/analyze-resume", 200, 15*time.Millisecond)
	after := testutil.ToFloat64(HTTPRequests.WithLabelValues("POST", "/analyze-resume", "200"))
	assert.Equal(t, before+1, after)
}

func TestObserveOracle(t *testing.T) {
	before := testutil.ToFloat64(OracleCalls.WithLabelValues("heuristic", "analyze-resume", "ok"))
	ObserveOracle("heuristic", "analyze-resume", "ok", time.Millisecond)
	ObserveOracle("heuristic", "analyze-resume", "ok", time.Millisecond)
	after := testutil.ToFloat64(OracleCalls.WithLabelValues("heuristic", "analyze-resume", "ok"))
	assert.Equal(t, before+2, after)
}
