package estimate

// LatencyEstimate is a conservative per-call latency proxy derived from
// aggregate test-run timing. This is an estimate under uncertainty, not a
// measurement: each test is assumed to make several calls, so the real
// per-call time is at most PerCallMs.
type LatencyEstimate struct {
	PerCallMs float64 `json:"per_call_ms"`
	Measured  bool    `json:"measured"`
}

// EstimateLatency divides the aggregate test run time evenly across tests
// and then across the estimated calls per test. When timing or counts are
// unavailable the estimate is unmeasured.
func EstimateLatency(totalSeconds float64, testCount, callsPerTest int) LatencyEstimate {
	if totalSeconds <= 0 || testCount <= 0 || callsPerTest <= 0 {
		return LatencyEstimate{}
	}
	perTestMs := totalSeconds / float64(testCount) * 1000
	return LatencyEstimate{
		PerCallMs: perTestMs / float64(callsPerTest),
		Measured:  true,
	}
}

// Within reports whether the estimate stays under the ceiling. An unmeasured
// estimate passes: direct measurement is a non-goal and missing
// instrumentation must not block verification.
func (e LatencyEstimate) Within(ceilingMs float64) bool {
	if !e.Measured {
		return true
	}
	return e.PerCallMs < ceilingMs
}
