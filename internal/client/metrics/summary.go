package metrics

import dto "github.com/prometheus/client_model/go"

// Summary is a point-in-time view of the counters for the status command.
type Summary struct {
	RemoteOK     float64
	RemoteFailed float64
	Skipped      float64
	Fallbacks    float64
	BreakerTrips float64
}

func (r *Recorder) Summary() (Summary, error) {
	var s Summary
	if r == nil {
		return s, nil
	}
	families, err := r.registry.Gather()
	if err != nil {
		return s, err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			v := m.GetCounter().GetValue()
			switch mf.GetName() {
			case namespace + "_remote_calls_total":
				switch label(m, "outcome") {
				case OutcomeOK:
					s.RemoteOK += v
				case OutcomeSkipped:
					s.Skipped += v
				default:
					s.RemoteFailed += v
				}
			case namespace + "_fallbacks_total":
				s.Fallbacks += v
			case namespace + "_quota_breaker_trips_total":
				s.BreakerTrips += v
			}
		}
	}
	return s, nil
}

func label(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
