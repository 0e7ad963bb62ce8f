package common

import (
	"fmt"
	"io"

	vm "github.com/VictoriaMetrics/metrics"
	gometrics "github.com/rcrowley/go-metrics"
)

// Registry holds the go-metrics timers and gauges of the persistence layer.
var Registry = gometrics.NewRegistry()

// CountLogin increments the login counter for the given outcome.
func CountLogin(ok bool) {
	vm.GetOrCreateCounter(fmt.Sprintf(`pmkv_logins_total{result=%q}`, outcome(ok, "ok", "failed"))).Inc()
}

// CountAction increments the workflow action counter for the given outcome.
func CountAction(action string, ok bool) {
	vm.GetOrCreateCounter(fmt.Sprintf(`pmkv_actions_total{action=%q,result=%q}`, action, outcome(ok, "ok", "rejected"))).Inc()
}

// WriteMetrics writes the counters in Prometheus text format followed by a
// snapshot of the persistence registry.
func WriteMetrics(w io.Writer) {
	vm.WritePrometheus(w, false)
	gometrics.WriteOnce(Registry, w)
}

func outcome(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}
