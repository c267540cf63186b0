// Package metrics emits the standard resource store and mutation metrics.
package metrics

import (
	"maps"
	"time"

	obserrors "github.com/shutterdesk/studio/internal/observability/errors"
	"github.com/shutterdesk/studio/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultHit    = "hit"
	ResultMiss   = "miss"
	ResultShared = "shared"
	ResultRemote = "remote"

	ResultSuccess = "success"
	ResultError   = "error"
)

// Lookup records how a store read was served.
func Lookup(sink statsd.Sink, resource, result string) {
	if sink == nil {
		return
	}
	sink.Count("store.lookup", 1, map[string]string{"resource": resource, "result": result})
}

// FetchMetric captures one backend fetch of a resource collection.
type FetchMetric struct {
	Resource string
	Duration time.Duration
	Items    int
	Err      error
}

// Fetch emits the fetch counter, timing and collection size gauge.
func Fetch(sink statsd.Sink, in FetchMetric) {
	if sink == nil {
		return
	}
	tags := resultTags(in.Resource, in.Err)
	sink.Count("store.fetch", 1, tags)
	if in.Duration > 0 {
		sink.Timing("store.fetch.duration", in.Duration, maps.Clone(tags))
	}
	if in.Err == nil {
		sink.Gauge("store.items", float64(in.Items), map[string]string{"resource": in.Resource})
	}
}

// MutationMetric captures a completed create, update or delete.
type MutationMetric struct {
	Resource string
	Op       string
	Kind     string
	Duration time.Duration
	Err      error
}

// Mutation emits the mutation counter and timing.
func Mutation(sink statsd.Sink, in MutationMetric) {
	if sink == nil {
		return
	}
	tags := resultTags(in.Resource, in.Err)
	tags["op"] = in.Op
	if in.Kind != "" {
		tags["kind"] = in.Kind
	}
	sink.Count("mutation", 1, tags)
	if in.Duration > 0 {
		sink.Timing("mutation.duration", in.Duration, maps.Clone(tags))
	}
}

func resultTags(resource string, err error) map[string]string {
	tags := map[string]string{"resource": resource, "result": ResultSuccess}
	if err != nil {
		tags["result"] = ResultError
		if class := obserrors.Classify(err); class != "" {
			tags["error_class"] = class
		}
	}
	return tags
}
