package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveFetch(t *testing.T) {
	before := testutil.CollectAndCount(ProviderRequestDuration)

	func() (err error) {
		defer ObserveFetch("test-provider-ok")(&err)
		return nil
	}()
	func() (err error) {
		defer ObserveFetch("test-provider-fail")(&err)
		return errors.New("boom")
	}()

	after := testutil.CollectAndCount(ProviderRequestDuration)
	if after != before+2 {
		t.Errorf("histogram series = %d, want %d", after, before+2)
	}
}

func TestRenderCycles(t *testing.T) {
	RenderCycles.WithLabelValues("test", "success").Inc()
	if got := testutil.ToFloat64(RenderCycles.WithLabelValues("test", "success")); got != 1 {
		t.Errorf("render cycles = %v, want 1", got)
	}
}
