package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func TestCounters(t *testing.T) {
	t.Log("Given the need to record ledger activity.")
	{
		before := testutil.ToFloat64(transactionsTotal)
		AddTransaction()
		if got := testutil.ToFloat64(transactionsTotal); got != before+1 {
			t.Fatalf("\t%s\tShould count transactions, got %v.", failed, got)
		}
		t.Logf("\t%s\tShould count transactions.", success)

		timeouts := miningTotal.WithLabelValues(StatusTimeout)
		before = testutil.ToFloat64(timeouts)
		ObserveMining(StatusTimeout, time.Now())
		if got := testutil.ToFloat64(timeouts); got != before+1 {
			t.Fatalf("\t%s\tShould count mining outcomes, got %v.", failed, got)
		}
		t.Logf("\t%s\tShould count mining outcomes.", success)

		SetChainLength(3)
		if got := testutil.ToFloat64(chainLength); got != 3 {
			t.Fatalf("\t%s\tShould track the chain length, got %v.", failed, got)
		}
		t.Logf("\t%s\tShould track the chain length.", success)

		ok := requestsTotal.WithLabelValues("GET", "/blocks", "200")
		before = testutil.ToFloat64(ok)
		ObserveRequest("GET", "/blocks", 200, time.Now())
		if got := testutil.ToFloat64(ok); got != before+1 {
			t.Fatalf("\t%s\tShould count requests, got %v.", failed, got)
		}
		t.Logf("\t%s\tShould count requests.", success)
	}
}
