package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordShoppingListDownload(t *testing.T) {
	okBefore := testutil.ToFloat64(ShoppingListDownloads.WithLabelValues("text", ResultOK))
	failedBefore := testutil.ToFloat64(ShoppingListDownloads.WithLabelValues("pdf", ResultFailed))

	RecordShoppingListDownload("", nil)
	RecordShoppingListDownload(" PDF ", errors.New("font not found"))

	if got := testutil.ToFloat64(ShoppingListDownloads.WithLabelValues("text", ResultOK)); got != okBefore+1 {
		t.Fatalf("unexpected text downloads: got=%v expected=%v", got, okBefore+1)
	}
	if got := testutil.ToFloat64(ShoppingListDownloads.WithLabelValues("pdf", ResultFailed)); got != failedBefore+1 {
		t.Fatalf("unexpected failed pdf downloads: got=%v expected=%v", got, failedBefore+1)
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404"))
	RecordHTTPRequest("GET", "", 404, 5*time.Millisecond)
	if got := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")); got != before+1 {
		t.Fatalf("unexpected request count: got=%v expected=%v", got, before+1)
	}
}

func TestRecordRateLimited(t *testing.T) {
	before := testutil.ToFloat64(RateLimitRejections.WithLabelValues("default"))
	RecordRateLimited(" ")
	if got := testutil.ToFloat64(RateLimitRejections.WithLabelValues("default")); got != before+1 {
		t.Fatalf("unexpected rejection count: got=%v expected=%v", got, before+1)
	}
}
