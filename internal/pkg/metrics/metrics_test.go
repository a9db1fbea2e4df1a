package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordSend(t *testing.T) {
	before := testutil.ToFloat64(EmailsSent.WithLabelValues("brevo", "failed"))
	RecordSend("brevo", false, 120*time.Millisecond)
	after := testutil.ToFloat64(EmailsSent.WithLabelValues("brevo", "failed"))
	assert.Equal(t, before+1, after)
}

func TestRecordImport(t *testing.T) {
	before := testutil.ToFloat64(ContactsImported.WithLabelValues("skipped"))
	RecordImport(1, 4, 0)
	assert.Equal(t, before+4, testutil.ToFloat64(ContactsImported.WithLabelValues("skipped")))
}
