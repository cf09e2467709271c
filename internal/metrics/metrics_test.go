package metrics

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	m.RecordCalculation("Normal weight")
	m.RecordCalculation("Normal weight")
	m.RecordCalculation("Obesity")
	m.RecordInvalidInput()
	m.RecordSave(nil)
	m.RecordSave(errors.New("boom"))
	m.SetRecordsStored(7)
	m.ObserveRPC("/bmi.v1.BMIService/Calculate", "ok", 3*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.calculationsTotal.WithLabelValues("Normal weight")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.calculationsTotal.WithLabelValues("Obesity")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.invalidInputsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.recordsSavedTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.recordsSavedTotal.WithLabelValues("error")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.recordsStored))
}

func TestHandler(t *testing.T) {
	m, err := New()
	require.NoError(t, err)
	m.RecordInvalidInput()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "bmi_invalid_inputs_total 1"), body)
}
