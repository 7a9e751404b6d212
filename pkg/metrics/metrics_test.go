package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitMetrics(t *testing.T) {
	InitMetrics()
	// 重复调用不会重复注册而panic
	assert.NotPanics(t, InitMetrics)

	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, CartOperationsTotal)
	assert.NotNil(t, OrdersCreatedTotal)
	assert.NotNil(t, CircuitBreakerState)
}

func TestCounter(t *testing.T) {
	InitMetrics()

	before := getCounterValue(t, OrdersCancelledTotal)
	IncCounter(OrdersCancelledTotal)
	IncCounter(OrdersCancelledTotal)
	assert.Equal(t, before+2, getCounterValue(t, OrdersCancelledTotal))
}

func TestCounterVec(t *testing.T) {
	InitMetrics()

	add := map[string]string{"op": "add", "result": Result(nil)}
	failed := map[string]string{"op": "add", "result": Result(errors.New("x"))}
	before := getCounterVecValue(t, CartOperationsTotal, add)

	IncCounterVec(CartOperationsTotal, add)
	IncCounterVec(CartOperationsTotal, add)
	IncCounterVec(CartOperationsTotal, failed)

	assert.Equal(t, before+2, getCounterVecValue(t, CartOperationsTotal, add))
	assert.Equal(t, "failure", failed["result"])
}

func TestGauge(t *testing.T) {
	InitMetrics()

	SetGauge(HTTPRequestsInProgress, 0)
	IncGauge(HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	assert.Equal(t, 2.0, getGaugeValue(t, HTTPRequestsInProgress))

	DecGauge(HTTPRequestsInProgress)
	assert.Equal(t, 1.0, getGaugeValue(t, HTTPRequestsInProgress))

	SetGauge(HTTPRequestsInProgress, 0)
}

func TestGaugeVec(t *testing.T) {
	InitMetrics()

	SetGaugeVec(CircuitBreakerState, map[string]string{"name": "order-events"}, 1)
	SetGaugeVec(CircuitBreakerState, map[string]string{"name": "other"}, 0)

	assert.Equal(t, 1.0, getGaugeVecValue(t, CircuitBreakerState, map[string]string{"name": "order-events"}))
	assert.Equal(t, 0.0, getGaugeVecValue(t, CircuitBreakerState, map[string]string{"name": "other"}))
}

func TestHistogram(t *testing.T) {
	InitMetrics()

	before := getHistogramCount(t, OrderCreationDuration)
	for _, v := range []float64{0.05, 0.1, 0.5} {
		ObserveHistogram(OrderCreationDuration, v)
	}
	assert.Equal(t, before+3, getHistogramCount(t, OrderCreationDuration))
}

func TestHistogramVec(t *testing.T) {
	InitMetrics()

	labels := map[string]string{"method": "POST", "path": "/api/cart/checkout"}
	ObserveHistogramVec(HTTPRequestDuration, labels, 0.05)
	ObserveHistogramVec(HTTPRequestDuration, labels, 0.1)
	ObserveHistogramVec(HTTPRequestDuration, map[string]string{"method": "GET", "path": "/api/cart"}, 0.2)

	assert.EqualValues(t, 2, getHistogramVecCount(t, HTTPRequestDuration, labels))
}

func getCounterValue(t *testing.T, counter prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	require.NoError(t, counter.Write(&metric))
	return metric.Counter.GetValue()
}

func getCounterVecValue(t *testing.T, counterVec *prometheus.CounterVec, labels map[string]string) float64 {
	t.Helper()
	return getCounterValue(t, counterVec.With(labels))
}

func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	t.Helper()
	var metric dto.Metric
	require.NoError(t, gauge.Write(&metric))
	return metric.Gauge.GetValue()
}

func getGaugeVecValue(t *testing.T, gaugeVec *prometheus.GaugeVec, labels map[string]string) float64 {
	t.Helper()
	return getGaugeValue(t, gaugeVec.With(labels))
}

func getHistogramCount(t *testing.T, histogram prometheus.Histogram) uint64 {
	t.Helper()
	var metric dto.Metric
	require.NoError(t, histogram.Write(&metric))
	return metric.Histogram.GetSampleCount()
}

func getHistogramVecCount(t *testing.T, histogramVec *prometheus.HistogramVec, labels map[string]string) uint64 {
	t.Helper()
	histogram, ok := histogramVec.With(labels).(prometheus.Histogram)
	require.True(t, ok)
	return getHistogramCount(t, histogram)
}
