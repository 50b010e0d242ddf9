package httptools

import (
	"errors"

	"braces.dev/errtrace"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ghettovoice/urlparser/uri"
)

const resultOK = "ok"

type metrics struct {
	parseTotal *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		parseTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "urlparser_parse_total",
				Help: "Total number of parsed URLs by result",
			},
			[]string{"result"},
		),
	}
	if err := reg.Register(m.parseTotal); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, errtrace.Wrap(err)
		}
		cv, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, errtrace.Wrap(err)
		}
		m.parseTotal = cv
	}
	return m, nil
}

func (m *metrics) observe(err error) {
	if m == nil {
		return
	}
	result := resultOK
	if err != nil {
		result = "unknown"
		if kind, ok := uri.ErrorKind(err); ok {
			result = string(kind)
		}
	}
	m.parseTotal.WithLabelValues(result).Inc()
}
