package monitor

import "github.com/prometheus/client_golang/prometheus"

type instrumented struct {
	Client
	reports *prometheus.CounterVec
}

// Instrumented wraps c so every capture increments reports, labelled by
// kind. Breadcrumbs and contexts pass through uncounted.
func Instrumented(c Client, reports *prometheus.CounterVec) Client {
	return &instrumented{Client: c, reports: reports}
}

func (i *instrumented) CaptureException(err error, opts Options) string {
	i.reports.WithLabelValues("exception").Inc()
	return i.Client.CaptureException(err, opts)
}

func (i *instrumented) CaptureMessage(text string, opts Options) string {
	i.reports.WithLabelValues("message").Inc()
	return i.Client.CaptureMessage(text, opts)
}
