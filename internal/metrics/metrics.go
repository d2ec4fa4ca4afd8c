// Package metrics holds the Prometheus collectors of the field pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Reasons a content save is rejected.
const (
	ReasonValidation = "validation"
	ReasonBeforeSave = "before_save"
)

var (
	// SaveRejected counts content saves rejected by a field type.
	SaveRejected = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "fieldcms_field_save_rejected_total",
			Help: "Number of content saves rejected by a field, differentiated by handler and reason.",
		},
		[]string{"handler", "reason"},
	)

	// ContentHidden counts entities dropped from finds by a field type.
	ContentHidden = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "fieldcms_content_hidden_total",
			Help: "Number of content entities hidden from a find, differentiated by handler.",
		},
		[]string{"handler"},
	)

	// ContentSaved counts stored content entities.
	ContentSaved = promauto.NewCounter( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "fieldcms_content_saved_total",
			Help: "Number of content entities saved.",
		},
	)
)
