package metrics

// Label values shared with the packages that record metrics.
var (
	Operations   = []string{"import", "replace"}
	Kinds        = []string{"video", "audio", "image"}
	Artifacts    = []string{"probe", "thumbnail", "audio", "waveform"}
	Capabilities = []string{"probe", "extract_frame", "extract_audio", "render_waveform"}
	RetryOps     = []string{"stat", "open"}
	Volumes      = []string{"projects", "unknown"}
)

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	for _, op := range Operations {
		for _, kind := range Kinds {
			ImportDuration.WithLabelValues(op, kind)
			for _, status := range []string{"success", "error"} {
				ImportsTotal.WithLabelValues(op, kind, status)
			}
		}
	}

	for _, artifact := range Artifacts {
		DerivationDuration.WithLabelValues(artifact)
		for _, status := range []string{"success", "failed", "skipped"} {
			DerivationsTotal.WithLabelValues(artifact, status)
		}
	}

	for _, c := range Capabilities {
		EngineInvocationDuration.WithLabelValues(c)
		EngineInvocationsTotal.WithLabelValues(c, "success")
		EngineInvocationsTotal.WithLabelValues(c, "error")
	}

	for _, op := range RetryOps {
		for _, vol := range Volumes {
			FilesystemRetryAttempts.WithLabelValues(op, vol)
			FilesystemRetrySuccess.WithLabelValues(op, vol)
			FilesystemRetryFailures.WithLabelValues(op, vol)
			FilesystemStaleErrors.WithLabelValues(op, vol)
			FilesystemRetryDuration.WithLabelValues(op, vol)
		}
	}
}
