package mapcmd

type (
	// Sent when workspace initialization has completed.
	EventInit struct {
		Err error
	}

	// Sent when the source schema has been set, or when doing so failed.
	EventSourceSet struct {
		Err      error
		Location string
		Paths    int
	}

	// Sent when a binding has been changed.
	EventBound struct {
		Err   error
		Field string
	}

	// Sent when a backend endpoint call has completed.
	EventCalled struct {
		Err      error
		Endpoint string
		Fallback bool
	}

	// Sent to update the total generated artifact count.
	EventSetArtifactTotal int

	// Sent when an artifact write has started.
	EventWritingArtifact string

	// Sent when an artifact has been written, or failed to write.
	EventWroteArtifact struct {
		Err  error
		Name string
	}

	// Sent when all work has completed.
	EventDone struct {
		Err error
	}
)
