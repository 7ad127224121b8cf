package domain

// Outcome is the terminal result of a conversion request. It has exactly
// two shapes: success with an artifact reference, or failure with a
// human-readable message. No other shape ever crosses the service
// boundary.
type Outcome struct {
	Success      bool
	ArtifactPath string
	ArtifactURL  string
	Error        string
}

// Succeeded builds a success outcome.
func Succeeded(artifactPath, artifactURL string) Outcome {
	return Outcome{
		Success:      true,
		ArtifactPath: artifactPath,
		ArtifactURL:  artifactURL,
	}
}

// Failed builds a failure outcome from an error.
func Failed(err error) Outcome {
	return Outcome{Error: err.Error()}
}

// Failedf builds a failure outcome from a message.
func Failedf(msg string) Outcome {
	return Outcome{Error: msg}
}
