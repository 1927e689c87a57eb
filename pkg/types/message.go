package types

// MessageSource records whether text came from the model or from the
// deterministic fallback templates.
type MessageSource string

const (
	SourceModel    MessageSource = "model"
	SourceFallback MessageSource = "fallback"
)

// GeneratedMessage is the chat text produced for one classified task.
// It only lives for the duration of a single run.
type GeneratedMessage struct {
	TaskID string
	Bucket Bucket
	Text   string
	Source MessageSource
}

// FromFallback reports whether the generator had to fall back to a
// template instead of model output.
func (m GeneratedMessage) FromFallback() bool {
	return m.Source == SourceFallback
}
