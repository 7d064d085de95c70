package translation

import "context"

// Provider translates a single piece of text between two language tags.
// The source tag may be "auto"; providers that need a concrete tag are
// handed one by the service.
type Provider interface {
	Name() string
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}
