package eval

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrUnavailable = errors.New("eval provider not configured")

// Image is the raw submission handed to the model alongside the rubric
// prompt.
type Image struct {
	MIMEType string
	Data     []byte
}

type Provider interface {
	Name() string
	Evaluate(ctx context.Context, model, prompt string, image Image) (string, error)
}

type ProviderFactory func(args interface{}) (Provider, error)

var registry = map[string]ProviderFactory{}

func Register(name string, factory ProviderFactory) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || factory == nil {
		return
	}
	registry[key] = factory
}

func NewProvider(name string, args interface{}) (Provider, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, fmt.Errorf("eval.provider is required")
	}
	factory := registry[key]
	if factory == nil {
		return nil, fmt.Errorf("unsupported eval provider: %s", name)
	}
	return factory(args)
}

// Engine binds a provider to a model name and an optional per-call timeout.
// A single round trip, no retries; the provider's error is surfaced verbatim.
type Engine struct {
	provider Provider
	model    string
	timeout  time.Duration
}

func NewEngine(provider Provider, model string, timeout time.Duration) *Engine {
	return &Engine{provider: provider, model: model, timeout: timeout}
}

func (e *Engine) Evaluate(ctx context.Context, prompt string, image Image) (string, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	return e.provider.Evaluate(ctx, e.model, prompt, image)
}

func decodeConfig(args interface{}, dst interface{}) error {
	if args == nil {
		return fmt.Errorf("eval provider config is required")
	}
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode eval provider config: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode eval provider config: %w", err)
	}
	return nil
}
