// Package resolve turns raw natural-language text into a canonical
// operation. Strategies run in a configured priority order, first match
// wins, and no strategy output is ever merged with another. The credential
// gate and the publish-status policy apply uniformly regardless of which
// strategy produced the result.
package resolve

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"wpagent/internal/intent"
	"wpagent/internal/op"
	"wpagent/internal/prompt"
	"wpagent/internal/provider"
	"wpagent/internal/wp"
)

// Strategy names accepted in the resolution order.
const (
	StrategyLLM        = "llm"
	StrategyClassifier = "classifier"
	StrategyRegex      = "regex"
)

// DefaultConfidence is the floor a classifier result must clear before it
// is trusted as the resolved operation.
const DefaultConfidence = 0.7

// DefaultStrategies is the resolution order when none is configured: the
// generative model first, the local classifier as fallback.
var DefaultStrategies = []string{StrategyLLM, StrategyClassifier}

// extractionTemperature keeps structured extraction near-deterministic.
const extractionTemperature = 0.1

// echoPrefix is the terminal response for the connectivity shortcut.
const echoPrefix = "Test réussi! Echo: "

// Normalize checks for the literal connectivity commands: the exact word
// "test" or "echo" (case-insensitive), alone or followed by more words.
// A match short-circuits the whole pipeline: no credentials are required
// and no strategy runs. Conjugated forms ("teste", "testez") are real
// requests and must reach the strategies.
func Normalize(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)
	if lower == "test" || lower == "echo" ||
		strings.HasPrefix(lower, "test ") || strings.HasPrefix(lower, "echo ") {
		return echoPrefix + trimmed, true
	}
	return "", false
}

// Options configures a Resolver.
type Options struct {
	// Provider is the generative backend, nil when none is configured.
	Provider provider.Provider
	// Model overrides the provider default model when non-empty.
	Model string
	// Classifier is the local statistical classifier, nil to disable.
	Classifier *intent.Classifier
	// Strategies is the resolution order; DefaultStrategies when empty.
	Strategies []string
	// Confidence is the classifier floor; DefaultConfidence when zero.
	Confidence float64
	Logger     *zap.Logger
}

// Resolver is the intent-resolution orchestrator. Construct once at
// startup and share across requests; it holds no per-request state.
type Resolver struct {
	prov       provider.Provider
	model      string
	classifier *intent.Classifier
	strategies []string
	confidence float64
	log        *zap.Logger
}

// New builds a resolver from options, filling defaults.
func New(opts Options) *Resolver {
	r := &Resolver{
		prov:       opts.Provider,
		model:      opts.Model,
		classifier: opts.Classifier,
		strategies: opts.Strategies,
		confidence: opts.Confidence,
		log:        opts.Logger,
	}
	if len(r.strategies) == 0 {
		r.strategies = DefaultStrategies
	}
	if r.confidence == 0 {
		r.confidence = DefaultConfidence
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}
	return r
}

// Resolve runs the pipeline for one request: credential gate, then each
// strategy in order until one produces an operation. A strategy failure
// falls through to the next; when every strategy has failed or abstained
// the caller gets a resolution error echoing the input, so the user can
// rephrase.
func (r *Resolver) Resolve(ctx context.Context, text string, site wp.Site) (op.Operation, error) {
	if err := site.Validate(); err != nil {
		return op.Operation{}, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return op.Operation{}, op.Resolutionf("empty request")
	}

	for _, strategy := range r.strategies {
		switch strategy {
		case StrategyLLM:
			if r.prov == nil {
				continue
			}
			o, err := r.resolveLLM(ctx, text)
			if err != nil {
				r.log.Warn("generative extraction failed",
					zap.String("provider", r.prov.Name()), zap.Error(err))
				continue
			}
			return o, nil
		case StrategyClassifier:
			if r.classifier == nil {
				continue
			}
			o, ok := r.resolveClassifier(text)
			if !ok {
				continue
			}
			return o, nil
		case StrategyRegex:
			rest, ok := ExtractSimple(text)
			if !ok {
				continue
			}
			rest.ApplyPublishPolicy()
			return op.FromRest(rest), nil
		}
	}

	return op.Operation{}, op.Resolutionf("could not understand %q", text)
}

func (r *Resolver) resolveLLM(ctx context.Context, text string) (op.Operation, error) {
	resp, err := r.prov.Chat(ctx, provider.ChatRequest{
		Messages: []provider.Message{
			{Role: "system", Content: prompt.ExtractionSystemPrompt()},
			{Role: "user", Content: text},
		},
		Model:       r.model,
		Temperature: extractionTemperature,
		ExpectJSON:  true,
	})
	if err != nil {
		return op.Operation{}, err
	}

	rest, err := prompt.ParseOperation(resp.Text)
	if err != nil {
		return op.Operation{}, err
	}
	rest.ApplyPublishPolicy()
	return op.FromRest(rest), nil
}

func (r *Resolver) resolveClassifier(text string) (op.Operation, bool) {
	res := r.classifier.Classify(text)
	if res.Resource == "" || res.Action == "" || res.Score < r.confidence {
		r.log.Debug("classifier below confidence",
			zap.String("label", res.Label), zap.Float64("score", res.Score))
		return op.Operation{}, false
	}

	i := op.Intent{
		Resource: res.Resource,
		Action:   res.Action,
		Entities: res.Entities,
	}
	i.ApplyPublishPolicy()
	return op.FromIntent(i), true
}

// customEndpoints are site-tooling endpoints that have no WordPress REST
// counterpart. They are acknowledged at the gateway and never forwarded.
var customEndpoints = map[string]string{
	"seo_analysis":  "SEO analysis request received",
	"analytics":     "analytics request received",
	"custom_report": "custom report request received",
}

// Intercept handles custom non-CMS endpoints before dispatch. When the
// operation targets one, it returns the canned acknowledgement and true;
// the caller must not forward the operation to the WordPress client.
func Intercept(o op.Operation) (json.RawMessage, bool) {
	if o.Rest == nil {
		return nil, false
	}
	base := o.Rest.Endpoint
	if i := strings.IndexByte(base, '/'); i >= 0 {
		base = base[:i]
	}
	msg, ok := customEndpoints[base]
	if !ok {
		return nil, false
	}
	ack, _ := json.Marshal(map[string]any{
		"endpoint": o.Rest.Endpoint,
		"status":   "acknowledged",
		"message":  msg,
	})
	return ack, true
}
