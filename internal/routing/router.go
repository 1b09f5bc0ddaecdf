package routing

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hackterm/chat-backend/internal"
	"github.com/hackterm/chat-backend/internal/config"
)

// SearchGateway fetches web and optionally image results for a query. A nil
// result with an error means the primary web call failed; the router treats
// that as "no data available", never as a request failure.
type SearchGateway interface {
	Fetch(ctx context.Context, query string, includeImages bool) (*internal.SearchResult, error)
}

// Generator produces the assistant reply, optionally grounded on search
// results folded into the prompt.
type Generator interface {
	Model() string
	Reply(ctx context.Context, history []internal.Message, message string, search *internal.SearchResult) (string, error)
}

// Router runs one message through the pipeline: policy filter, intent
// classification, then exactly one of three terminal paths — image fast
// path, search-augmented generation, or pure generation. It holds no state
// across requests.
type Router struct {
	filter     *PolicyFilter
	classifier *Classifier
	search     SearchGateway
	generator  Generator
	persona    config.PersonaConfig
	logger     *zap.Logger
}

// NewRouter wires the pipeline. search may be nil when search credentials
// are absent; every request then degrades to pure generation.
func NewRouter(filter *PolicyFilter, classifier *Classifier, search SearchGateway, generator Generator, persona config.PersonaConfig, logger *zap.Logger) *Router {
	return &Router{
		filter:     filter,
		classifier: classifier,
		search:     search,
		generator:  generator,
		persona:    persona,
		logger:     logger,
	}
}

// Handle processes a single message with its history window. The only error
// it returns is a generation failure, which is fatal for the request; every
// search failure is absorbed here.
func (r *Router) Handle(ctx context.Context, message string, history []internal.Message) (*internal.ChatResponse, error) {
	// Policy check runs before any network call.
	if r.filter.Blocked(message) {
		r.logger.Warn("blocked message by content policy")
		return &internal.ChatResponse{
			Response: fmt.Sprintf("%s ⚠️ %s", r.persona.Prefix, r.persona.PolicyMessage),
		}, nil
	}

	d := r.classifier.Classify(message, history)
	r.logger.Debug("classified message",
		zap.Bool("needs_search", d.NeedsSearch),
		zap.Bool("needs_images", d.NeedsImages),
		zap.Bool("image_only", d.ImageOnly))

	if d.NeedsImages && r.search != nil {
		results, err := r.search.Fetch(ctx, d.Topic, true)
		if err != nil {
			r.logger.Warn("image search unavailable", zap.Error(err))
		}
		if d.ImageOnly || !d.NeedsSearch {
			if results != nil && len(results.Images) > 0 {
				return assemble(fmt.Sprintf("%s 🖼️ Here are high-quality images about %q:", r.persona.Prefix, d.Topic), &internal.SearchResult{
					Web:    []internal.WebResult{},
					Images: results.Images,
				}), nil
			}
			if d.ImageOnly {
				return &internal.ChatResponse{
					Response: fmt.Sprintf("%s %s", r.persona.Prefix, r.persona.NoImagesMessage),
				}, nil
			}
		}
	}

	// Info or mixed requests fetch for the raw message; the topic-resolved
	// fetch above only serves the image fast path.
	var results *internal.SearchResult
	if (d.NeedsSearch || d.NeedsImages) && r.search != nil {
		fetched, err := r.search.Fetch(ctx, message, d.NeedsImages)
		if err != nil {
			r.logger.Warn("search unavailable, continuing without augmentation", zap.Error(err))
		} else {
			results = fetched
		}
	}

	reply, err := r.generator.Reply(ctx, history, message, results)
	if err != nil {
		return nil, err
	}
	return assemble(reply, results), nil
}

// FailureResponse is the user-visible payload for a generation failure.
func (r *Router) FailureResponse() *internal.ChatResponse {
	return &internal.ChatResponse{
		Response: fmt.Sprintf("%s %s", r.persona.Prefix, r.persona.FailureMessage),
	}
}
