package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Uncanny01/UchihaAi-Hackathon/model"
	"github.com/tmc/langchaingo/llms"
)

// Descriptor names one concrete way to invoke a remote model: a provider, a
// model identifier on that provider, and the client that reaches it.
type Descriptor struct {
	Name   model.Provider
	Model  string
	Client llms.Model
}

// Sequence is an ordered list of descriptors tried first to last. Ordering is
// the entire policy: there is no weighting, no health tracking across calls
// and no reordering based on past outcomes.
type Sequence []Descriptor

// Outcome is the result of executing a failover sequence.
type Outcome struct {
	// Text is the first successful reply, or empty when Exhausted.
	Text string
	// Provider names the descriptor that produced Text.
	Provider model.Provider
	// PrimaryFailed records whether the first descriptor in the sequence
	// failed, regardless of whether a later one succeeded.
	PrimaryFailed bool
	// Exhausted is set when every descriptor failed.
	Exhausted bool
}

// Notifier receives a best-effort signal each time a descriptor fails and the
// next one is about to be tried. It is observability only and must not block
// or influence the sequence.
type Notifier interface {
	ProviderFailed(ctx context.Context, d Descriptor, err error)
}

type slogNotifier struct{}

func (slogNotifier) ProviderFailed(ctx context.Context, d Descriptor, err error) {
	slog.Warn("provider call failed, trying fallback",
		"provider", string(d.Name),
		"model", d.Model,
		"error", err,
	)
}

var errEmptyResponse = errors.New("provider returned no choices")

// FailoverExecutor tries provider call descriptors strictly in order and
// returns the first successful output. Failures are swallowed and converted
// into a move to the next descriptor; no error detail crosses this boundary.
type FailoverExecutor struct {
	notifier Notifier
}

func NewFailoverExecutor() *FailoverExecutor {
	return &FailoverExecutor{notifier: slogNotifier{}}
}

// NewFailoverExecutorWithNotifier allows observing fallbacks, e.g. in tests.
func NewFailoverExecutorWithNotifier(n Notifier) *FailoverExecutor {
	return &FailoverExecutor{notifier: n}
}

// Execute sends the same messages to each descriptor in turn, appending the
// descriptor's model identifier to the call options. The first success wins
// and later descriptors are never invoked. Attempts are strictly sequential.
func (e *FailoverExecutor) Execute(ctx context.Context, seq Sequence, messages []llms.MessageContent, opts ...llms.CallOption) Outcome {
	var out Outcome

	for i, d := range seq {
		callOpts := make([]llms.CallOption, 0, len(opts)+1)
		callOpts = append(callOpts, opts...)
		callOpts = append(callOpts, llms.WithModel(d.Model))

		resp, err := d.Client.GenerateContent(ctx, messages, callOpts...)
		if err == nil && (resp == nil || len(resp.Choices) == 0) {
			err = errEmptyResponse
		}
		if err != nil {
			if i == 0 {
				out.PrimaryFailed = true
			}
			if e.notifier != nil {
				e.notifier.ProviderFailed(ctx, d, err)
			}
			continue
		}

		out.Text = resp.Choices[0].Content
		out.Provider = d.Name
		return out
	}

	out.Exhausted = true
	return out
}
