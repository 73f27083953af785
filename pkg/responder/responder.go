// Package responder turns user utterances into replies using a knowledge base.
package responder

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/minhyannv/kbchat/pkg/knowledge"
	loggerpkg "github.com/minhyannv/kbchat/pkg/logger"
)

const (
	// Farewell is returned for any utterance containing a quit word.
	Farewell = "Goodbye!"
	// Fallback is returned when no keyword matches.
	Fallback = "I'm not sure I understand. Can you rephrase that?"
)

var quitWords = []string{"quit", "exit", "bye"}

// FallbackReplier produces a reply when no knowledge entry matches.
type FallbackReplier interface {
	Reply(ctx context.Context, utterance string) (string, error)
}

// Option configures a Responder.
type Option func(*Responder)

// WithSeed makes response selection deterministic.
func WithSeed(seed uint64) Option {
	return func(r *Responder) {
		r.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithRand injects the random source used to pick responses.
func WithRand(rng *rand.Rand) Option {
	return func(r *Responder) {
		if rng != nil {
			r.rng = rng
		}
	}
}

// WithFallback consults f when no entry matches.
func WithFallback(f FallbackReplier) Option {
	return func(r *Responder) {
		r.fallback = f
	}
}

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) Option {
	return func(r *Responder) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithVerbose enables debug logging of match decisions.
func WithVerbose(v bool) Option {
	return func(r *Responder) {
		r.verbose = v
	}
}

// Responder answers utterances from a read-only knowledge base.
// It is not safe for concurrent use because of its random source.
type Responder struct {
	kb       *knowledge.Base
	rng      *rand.Rand
	fallback FallbackReplier

	ctx     context.Context
	logger  loggerpkg.Logger
	verbose bool
}

// New builds a Responder over kb. The random source is seeded from the
// wall clock unless WithSeed or WithRand is given.
func New(ctx context.Context, kb *knowledge.Base, opts ...Option) *Responder {
	if ctx == nil {
		ctx = context.Background()
	}
	if kb == nil {
		kb = knowledge.Empty()
	}
	now := uint64(time.Now().UnixNano())
	r := &Responder{
		kb:     kb,
		rng:    rand.New(rand.NewPCG(now, now>>1)),
		ctx:    ctx,
		logger: loggerpkg.NopLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// IsFarewell reports whether utterance contains quit, exit or bye in any case.
func IsFarewell(utterance string) bool {
	return containsQuitWord(strings.ToLower(utterance))
}

func containsQuitWord(lowered string) bool {
	for _, w := range quitWords {
		if strings.Contains(lowered, w) {
			return true
		}
	}
	return false
}

// Respond returns the reply for utterance. Quit words win over keyword
// entries, and the first matching entry in load order wins over later ones.
func (r *Responder) Respond(utterance string) string {
	lowered := strings.ToLower(utterance)
	if containsQuitWord(lowered) {
		return Farewell
	}

	if entry, ok := r.kb.Match(lowered); ok {
		idx := r.rng.IntN(len(entry.Responses))
		loggerpkg.Debug(r.verbose, r.logger, "keyword matched", loggerpkg.Fields{
			"keyword": entry.Keyword,
			"choice":  idx,
			"of":      len(entry.Responses),
		})
		return entry.Responses[idx]
	}

	return r.fallbackReply(utterance)
}

func (r *Responder) fallbackReply(utterance string) string {
	if r.fallback == nil {
		return Fallback
	}

	reply, err := r.fallback.Reply(r.ctx, utterance)
	if err != nil {
		loggerpkg.Warn(r.logger, "fallback reply failed", loggerpkg.Fields{"error": err.Error()})
		return Fallback
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		loggerpkg.Warn(r.logger, "fallback reply was empty", nil)
		return Fallback
	}
	return reply
}
