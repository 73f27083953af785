// Package main provides the interactive keyword chatbot.
package main

import (
	"context"
	"fmt"
	"os"

	configpkg "github.com/minhyannv/kbchat/pkg/config"
	"github.com/minhyannv/kbchat/pkg/knowledge"
	"github.com/minhyannv/kbchat/pkg/llm"
	loggerpkg "github.com/minhyannv/kbchat/pkg/logger"
	"github.com/minhyannv/kbchat/pkg/responder"
)

// main is the program entry point. It always exits with status 0.
func main() {
	config, err := parseCLIConfig(os.Args[1:], os.Getenv)
	appLogger := loggerpkg.NewWriterLogger(os.Stderr, config.Verbose)
	if err != nil {
		loggerpkg.Warn(appLogger, "configuration", loggerpkg.Fields{"error": err.Error()})
	}

	bot := newResponder(context.Background(), config, appLogger)

	if err := runREPL(bot, replOptions{
		Verbose: config.Verbose,
		Logger:  appLogger,
	}, os.Stdin, os.Stdout); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

// newResponder loads the knowledge base and wires the optional fallback model.
func newResponder(ctx context.Context, cfg configpkg.Config, logger loggerpkg.Logger) *responder.Responder {
	kb := knowledge.LoadOrEmpty(cfg.KnowledgePath, logger, knowledge.WithVerbose(cfg.Verbose))
	loggerpkg.Debug(cfg.Verbose, logger, "knowledge ready", loggerpkg.Fields{
		"path":    cfg.KnowledgePath,
		"entries": kb.Len(),
	})

	opts := []responder.Option{
		responder.WithLogger(logger),
		responder.WithVerbose(cfg.Verbose),
	}
	if cfg.Seed != 0 {
		opts = append(opts, responder.WithSeed(cfg.Seed))
	}
	if cfg.FallbackEnabled() {
		client, err := llm.New(cfg)
		if err != nil {
			loggerpkg.Warn(logger, "fallback model disabled", loggerpkg.Fields{"error": err.Error()})
		} else {
			loggerpkg.Debug(cfg.Verbose, logger, "fallback model enabled", loggerpkg.Fields{
				"model":    cfg.Model,
				"base_url": cfg.BaseURL,
			})
			opts = append(opts, responder.WithFallback(client))
		}
	}
	return responder.New(ctx, kb, opts...)
}
