package main

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	configpkg "github.com/minhyannv/kbchat/pkg/config"
)

// parseCLIConfig loads .env, the environment, and the optional positional
// knowledge file path into runtime config. Extra arguments are reported but
// do not stop the program.
func parseCLIConfig(args []string, getenv func(string) string) (configpkg.Config, error) {
	_ = godotenv.Load()

	cfg, err := configpkg.FromEnv(configpkg.DefaultConfig(), getenv)
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		cfg.KnowledgePath = args[0]
	}
	if len(args) > 1 {
		extra := fmt.Errorf("ignoring extra arguments: %s", strings.Join(args[1:], " "))
		if err == nil {
			err = extra
		} else {
			err = fmt.Errorf("%w; %w", err, extra)
		}
	}
	return configpkg.Normalize(cfg), err
}
