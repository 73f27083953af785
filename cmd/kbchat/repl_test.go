package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	configpkg "github.com/minhyannv/kbchat/pkg/config"
	"github.com/minhyannv/kbchat/pkg/knowledge"
	loggerpkg "github.com/minhyannv/kbchat/pkg/logger"
	"github.com/minhyannv/kbchat/pkg/responder"
)

func newTestBot(t *testing.T, content string) *responder.Responder {
	t.Helper()
	kb, err := knowledge.Parse(strings.NewReader(content))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return responder.New(context.Background(), kb, responder.WithSeed(1))
}

func TestRunREPLStopsOnFarewell(t *testing.T) {
	bot := newTestBot(t, "hello:Hi there!\nweather:Looks sunny.\n")
	in := strings.NewReader("Hello\n\n   \nhow is the WEATHER\nxyz\nok bye\nhello again\n")
	var out bytes.Buffer

	if err := runREPL(bot, replOptions{}, in, &out); err != nil {
		t.Fatalf("runREPL: %v", err)
	}

	want := "Chatbot: Hello! Type 'quit' or 'exit' to end the conversation.\n" +
		"You: Bot: Hi there!\n" +
		"You: You: " +
		"You: Bot: Looks sunny.\n" +
		"You: Bot: " + responder.Fallback + "\n" +
		"You: Bot: " + responder.Farewell + "\n" +
		"Chatbot: Conversation ended.\n"
	if out.String() != want {
		t.Fatalf("unexpected transcript:\n got: %q\nwant: %q", out.String(), want)
	}
}

func TestRunREPLEndOfInput(t *testing.T) {
	bot := newTestBot(t, "hello:Hi there!\n")
	var out bytes.Buffer

	if err := runREPL(bot, replOptions{}, strings.NewReader("hello"), &out); err != nil {
		t.Fatalf("runREPL: %v", err)
	}

	want := "Chatbot: Hello! Type 'quit' or 'exit' to end the conversation.\n" +
		"You: Bot: Hi there!\n" +
		"You: \n" +
		"Chatbot: Conversation ended.\n"
	if out.String() != want {
		t.Fatalf("unexpected transcript:\n got: %q\nwant: %q", out.String(), want)
	}
}

func TestRunREPLRequiresInputs(t *testing.T) {
	if err := runREPL(nil, replOptions{}, strings.NewReader(""), nil); err == nil {
		t.Fatal("expected error for nil responder")
	}
	if err := runREPL(newTestBot(t, ""), replOptions{}, nil, nil); err == nil {
		t.Fatal("expected error for nil input")
	}
}

func TestNewResponderWarnsOnMissingFile(t *testing.T) {
	var logs bytes.Buffer
	cfg := configpkg.Normalize(configpkg.Config{KnowledgePath: filepath.Join(t.TempDir(), "missing.txt")})

	bot := newResponder(context.Background(), cfg, loggerpkg.NewWriterLogger(&logs, false))

	if got := bot.Respond("hello"); got != responder.Fallback {
		t.Fatalf("expected fallback with empty knowledge, got %q", got)
	}
	if !strings.Contains(logs.String(), "WARN") || !strings.Contains(logs.String(), "missing.txt") {
		t.Fatalf("expected a warning naming the file, got %q", logs.String())
	}
}

func TestNewResponderLoadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knowledge.txt")
	if err := os.WriteFile(path, []byte("hi:Hello there\n"), 0o644); err != nil {
		t.Fatalf("write knowledge file: %v", err)
	}
	cfg := configpkg.Normalize(configpkg.Config{KnowledgePath: path, Seed: 3})

	bot := newResponder(context.Background(), cfg, loggerpkg.NopLogger{})
	if got := bot.Respond("HI"); got != "Hello there" {
		t.Fatalf("unexpected reply %q", got)
	}
}
