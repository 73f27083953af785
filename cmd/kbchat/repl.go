package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	loggerpkg "github.com/minhyannv/kbchat/pkg/logger"
	"github.com/minhyannv/kbchat/pkg/responder"
)

const botName = "Chatbot"

// replOptions configures REPL behavior.
type replOptions struct {
	Verbose bool
	Logger  loggerpkg.Logger
}

// runREPL reads utterances from in until end of input or a farewell.
func runREPL(bot *responder.Responder, opts replOptions, in io.Reader, out io.Writer) error {
	if bot == nil {
		return fmt.Errorf("responder is required")
	}
	if in == nil {
		return fmt.Errorf("input reader is required")
	}
	if out == nil {
		out = io.Discard
	}

	loggerpkg.Debug(opts.Verbose, opts.Logger, "repl start", nil)

	reader := bufio.NewReader(in)
	printWelcome(out)

	for {
		_, _ = fmt.Fprint(out, "You: ")
		line, err := reader.ReadString('\n')
		if line == "" && err != nil {
			_, _ = fmt.Fprintln(out)
			if err != io.EOF {
				loggerpkg.Warn(opts.Logger, "read input", loggerpkg.Fields{"error": err.Error()})
			}
			break
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		_, _ = fmt.Fprintf(out, "Bot: %s\n", bot.Respond(input))
		if responder.IsFarewell(input) {
			break
		}
	}

	_, _ = fmt.Fprintf(out, "%s: Conversation ended.\n", botName)
	return nil
}

func printWelcome(out io.Writer) {
	_, _ = fmt.Fprintf(out, "%s: Hello! Type 'quit' or 'exit' to end the conversation.\n", botName)
}
