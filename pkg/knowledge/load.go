package knowledge

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	loggerpkg "github.com/minhyannv/kbchat/pkg/logger"
)

// ErrNoKnowledgeFile is wrapped by Load when the file cannot be opened or decoded.
var ErrNoKnowledgeFile = errors.New("could not open knowledge file")

// LoadOption configures Load, Parse and FromEntries.
type LoadOption func(*loadOptions)

type loadOptions struct {
	limits  Limits
	logger  loggerpkg.Logger
	verbose bool
}

// WithLimits overrides DefaultLimits.
func WithLimits(l Limits) LoadOption {
	return func(o *loadOptions) {
		o.limits = l
	}
}

// WithLogger injects a logger for skipped-line and summary messages.
func WithLogger(l loggerpkg.Logger) LoadOption {
	return func(o *loadOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithVerbose enables debug logging of skipped lines.
func WithVerbose(v bool) LoadOption {
	return func(o *loadOptions) {
		o.verbose = v
	}
}

// Load reads a knowledge file. Files ending in .yaml or .yml are decoded as
// YAML, everything else uses the line format "keyword:resp1;resp2".
//
// On failure Load still returns a usable (possibly empty) Base alongside the error.
func Load(path string, opts ...LoadOption) (*Base, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return loadYAML(path, opts)
	}

	f, err := os.Open(path)
	if err != nil {
		return Empty(), fmt.Errorf("%w %q: %w", ErrNoKnowledgeFile, path, err)
	}
	defer f.Close()

	return Parse(f, opts...)
}

// LoadOrEmpty is Load with the error downgraded to a warning.
func LoadOrEmpty(path string, logger loggerpkg.Logger, opts ...LoadOption) *Base {
	opts = append([]LoadOption{WithLogger(logger)}, opts...)
	kb, err := Load(path, opts...)
	if err != nil {
		loggerpkg.Warn(logger, "knowledge file not loaded, continuing", loggerpkg.Fields{
			"path":    path,
			"error":   err.Error(),
			"entries": kb.Len(),
		})
	}
	return kb
}

// Parse reads the line format from r. Blank lines, lines starting with '#',
// and malformed lines are skipped.
func Parse(r io.Reader, opts ...LoadOption) (*Base, error) {
	p := newParser(opts)
	br := bufio.NewReader(r)

	for lineNo := 1; !p.full(); lineNo++ {
		line, err := br.ReadString('\n')
		if line != "" {
			p.parseLine(lineNo, line)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return p.base(), fmt.Errorf("read knowledge file: %w", err)
		}
	}
	return p.base(), nil
}

type parser struct {
	opts    loadOptions
	entries []Entry
}

func newParser(opts []LoadOption) *parser {
	o := loadOptions{limits: DefaultLimits(), logger: loggerpkg.NopLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return &parser{opts: o}
}

func (p *parser) full() bool {
	limit := p.opts.limits.MaxEntries
	return limit > 0 && len(p.entries) >= limit
}

func (p *parser) base() *Base {
	loggerpkg.Debug(p.opts.verbose, p.opts.logger, "knowledge loaded", loggerpkg.Fields{
		"entries": len(p.entries),
	})
	return &Base{entries: p.entries}
}

func (p *parser) skip(lineNo int, reason string) {
	loggerpkg.Debug(p.opts.verbose, p.opts.logger, "knowledge line skipped", loggerpkg.Fields{
		"line":   lineNo,
		"reason": reason,
	})
}

func (p *parser) parseLine(lineNo int, raw string) {
	line := strings.TrimRight(raw, "\r\n")
	line = strings.TrimSpace(truncate(line, p.opts.limits.MaxLineLen))
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}

	keyword, list, ok := strings.Cut(line, ":")
	if !ok {
		p.skip(lineNo, "missing ':' separator")
		return
	}
	p.add(lineNo, keyword, strings.Split(list, ";"))
}

// add normalises one keyword/response set and appends it when valid.
func (p *parser) add(lineNo int, keyword string, responses []string) {
	lim := p.opts.limits

	keyword = strings.TrimSpace(keyword)
	keyword = strings.ToLower(strings.TrimSpace(truncate(keyword, lim.MaxKeywordLen)))
	if keyword == "" {
		p.skip(lineNo, "empty keyword")
		return
	}

	kept := make([]string, 0, len(responses))
	for _, r := range responses {
		if lim.MaxResponses > 0 && len(kept) >= lim.MaxResponses {
			break
		}
		r = strings.TrimSpace(r)
		r = strings.TrimSpace(truncate(r, lim.MaxResponseLen))
		if r == "" {
			continue
		}
		kept = append(kept, r)
	}
	if len(kept) == 0 {
		p.skip(lineNo, "empty response list")
		return
	}

	p.entries = append(p.entries, Entry{Keyword: keyword, Responses: kept})
}
