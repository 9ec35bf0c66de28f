package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bigimanishi-bit/tarot-app-sub000/internal/domain"
	"github.com/bigimanishi-bit/tarot-app-sub000/internal/ports"
	"github.com/bigimanishi-bit/tarot-app-sub000/internal/prompts"
)

// Day boundaries for the cards-of-the-day seed are computed in JST regardless
// of where the process runs.
var referenceZone = time.FixedZone("JST", 9*60*60)

// Mode selects the generation contract.
type Mode string

const (
	ModeNormal     Mode = "normal"
	ModeDictionary Mode = "dictionary"
)

// ParseMode maps raw input to a Mode; anything unrecognized is normal.
func ParseMode(raw string) Mode {
	if raw == string(ModeDictionary) {
		return ModeDictionary
	}
	return ModeNormal
}

// DrawResult is one reproducible cards-of-the-day draw.
type DrawResult struct {
	Cards   []string
	Seed    string
	DrawnAt time.Time
}

// ReadingRequest is the application-level generation input.
type ReadingRequest struct {
	SpreadText string
	Mode       Mode
	Theme      string
	Context    string
	// StrictFormat enables the single bounded format-compliance retry.
	StrictFormat bool
}

// ReadingResult is the application-level generation output.
type ReadingResult struct {
	Text       string
	SpreadKind domain.SpreadKind
	Model      string
	LatencyMS  int64
}

// ReadingService orchestrates spread normalization, prompt assembly, the
// completion call and mode-dependent sanitization.
type ReadingService struct {
	completer ports.Completer
	prompts   prompts.Set
	model     string
	now       func() time.Time
}

func NewReadingService(c ports.Completer, ps prompts.Set, model string, now func() time.Time) *ReadingService {
	if now == nil {
		now = time.Now
	}
	return &ReadingService{
		completer: c,
		prompts:   ps,
		model:     model,
		now:       now,
	}
}

// CardsOfDay draws the reproducible daily card set for one identity. The
// seed is day|identity|purpose with the day taken in the reference timezone,
// so the set stays fixed until the JST day rolls over.
func (s *ReadingService) CardsOfDay(identity, purpose string, n int) (DrawResult, error) {
	ts := s.now().In(referenceZone)
	seed := fmt.Sprintf("%s|%s|%s", ts.Format("2006-01-02"), identity, purpose)

	cards, err := domain.Draw(seed, n)
	if err != nil {
		return DrawResult{}, fmt.Errorf("draw: %w", err)
	}
	return DrawResult{Cards: cards, Seed: seed, DrawnAt: ts}, nil
}

// Normalize parses raw card/spread text into a normalized spread.
func (s *ReadingService) Normalize(raw string) domain.NormalizedSpread {
	return domain.Normalize(raw)
}

// Reading generates one reading. It sends a single request; when
// StrictFormat is set and the first response fails the structural check it
// issues exactly one corrective follow-up and prefers the corrected
// non-empty response. Normal-mode output is sanitized before returning.
func (s *ReadingService) Reading(ctx context.Context, req ReadingRequest) (ReadingResult, error) {
	spread := domain.Normalize(req.SpreadText)

	msgs := []ports.Message{
		{Role: ports.RoleSystem, Content: s.systemPrompt(req.Mode)},
		{Role: ports.RoleUser, Content: buildUserPrompt(req.Theme, spread.Rendered, req.Context)},
	}

	start := s.now()
	text, err := s.completer.Complete(ctx, msgs)
	if err != nil {
		return ReadingResult{}, fmt.Errorf("complete: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ReadingResult{}, domain.ErrEmptyCompletion
	}

	if req.StrictFormat && !hasExpectedShape(text) {
		msgs = append(msgs,
			ports.Message{Role: ports.RoleAssistant, Content: text},
			ports.Message{Role: ports.RoleUser, Content: s.prompts.FormatRetry},
		)
		// One retry at most; on failure the first response stands.
		if corrected, err := s.completer.Complete(ctx, msgs); err == nil {
			if corrected = strings.TrimSpace(corrected); corrected != "" {
				text = corrected
			}
		}
	}

	if req.Mode != ModeDictionary {
		text = domain.SanitizeCardNames(text)
	}

	return ReadingResult{
		Text:       text,
		SpreadKind: spread.Kind,
		Model:      s.model,
		LatencyMS:  s.now().Sub(start).Milliseconds(),
	}, nil
}

func (s *ReadingService) systemPrompt(mode Mode) string {
	block := s.prompts.Normal
	if mode == ModeDictionary {
		block = s.prompts.Dictionary
	}
	return strings.TrimSpace(s.prompts.Base) + "\n\n" + strings.TrimSpace(block)
}

func buildUserPrompt(theme, spread, aux string) string {
	var b strings.Builder
	if theme != "" {
		fmt.Fprintf(&b, "テーマ：%s\n\n", theme)
	}
	b.WriteString("スプレッド：\n")
	b.WriteString(spread)
	b.WriteString("\n")
	if aux != "" {
		b.WriteString("\n")
		b.WriteString(aux)
		b.WriteString("\n")
	}
	return b.String()
}

// hasExpectedShape checks the strict-format contract: three sequentially
// numbered sections plus a closing line that is not itself a section head.
func hasExpectedShape(text string) bool {
	lines := strings.Split(text, "\n")
	next := 1
	lastNonEmpty := ""
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lastNonEmpty = line
		if next <= 3 && startsSection(line, next) {
			next++
		}
	}
	if next <= 3 {
		return false
	}
	return lastNonEmpty != "" && !startsAnySection(lastNonEmpty)
}

var sectionSeparators = ".．。)）、"

func startsSection(line string, n int) bool {
	if line == "" {
		return false
	}
	if r := []rune(line)[0]; r == rune('①'+n-1) {
		return true
	}
	head := fmt.Sprintf("%d", n)
	if !strings.HasPrefix(line, head) {
		return false
	}
	rest := line[len(head):]
	if rest == "" {
		return false
	}
	return strings.ContainsRune(sectionSeparators, []rune(rest)[0])
}

func startsAnySection(line string) bool {
	for n := 1; n <= 9; n++ {
		if startsSection(line, n) {
			return true
		}
	}
	return false
}
