package tagger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jdkato/prose/v2"
)

var ErrTagging = errors.New("tagging error")

const DefaultSkillLabel = "SKILL"

// Names shorter than this are matched case-sensitively so "go" or "r" in prose is not a skill.
const caseFoldMinLen = 3

var (
	experienceWords = []string{"experience", "worked", "job", "position"}
	educationWords  = []string{"education", "degree", "university", "college"}
)

// Tags is everything the pipeline needs from one resume text. Only Skills, Experience and
// Education feed the score; the rest is stored as profile metadata.
type Tags struct {
	Skills        []string
	Experience    []string
	Education     []string
	Keywords      []string
	Organizations []string
	Dates         []string
}

type Option func(*Tagger)

// WithModel swaps the built-in prose model for a custom one, typically trained with a skill label.
func WithModel(m *prose.Model) Option {
	return func(t *Tagger) { t.model = m }
}

// WithSkillLabel sets the entity label read as a skill. Labels compare upper-cased.
func WithSkillLabel(label string) Option {
	return func(t *Tagger) {
		if s := strings.ToUpper(strings.TrimSpace(label)); s != "" {
			t.skillLabel = s
		}
	}
}

// Tagger is safe for concurrent use once built.
type Tagger struct {
	model      *prose.Model
	skillLabel string
	gazetteer  []gazetteerEntry
}

type gazetteerEntry struct {
	name string
	re   *regexp.Regexp
}

// New compiles the skill vocabulary once. Blank and repeated names are skipped, the first
// spelling wins.
func New(skills []string, opts ...Option) *Tagger {
	t := &Tagger{skillLabel: DefaultSkillLabel}
	for _, o := range opts {
		o(t)
	}

	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		name := strings.TrimSpace(s)
		key := strings.ToLower(name)
		if name == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		pattern := regexp.QuoteMeta(name)
		if utf8.RuneCountInString(name) >= caseFoldMinLen {
			pattern = `(?i)` + pattern
		}
		t.gazetteer = append(t.gazetteer, gazetteerEntry{
			name: name,
			re:   regexp.MustCompile(pattern),
		})
	}
	return t
}

// LoadModel reads a prose model directory. prose panics on malformed models, so the panic is
// returned as an error.
func LoadModel(dir string) (m *prose.Model, err error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("load tagger model: %w", err)
	}
	defer func() {
		if r := recover(); r != nil {
			m = nil
			err = fmt.Errorf("load tagger model %s: %v", dir, r)
		}
	}()
	return prose.ModelFromDisk(dir), nil
}

func (t *Tagger) Tag(ctx context.Context, text string) (Tags, error) {
	if err := ctx.Err(); err != nil {
		return Tags{}, err
	}
	if strings.TrimSpace(text) == "" {
		return Tags{}, nil
	}

	doc, err := t.parse(text)
	if err != nil {
		return Tags{}, fmt.Errorf("%w: %v", ErrTagging, err)
	}
	if err := ctx.Err(); err != nil {
		return Tags{}, err
	}

	var tags Tags
	mentions := t.gazetteerMentions(text)

	cursor := map[string]int{}
	for _, ent := range doc.Entities() {
		switch strings.ToUpper(ent.Label) {
		case t.skillLabel:
			if at := locate(text, ent.Text, cursor); at >= 0 {
				mentions = append(mentions, mention{at: at, name: ent.Text})
			}
		case "ORG", "ORGANIZATION":
			tags.Organizations = append(tags.Organizations, ent.Text)
		case "DATE":
			tags.Dates = append(tags.Dates, ent.Text)
		}
	}
	tags.Skills = orderMentions(mentions)

	for _, sent := range doc.Sentences() {
		s := strings.TrimSpace(sent.Text)
		lower := strings.ToLower(s)
		if containsAny(lower, experienceWords) {
			tags.Experience = append(tags.Experience, s)
		}
		if containsAny(lower, educationWords) {
			tags.Education = append(tags.Education, s)
		}
	}

	for _, tok := range doc.Tokens() {
		w := strings.ToLower(tok.Text)
		if !isAlnum(w) {
			continue
		}
		if _, stop := stopwords[w]; stop {
			continue
		}
		tags.Keywords = append(tags.Keywords, w)
	}

	return tags, nil
}

func (t *Tagger) parse(text string) (doc *prose.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("nlp panic: %v", r)
		}
	}()
	if t.model != nil {
		return prose.NewDocument(text, prose.UsingModel(t.model))
	}
	return prose.NewDocument(text)
}

type mention struct {
	at   int
	name string
}

func (t *Tagger) gazetteerMentions(text string) []mention {
	var out []mention
	for _, g := range t.gazetteer {
		for _, loc := range g.re.FindAllStringIndex(text, -1) {
			if !wordBoundary(text, loc[0], loc[1]) {
				continue
			}
			out = append(out, mention{at: loc[0], name: g.name})
		}
	}
	return out
}

// orderMentions sorts by position and drops a mention found twice at the same offset
// (gazetteer and NER agreeing), keeping repeated mentions elsewhere in the text.
func orderMentions(ms []mention) []string {
	sort.SliceStable(ms, func(i, j int) bool { return ms[i].at < ms[j].at })

	out := make([]string, 0, len(ms))
	seen := map[string]struct{}{}
	for _, m := range ms {
		key := fmt.Sprintf("%d:%s", m.at, strings.ToLower(m.name))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, m.name)
	}
	return out
}

// locate finds the next occurrence of s in text after the previous hit for the same s.
func locate(text, s string, cursor map[string]int) int {
	from := cursor[s]
	if from > len(text) {
		return -1
	}
	i := strings.Index(text[from:], s)
	if i < 0 {
		return -1
	}
	at := from + i
	cursor[s] = at + len(s)
	return at
}

func wordBoundary(text string, start, end int) bool {
	if start > 0 && isWordByte(text[start-1]) {
		return false
	}
	if end < len(text) && isWordByte(text[end]) {
		return false
	}
	return true
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func isAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
