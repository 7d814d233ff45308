// Package generator produces the synthetic document corpus.
package generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/schollz/progressbar/v3"

	"github.com/kailas-cloud/docbench/internal/domain"
)

// tagVocabulary is the fixed pool tags are drawn from. It deliberately
// contains "rust" (the tag-containment benchmark target) and never
// contains "nonexistent" (the zero-hit benchmark target).
var tagVocabulary = []string{
	"rust", "go", "postgres", "elastic", "jsonb", "search",
	"benchmark", "storage", "index", "query", "database", "cloud",
	"binary", "bulk", "latency",
}

// nestedKeys is the pool for att2.nested_key; "com" is the
// nested-equality benchmark target.
var nestedKeys = []string{"com", "org", "net", "io"}

const (
	optionalPresenceProbability = 0.7
	corpusWindow                = 365 * 24 * time.Hour
)

// Generator builds documents with gofakeit-backed content. Shape is
// deterministic; content is deterministic only under a fixed seed.
type Generator struct {
	faker    *gofakeit.Faker
	rng      *rand.Rand
	progress bool
}

// New creates a generator. A zero seed yields a random corpus; tests pass
// a fixed seed for determinism.
func New(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		faker: gofakeit.New(uint64(seed)),
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// WithProgress enables a terminal progress bar during generation.
func (g *Generator) WithProgress() *Generator {
	g.progress = true
	return g
}

// Generate produces count documents realizing every corpus invariant:
// 1-5 lower-case tags (duplicates permitted), mandatory att0..att3, and
// att_opt_<i mod 5> present with probability 0.7, otherwise absent
// (never null). Generation cannot fail.
func (g *Generator) Generate(count int) []domain.Document {
	var bar *progressbar.ProgressBar
	if g.progress {
		bar = progressbar.Default(int64(count), "generating documents")
	}

	now := time.Now().UTC()
	docs := make([]domain.Document, count)
	for i := range docs {
		docs[i] = g.document(i, now)
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}
	return docs
}

func (g *Generator) document(index int, now time.Time) domain.Document {
	tagCount := 1 + g.rng.Intn(5)
	tags := make([]string, tagCount)
	for t := range tags {
		tags[t] = tagVocabulary[g.rng.Intn(len(tagVocabulary))]
	}

	attrs := domain.Attributes{
		Att0: g.rng.Intn(1000),
		Att1: g.faker.Phrase(),
		Att2: domain.Nested{
			NestedKey:  nestedKeys[g.rng.Intn(len(nestedKeys))],
			NestedBool: g.rng.Intn(2) == 0,
		},
		Att3: g.words(2 + g.rng.Intn(3)),
	}
	if g.rng.Float64() < optionalPresenceProbability {
		attrs.OptionalKey = fmt.Sprintf("att_opt_%d", index%domain.OptionalAttributeBuckets)
		attrs.OptionalValue = g.faker.BuzzWord()
	}

	// Uniform over the trailing 365 days.
	age := time.Duration(g.rng.Int63n(int64(corpusWindow)))

	return domain.Document{
		Title:      g.faker.Sentence(3 + g.rng.Intn(6)),
		Content:    g.faker.Paragraph(2, 4, 12, " "),
		CreatedAt:  now.Add(-age),
		Tags:       tags,
		Attributes: attrs,
	}
}

func (g *Generator) words(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = g.faker.Word()
	}
	return out
}
