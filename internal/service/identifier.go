package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	identifierDateLayout = "060102"
	identifierSeqWidth   = 6
	identifierSeqMax     = 999999
)

type latestIdentifierReader interface {
	LatestAixivID(ctx context.Context, prefix string) (string, error)
}

// IdentifierGenerator assigns day-scoped public identifiers of the form <prefix>.<YYMMDD>.<NNNNNN>.
// It reads the current maximum without locking; uniqueness is enforced by the store.
type IdentifierGenerator struct {
	prefix  string
	store   latestIdentifierReader
	now     func() time.Time
	pattern *regexp.Regexp
}

// NewIdentifierGenerator constructs a generator for prefix.
func NewIdentifierGenerator(prefix string, store latestIdentifierReader) *IdentifierGenerator {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "aixiv"
	}
	return &IdentifierGenerator{
		prefix:  prefix,
		store:   store,
		now:     time.Now,
		pattern: regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `\.\d{6}\.\d{6}$`),
	}
}

// WithClock overrides the time source.
func (g *IdentifierGenerator) WithClock(now func() time.Time) *IdentifierGenerator {
	if now != nil {
		g.now = now
	}
	return g
}

// DayPrefix returns "<prefix>.<YYMMDD>." for the UTC day containing t.
func (g *IdentifierGenerator) DayPrefix(t time.Time) string {
	return g.prefix + "." + t.UTC().Format(identifierDateLayout) + "."
}

// Valid reports whether id has the public identifier shape.
func (g *IdentifierGenerator) Valid(id string) bool {
	return g.pattern.MatchString(id)
}

// Next computes the next candidate identifier for today.
func (g *IdentifierGenerator) Next(ctx context.Context) (string, error) {
	dayPrefix := g.DayPrefix(g.now())
	latest, err := g.store.LatestAixivID(ctx, dayPrefix)
	if err != nil {
		return "", fmt.Errorf("read latest identifier: %w", err)
	}
	seq := 1
	if latest != "" {
		current, err := strconv.Atoi(strings.TrimPrefix(latest, dayPrefix))
		if err != nil {
			return "", fmt.Errorf("parse identifier %q: %w", latest, err)
		}
		seq = current + 1
	}
	if seq > identifierSeqMax {
		return "", fmt.Errorf("identifier sequence exhausted for %s", strings.TrimSuffix(dayPrefix, "."))
	}
	return fmt.Sprintf("%s%0*d", dayPrefix, identifierSeqWidth, seq), nil
}
