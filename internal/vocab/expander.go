package vocab

import (
	"context"
	"strings"

	"github.com/openmuseum/museum-map-backend/internal/platform/getty"
	"github.com/openmuseum/museum-map-backend/internal/platform/logger"
)

// Expander resolves a term to its broader-term hierarchies, fetching from
// the vocabulary service at most once per term. Each hierarchy is ordered
// nearest-broader first. Service failures degrade to an empty (but cached)
// result; they never abort the pipeline.
type Expander struct {
	log    *logger.Logger
	client getty.Client
	cache  Cache
}

func NewExpander(client getty.Client, cache Cache, log *logger.Logger) *Expander {
	return &Expander{
		log:    log.With("service", "TaxonomyExpander"),
		client: client,
		cache:  cache,
	}
}

// Hierarchies returns every known broader-term hierarchy for the term.
func (e *Expander) Hierarchies(ctx context.Context, term string) [][]string {
	return e.lookup(ctx, term)
}

// Merged combines all hierarchies of a term into a single chain: the tail of
// every hierarchy is popped in rounds and first-seen terms appended, then the
// result is reversed. Breadth is preserved when a term has several valid
// taxonomic paths.
func (e *Expander) Merged(ctx context.Context, term string) []string {
	hierarchies := e.lookup(ctx, term)
	if len(hierarchies) == 0 {
		return nil
	}
	if len(hierarchies) == 1 {
		return append([]string(nil), hierarchies[0]...)
	}
	work := cloneHierarchies(hierarchies)
	var merged []string
	added := true
	for added {
		added = false
		for i := range work {
			if len(work[i]) == 0 {
				continue
			}
			last := work[i][len(work[i])-1]
			work[i] = work[i][:len(work[i])-1]
			added = true
			if !containsTerm(merged, last) {
				merged = append(merged, last)
			}
		}
	}
	for i, j := 0, len(merged)-1; i < j; i, j = i+1, j-1 {
		merged[i], merged[j] = merged[j], merged[i]
	}
	return merged
}

func (e *Expander) lookup(ctx context.Context, term string) [][]string {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	if hierarchies, ok, err := e.cache.Get(ctx, term); err == nil && ok {
		return hierarchies
	} else if err != nil {
		e.log.Warn("Taxonomy cache read failed", "term", term, "error", err)
	}

	hierarchies := e.fetch(ctx, term)
	if err := e.cache.Put(ctx, term, hierarchies); err != nil {
		e.log.Warn("Taxonomy cache write failed", "term", term, "error", err)
	}
	// Every intermediate node already determines its own remaining tail, so
	// cache those as well and save future round trips.
	for _, hierarchy := range hierarchies {
		for i, entry := range hierarchy {
			if _, ok, err := e.cache.Get(ctx, entry); err != nil || ok {
				continue
			}
			tail := hierarchy[i+1:]
			var entryHierarchies [][]string
			if len(tail) > 0 {
				entryHierarchies = [][]string{append([]string(nil), tail...)}
			} else {
				entryHierarchies = [][]string{}
			}
			if err := e.cache.Put(ctx, entry, entryHierarchies); err != nil {
				e.log.Warn("Taxonomy cache write failed", "term", entry, "error", err)
			}
		}
	}
	return hierarchies
}

func (e *Expander) fetch(ctx context.Context, term string) [][]string {
	subjects, err := e.client.TermMatch(ctx, term)
	if err != nil {
		e.log.Warn("Vocabulary term match failed", "term", term, "error", err)
		return [][]string{}
	}
	hierarchies := [][]string{}
	for _, subject := range subjects {
		raw, err := e.client.SubjectHierarchy(ctx, subject)
		if err != nil {
			e.log.Warn("Vocabulary subject lookup failed", "term", term, "subject", subject, "error", err)
			continue
		}
		if hierarchy := parseHierarchy(raw); len(hierarchy) > 0 {
			hierarchies = append(hierarchies, hierarchy)
		}
	}
	return hierarchies
}

// parseHierarchy cleans a pipe-delimited hierarchy string into a list of
// terms ordered nearest-broader first (the source lists root first).
func parseHierarchy(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var hierarchy []string
	for _, entry := range strings.Split(raw, "|") {
		entry = strings.TrimSpace(entry)
		if entry == "" || strings.Contains(entry, "<") {
			continue
		}
		entry = strings.ToLower(entry)
		if i := strings.Index(entry, "("); i >= 0 {
			entry = strings.TrimSpace(entry[:i])
		}
		if strings.HasSuffix(entry, " facet") {
			entry = strings.TrimSpace(strings.TrimSuffix(entry, " facet"))
		}
		if strings.HasSuffix(entry, " genres") {
			entry = strings.TrimSpace(strings.TrimSuffix(entry, " genres"))
		}
		if entry == "" || containsTerm(hierarchy, entry) {
			continue
		}
		hierarchy = append(hierarchy, entry)
	}
	for i, j := 0, len(hierarchy)-1; i < j; i, j = i+1, j-1 {
		hierarchy[i], hierarchy[j] = hierarchy[j], hierarchy[i]
	}
	return hierarchy
}

func containsTerm(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
