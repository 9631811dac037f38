package app

import (
	"strings"

	"github.com/openmuseum/museum-map-backend/internal/modules/groups"
	"github.com/openmuseum/museum-map-backend/internal/platform/envutil"
)

type Config struct {
	// HierarchyField is the item attribute holding the raw category list.
	HierarchyField string
	// Expansions names the enabled category expansion passes.
	Expansions []string
	// YearField is the item attribute holding the production year.
	YearField string
	// LayoutConfigPath points at the YAML floorplan template.
	LayoutConfigPath string
	// CacheBackend selects the vocabulary cache store, "file" or "redis".
	CacheBackend string
	// CachePath is the file cache location when the file backend is used.
	CachePath string
	// AutoMigrate runs schema migration on startup. Off when the schema is
	// managed externally.
	AutoMigrate bool

	// GroupThreshold overrides the minimum category frequency when positive.
	GroupThreshold int
	// Splits overrides the group split thresholds where set.
	Splits groups.SplitBounds
}

func LoadConfig() Config {
	expansions := strings.Split(envutil.String("HIERARCHY_EXPANSIONS", "nlp,aat"), ",")
	for i := range expansions {
		expansions[i] = strings.TrimSpace(expansions[i])
	}
	return Config{
		HierarchyField:   envutil.String("HIERARCHY_FIELD", "categories"),
		Expansions:       expansions,
		YearField:        envutil.String("YEAR_FIELD", "year"),
		LayoutConfigPath: envutil.String("LAYOUT_CONFIG", "layout.yaml"),
		CacheBackend:     envutil.String("AAT_CACHE_BACKEND", "file"),
		CachePath:        envutil.String("AAT_CACHE_PATH", "aat.json"),
		AutoMigrate:      envutil.Bool("DB_AUTO_MIGRATE", true),
		GroupThreshold:   envutil.Int("GROUP_THRESHOLD", 0),
		Splits: groups.SplitBounds{
			Lower:           envutil.Int("SPLIT_LOWER", 0),
			Upper:           envutil.Int("SPLIT_UPPER", 0),
			YearCoverage:    envutil.Float("SPLIT_YEAR_COVERAGE", 0),
			AttrMaxShare:    envutil.Float("SPLIT_ATTR_MAX_SHARE", 0),
			AttrMinCount:    envutil.Int("SPLIT_ATTR_MIN_COUNT", 0),
			AttrMinCoverage: envutil.Float("SPLIT_ATTR_MIN_COVERAGE", 0),
		},
	}
}
