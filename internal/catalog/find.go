package catalog

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/desertthunder/fanstats/internal/models"
)

// MatchThreshold is the minimum Jaro-Winkler similarity accepted by [Find].
const MatchThreshold = 0.85

// Lookup finds a song by exact, case-insensitive name.
func Lookup(songs []models.Song, name string) (models.Song, bool) {
	for _, s := range songs {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return models.Song{}, false
}

// Find returns the song named name, or the closest name scoring at least [MatchThreshold].
func Find(songs []models.Song, name string) (models.Song, float64, bool) {
	if s, ok := Lookup(songs, name); ok {
		return s, 1, true
	}

	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return models.Song{}, 0, false
	}

	var (
		best      models.Song
		bestScore float64
	)
	metric := metrics.NewJaroWinkler()
	for _, s := range songs {
		score := strutil.Similarity(query, strings.ToLower(s.Name), metric)
		if score > bestScore && score >= MatchThreshold {
			best, bestScore = s, score
		}
	}
	return best, bestScore, bestScore > 0
}
