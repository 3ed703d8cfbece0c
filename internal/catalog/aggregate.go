package catalog

import (
	"math"
	"slices"

	"github.com/desertthunder/fanstats/internal/models"
)

// Aggregate sums streams per album and per tracked artist.
//
// Songs by artists not listed in artists are left out of the artist map; every tracked artist
// gets an entry even when it has no songs.
func Aggregate(songs []models.Song, artists []string) (map[string]models.AlbumAggregate, map[string]models.ArtistAggregate) {
	albums := make(map[string]models.AlbumAggregate)
	byArtist := make(map[string]models.ArtistAggregate, len(artists))
	for _, a := range artists {
		byArtist[a] = models.ArtistAggregate{Songs: []string{}}
	}

	for _, s := range songs {
		album := albums[s.Album]
		album.TotalStreams += s.TotalStreams
		album.DailyStreams += s.DailyStreams
		album.Songs = append(album.Songs, s.Name)
		albums[s.Album] = album

		if !slices.Contains(artists, s.Artist) {
			continue
		}
		artist := byArtist[s.Artist]
		artist.TotalStreams += s.TotalStreams
		artist.DailyStreams += s.DailyStreams
		artist.Songs = append(artist.Songs, s.Name)
		byArtist[s.Artist] = artist
	}

	return albums, byArtist
}

// Summary holds catalog-wide totals.
type Summary struct {
	Songs        int   `json:"songs"`
	TotalStreams int64 `json:"totalStreams"`
	DailyStreams int64 `json:"dailyStreams"`
	AverageGoal  int64 `json:"averageGoal"`
}

// Stats totals the catalog. The average goal is rounded and 0 for an empty catalog.
func Stats(songs []models.Song) Summary {
	sum := Summary{Songs: len(songs)}
	var goals int64
	for _, s := range songs {
		sum.TotalStreams += s.TotalStreams
		sum.DailyStreams += s.DailyStreams
		goals += s.Goal
	}
	if len(songs) > 0 {
		sum.AverageGoal = int64(math.Round(float64(goals) / float64(len(songs))))
	}
	return sum
}

// AlbumSummary is a named album aggregate.
type AlbumSummary struct {
	Name string `json:"name"`
	models.AlbumAggregate
}

// TopAlbums returns featured in order, each joined with its aggregate or a zero aggregate.
func TopAlbums(featured []string, albums map[string]models.AlbumAggregate) []AlbumSummary {
	out := make([]AlbumSummary, 0, len(featured))
	for _, name := range featured {
		agg, ok := albums[name]
		if !ok {
			agg = models.AlbumAggregate{Songs: []string{}}
		}
		out = append(out, AlbumSummary{Name: name, AlbumAggregate: agg})
	}
	return out
}
