package catalog

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/fanstats/internal/models"
	"github.com/desertthunder/fanstats/internal/shared"
	"github.com/desertthunder/fanstats/internal/store"
)

// DefaultSongs is the catalog used when nothing has been saved yet.
func DefaultSongs() []models.Song {
	return []models.Song{
		{
			ID:           "1",
			Name:         "A Year Without Rain",
			Album:        "A Year Without Rain",
			Artist:       "Selena Gomez & The Scene",
			TotalStreams: 198_951_352,
			DailyStreams: 125_000,
			Goal:         200_000_000,
			DailyGoal:    100_000,
		},
	}
}

// Catalog reads and writes the song list and its derived aggregates.
type Catalog struct {
	store  store.Store
	logger *log.Logger
	config shared.DashboardConfig
}

// NewCatalog creates a [Catalog] over s.
func NewCatalog(s store.Store, config shared.DashboardConfig, logger *log.Logger) *Catalog {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	if config.DefaultDailyGoal <= 0 {
		config.DefaultDailyGoal = DefaultDailyGoal
	}
	return &Catalog{
		store:  s,
		logger: shared.WithLogger(logger, "component", "catalog"),
		config: config,
	}
}

// Config returns the dashboard settings the catalog was built with.
func (c *Catalog) Config() shared.DashboardConfig {
	return c.config
}

// Load returns the stored songs, or [DefaultSongs] when none are stored or the value is unreadable.
func (c *Catalog) Load() []models.Song {
	var songs []models.Song
	if !store.GetJSON(c.store, c.logger, store.KeySongs, &songs) || songs == nil {
		return DefaultSongs()
	}
	return songs
}

// Save validates and persists the full song list, then recomputes and persists the album and artist aggregates.
//
// Songs without an id are assigned one. Nothing is written when any song is invalid.
func (c *Catalog) Save(songs []models.Song) error {
	for i := range songs {
		if songs[i].ID == "" {
			songs[i].ID = shared.GenerateID()
		}
	}

	if err := models.ValidateSongs(songs); err != nil {
		return err
	}

	if err := store.SetJSON(c.store, store.KeySongs, songs); err != nil {
		return fmt.Errorf("failed to save songs: %w", err)
	}

	albums, artists := Aggregate(songs, c.config.Artists)
	if err := store.SetJSON(c.store, store.KeyAlbums, albums); err != nil {
		return fmt.Errorf("failed to save album aggregates: %w", err)
	}
	if err := store.SetJSON(c.store, store.KeyArtists, artists); err != nil {
		return fmt.Errorf("failed to save artist aggregates: %w", err)
	}

	c.logger.Info("catalog saved", "songs", len(songs), "albums", len(albums))
	return nil
}

// Albums returns the cached album aggregates, or an empty map.
func (c *Catalog) Albums() map[string]models.AlbumAggregate {
	albums := map[string]models.AlbumAggregate{}
	store.GetJSON(c.store, c.logger, store.KeyAlbums, &albums)
	return albums
}

// Artists returns the cached artist aggregates, or an empty map.
func (c *Catalog) Artists() map[string]models.ArtistAggregate {
	artists := map[string]models.ArtistAggregate{}
	store.GetJSON(c.store, c.logger, store.KeyArtists, &artists)
	return artists
}

// TopAlbums joins the configured featured albums with the cached aggregates.
func (c *Catalog) TopAlbums() []AlbumSummary {
	return TopAlbums(c.config.FeaturedAlbums, c.Albums())
}
