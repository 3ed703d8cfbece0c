package main

import (
	"context"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/desertthunder/fanstats/internal/catalog"
	"github.com/desertthunder/fanstats/internal/formatter"
	"github.com/desertthunder/fanstats/internal/missions"
	"github.com/desertthunder/fanstats/internal/models"
	"github.com/desertthunder/fanstats/internal/shared"
	"github.com/urfave/cli/v3"
)

// SongsList prints the catalog filtered and sorted by the given flags.
func (r *Runner) SongsList(ctx context.Context, cmd *cli.Command) error {
	column, err := catalog.ParseColumn(cmd.String("sort"))
	if err != nil {
		return err
	}
	dir, err := catalog.ParseDirection(cmd.String("dir"))
	if err != nil {
		return err
	}
	term := cmd.String("search")

	songs := catalog.Sort(catalog.Filter(r.catalog.Load(), term), column, dir)
	rows := catalog.Rows(songs)
	r.credit(missions.SearchSong)

	if cmd.Bool("json") {
		return r.writeJSON(rows, cmd.Bool("pretty"))
	}

	if term != "" {
		r.writePlain("Found %d songs matching %q:\n\n", len(rows), term)
	} else {
		r.writePlain("Found %d songs:\n\n", len(rows))
	}
	for i, row := range rows {
		marker := ""
		if row.Highlight {
			marker += " 🔥"
		}
		if row.Warning {
			marker += " ⏳"
		}
		r.writePlain("%d. %s - %s%s\n", i+1, row.Artist, row.Name, marker)
		r.writePlain("   Album: %s\n", row.Album)
		r.writePlain("   Streams: %s total, %s today\n", shared.FormatNumber(row.TotalStreams), shared.FormatNumber(row.DailyStreams))
		r.writePlain("   Goal: %s (%d%%, %s)\n", shared.FormatNumber(row.Goal), row.Progress, row.DaysLabel)
		r.writePlain("\n")
	}
	return nil
}

// SongsShow prints the closest catalog match for a name.
func (r *Runner) SongsShow(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: song name", shared.ErrMissingArgument)
	}

	song, score, ok := catalog.Find(r.catalog.Load(), name)
	if !ok {
		return fmt.Errorf("%w: no song matching %q", shared.ErrInvalidArgument, name)
	}
	r.logger.Debug("matched song", "query", name, "song", song.Name, "score", score)

	row := catalog.Rows([]models.Song{song})[0]
	if cmd.Bool("json") {
		return r.writeJSON(row, cmd.Bool("pretty"))
	}

	r.writePlainHeader(row.Name)
	r.writePlain("ID: %s\n", row.ID)
	r.writePlain("Artist: %s\n", row.Artist)
	r.writePlain("Album: %s\n", row.Album)
	r.writePlain("Total streams: %s\n", shared.FormatNumber(row.TotalStreams))
	r.writePlain("Daily streams: %s (daily goal %s)\n", shared.FormatNumber(row.DailyStreams), shared.FormatNumber(row.DailyGoal))
	r.writePlain("Goal: %s\n", shared.FormatNumber(row.Goal))
	r.writePlain("Progress: %d%%\n", row.Progress)
	r.writePlain("Days to goal: %s\n", row.DaysLabel)
	return nil
}

// SongsImport replaces the catalog with a CSV file and recomputes the cumulative goal.
func (r *Runner) SongsImport(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: CSV path", shared.ErrMissingArgument)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	songs, err := formatter.ParseCSV(f, r.catalog.Config().DefaultDailyGoal)
	if err != nil {
		return err
	}
	if err := r.catalog.Save(songs); err != nil {
		return err
	}

	status, err := r.goals.Recompute(r.catalog.Load())
	if err != nil {
		return err
	}

	r.logger.Info("catalog imported", "path", path, "songs", len(songs))
	r.writePlain("✓ Imported %d songs from %s\n", len(songs), path)
	r.writeReached(status)
	return nil
}

// SongsExport writes the catalog to stdout or a file.
func (r *Runner) SongsExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	data, err := formatter.Export(format, r.catalog.Load())
	if err != nil {
		return err
	}

	out := cmd.String("output")
	if out == "" {
		_, err := r.output.Write(data)
		return err
	}
	if err := formatter.WriteExport(data, out); err != nil {
		return err
	}

	r.logger.Info("catalog exported", "format", format, "path", out)
	r.writePlain("✓ Exported catalog to %s\n", out)
	return nil
}

// SongsStats prints catalog totals.
func (r *Runner) SongsStats(ctx context.Context, cmd *cli.Command) error {
	stats := catalog.Stats(r.catalog.Load())
	if cmd.Bool("json") {
		return r.writeJSON(stats, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Catalog")
	r.writePlain("Songs: %d\n", stats.Songs)
	r.writePlain("Total streams: %s\n", shared.FormatNumber(stats.TotalStreams))
	r.writePlain("Daily streams: %s\n", shared.FormatNumber(stats.DailyStreams))
	r.writePlain("Average goal: %s\n", shared.FormatNumber(stats.AverageGoal))
	return nil
}

// SongsAlbums prints the featured albums, or every album with --all.
func (r *Runner) SongsAlbums(ctx context.Context, cmd *cli.Command) error {
	var summaries []catalog.AlbumSummary
	if cmd.Bool("all") {
		albums := r.catalog.Albums()
		for _, name := range slices.Sorted(maps.Keys(albums)) {
			summaries = append(summaries, catalog.AlbumSummary{Name: name, AlbumAggregate: albums[name]})
		}
	} else {
		summaries = r.catalog.TopAlbums()
	}

	if cmd.Bool("json") {
		return r.writeJSON(summaries, cmd.Bool("pretty"))
	}

	r.writePlain("Found %d albums:\n\n", len(summaries))
	for i, a := range summaries {
		r.writePlain("%d. %s\n", i+1, a.Name)
		r.writePlain("   Streams: %s total, %s today\n", shared.FormatNumber(a.TotalStreams), shared.FormatNumber(a.DailyStreams))
		r.writePlain("   Songs: %d\n", len(a.Songs))
		r.writePlain("\n")
	}
	return nil
}

// SongsArtists prints totals for the tracked artists.
func (r *Runner) SongsArtists(ctx context.Context, cmd *cli.Command) error {
	artists := r.catalog.Artists()
	if cmd.Bool("json") {
		return r.writeJSON(artists, cmd.Bool("pretty"))
	}

	for _, name := range r.catalog.Config().Artists {
		a := artists[name]
		r.writePlain("%s\n", name)
		r.writePlain("   Streams: %s total, %s today\n", shared.FormatNumber(a.TotalStreams), shared.FormatNumber(a.DailyStreams))
		if len(a.Songs) > 0 {
			r.writePlain("   Songs: %s\n", strings.Join(a.Songs, ", "))
		}
		r.writePlain("\n")
	}
	return nil
}

// SongsFocus prints the voted focus song and optionally opens its playlist.
func (r *Runner) SongsFocus(ctx context.Context, cmd *cli.Command) error {
	focus, err := r.catalog.Focus()
	if err != nil {
		return err
	}

	if cmd.Bool("open") {
		r.logger.Info("opening playlist", "url", focus.PlaylistURL)
		if err := r.openBrowser(focus.PlaylistURL); err != nil {
			r.logger.Warn("failed to open browser", "error", err)
			r.writePlain("Open this playlist manually: %s\n", focus.PlaylistURL)
		} else {
			r.credit(missions.ListenPlaylist)
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(focus, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Focus of the day")
	r.writePlain("%s - %s (%d votes)\n", focus.Song.Artist, focus.Song.Name, focus.Votes)
	r.writePlain("Today: %s / %s\n", shared.FormatNumber(focus.Song.DailyStreams), shared.FormatNumber(focus.DailyGoal))
	if focus.Reached() {
		r.writePlain("Daily goal reached!\n")
	} else {
		r.writePlain("Still needed: %s\n", shared.FormatNumber(focus.Needed))
	}
	r.writePlain("Playlist: %s\n", focus.PlaylistURL)
	return nil
}

// SongsSimulate projects the hours left until the focus song meets its daily goal.
func (r *Runner) SongsSimulate(ctx context.Context, cmd *cli.Command) error {
	focus, err := r.catalog.VotedFocus()
	if err != nil {
		return err
	}

	sim := catalog.Simulate(*focus, r.now())
	r.credit(missions.UseCalculator)

	if cmd.Bool("json") {
		return r.writeJSON(sim, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Focus simulation")
	r.writePlain("Song: %s\n", sim.Song)
	r.writePlain("Today: %s / %s\n", shared.FormatNumber(sim.Current), shared.FormatNumber(sim.DailyGoal))
	switch {
	case sim.Reached:
		r.writePlain("Daily goal reached!\n")
	case sim.HoursNeeded == catalog.Unreachable:
		r.writePlain("No streams yet today, the goal cannot be projected.\n")
	default:
		r.writePlain("Average: %s streams/hour\n", shared.FormatNumber(sim.AveragePerHour))
		r.writePlain("Still needed: %s (about %d hours)\n", shared.FormatNumber(sim.Needed), sim.HoursNeeded)
	}
	return nil
}
