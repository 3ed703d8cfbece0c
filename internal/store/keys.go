package store

// Persisted keys.
const (
	KeySongs          = "songs"
	KeyAlbums         = "albums"
	KeyArtists        = "artists"
	KeyGoalProgress   = "goal_progress"
	KeyRecentGoals    = "recent_goals"
	KeyCurrentUser    = "current_user"
	KeyUsers          = "users"
	KeyRanking        = "user_ranking"
	KeyLastDailyLogin = "last_daily_login"
	KeyVotingResult   = "voting_result"
	KeyPlaylistURL    = "playlist_url"
)

// Keys lists every key the dashboard knows about.
var Keys = []string{
	KeySongs, KeyAlbums, KeyArtists, KeyGoalProgress, KeyRecentGoals, KeyCurrentUser,
	KeyUsers, KeyRanking, KeyLastDailyLogin, KeyVotingResult, KeyPlaylistURL,
}
