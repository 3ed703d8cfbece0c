// Package server provides HTTP routing, middleware, and the JSON API for the dashboard.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] method patterns ("GET /api/songs"), so requests with
// the wrong method get a 405 from the mux itself.
//
// # Middleware
//
//   - [Logging] logs method, path, status and duration for every request
//   - [RateLimit] answers 429 once the shared token bucket is empty
//   - [Recover] turns handler panics into 500 responses
//
// # JSON API
//
// [API] serves the dashboard under /api/. It reads and writes through the same catalog, goal, mission and
// session components as the CLI and TUI, so state is shared through the store:
//
//	GET  /api/songs?q=&sort=&dir=   catalog rows, filtered and sorted
//	GET  /api/albums                featured albums with aggregates
//	GET  /api/artists               tracked artist aggregates
//	GET  /api/stats                 catalog totals
//	GET  /api/goal                  recomputed goal status and recent goals
//	GET  /api/focus                 focus song of the day
//	POST /api/focus/simulate        daily-goal projection for the focus song
//	GET  /api/ranking               leaderboard
//	GET  /api/missions              session user's missions
//	POST /api/missions/complete     {"mission": key}
//	POST /api/login                 {"email": ..., "password": ...}
//	POST /api/logout
//
// Errors are returned as {"error": message} with a status derived from the sentinel error.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
