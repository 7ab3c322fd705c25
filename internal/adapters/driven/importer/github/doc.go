// Package github grows the repository catalog from GitHub repository
// search. Hits are converted to catalog rows: full name, HTML URL,
// stargazer count, topics as tags and the description as note.
//
// Requests go through a RateLimiter that throttles to the search API's
// budget and backs off when the response headers report exhaustion.
package github
