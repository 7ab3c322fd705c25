// Package telegram grows the channel catalog from Telegram's global
// contact search. Only public channels with a username are kept; each
// becomes a row with its t.me link, title and member count.
//
// The search runs over MTProto from a user account. The session is
// persisted to a file so the login code is asked for once.
package telegram
