// Package common contains shared constants and small helpers used across
// the Divya Drishti client packages.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token on
// outbound requests to the backend.
const AuthorizationHeaderName = "Authorization"

// Keys of the device-local key/value storage.
const (
	LocalUsersKey   = "divya_drishti_local_users"
	SessionKey      = "astro_user_session"
	TokenKey        = "astro_token"
	NameHistoryKey  = "astro_name_history"
	LocalTokenValue = "local_offline_token"
)
