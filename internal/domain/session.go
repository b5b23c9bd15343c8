package domain

// DeviceInfo identifies the client that opened a session. It is parsed from
// the user-agent string at the HTTP boundary and stored alongside the refresh
// token, never persisted on its own.
type DeviceInfo struct {
	Browser  string `json:"browser"`
	Platform string `json:"platform"`
	Version  string `json:"version"`
}

// RefreshSession is the cache record written at login and consulted on every
// refresh. The stored token must match the presented one: deleting the record
// invalidates a cryptographically valid refresh token.
type RefreshSession struct {
	RefreshToken string     `json:"refreshToken"`
	IP           string     `json:"ip"`
	Device       DeviceInfo `json:"device"`
}
