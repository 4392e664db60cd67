package cache

import "strings"

const (
	// SessionChannelPrefix prefixes the pub/sub channel of one dashboard session.
	SessionChannelPrefix = "dashboard:session:"
	// SessionChannelPattern matches every session channel.
	SessionChannelPattern = SessionChannelPrefix + "*"
	// BroadcastChannel reaches every session.
	BroadcastChannel = "dashboard:broadcast"
)

// SessionChannel returns the pub/sub channel for a dashboard session.
func SessionChannel(sessionID string) string {
	return SessionChannelPrefix + sessionID
}

// SessionFromChannel extracts the session ID from a session channel name.
func SessionFromChannel(channel string) (string, bool) {
	if !strings.HasPrefix(channel, SessionChannelPrefix) {
		return "", false
	}
	sid := strings.TrimPrefix(channel, SessionChannelPrefix)
	return sid, sid != ""
}
