// Package featureflags evaluates FEATURE_FLAGS rollouts per dashboard session.
package featureflags

import (
	"hash/fnv"
	"sort"
	"strconv"
	"strings"
)

// ChatRefreshAfterSend makes the dashboard refresh after a chat message is
// sent, so the new message shows up without waiting for the next fetch.
const ChatRefreshAfterSend = "chat_refresh_after_send"

// Known lists the flags the dashboard reads, with what they change.
var Known = map[string]string{
	ChatRefreshAfterSend: "Refresh the dashboard after a chat message is sent",
}

// rule is one parsed FEATURE_FLAGS entry. percent is 0..100; on/off values
// parse to 100 and 0.
type rule struct {
	raw     string
	percent int
}

// Manager holds the rules parsed from FEATURE_FLAGS, a comma-separated
// name=value list. Values are on/true/1, off/false/0 or N% for a
// deterministic rollout by session.
// Example: "chat_refresh_after_send=25%"
type Manager struct {
	rules map[string]rule
}

// NewManager parses raw. Malformed entries are skipped.
func NewManager(raw string) *Manager {
	rules := make(map[string]rule)
	for _, entry := range strings.Split(raw, ",") {
		name, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		name, value = normalize(name), normalize(value)
		if name == "" || value == "" {
			continue
		}
		rules[name] = rule{raw: value, percent: parsePercent(value)}
	}
	return &Manager{rules: rules}
}

func parsePercent(value string) int {
	switch value {
	case "on", "true", "1":
		return 100
	case "off", "false", "0":
		return 0
	}
	digits, ok := strings.CutSuffix(value, "%")
	if !ok {
		return 0
	}
	pct, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return min(max(pct, 0), 100)
}

// Enabled reports whether name is on for the session sessionID. Unset
// flags are off. Partial rollouts need a session to bucket.
func (m *Manager) Enabled(name, sessionID string) bool {
	if m == nil {
		return false
	}
	r, ok := m.rules[normalize(name)]
	switch {
	case !ok || r.percent == 0:
		return false
	case r.percent == 100:
		return true
	case sessionID == "":
		return false
	}
	return bucket(name, sessionID) < r.percent
}

// Raw returns the configured values by flag name.
func (m *Manager) Raw() map[string]string {
	out := make(map[string]string, len(m.rules))
	for name, r := range m.rules {
		out[name] = r.raw
	}
	return out
}

// Names returns every known or configured flag, sorted.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(Known)+len(m.rules))
	for name := range Known {
		names = append(names, name)
	}
	for name := range m.rules {
		if _, known := Known[name]; !known {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Snapshot evaluates every flag from Names for one session.
func (m *Manager) Snapshot(sessionID string) map[string]bool {
	names := m.Names()
	out := make(map[string]bool, len(names))
	for _, name := range names {
		out[name] = m.Enabled(name, sessionID)
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func bucket(name, sessionID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(normalize(name)))
	_, _ = h.Write([]byte{':'})
	_, _ = h.Write([]byte(sessionID))
	return int(h.Sum32() % 100)
}
