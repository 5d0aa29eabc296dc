package dondominio

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Compatibility describes how the API version a server reports relates to ClientVersion.
type Compatibility int

const (
	CompatUnknown Compatibility = iota // version missing or unparsable
	CompatOK
	CompatOutdated   // server minor ahead under the same major
	CompatDeprecated // server major ahead
)

func (c Compatibility) String() string {
	switch c {
	case CompatOK:
		return "ok"
	case CompatOutdated:
		return "outdated"
	case CompatDeprecated:
		return "deprecated"
	}
	return "unknown"
}

// CheckVersion compares a server "major.minor[...]" version against ClientVersion.
func CheckVersion(server string) Compatibility {
	sMaj, sMin, ok := majorMinor(server)
	if !ok {
		return CompatUnknown
	}
	cMaj, cMin, _ := majorMinor(ClientVersion)
	switch {
	case sMaj > cMaj:
		return CompatDeprecated
	case sMaj == cMaj && sMin > cMin:
		return CompatOutdated
	}
	return CompatOK
}

func majorMinor(v string) (major, minor int, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(v), ".", 3)
	if len(parts) < 2 {
		return 0, 0, false
	}
	major, err1 := strconv.Atoi(parts[0])
	minor, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return major, minor, true
}

// warnVersion logs when the server runs a newer API than this client targets.
// It never affects the call result.
func (c *Client) warnVersion(server string) {
	switch CheckVersion(server) {
	case CompatOutdated:
		c.log.Warn("client is not up to date; update it to match the API version in use",
			zap.String("client_version", ClientVersion), zap.String("server_version", server))
	case CompatDeprecated:
		c.log.Error("client is deprecated; update to the latest version",
			zap.String("client_version", ClientVersion), zap.String("server_version", server))
	}
}
