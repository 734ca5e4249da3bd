package protocol

import (
	"strings"

	"golang.org/x/mod/semver"
)

// NegotiateVersion compares a server's self-reported ServerInfo.Version
// (present in some InitializeResult payloads, but never required by the
// LSP spec) against a minimum version the embedder supplies, using
// golang.org/x/mod/semver for the comparison.
//
// This is advisory only: spec.md's non-goal "does not validate server
// capability reports" is about *capabilities*, not version strings, and a
// missing or non-semver version is not an error — ok is simply false and
// the embedder decides whether to care.
func NegotiateVersion(info *ServerInfo, minVersion string) (ok bool, reported string) {
	if info == nil || info.Version == "" {
		return false, ""
	}
	v := info.Version
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return false, info.Version
	}
	min := minVersion
	if !strings.HasPrefix(min, "v") {
		min = "v" + min
	}
	if !semver.IsValid(min) {
		return false, info.Version
	}
	return semver.Compare(v, min) >= 0, info.Version
}
