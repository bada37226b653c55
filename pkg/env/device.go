// Package env resolves the identity of the machine producing logs.
package env

import (
	"os"
	"regexp"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

// AppID salts the machine ID so that the device ID is not the raw machine ID.
const AppID = "robolog"

var (
	machineID = machineid.ProtectedID
	hostname  = os.Hostname

	invalidTopicChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)
)

// DeviceID identifies this machine in remote log topics. It is derived from
// the machine ID, and falls back to the hostname when that is unavailable.
// The ROBOLOG_DEVICE_ID environment variable overrides both.
func DeviceID() string {
	if id := os.Getenv("ROBOLOG_DEVICE_ID"); id != "" {
		return sanitize(id)
	}
	id, err := machineID(AppID)
	if err == nil && id != "" {
		if len(id) > 16 {
			id = id[:16]
		}
		return id
	}
	glog.Warningf("machine ID unavailable: %v", err)
	if name, err := hostname(); err == nil && name != "" {
		return sanitize(name)
	}
	return "unknown"
}

func sanitize(id string) string {
	return invalidTopicChars.ReplaceAllString(id, "_")
}
