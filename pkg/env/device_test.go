package env

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeviceID(t *testing.T) {
	defer func(m func(string) (string, error), h func() (string, error)) {
		machineID, hostname = m, h
	}(machineID, hostname)

	testCases := []struct {
		name     string
		envID    string
		machine  string
		host     string
		expected string
	}{
		{"machine id", "", "0123456789abcdef0123", "host", "0123456789abcdef"},
		{"hostname", "", "", "my host/1", "my_host_1"},
		{"unknown", "", "", "", "unknown"},
		{"override", "bench+1", "0123", "host", "bench_1"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("ROBOLOG_DEVICE_ID", tc.envID)
			machineID = func(string) (string, error) {
				if tc.machine == "" {
					return "", errors.New("no machine id")
				}
				return tc.machine, nil
			}
			hostname = func() (string, error) {
				if tc.host == "" {
					return "", errors.New("no hostname")
				}
				return tc.host, nil
			}
			require.Equal(t, tc.expected, DeviceID())
		})
	}
}
