package version

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShort(t *testing.T) {
	info := Info{Version: "v0.3.0", Commit: "0123456789abcdef"}
	assert.Equal(t, "v0.3.0 (0123456)", info.Short())

	info.Commit = "none"
	assert.Equal(t, "v0.3.0 (none)", info.Short())
}

func TestGetInfo(t *testing.T) {
	info := GetInfo()
	assert.NotEmpty(t, info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")

	var decoded Info
	require.NoError(t, json.Unmarshal([]byte(info.JSON()), &decoded))
	assert.Equal(t, info, decoded)
	assert.Contains(t, info.String(), "Version:\t"+info.Version)
}
