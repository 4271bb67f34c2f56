package version_test

import (
	"encoding/json"
	"testing"

	// Packages
	version "github.com/mutablelogic/go-toolserver/pkg/version"
	assert "github.com/stretchr/testify/assert"
)

func Test_version_001(t *testing.T) {
	assert := assert.New(t)

	version.GitTag = "v1.2.3"
	defer func() { version.GitTag = "" }()
	assert.Equal("v1.2.3", version.Version())

	metadata := version.Metadata("toolserver", "news", "weather")
	assert.Equal("toolserver", metadata["name"])
	assert.Equal("v1.2.3", metadata["version"])
	assert.Equal("v1.2.3", metadata["tag"])
	assert.Equal([]string{"news", "weather"}, metadata["services"])
}

func Test_version_002(t *testing.T) {
	assert := assert.New(t)

	assert.NotEmpty(version.Version())
	data, err := version.JSON("toolserver")
	assert.NoError(err)

	var metadata map[string]any
	assert.NoError(json.Unmarshal(data, &metadata))
	assert.Equal("toolserver", metadata["name"])
	assert.NotContains(metadata, "services")
	assert.NotEmpty(metadata["compiler"])
}
