package logging

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	assert.NotNil(t, Get(""))
	assert.NotNil(t, Get("codebase"))
}

func TestConfigureToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noa.log")
	Configure(2, path)
	Get("test").Infof("configured %s", path)
	Configure(0, "")
}
