package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInitLoggerTagsService(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LOG_DIR", dir)

	assert.NoError(t, InitLogger())
	LogInfo("wallet credited for user %d", 42)

	data, err := os.ReadFile(filepath.Join(dir, "info-"+time.Now().Format("2006-01-02")+".log"))
	assert.NoError(t, err)
	assert.Contains(t, string(data), AppName+" INFO:")
	assert.Contains(t, string(data), "wallet credited for user 42")
}
