package ledger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdualzizsm/telegram-bot/internal/models"
	"github.com/Abdualzizsm/telegram-bot/internal/testutil"
)

func TestFileManager_MissingFileStartsEmpty(t *testing.T) {
	fm := NewFileManager(&testutil.MockLogger{})

	l, err := fm.LoadFromFile(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Empty(t, l.Users)
	assert.Equal(t, int64(0), l.TotalDownloads)
}

func TestFileManager_Roundtrip(t *testing.T) {
	fm := NewFileManager(&testutil.MockLogger{})
	path := filepath.Join(t.TempDir(), "ledger.json")

	now := time.Now().Truncate(time.Second)
	l := models.NewLedger()
	l.TotalDownloads = 5
	l.Users[1] = models.NewUserProfile(1, models.Identity{FirstName: "Sara", Username: "sara"}, now)
	l.Users[1].YouTubeDownloads = 4
	l.LastActive[1] = &now

	require.NoError(t, fm.SaveToFile(path, l))

	// The tmp file must not survive a successful save.
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	restored, err := fm.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), restored.TotalDownloads)
	p := restored.Users[1]
	require.NotNil(t, p)
	assert.Equal(t, "Sara", p.FirstName)
	assert.Equal(t, int64(4), p.YouTubeDownloads)
	require.NotNil(t, p.LastActive)
	assert.True(t, p.LastActive.Equal(now))
	require.NotNil(t, restored.LastActive[1])
	assert.True(t, restored.LastActive[1].Equal(now))
}

func TestFileManager_SaveOverwritesAtomically(t *testing.T) {
	fm := NewFileManager(&testutil.MockLogger{})
	path := filepath.Join(t.TempDir(), "ledger.json")

	first := models.NewLedger()
	first.TotalDownloads = 1
	require.NoError(t, fm.SaveToFile(path, first))

	second := models.NewLedger()
	second.TotalDownloads = 2
	require.NoError(t, fm.SaveToFile(path, second))

	restored, err := fm.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, int64(2), restored.TotalDownloads)
}

func TestFileManager_CorruptFileFails(t *testing.T) {
	fm := NewFileManager(&testutil.MockLogger{})
	path := filepath.Join(t.TempDir(), "ledger.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := fm.LoadFromFile(path)
	assert.Error(t, err)
}

func TestFileManager_LoadNormalizes(t *testing.T) {
	fm := NewFileManager(&testutil.MockLogger{})
	path := filepath.Join(t.TempDir(), "ledger.json")

	// A document written before the status field and index existed.
	raw := `{"users":{"3":{"first_name":"Old","last_active":"2025-01-02T03:04:05Z"}},"total_downloads":9}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	restored, err := fm.LoadFromFile(path)
	require.NoError(t, err)
	p := restored.Users[3]
	require.NotNil(t, p)
	assert.Equal(t, int64(3), p.UserID)
	assert.Equal(t, models.StatusActive, p.Status)
	require.NotNil(t, restored.LastActive[3])
}
