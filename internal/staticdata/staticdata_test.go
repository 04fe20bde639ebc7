package staticdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polifinder/classroom_bot/internal/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadLocations(t *testing.T) {
	path := writeFile(t, "locations.json", `{
		"Milano Leonardo": {"code": "MIA", "sedi": {"Campus Bonardi": "MIA02"}},
		"Como": {"code": "COE", "sedi": {}}
	}`)

	locations, err := LoadLocations(path)
	require.NoError(t, err)

	code, ok := locations.CodeFor("Milano Leonardo")
	require.True(t, ok)
	assert.Equal(t, "MIA", code)

	// Сайт находится и без указания кампуса
	code, ok = locations.CodeFor("Campus Bonardi")
	require.True(t, ok)
	assert.Equal(t, "MIA02", code)

	_, ok = locations.CodeFor("Atlantide")
	assert.False(t, ok)
}

func TestLoadPowerIndex(t *testing.T) {
	path := writeFile(t, "power.json", `[176, 1337]`)

	power, err := LoadPowerIndex(path)
	require.NoError(t, err)

	assert.True(t, power.HasPower(176))
	assert.True(t, power.HasPower(1337))
	assert.False(t, power.HasPower(5))
}

func TestPowerIndexNilSafe(t *testing.T) {
	var power *PowerIndex
	assert.False(t, power.HasPower(176))
}

func TestLoadOpeningHours(t *testing.T) {
	path := writeFile(t, "hours.json", `{
		"MIA": {
			"rules": [{"match": "Edificio 26", "hours": {"0-4": [8, 20], "5": [8, 13]}}],
			"default": {"0-4": [8, 20]}
		}
	}`)

	hours, err := LoadOpeningHours(path)
	require.NoError(t, err)

	rule := hours["MIA"]
	require.NotNil(t, rule)
	require.Len(t, rule.Rules, 1)
	assert.Equal(t, "Edificio 26", rule.Rules[0].Match)
	assert.Equal(t, model.OpeningWindow{Open: 8, Close: 13}, rule.Rules[0].Hours["5"])
	assert.Equal(t, model.OpeningWindow{Open: 8, Close: 20}, rule.Default["0-4"])
}

func TestLoadOpeningHoursMissingFile(t *testing.T) {
	hours, err := LoadOpeningHours(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err, "missing opening hours file means no restrictions")
	assert.Nil(t, hours)
}

func TestLoadOpeningHoursRejectsInvertedWindow(t *testing.T) {
	path := writeFile(t, "hours.json", `{"MIA": {"default": {"0-4": [20, 8]}}}`)

	_, err := LoadOpeningHours(path)
	assert.Error(t, err)
}
