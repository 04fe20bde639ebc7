package occupancy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/polifinder/classroom_bot/internal/staticdata"
)

const samplePage = `
<html><body>
<div id="tableContainer">
<table>
<tr><td>intestazione</td></tr>
<tr><td>orario</td></tr>
<tr><td>legenda</td></tr>
<tr><td class="innerEdificio" colspan="50">Milano Leonardo-Aule-Edificio 26</td></tr>
<tr class="normalRow">
  <td class="dove"><a href="OccupazioneAula.do?idaula=1234">A 1.1</a></td>
  <td class="slot" colspan="6"><a href="#">ANALISI MATEMATICA 1</a></td>
  <td>&nbsp;</td>
  <td class="slot" colspan="4"><a href="#">FISICA</a></td>
</tr>
<tr class="normalRow">
  <td class="dove"><a href="OccupazioneAula.do?idaula=777">B2</a></td>
</tr>
<tr class="normalRow">
  <td class="dove"><a href="OccupazioneAula.do?idaula=999">PROVA_ASICT</a></td>
  <td class="slot" colspan="4"><a href="#">TEST</a></td>
</tr>
<tr><td class="innerEdificio" colspan="50">Milano Leonardo-Aule-Edificio 3</td></tr>
<tr class="normalRow">
  <td></td>
  <td class="dove"><a href="OccupazioneAula.do?idaula=42">C3</a></td>
  <td class="slot" colspan="2"><a href="#">CHIMICA</a></td>
</tr>
</table>
</div>
</body></html>`

func newTestExtractor() *Extractor {
	power := staticdata.NewPowerIndex([]int{1234, 42})
	return NewExtractor(power, staticdata.GarbageRooms, "https://example.org/controller/", zap.NewNop())
}

func TestExtract(t *testing.T) {
	schedule, err := newTestExtractor().Extract(strings.NewReader(samplePage))
	require.NoError(t, err)

	building := schedule["Edificio 26"]
	require.NotNil(t, building, "building from header row must be present")

	room := building["A1.1"]
	require.NotNil(t, room, "room name must be stripped of spaces")
	assert.Equal(t, "https://example.org/controller/OccupazioneAula.do?idaula=1234", room.Link)
	assert.True(t, room.HasPower)

	// Курсор: комната не двигает время, slot(6) = 1.5ч, пустая ячейка 0.25ч
	require.Len(t, room.Lessons, 2)
	assert.Equal(t, "ANALISI MATEMATICA 1", room.Lessons[0].Name)
	assert.InDelta(t, 7.75, room.Lessons[0].From, 1e-9)
	assert.InDelta(t, 9.25, room.Lessons[0].To, 1e-9)
	assert.InDelta(t, 9.5, room.Lessons[1].From, 1e-9)
	assert.InDelta(t, 10.5, room.Lessons[1].To, 1e-9)

	// Аудитория без занятий регистрируется с пустым списком
	free := building["B2"]
	require.NotNil(t, free)
	assert.Empty(t, free.Lessons)
	assert.False(t, free.HasPower)
}

func TestExtractDropsGarbageRooms(t *testing.T) {
	schedule, err := newTestExtractor().Extract(strings.NewReader(samplePage))
	require.NoError(t, err)

	for buildingName, building := range schedule {
		assert.NotContains(t, building, "PROVA_ASICT", "garbage room leaked into %s", buildingName)
	}
}

func TestExtractSecondBuilding(t *testing.T) {
	schedule, err := newTestExtractor().Extract(strings.NewReader(samplePage))
	require.NoError(t, err)

	building := schedule["Edificio 3"]
	require.NotNil(t, building)

	// Перед маркером аудитории стоит пустая ячейка: занятие начинается в 8:00
	room := building["C3"]
	require.NotNil(t, room)
	require.Len(t, room.Lessons, 1)
	assert.InDelta(t, 8.0, room.Lessons[0].From, 1e-9)
	assert.InDelta(t, 8.5, room.Lessons[0].To, 1e-9)
	assert.True(t, room.HasPower)
}

func TestExtractMissingContainer(t *testing.T) {
	_, err := newTestExtractor().Extract(strings.NewReader("<html><body><p>manutenzione</p></body></html>"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceFormat)
}

func TestExtractBadBuildingHeadingKeepsPrevious(t *testing.T) {
	page := `
<html><body><div id="tableContainer"><table>
<tr><td>h</td></tr><tr><td>h</td></tr><tr><td>h</td></tr>
<tr><td class="innerEdificio">Campus-Aule-Edificio 9</td></tr>
<tr><td class="innerEdificio">SenzaTrattini</td></tr>
<tr class="normalRow">
  <td class="dove"><a href="OccupazioneAula.do?idaula=5">D4</a></td>
</tr>
</table></div></body></html>`

	schedule, err := newTestExtractor().Extract(strings.NewReader(page))
	require.NoError(t, err)

	// Непарсящийся заголовок не фатален: аудитория уходит в предыдущее здание
	building := schedule["Edificio 9"]
	require.NotNil(t, building)
	assert.Contains(t, building, "D4")
}

func TestExtractRoomWithoutNumericID(t *testing.T) {
	page := `
<html><body><div id="tableContainer"><table>
<tr><td>h</td></tr><tr><td>h</td></tr><tr><td>h</td></tr>
<tr><td class="innerEdificio">Campus-Aule-Edificio 1</td></tr>
<tr class="normalRow">
  <td class="dove"><a href="OccupazioneAula.do">E5</a></td>
</tr>
</table></div></body></html>`

	schedule, err := newTestExtractor().Extract(strings.NewReader(page))
	require.NoError(t, err)

	room := schedule["Edificio 1"]["E5"]
	require.NotNil(t, room)
	assert.False(t, room.HasPower, "room without id defaults to no power")
}
