package formatting

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polifinder/classroom_bot/internal/model"
)

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "09:15", FormatTime(9.25))
	assert.Equal(t, "15:45", FormatTime(15.75))
	assert.Equal(t, "20:00", FormatTime(20))
	assert.Equal(t, "08:30", FormatTime(8.5))
}

func TestFormatRoomTextMode(t *testing.T) {
	room := model.FreeRoom{Name: "A1.1", Link: "https://example.org/a", Until: 20, HasPower: true}

	line := FormatRoom(room, model.FormatText, "free until")
	assert.Contains(t, line, `href="https://example.org/a"`)
	assert.Contains(t, line, "free until 20")
	assert.Contains(t, line, "🔌")

	room.HasPower = false
	room.Until = 13.5
	line = FormatRoom(room, model.FormatText, "free until")
	assert.Contains(t, line, "free until 13.5")
	assert.NotContains(t, line, "🔌")
}

func TestFormatRoomEmojiMode(t *testing.T) {
	room := model.FreeRoom{Name: "A1.1", Link: "https://example.org/a", Until: 13.5, HasPower: true}

	line := FormatRoom(room, model.FormatEmoji, "free until")
	assert.Contains(t, line, "13:30")
	assert.Contains(t, line, "🔌")
	assert.NotContains(t, line, "free until")
}

func TestBuildMessagesGroupsByBuilding(t *testing.T) {
	freeRooms := map[string][]model.FreeRoom{
		"Edificio 3":  {{Name: "C3", Until: 20}},
		"Edificio 26": {{Name: "A1", Until: 20}, {Name: "B2", Until: 18}},
	}

	messages := BuildMessages(freeRooms, model.FormatText, "free until")
	require.Len(t, messages, 1)

	// Здания в алфавитном порядке, каждое с заголовком
	msg := messages[0]
	assert.Contains(t, msg, "<b>Edificio 26</b>")
	assert.Contains(t, msg, "<b>Edificio 3</b>")
	assert.Less(t, strings.Index(msg, "Edificio 26"), strings.Index(msg, "Edificio 3"))
}

func TestBuildMessagesEmpty(t *testing.T) {
	assert.Nil(t, BuildMessages(nil, model.FormatText, "free until"))
	assert.Nil(t, BuildMessages(map[string][]model.FreeRoom{}, model.FormatText, "free until"))
}

func TestBuildMessagesSplitsLongOutput(t *testing.T) {
	freeRooms := make(map[string][]model.FreeRoom)
	for i := 0; i < 60; i++ {
		building := fmt.Sprintf("Edificio %02d", i)
		for j := 0; j < 10; j++ {
			freeRooms[building] = append(freeRooms[building], model.FreeRoom{
				Name:  fmt.Sprintf("A%d.%d", i, j),
				Link:  "https://example.org/controller/OccupazioneAula.do?idaula=12345",
				Until: 20,
			})
		}
	}

	messages := BuildMessages(freeRooms, model.FormatText, "free until")
	require.Greater(t, len(messages), 1, "long output must be split")
	for _, msg := range messages {
		assert.LessOrEqual(t, len(msg), maxMessageLength)
	}
}
