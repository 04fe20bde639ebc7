package occupancy

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/polifinder/classroom_bot/internal/model"
	"github.com/polifinder/classroom_bot/internal/staticdata"
)

// Временная сетка таблицы занятости
const (
	// DayStartHour время первой колонки сетки (07:45)
	DayStartHour = 7.75
	// TimeShift ширина одной колонки в часах (четверть часа)
	TimeShift = 0.25
	// MinHour самое раннее время начала поиска
	MinHour = 8.0
	// MaxHour время закрытия по умолчанию и самое позднее время поиска
	MaxHour = 20.0
)

// Маркеры классов в таблице занятости. Привязаны к конкретной
// версии вёрстки страницы и меняются вместе с ней.
const (
	tableContainerID = "tableContainer"
	buildingMarker   = "innerEdificio"
	roomMarker       = "dove"
	lectureMarker    = "slot"
	headerRowCount   = 3
)

// Extractor разбирает HTML страницу занятости в структурированное
// расписание. Розетки определяются через PowerIndex по числовому
// идентификатору аудитории из ссылки.
type Extractor struct {
	power   *staticdata.PowerIndex
	garbage []string
	baseURL string
	logger  *zap.Logger
}

// NewExtractor создаёт экстрактор расписаний
func NewExtractor(power *staticdata.PowerIndex, garbage []string, baseURL string, logger *zap.Logger) *Extractor {
	return &Extractor{
		power:   power,
		garbage: garbage,
		baseURL: baseURL,
		logger:  logger,
	}
}

// Extract строит расписание из HTML документа для одной пары (кампус, дата).
// Возвращает ErrSourceFormat, если контейнер таблицы отсутствует.
// Аномалии на уровне отдельных строк и ячеек логируются и пропускаются.
func (e *Extractor) Extract(r io.Reader) (model.Schedule, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse occupancy page: %w", err)
	}

	container := findByID(doc, tableContainerID)
	if container == nil {
		return nil, fmt.Errorf("table container %q: %w", tableContainerID, ErrSourceFormat)
	}

	rows := collectElements(container, "tr")
	if len(rows) <= headerRowCount {
		rows = nil
	} else {
		rows = rows[headerRowCount:]
	}

	// Первые строки сетки идут до первого заголовка здания,
	// для них используется название-заглушка
	schedule := model.Schedule{}
	buildingName := "-"
	schedule[buildingName] = model.Building{}

	for _, row := range rows {
		cells := collectElements(row, "td")
		if len(cells) == 0 {
			continue
		}

		if _, hasRowClass := attrValue(row, "class"); !hasRowClass {
			if hasClass(cells[0], buildingMarker) {
				buildingName = e.buildingName(nodeText(cells[0]), buildingName)
				if _, ok := schedule[buildingName]; !ok {
					schedule[buildingName] = model.Building{}
				}
			}
			continue
		}

		e.extractGridRow(cells, schedule[buildingName])
	}

	e.dropGarbage(schedule)

	return schedule, nil
}

// buildingName выделяет название здания из текста заголовка:
// третий фрагмент при разбиении по "-". При неожиданном формате
// строка не считается фатальной, остаётся предыдущее название.
func (e *Extractor) buildingName(heading, previous string) string {
	parts := strings.Split(heading, "-")
	if len(parts) < 3 {
		e.logger.Warn("Unparsable building heading, keeping previous",
			zap.String("heading", heading),
			zap.String("previous", previous))
		return previous
	}
	return parts[2]
}

// extractGridRow проходит по ячейкам строки сетки слева направо,
// ведя курсор времени от начала сетки
func (e *Extractor) extractGridRow(cells []*html.Node, building model.Building) {
	cursor := DayStartHour
	var room *model.Room

	for _, cell := range cells {
		switch {
		case hasClass(cell, roomMarker):
			room = e.registerRoom(cell, building, room)

		case hasClass(cell, lectureMarker) && room != nil:
			duration := float64(e.colSpan(cell)) / 4
			room.Lessons = append(room.Lessons, model.Lesson{
				Name: anchorText(cell),
				From: cursor,
				To:   cursor + duration,
			})
			cursor += duration

		default:
			cursor += TimeShift
		}
	}
}

// registerRoom читает ячейку-маркер аудитории и регистрирует аудиторию
// в здании, если она встретилась впервые
func (e *Extractor) registerRoom(cell *html.Node, building model.Building, current *model.Room) *model.Room {
	anchor := firstElement(cell, "a")
	if anchor == nil {
		e.logger.Warn("Room cell without link, skipping")
		return current
	}

	name := strings.ReplaceAll(nodeText(anchor), " ", "")
	href, _ := attrValue(anchor, "href")

	if existing, ok := building[name]; ok {
		return existing
	}

	room := &model.Room{
		Name:     name,
		Link:     e.baseURL + href,
		HasPower: e.power.HasPower(e.roomID(href)),
	}
	building[name] = room
	return room
}

// roomID достаёт числовой идентификатор аудитории из строки запроса
// ссылки (последний сегмент после "="). Отсутствие идентификатора
// не фатально: аудитория считается без розеток.
func (e *Extractor) roomID(href string) int {
	idx := strings.LastIndex(href, "=")
	if idx < 0 {
		e.logger.Warn("Room link without numeric id", zap.String("href", href))
		return 0
	}
	id, err := strconv.Atoi(href[idx+1:])
	if err != nil {
		e.logger.Warn("Room link with unparsable id", zap.String("href", href))
		return 0
	}
	return id
}

// colSpan возвращает ширину ячейки занятия в колонках сетки
func (e *Extractor) colSpan(cell *html.Node) int {
	raw, ok := attrValue(cell, "colspan")
	if !ok {
		e.logger.Warn("Lecture cell without colspan")
		return 1
	}
	span, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || span < 1 {
		e.logger.Warn("Lecture cell with unparsable colspan", zap.String("colspan", raw))
		return 1
	}
	return span
}

// dropGarbage убирает из расписания несуществующие аудитории
func (e *Extractor) dropGarbage(schedule model.Schedule) {
	for _, building := range schedule {
		for _, code := range e.garbage {
			delete(building, code)
		}
	}
}

// findByID ищет элемент с данным атрибутом id в поддереве
func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		if v, ok := attrValue(n, "id"); ok && v == id {
			return n
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findByID(child, id); found != nil {
			return found
		}
	}
	return nil
}

// collectElements собирает все элементы с данным тегом в порядке документа
func collectElements(n *html.Node, tag string) []*html.Node {
	var nodes []*html.Node
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && child.Data == tag {
			nodes = append(nodes, child)
		}
		nodes = append(nodes, collectElements(child, tag)...)
	}
	return nodes
}

// firstElement возвращает первый элемент с данным тегом в поддереве
func firstElement(n *html.Node, tag string) *html.Node {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && child.Data == tag {
			return child
		}
		if found := firstElement(child, tag); found != nil {
			return found
		}
	}
	return nil
}

// attrValue возвращает значение атрибута элемента
func attrValue(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// hasClass проверяет, что среди классов элемента есть token
func hasClass(n *html.Node, token string) bool {
	class, ok := attrValue(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(class) {
		if c == token {
			return true
		}
	}
	return false
}

// nodeText собирает текстовое содержимое поддерева
func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		sb.WriteString(nodeText(child))
	}
	return sb.String()
}

// anchorText возвращает текст первой ссылки в ячейке
func anchorText(cell *html.Node) string {
	anchor := firstElement(cell, "a")
	if anchor == nil {
		return ""
	}
	return strings.TrimSpace(nodeText(anchor))
}
