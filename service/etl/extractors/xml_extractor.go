/*
 * @module service/etl/extractors/xml_extractor
 * @description XML数据抽取器，从标记格式文件中抽取比赛记录
 * @architecture 分层架构 - 数据抽取层
 * @documentReference ai_docs/sports_etl_design.md
 * @stateFlow 文件读取 -> game元素定位 -> 逐条解析 -> 记录列表输出
 * @rules 主客队相同的记录拒绝；比分字段可选，出现负数或非数字时跳过整条记录
 * @dependencies encoding/xml, log/slog, sportsdata-etl/service/models
 * @refs service/etl/pipeline
 */

package extractors

import (
	"encoding/xml"
	"errors"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"sportsdata-etl/service/models"
)

const xmlDateTimeLayout = "2006-01-02 15:04:05"

// gameElement game元素的原始文本内容
type gameElement struct {
	GameID     string `xml:"gameId"`
	HomeTeamID string `xml:"homeTeamId"`
	AwayTeamID string `xml:"awayTeamId"`
	Date       string `xml:"date"`
	HomeScore  string `xml:"homeScore"`
	AwayScore  string `xml:"awayScore"`
	Status     string `xml:"status"`
}

// XMLFeedExtractor XML数据抽取器
type XMLFeedExtractor struct{}

// NewXMLFeedExtractor 创建XML数据抽取器实例
func NewXMLFeedExtractor() *XMLFeedExtractor {
	return &XMLFeedExtractor{}
}

// ExtractGames 从XML文件中抽取比赛列表
func (e *XMLFeedExtractor) ExtractGames(filePath string) []models.Game {
	games := make([]models.Game, 0)

	elements, err := e.readGameElements(filePath)
	if err != nil {
		slog.Error("解析XML文件失败", "path", filePath, "error", err)
		return games
	}

	slog.Info("开始处理XML文件", "path", filePath)

	for i, element := range elements {
		game, ok := e.parseGameElement(element, i+1)
		if ok {
			games = append(games, game)
		}
	}

	slog.Info("XML比赛抽取完成", "path", filePath, "count", len(games))
	return games
}

// readGameElements 定位文档中所有game元素
func (e *XMLFeedExtractor) readGameElements(filePath string) ([]gameElement, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var elements []gameElement
	decoder := xml.NewDecoder(file)

	for {
		token, err := decoder.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}

		if start, ok := token.(xml.StartElement); ok && start.Name.Local == "game" {
			var element gameElement
			if err := decoder.DecodeElement(&element, &start); err != nil {
				return nil, err
			}
			elements = append(elements, element)
		}
	}

	return elements, nil
}

// parseGameElement 解析单条比赛记录，不满足约束时跳过
func (e *XMLFeedExtractor) parseGameElement(element gameElement, gameNumber int) (models.Game, bool) {
	gameID := strings.TrimSpace(element.GameID)
	homeTeamID := strings.TrimSpace(element.HomeTeamID)
	awayTeamID := strings.TrimSpace(element.AwayTeamID)
	dateStr := strings.TrimSpace(element.Date)
	status := strings.TrimSpace(element.Status)

	if gameID == "" || homeTeamID == "" || awayTeamID == "" || dateStr == "" || status == "" {
		slog.Warn("XML比赛记录缺少必填字段", "game", gameNumber,
			"gameId", gameID, "homeTeamId", homeTeamID, "awayTeamId", awayTeamID, "date", dateStr, "status", status)
		return models.Game{}, false
	}

	if homeTeamID == awayTeamID {
		slog.Warn("XML比赛记录主客队相同", "game", gameNumber, "teamId", homeTeamID)
		return models.Game{}, false
	}

	date, err := time.Parse(xmlDateTimeLayout, dateStr)
	if err != nil {
		slog.Warn("XML比赛记录日期格式无效", "game", gameNumber, "date", dateStr)
		return models.Game{}, false
	}

	homeScore, ok := e.parseScore(element.HomeScore, gameNumber, "homeScore")
	if !ok {
		return models.Game{}, false
	}

	awayScore, ok := e.parseScore(element.AwayScore, gameNumber, "awayScore")
	if !ok {
		return models.Game{}, false
	}

	return models.Game{
		GameID:     gameID,
		HomeTeamID: homeTeamID,
		AwayTeamID: awayTeamID,
		Date:       date,
		HomeScore:  homeScore,
		AwayScore:  awayScore,
		Status:     status,
	}, true
}

// parseScore 解析可选的比分字段，文本缺失返回nil，负数或非数字导致整条记录跳过
func (e *XMLFeedExtractor) parseScore(raw string, gameNumber int, field string) (*int, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, true
	}

	score, err := strconv.Atoi(trimmed)
	if err != nil {
		slog.Warn("XML比赛记录比分格式无效", "game", gameNumber, "field", field, "value", trimmed)
		return nil, false
	}
	if score < 0 {
		slog.Warn("XML比赛记录比分为负数", "game", gameNumber, "field", field, "value", score)
		return nil, false
	}

	return &score, true
}

// ValidateXMLStructure 轻量级结构预检，要求至少一个game元素且首个元素必填字段齐全
func (e *XMLFeedExtractor) ValidateXMLStructure(filePath string) bool {
	elements, err := e.readGameElements(filePath)
	if err != nil {
		slog.Error("校验XML文件结构失败", "path", filePath, "error", err)
		return false
	}

	if len(elements) == 0 {
		slog.Error("XML文件不包含game元素", "path", filePath)
		return false
	}

	first := elements[0]
	required := map[string]string{
		"gameId":     first.GameID,
		"homeTeamId": first.HomeTeamID,
		"awayTeamId": first.AwayTeamID,
		"date":       first.Date,
		"status":     first.Status,
	}
	for name, value := range required {
		if strings.TrimSpace(value) == "" {
			slog.Error("XML比赛元素缺少必填字段", "field", name)
			return false
		}
	}

	return true
}
