/*
 * @module service/etl/extractors/json_extractor
 * @description JSON数据抽取器，从树形结构文件中抽取球员记录，透明支持三种输入形态
 * @architecture 分层架构 - 数据抽取层
 * @documentReference ai_docs/sports_etl_design.md
 * @stateFlow 文件读取 -> 形态归一化 -> 逐条解析 -> 记录列表输出
 * @rules 支持裸数组、带players字段的对象、单条记录对象三种形态；统计子对象缺省为零
 * @dependencies encoding/json, github.com/spf13/cast, sportsdata-etl/service/models
 * @refs service/etl/pipeline
 */

package extractors

import (
	"encoding/json"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cast"

	"sportsdata-etl/service/models"
)

// JSONApiExtractor JSON数据抽取器
type JSONApiExtractor struct{}

// NewJSONApiExtractor 创建JSON数据抽取器实例
func NewJSONApiExtractor() *JSONApiExtractor {
	return &JSONApiExtractor{}
}

// ExtractPlayers 从JSON文件中抽取球员列表
func (e *JSONApiExtractor) ExtractPlayers(filePath string) []models.Player {
	players := make([]models.Player, 0)

	content, err := os.ReadFile(filePath)
	if err != nil {
		slog.Error("读取JSON文件失败", "path", filePath, "error", err)
		return players
	}

	var root interface{}
	if err := json.Unmarshal(content, &root); err != nil {
		slog.Error("解析JSON文件失败", "path", filePath, "error", err)
		return players
	}

	slog.Info("开始处理JSON文件", "path", filePath)

	for _, node := range e.normalizePlayerNodes(root) {
		player, ok := e.parsePlayerNode(node)
		if ok {
			players = append(players, player)
		}
	}

	slog.Info("JSON球员抽取完成", "path", filePath, "count", len(players))
	return players
}

// normalizePlayerNodes 将三种输入形态归一化为统一的记录列表
func (e *JSONApiExtractor) normalizePlayerNodes(root interface{}) []map[string]interface{} {
	nodes := make([]map[string]interface{}, 0)

	switch value := root.(type) {
	case []interface{}:
		// 裸数组形态
		for _, item := range value {
			if node, ok := item.(map[string]interface{}); ok {
				nodes = append(nodes, node)
			}
		}
	case map[string]interface{}:
		if playersNode, exists := value["players"]; exists {
			// 带players数组字段的对象形态
			if items, ok := playersNode.([]interface{}); ok {
				for _, item := range items {
					if node, ok := item.(map[string]interface{}); ok {
						nodes = append(nodes, node)
					}
				}
			}
		} else {
			// 单条记录对象形态
			nodes = append(nodes, value)
		}
	}

	return nodes
}

// parsePlayerNode 解析单条球员记录，必填字段缺失时跳过
func (e *JSONApiExtractor) parsePlayerNode(node map[string]interface{}) (models.Player, bool) {
	playerID := e.getTextValue(node, "playerId")
	name := e.getTextValue(node, "name")
	teamID := e.getTextValue(node, "teamId")
	position := e.getTextValue(node, "position")
	age, hasAge := e.getIntValue(node, "age")

	if playerID == "" || name == "" || teamID == "" || position == "" || !hasAge {
		slog.Warn("JSON球员记录缺少必填字段",
			"playerId", playerID, "name", name, "teamId", teamID, "position", position, "hasAge", hasAge)
		return models.Player{}, false
	}

	statistics := e.parsePlayerStatistics(node["statistics"])

	return models.Player{
		PlayerID:   playerID,
		Name:       name,
		TeamID:     teamID,
		Position:   position,
		Age:        age,
		Statistics: statistics,
	}, true
}

// parsePlayerStatistics 解析统计子对象，缺失的数值字段一律取零
func (e *JSONApiExtractor) parsePlayerStatistics(node interface{}) models.PlayerStatistics {
	statsNode, ok := node.(map[string]interface{})
	if !ok {
		return models.PlayerStatistics{}
	}

	return models.PlayerStatistics{
		GamesPlayed: cast.ToInt(statsNode["gamesPlayed"]),
		Points:      cast.ToInt(statsNode["points"]),
		Assists:     cast.ToInt(statsNode["assists"]),
	}
}

// getTextValue 读取字符串字段，空白内容视为缺失
func (e *JSONApiExtractor) getTextValue(node map[string]interface{}, fieldName string) string {
	value, exists := node[fieldName]
	if !exists || value == nil {
		return ""
	}
	return strings.TrimSpace(cast.ToString(value))
}

// getIntValue 读取整数字段，返回值与存在标志
func (e *JSONApiExtractor) getIntValue(node map[string]interface{}, fieldName string) (int, bool) {
	value, exists := node[fieldName]
	if !exists || value == nil {
		return 0, false
	}
	return cast.ToInt(value), true
}

// ValidateJSONStructure 轻量级结构预检，校验顶层形态是否可被抽取
func (e *JSONApiExtractor) ValidateJSONStructure(filePath string) bool {
	content, err := os.ReadFile(filePath)
	if err != nil {
		slog.Error("校验JSON文件结构失败", "path", filePath, "error", err)
		return false
	}

	var root interface{}
	if err := json.Unmarshal(content, &root); err != nil {
		slog.Error("校验JSON文件结构失败", "path", filePath, "error", err)
		return false
	}

	switch value := root.(type) {
	case []interface{}:
		return len(value) > 0
	case map[string]interface{}:
		if playersNode, exists := value["players"]; exists {
			items, ok := playersNode.([]interface{})
			return ok && len(items) > 0
		}
		_, hasID := value["playerId"]
		_, hasName := value["name"]
		return hasID && hasName
	default:
		return false
	}
}
