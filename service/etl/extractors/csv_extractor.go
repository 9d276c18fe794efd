/*
 * @module service/etl/extractors/csv_extractor
 * @description CSV数据抽取器，从分隔文本文件中抽取球队记录，逐行容错
 * @architecture 分层架构 - 数据抽取层
 * @documentReference ai_docs/sports_etl_design.md
 * @stateFlow 文件读取 -> 表头跳过 -> 逐行解析 -> 记录列表输出
 * @rules 记录级解析失败仅跳过该行，文件级失败返回空列表，抽取器永不返回错误
 * @dependencies encoding/csv, log/slog, sportsdata-etl/service/models
 * @refs service/etl/pipeline
 */

package extractors

import (
	"encoding/csv"
	"log/slog"
	"os"
	"strings"
	"time"

	"sportsdata-etl/service/models"
)

const csvDateLayout = "2006-01-02"

// CSVDataExtractor CSV数据抽取器
type CSVDataExtractor struct{}

// NewCSVDataExtractor 创建CSV数据抽取器实例
func NewCSVDataExtractor() *CSVDataExtractor {
	return &CSVDataExtractor{}
}

// ExtractTeams 从CSV文件中抽取球队列表
func (e *CSVDataExtractor) ExtractTeams(filePath string) []models.Team {
	teams := make([]models.Team, 0)

	file, err := os.Open(filePath)
	if err != nil {
		slog.Error("读取CSV文件失败", "path", filePath, "error", err)
		return teams
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		slog.Error("解析CSV文件失败", "path", filePath, "error", err)
		return teams
	}

	if len(records) == 0 {
		slog.Warn("CSV文件为空", "path", filePath)
		return teams
	}

	// 首行为表头，无条件跳过
	headers := records[0]
	slog.Info("开始处理CSV文件", "path", filePath, "headers", strings.Join(headers, ", "))

	for i, record := range records[1:] {
		lineNumber := i + 2
		team, ok := e.parseTeamRecord(record, lineNumber)
		if ok {
			teams = append(teams, team)
		}
	}

	slog.Info("CSV球队抽取完成", "path", filePath, "count", len(teams))
	return teams
}

// parseTeamRecord 解析单行球队记录，字段不满足要求时跳过该行
func (e *CSVDataExtractor) parseTeamRecord(record []string, lineNumber int) (models.Team, bool) {
	if len(record) < 6 {
		slog.Warn("CSV记录列数不足", "line", lineNumber, "expected", 6, "got", len(record))
		return models.Team{}, false
	}

	teamID := strings.TrimSpace(record[0])
	name := strings.TrimSpace(record[1])
	city := strings.TrimSpace(record[2])
	league := strings.TrimSpace(record[3])
	foundedStr := strings.TrimSpace(record[4])
	venue := strings.TrimSpace(record[5])

	if teamID == "" || name == "" || city == "" || league == "" {
		slog.Warn("CSV记录缺少必填字段", "line", lineNumber)
		return models.Team{}, false
	}

	var founded *time.Time
	if foundedStr != "" {
		parsed, err := time.Parse(csvDateLayout, foundedStr)
		if err != nil {
			slog.Warn("CSV记录日期格式无效", "line", lineNumber, "founded", foundedStr)
			return models.Team{}, false
		}
		founded = &parsed
	}

	return models.Team{
		TeamID:  teamID,
		Name:    name,
		City:    city,
		League:  league,
		Founded: founded,
		Venue:   venue,
	}, true
}

// ValidateCSVStructure 轻量级结构预检，仅校验表头宽度
func (e *CSVDataExtractor) ValidateCSVStructure(filePath string) bool {
	file, err := os.Open(filePath)
	if err != nil {
		slog.Error("校验CSV文件结构失败", "path", filePath, "error", err)
		return false
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		slog.Error("校验CSV文件结构失败", "path", filePath, "error", err)
		return false
	}

	if len(records) == 0 {
		slog.Error("CSV文件为空", "path", filePath)
		return false
	}

	if len(records[0]) < 6 {
		slog.Error("CSV结构无效", "expected", 6, "got", len(records[0]))
		return false
	}

	return true
}
