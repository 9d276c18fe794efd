/*
 * @module service/etl/loaders/object_store_loader
 * @description 对象存储加载器，将每次运行的数据按时间戳目录写入S3兼容桶并生成元数据文件
 * @architecture 数据访问层
 * @documentReference ai_docs/sports_etl_design.md
 * @stateFlow 生成运行时间戳 -> 写入teams/players/games对象 -> 写入metadata.json
 * @rules 元数据写入失败不影响本次加载结果，仅记录警告
 * @dependencies client, encoding/json
 * @refs service/etl/pipeline/etl_pipeline.go, service/etl/quality/object_store_quality_checker.go
 */

package loaders

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"sportsdata-etl/client"
	"sportsdata-etl/service/models"
)

// 对象键时间戳格式，字典序与时间序一致
const objectTimestampLayout = "2006-01-02-15-04-05"

// ObjectStoreLoader 对象存储加载器，目标桶由绑定组件配置决定
type ObjectStoreLoader struct {
	store  client.ObjectStore
	prefix string
	now    func() time.Time
}

// NewObjectStoreLoader 创建对象存储加载器，prefix为桶内的根目录
func NewObjectStoreLoader(store client.ObjectStore, prefix string) *ObjectStoreLoader {
	return &ObjectStoreLoader{
		store:  store,
		prefix: prefix,
		now:    time.Now,
	}
}

// LoadAllData 将本次运行的全部数据写入时间戳目录
func (l *ObjectStoreLoader) LoadAllData(ctx context.Context, data *models.TransformedData) (*models.LoadResult, error) {
	result := &models.LoadResult{}
	timestamp := l.now().Format(objectTimestampLayout)

	teamsLoaded, err := l.putRecords(ctx, timestamp, "teams", data.Teams)
	if err != nil {
		return l.failed(result, fmt.Errorf("写入球队对象失败: %w", err))
	}
	result.TeamsLoaded = teamsLoaded

	playersLoaded, err := l.putRecords(ctx, timestamp, "players", data.Players)
	if err != nil {
		return l.failed(result, fmt.Errorf("写入球员对象失败: %w", err))
	}
	result.PlayersLoaded = playersLoaded

	gamesLoaded, err := l.putRecords(ctx, timestamp, "games", data.Games)
	if err != nil {
		return l.failed(result, fmt.Errorf("写入比赛对象失败: %w", err))
	}
	result.GamesLoaded = gamesLoaded

	l.writeMetadata(ctx, timestamp, result)

	result.Success = true
	slog.Info("对象存储加载完成",
		"timestamp", timestamp,
		"teams", result.TeamsLoaded,
		"players", result.PlayersLoaded,
		"games", result.GamesLoaded)
	return result, nil
}

// putRecords 将一类记录序列化为JSON数组并写入对应目录，空批次不产生对象
func (l *ObjectStoreLoader) putRecords(ctx context.Context, timestamp, kind string, records interface{}) (int, error) {
	count := countRecords(records)
	if count == 0 {
		slog.Info("没有需要上传的数据", "kind", kind)
		return 0, nil
	}

	payload, err := json.Marshal(records)
	if err != nil {
		return 0, fmt.Errorf("序列化%s数据失败: %w", kind, err)
	}

	key := fmt.Sprintf("%s/%s/%s/%s-%s.json", l.prefix, timestamp, kind, kind, timestamp)
	if err := l.store.PutObject(ctx, key, payload); err != nil {
		return 0, err
	}
	return count, nil
}

func countRecords(records interface{}) int {
	switch v := records.(type) {
	case []models.Team:
		return len(v)
	case []models.Player:
		return len(v)
	case []models.Game:
		return len(v)
	}
	return 0
}

// writeMetadata 写入本次运行的元数据文件，失败只记录警告
func (l *ObjectStoreLoader) writeMetadata(ctx context.Context, timestamp string, result *models.LoadResult) {
	metadata := models.ObjectStoreMetadata{
		Timestamp:    timestamp,
		TeamsCount:   result.TeamsLoaded,
		PlayersCount: result.PlayersLoaded,
		GamesCount:   result.GamesLoaded,
		TotalRecords: result.TeamsLoaded + result.PlayersLoaded + result.GamesLoaded,
		LoadedAt:     l.now(),
	}

	payload, err := json.Marshal(metadata)
	if err != nil {
		slog.Warn("序列化元数据失败", "error", err)
		return
	}

	key := fmt.Sprintf("%s/%s/metadata.json", l.prefix, timestamp)
	if err := l.store.PutObject(ctx, key, payload); err != nil {
		slog.Warn("写入元数据失败", "key", key, "error", err)
	}
}

// failed 标记本次加载失败，失败步骤之前累计的计数保留在结果中
func (l *ObjectStoreLoader) failed(result *models.LoadResult, err error) (*models.LoadResult, error) {
	slog.Error("对象存储加载失败", "error", err)
	result.Success = false
	result.ErrorMessage = err.Error()
	return result, err
}

// LoadTeamsOnly 单独写入球队数据
func (l *ObjectStoreLoader) LoadTeamsOnly(ctx context.Context, teams []models.Team) (int, error) {
	return l.putRecords(ctx, l.now().Format(objectTimestampLayout), "teams", teams)
}

// LoadPlayersOnly 单独写入球员数据
func (l *ObjectStoreLoader) LoadPlayersOnly(ctx context.Context, players []models.Player) (int, error) {
	return l.putRecords(ctx, l.now().Format(objectTimestampLayout), "players", players)
}

// LoadGamesOnly 单独写入比赛数据
func (l *ObjectStoreLoader) LoadGamesOnly(ctx context.Context, games []models.Game) (int, error) {
	return l.putRecords(ctx, l.now().Format(objectTimestampLayout), "games", games)
}

// CheckConnection 通过列举前缀验证对象存储可达
func (l *ObjectStoreLoader) CheckConnection(ctx context.Context) error {
	if _, err := l.store.ListKeys(ctx, l.prefix); err != nil {
		return fmt.Errorf("对象存储连接检查失败: %w", err)
	}
	return nil
}
