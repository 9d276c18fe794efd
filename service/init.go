/*
 * @module service/init
 * @description 服务初始化模块，负责数据库连接、落地方式选择与ETL流水线装配
 * @architecture 分层架构 - 服务层
 * @documentReference ai_docs/sports_etl_design.md
 * @stateFlow 应用启动时执行初始化流程
 * @rules 数据库落地模式下连接失败直接终止进程，对象存储模式不建立数据库连接
 * @dependencies gorm.io/gorm, gorm.io/driver/postgres
 * @refs api/routes.go, main.go
 */

package service

import (
	"fmt"
	"log"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sportsdata-etl/client"
	"sportsdata-etl/service/database"
	"sportsdata-etl/service/etl/loaders"
	"sportsdata-etl/service/etl/metrics"
	"sportsdata-etl/service/etl/pipeline"
	"sportsdata-etl/service/etl/quality"
	"sportsdata-etl/service/models"
	"sportsdata-etl/service/scheduler"
)

// 落地方式
const (
	SinkDatabase    = "database"
	SinkObjectStore = "object_store"
)

var (
	DB                     *gorm.DB
	SinkType               string
	GlobalPipelineConfig   *models.PipelineConfig
	GlobalDatabaseLoader   *loaders.DatabaseLoader
	GlobalLoader           loaders.Loader
	GlobalQualityChecker   quality.QualityChecker
	GlobalMetricsCollector *metrics.MetricsCollector
	GlobalEtlPipeline      *pipeline.EtlPipeline
	GlobalEtlRunner        *scheduler.EtlRunner
)

func init() {
	SinkType = getEnvWithDefault("ETL_SINK", SinkDatabase)
	GlobalPipelineConfig = &models.PipelineConfig{
		TeamsCSVPath:    getEnvWithDefault("ETL_TEAMS_CSV", "data/teams.csv"),
		PlayersJSONPath: getEnvWithDefault("ETL_PLAYERS_JSON", "data/players.json"),
		GamesXMLPath:    getEnvWithDefault("ETL_GAMES_XML", "data/games.xml"),
	}

	GlobalMetricsCollector = metrics.NewMetricsCollector(prometheus.DefaultRegisterer)

	switch SinkType {
	case SinkObjectStore:
		initObjectStoreSink()
	default:
		SinkType = SinkDatabase
		initDatabase()
		runMigrations()
		initDatabaseSink()
	}

	GlobalEtlPipeline = pipeline.NewEtlPipeline(GlobalLoader, GlobalQualityChecker, GlobalMetricsCollector)
	GlobalEtlRunner = scheduler.NewEtlRunner(GlobalEtlPipeline, GlobalPipelineConfig)
	log.Println("服务初始化完成")
}

// initDatabase 初始化数据库连接
func initDatabase() {
	var dsn string

	// 优先使用DATABASE_URL环境变量
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		dsn = databaseURL
	} else {
		// 使用分离的环境变量构建连接字符串
		host := getEnvWithDefault("DB_HOST", "localhost")
		port := getEnvWithDefault("DB_PORT", "5432")
		user := getEnvWithDefault("DB_USER", "postgres")
		password := getEnvWithDefault("DB_PASSWORD", "postgres")
		dbname := getEnvWithDefault("DB_NAME", "sportsdata")
		sslmode := getEnvWithDefault("DB_SSLMODE", "disable")
		schema := getEnvWithDefault("DB_SCHEMA", "public")

		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s TimeZone=Asia/Shanghai",
			host, port, user, password, dbname, sslmode, schema)
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	log.Println("数据库连接成功")
}

// getEnvWithDefault 获取环境变量，如果不存在则返回默认值
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// runMigrations 运行数据库迁移
func runMigrations() {
	log.Println("开始运行数据库迁移...")

	if err := database.AutoMigrate(DB); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}
	log.Println("数据库表结构迁移完成")
}

// initDatabaseSink 装配数据库落地的加载器与质量检查器
func initDatabaseSink() {
	GlobalDatabaseLoader = loaders.NewDatabaseLoader(DB)
	GlobalLoader = GlobalDatabaseLoader
	GlobalQualityChecker = quality.NewDatabaseQualityChecker(DB)
}

// initObjectStoreSink 装配对象存储落地的加载器与质量检查器
func initObjectStoreSink() {
	bindingName := getEnvWithDefault("OBJECT_STORE_BINDING", "sports-object-store")
	prefix := getEnvWithDefault("OBJECT_STORE_PREFIX", "sports-data")

	store, err := client.NewDaprObjectStoreClient(bindingName)
	if err != nil {
		log.Fatalf("对象存储客户端初始化失败: %v", err)
	}

	GlobalLoader = loaders.NewObjectStoreLoader(store, prefix)
	GlobalQualityChecker = quality.NewObjectStoreQualityChecker(store, prefix)
}
