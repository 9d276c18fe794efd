/*
 * @module service/etl/loaders/loader
 * @description 加载器公共接口定义，屏蔽数据库与对象存储两种落地方式的差异
 * @architecture 策略模式
 * @documentReference ai_docs/sports_etl_design.md
 * @stateFlow 转换完成的数据 -> 加载器 -> 落地结果
 * @rules 加载器保证部分失败时返回失败结果而非panic
 * @dependencies service/models
 * @refs service/etl/pipeline/etl_pipeline.go
 */

package loaders

import (
	"context"

	"sportsdata-etl/service/models"
)

// Loader 数据加载器接口，数据库与对象存储各有一套实现
type Loader interface {
	// LoadAllData 按球队、球员、比赛的顺序加载全部数据
	LoadAllData(ctx context.Context, data *models.TransformedData) (*models.LoadResult, error)
}
