package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"sportsdata-etl/api"
	_ "sportsdata-etl/docs"
	"sportsdata-etl/logger"
	"sportsdata-etl/service"

	daprd "github.com/dapr/go-sdk/service/http"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

var (
	PORT         = 80
	BASE_CONTEXT = ""
	ETL_MODE     = "api"
)

func init() {
	if val := os.Getenv("LISTEN_PORT"); val != "" {
		PORT, _ = strconv.Atoi(val)
	}

	if val := os.Getenv("BASE_CONTEXT"); val != "" {
		BASE_CONTEXT = val
	}

	if val := os.Getenv("ETL_MODE"); val != "" {
		ETL_MODE = val
	}
}

// @title 体育数据ETL服务 API
// @version 1.0
// @description 体育数据ETL后台服务，提供球队、球员、比赛数据的抽取、转换、加载与质量评估功能
// @BasePath /swagger/sportsdata-etl
func main() {
	logger.InitLogger()

	// SCHEDULED模式下启动即执行一次流水线，并按cron表达式周期执行
	if strings.EqualFold(ETL_MODE, "SCHEDULED") {
		if _, err := service.GlobalEtlRunner.RunOnce(context.Background(), nil); err != nil {
			log.Printf("启动流水线执行失败: %v", err)
		}
		if spec := os.Getenv("ETL_CRON"); spec != "" {
			if err := service.GlobalEtlRunner.StartSchedule(spec); err != nil {
				log.Fatalf("启动定时调度失败: %v", err)
			}
			defer service.GlobalEtlRunner.Stop()
		}
	}

	mux := chi.NewRouter()

	// 如果有BASE_CONTEXT，则在该路径下挂载所有路由
	if BASE_CONTEXT != "" {
		mux.Route(BASE_CONTEXT, func(r chi.Router) {
			// 创建子路由器并初始化路由
			subMux := r.(*chi.Mux)
			api.InitRoute(subMux)
			r.Handle("/metrics", promhttp.Handler())
			r.Handle("/swagger*", httpSwagger.WrapHandler)
		})
	} else {
		api.InitRoute(mux)
		mux.Handle("/metrics", promhttp.Handler())
		mux.Handle("/swagger*", httpSwagger.WrapHandler)
	}

	s := daprd.NewServiceWithMux(":"+strconv.Itoa(PORT), mux)
	if err := s.Start(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("error: %v", err)
	}
}
