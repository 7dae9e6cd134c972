package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MechanicShop/MechanicShop/internal/car"
	"github.com/MechanicShop/MechanicShop/internal/common/config"
	"github.com/MechanicShop/MechanicShop/internal/common/db"
	"github.com/MechanicShop/MechanicShop/internal/common/discovery"
	"github.com/MechanicShop/MechanicShop/internal/common/httpx"
	"github.com/MechanicShop/MechanicShop/internal/common/logger"
	"github.com/MechanicShop/MechanicShop/internal/common/middleware"
	"github.com/MechanicShop/MechanicShop/internal/common/tracing"
	"github.com/MechanicShop/MechanicShop/internal/customer"
	"github.com/MechanicShop/MechanicShop/internal/mechanic"
	"github.com/MechanicShop/MechanicShop/internal/report"
	"github.com/MechanicShop/MechanicShop/internal/request"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

var (
	configPath = flag.String("config", "configs/shop-service.json", "配置文件路径")
)

func main() {
	flag.Parse()

	// 加载配置
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 初始化日志
	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.Path)
	if err != nil {
		panic(fmt.Sprintf("failed to init logger: %v", err))
	}

	// 初始化链路追踪（全局 tracer，HTTP 层经 httpx.Tracing 产出 server span）
	_, closer, err := tracing.InitTracer(
		cfg.Server.Name,
		cfg.Jaeger.Endpoint,
		cfg.Jaeger.Sampler,
	)
	if err != nil {
		log.Warnf("failed to init tracer: %v", err)
	} else {
		defer closer.Close()
	}

	// 初始化数据库
	gormDB, err := db.NewMySQL(
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Database,
		cfg.Database.MaxIdle,
		cfg.Database.MaxOpen,
	)
	if err != nil {
		log.Fatalf("failed to init mysql: %v", err)
	}
	if err := gormDB.AutoMigrate(
		&customer.Customer{},
		&mechanic.Mechanic{},
		&car.Car{},
		&car.Ownership{},
		&request.ServiceRequest{},
		&request.ClosedRequest{},
	); err != nil {
		log.Fatalf("failed to migrate mysql schema: %v", err)
	}

	// 组装各领域服务
	customerSvc := customer.NewService(customer.NewRepo(gormDB))
	mechanicSvc := mechanic.NewService(mechanic.NewRepo(gormDB))
	carSvc := car.NewService(car.NewRepo(gormDB), customerSvc)
	requestSvc := request.NewService(request.NewRepo(gormDB), customerSvc, carSvc, mechanicSvc)
	reportBreaker := middleware.NewCircuitBreaker("report store", 5, 30*time.Second, 3)
	reportSvc := report.NewService(report.NewRepo(gormDB), reportBreaker)

	// HTTP 路由
	r := chi.NewRouter()
	r.Use(httpx.RequestID)
	r.Use(httpx.Tracing(cfg.Server.Name))
	r.Use(httpx.AccessLog(log))
	r.Use(httpx.Recovery(log))
	r.Use(middleware.HTTPRateLimit(middleware.NewTokenBucket(200, 100)))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		httpx.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Mount("/customers", customer.NewHandler(customerSvc).Routes())
	r.Mount("/mechanics", mechanic.NewHandler(mechanicSvc).Routes())
	r.Mount("/cars", car.NewHandler(carSvc).Routes())
	r.Mount("/requests", request.NewHandler(requestSvc).Routes())
	// 报表是全表聚合，额外用滑动窗口限速
	r.With(middleware.HTTPRateLimit(middleware.NewSlidingWindow(time.Minute, 60))).
		Mount("/reports", report.NewHandler(reportSvc).Routes())

	// 注册到 Consul
	consulClient, err := discovery.NewConsulClient(cfg.Consul.Host, cfg.Consul.Port)
	if err != nil {
		log.Warnf("failed to init consul client: %v", err)
	} else {
		serviceID := fmt.Sprintf("%s-%s", cfg.Server.Name, uuid.New().String())
		registry := discovery.NewServiceRegistry(
			consulClient,
			serviceID,
			cfg.Server.Name,
			cfg.Server.Host,
			cfg.Server.HTTPPort,
			[]string{"shop", "http"},
			"/healthz",
		)
		if err := registry.Register(); err != nil {
			log.Warnf("failed to register service: %v", err)
		} else {
			defer func() {
				if err := registry.Deregister(); err != nil {
					log.Warnf("failed to deregister service: %v", err)
				}
			}()
		}
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("%s listening on %s", cfg.Server.Name, srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("shop-service exited with error: %v", err)
		}
	case sig := <-quit:
		log.Infof("received signal %v, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Errorf("graceful shutdown failed: %v", err)
		}
	}
}
