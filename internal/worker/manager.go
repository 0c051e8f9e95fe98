package worker

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/atomic"

	"autostore/shipsync/internal/business"
	"autostore/shipsync/internal/business/carrier"
	"autostore/shipsync/internal/domains"
	"autostore/shipsync/internal/domains/common"
	"autostore/shipsync/internal/framework"
	"autostore/shipsync/pkg/config"
	"autostore/shipsync/pkg/infra/mysql"
	"autostore/shipsync/pkg/infra/redis"
	"autostore/shipsync/pkg/lmstfy"
	"autostore/shipsync/pkg/logger"
	"autostore/shipsync/pkg/rabbitmq"
)

// Manager 接口
type Manager interface {
	Start() error
	Shutdown()
}

// ManagerInstance Manager 实例
type ManagerInstance struct {
	ctx          context.Context
	cfg          *config.Config
	lmstfyClient *lmstfy.Client
	rabbitClient *rabbitmq.Client
	redisPubSub  *redis.PubSub // 可为 nil（未配置 Redis 时）
	deps         *common.Deps
	workers      []Worker
	closing      *atomic.Bool
	shutdownCh   chan struct{}
	wg           sync.WaitGroup
	mu           sync.RWMutex
	logger       logger.Logger
}

// NewManagerInstance 创建 Manager 并装配全部依赖
func NewManagerInstance(cfg *config.Config, log logger.Logger) (Manager, error) {
	ctx := context.Background()
	cfg.ApplyDefaults()

	// 初始化 lmstfy 客户端（触发队列）
	lmstfyClient, err := lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create lmstfy client: %w", err)
	}

	// 初始化 RabbitMQ 客户端（协作方请求/应答 + 邮件通知）
	rabbitClient, err := rabbitmq.NewClient(cfg.Rabbit.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to create rabbitmq client: %w", err)
	}
	for _, queue := range []string{cfg.Rabbit.OnchQueue, cfg.Rabbit.CoupangQueue, cfg.Rabbit.MailQueue} {
		if err := rabbitClient.CreateQueue(queue); err != nil {
			rabbitClient.Close()
			return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
		}
	}

	// 初始化 Redis 任务运行事件频道（可选）
	var redisPubSub *redis.PubSub
	if cfg.Redis.Addr != "" {
		redisPubSub, err = redis.NewPubSub(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.RunEventChannel)
		if err != nil {
			rabbitClient.Close()
			return nil, fmt.Errorf("failed to create redis pubsub: %w", err)
		}
	}

	// 加载承运商编码表（DSN 为空时使用内置表）
	carriers, err := loadCarrierTable(ctx, cfg, log)
	if err != nil {
		rabbitClient.Close()
		return nil, err
	}

	// 装配业务服务
	gateway := rabbitmq.NewGateway(rabbitClient, cfg.Rabbit.OnchQueue, cfg.Rabbit.CoupangQueue, cfg.Rabbit.RPCTimeout)
	notifier := business.NewMailNotifier(rabbitClient, cfg.Rabbit.MailQueue, cfg.Store.StoreID, log)

	var events business.EventPublisher
	if redisPubSub != nil {
		events = redisPubSub
	}

	deliveryService := business.NewDeliveryService(
		business.Config{
			StoreID:  cfg.Store.StoreID,
			VendorID: cfg.Store.VendorID,
		},
		gateway,
		notifier,
		events,
		carriers,
		log,
	)

	log.Infof(ctx, "[Manager] Initialized: store=%s, queues=[%s %s %s]",
		cfg.Store.StoreID, cfg.Rabbit.OnchQueue, cfg.Rabbit.CoupangQueue, cfg.Rabbit.MailQueue)

	return &ManagerInstance{
		ctx:          ctx,
		cfg:          cfg,
		lmstfyClient: lmstfyClient,
		rabbitClient: rabbitClient,
		redisPubSub:  redisPubSub,
		deps: &common.Deps{
			Logger:   log,
			Delivery: deliveryService,
		},
		closing:    atomic.NewBool(false),
		shutdownCh: make(chan struct{}),
		workers:    make([]Worker, 0),
		logger:     log,
	}, nil
}

// loadCarrierTable 构建承运商编码表，合并数据库覆盖映射
func loadCarrierTable(ctx context.Context, cfg *config.Config, log logger.Logger) (*carrier.Table, error) {
	if cfg.MySQL.DSN == "" {
		return carrier.NewTable(), nil
	}

	dao, err := mysql.NewCarrierDAO(cfg.MySQL.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to create carrier dao: %w", err)
	}
	defer dao.Close()

	overrides, err := dao.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load carrier overrides: %w", err)
	}

	log.Infof(ctx, "[Manager] Loaded %d carrier code overrides", len(overrides))

	return carrier.NewTableWithOverrides(overrides), nil
}

// Start 启动 Manager
func (m *ManagerInstance) Start() error {
	m.logger.Infof(m.ctx, "[Manager] Starting...")

	// 1. 加载所有 Worker
	if err := m.loadWorkers(); err != nil {
		return fmt.Errorf("failed to load workers: %w", err)
	}

	m.logger.Infof(m.ctx, "[Manager] All workers loaded, count: %d", len(m.workers))

	// 2. 启动所有 Worker（每个 Worker 在独立 goroutine）
	for _, worker := range m.workers {
		w := worker
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			w.Start()
		}()
		m.logger.Infof(m.ctx, "[Manager] Worker started: %s", w.GetName())
	}

	m.logger.Infof(m.ctx, "[Manager] Start success")

	// 3. 阻塞等待退出信号
	<-m.shutdownCh

	return nil
}

// Shutdown 优雅退出
func (m *ManagerInstance) Shutdown() {
	m.logger.Infof(m.ctx, "[Manager] Began to close")

	// 原子操作，保证并发安全
	if m.closing.CAS(false, true) {
		// 1. 所有 Worker 安全退出
		for _, worker := range m.workers {
			m.logger.Infof(m.ctx, "[Manager] Shutting down worker: %s", worker.GetName())
			worker.Shutdown()
		}

		// 2. 等待所有 Worker 退出
		m.wg.Wait()

		// 3. 关闭外部连接
		if err := m.rabbitClient.Close(); err != nil {
			m.logger.Warnf(m.ctx, "[Manager] Close rabbitmq failed: %v", err)
		}
		if m.redisPubSub != nil {
			if err := m.redisPubSub.Close(); err != nil {
				m.logger.Warnf(m.ctx, "[Manager] Close redis failed: %v", err)
			}
		}

		// 4. 关闭信号通道
		close(m.shutdownCh)

		m.logger.Infof(m.ctx, "[Manager] Shutdown complete")
	}
}

// loadWorkers 加载所有 Worker
func (m *ManagerInstance) loadWorkers() error {
	// 遍历配置中的所有 Worker
	for _, workerCfg := range m.cfg.Workers {
		// 创建 Subscriber 配置
		subCfg := &framework.SubscriberConfig{
			QueueName:    workerCfg.QueueName,
			Concurrency:  workerCfg.Subscriber.Threads,
			Rate:         workerCfg.Subscriber.Rate,
			Timeout:      workerCfg.Subscriber.Timeout,
			TTR:          workerCfg.Subscriber.TTR,
			ErrorBackoff: workerCfg.Subscriber.ErrorBackoff,
		}

		// 创建 Processor 配置
		procCfg := &framework.ProcessorConfig{
			Concurrency: workerCfg.Processor.Threads,
			BufferSize:  workerCfg.Processor.BufferSize,
			Timeout:     workerCfg.Processor.Timeout,
		}

		// 获取 GetProcess 函数
		getProcess := domains.GetProcess(m.logger, m.deps)

		// 创建 Worker 实例
		worker := NewWorkerInstance(
			m.ctx,
			workerCfg.Name,
			subCfg,
			procCfg,
			m.lmstfyClient, // MessageSource
			getProcess,     // lmstfyx.Proc
			m.logger,
		)

		m.workers = append(m.workers, worker)
	}

	return nil
}
