package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"autostore/shipsync/internal/domains/common/job"
	"autostore/shipsync/pkg/config"
	"autostore/shipsync/pkg/lmstfy"
	"autostore/shipsync/pkg/model"
)

var (
	configPath   = flag.String("config", "./config/worker.yaml", "配置文件路径")
	queueName    = flag.String("queue", "", "触发队列名（缺省取配置里第一个 worker 的队列）")
	statusFilter = flag.String("status", "", "订单状态过滤（缺省 INSTRUCT）")
	dateFrom     = flag.String("date-from", "", "时间窗起点（yyyy-MM-dd）")
	dateTo       = flag.String("date-to", "", "时间窗终点（yyyy-MM-dd）")
	delay        = flag.Uint("delay", 0, "延迟投递秒数")
)

func main() {
	flag.Parse()

	fmt.Println("========================================")
	fmt.Println("  Enqueue - SHIPSYNC 触发消息投递工具")
	fmt.Println("========================================")

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	queue := *queueName
	if queue == "" {
		if len(cfg.Workers) == 0 {
			fmt.Println("❌ No workers configured and no -queue given")
			os.Exit(1)
		}
		queue = cfg.Workers[0].QueueName
	}

	// 2. 组装标准 Job 信封
	requestID := uuid.New().String()
	envelope := &job.Job{
		Payload: &job.JobPayload{
			Data: &job.JobPayloadData{
				RequestID:  requestID,
				ActionType: model.ActionTypeInvoiceUpload,
				Data: &model.InvoiceUploadTrigger{
					StatusFilter: *statusFilter,
					DateFrom:     *dateFrom,
					DateTo:       *dateTo,
				},
			},
		},
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		fmt.Printf("❌ Failed to marshal trigger: %v\n", err)
		os.Exit(1)
	}

	// 3. 投递到触发队列
	client, err := lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token)
	if err != nil {
		fmt.Printf("❌ Failed to create lmstfy client: %v\n", err)
		os.Exit(1)
	}

	// TTL 0 表示不过期
	if err := client.Publish(queue, data, 0, uint32(*delay)); err != nil {
		fmt.Printf("❌ Failed to publish trigger: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Trigger enqueued: queue=%s, request_id=%s\n", queue, requestID)
}
