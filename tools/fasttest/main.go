package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"autostore/shipsync/internal/business"
	"autostore/shipsync/internal/business/carrier"
	"autostore/shipsync/pkg/logger"
	"autostore/shipsync/pkg/model"
)

var (
	scenarioPath = flag.String("scenario", "./internal/domains/handlers/delivery/testcase/scenarios.json", "场景文件路径")
	storeID      = flag.String("store", "A01023920", "店铺 ID")
)

// Scenario 测试场景
type Scenario struct {
	Name        string                `json:"name"`
	Waybills    []model.WaybillRecord `json:"waybills"`
	Orders      []model.PendingOrder  `json:"orders"`
	Outcomes    []model.UploadOutcome `json:"outcomes"`     // 为空则按成功合成
	UploadError string                `json:"upload_error"` // 非空则上传调用直接失败
	WantMatched int                   `json:"want_matched"`
	WantErr     bool                  `json:"want_err"`
}

// fakeGateway 脚本化协作方网关
type fakeGateway struct {
	sc Scenario
}

func (g *fakeGateway) FetchWaybills(ctx context.Context, req *model.FetchWaybillsRequest) ([]model.WaybillRecord, error) {
	return g.sc.Waybills, nil
}

func (g *fakeGateway) FetchOrders(ctx context.Context, req *model.FetchOrdersRequest) ([]model.PendingOrder, error) {
	return g.sc.Orders, nil
}

func (g *fakeGateway) UploadInvoices(ctx context.Context, req *model.UploadInvoicesRequest) ([]model.UploadOutcome, error) {
	if g.sc.UploadError != "" {
		return nil, fmt.Errorf("%s", g.sc.UploadError)
	}
	if g.sc.Outcomes != nil {
		return g.sc.Outcomes, nil
	}
	outcomes := make([]model.UploadOutcome, 0, len(req.Invoices))
	for _, inv := range req.Invoices {
		outcomes = append(outcomes, model.UploadOutcome{
			OrderID:       inv.OrderID,
			ShipmentBoxID: inv.ShipmentBoxID,
			Status:        model.OutcomeStatusSuccess,
		})
	}
	return outcomes, nil
}

// printPublisher 把通知打印到终端的邮件发布器
type printPublisher struct{}

func (p *printPublisher) Emit(ctx context.Context, queueName string, event string, payload interface{}) error {
	data, _ := json.Marshal(payload)
	fmt.Printf("  📧 notify: queue=%s, event=%s, payload=%s\n", queueName, event, string(data))
	return nil
}

func main() {
	flag.Parse()

	fmt.Println("========================================")
	fmt.Println("  FastTest - SHIPSYNC Worker 快速测试工具")
	fmt.Println("========================================")

	scenarios, err := loadScenarios(*scenarioPath)
	if err != nil {
		fmt.Printf("❌ Failed to load scenarios: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ Loaded %d scenarios from %s\n", len(scenarios), *scenarioPath)

	fmt.Println("\n========================================")
	fmt.Println("  Running Scenarios")
	fmt.Println("========================================")

	successCount := 0
	failureCount := 0

	for i, sc := range scenarios {
		fmt.Printf("\n[Scenario %d/%d] %s\n", i+1, len(scenarios), sc.Name)
		fmt.Println("----------------------------------------")

		startTime := time.Now()
		err := runScenario(sc)
		duration := time.Since(startTime)

		if err != nil {
			fmt.Printf("❌ FAILED: %v\n", err)
			fmt.Printf("⏱️  Duration: %v\n", duration)
			failureCount++
		} else {
			fmt.Printf("✅ PASSED\n")
			fmt.Printf("⏱️  Duration: %v\n", duration)
			successCount++
		}
	}

	fmt.Println("\n========================================")
	fmt.Println("  Summary")
	fmt.Println("========================================")
	fmt.Printf("Total: %d\n", len(scenarios))
	fmt.Printf("Passed: %d ✅\n", successCount)
	fmt.Printf("Failed: %d ❌\n", failureCount)

	if failureCount > 0 {
		os.Exit(1)
	}
}

// loadScenarios 从 JSON 文件加载场景
func loadScenarios(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenarios []Scenario
	if err := json.Unmarshal(data, &scenarios); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scenarios: %w", err)
	}

	return scenarios, nil
}

// runScenario 跑一个场景
func runScenario(sc Scenario) error {
	ctx := context.Background()
	log := logger.NewNop()

	notifier := business.NewMailNotifier(&printPublisher{}, "mail-queue", *storeID, log)
	svc := business.NewDeliveryService(
		business.Config{StoreID: *storeID},
		&fakeGateway{sc: sc},
		notifier,
		nil, // 无 Redis 旁路
		carrier.NewTable(),
		log,
	)

	report := svc.Run(ctx, fmt.Sprintf("fasttest-%d", time.Now().UnixNano()), nil)
	notifier.Wait()

	fmt.Printf("  matched=%d, succeeded=%d, failed=%d, unknown=%d, err=%v\n",
		report.Matched, report.Succeeded, report.Failed, report.Unknown, report.Err)

	if sc.WantErr != (report.Err != nil) {
		return fmt.Errorf("want_err=%v, got err=%v", sc.WantErr, report.Err)
	}
	if report.Matched != sc.WantMatched {
		return fmt.Errorf("want_matched=%d, got %d", sc.WantMatched, report.Matched)
	}

	return nil
}
