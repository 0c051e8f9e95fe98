package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config 全局配置
type Config struct {
	App     AppConfig      `mapstructure:"app"`
	Store   StoreConfig    `mapstructure:"store"`
	Rabbit  RabbitConfig   `mapstructure:"rabbit"`
	Lmstfy  LmstfyConfig   `mapstructure:"lmstfy"`
	Redis   RedisConfig    `mapstructure:"redis"`
	MySQL   MySQLConfig    `mapstructure:"mysql"`
	Workers []WorkerConfig `mapstructure:"workers"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name     string `mapstructure:"name"`
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
}

// StoreConfig 店铺配置
// 显式传入任务，不再读取进程级环境变量
type StoreConfig struct {
	StoreID  string `mapstructure:"store_id"`
	VendorID string `mapstructure:"vendor_id"`
}

// RabbitConfig RabbitMQ 配置（协作方请求/应答与邮件通知）
type RabbitConfig struct {
	URL          string        `mapstructure:"url"`
	OnchQueue    string        `mapstructure:"onch_queue"`    // 订单管理方队列
	CoupangQueue string        `mapstructure:"coupang_queue"` // 市场方队列
	MailQueue    string        `mapstructure:"mail_queue"`    // 邮件通知队列
	RPCTimeout   time.Duration `mapstructure:"rpc_timeout"`   // 单次请求/应答超时
}

// LmstfyConfig Lmstfy 配置（触发队列）
type LmstfyConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Namespace string `mapstructure:"namespace"`
	Token     string `mapstructure:"token"`
}

// RedisConfig Redis 配置（任务运行事件频道）
type RedisConfig struct {
	Addr            string `mapstructure:"addr"`
	Password        string `mapstructure:"password"`
	DB              int    `mapstructure:"db"`
	RunEventChannel string `mapstructure:"run_event_channel"`
}

// MySQLConfig MySQL 配置（承运商编码覆盖表，DSN 为空则使用内置表）
type MySQLConfig struct {
	DSN string `mapstructure:"dsn"`
}

// WorkerConfig Worker 配置
type WorkerConfig struct {
	Name       string           `mapstructure:"name"`
	QueueName  string           `mapstructure:"queue_name"`
	Subscriber SubscriberConfig `mapstructure:"subscriber"`
	Processor  ProcessorConfig  `mapstructure:"processor"`
}

// SubscriberConfig Subscriber 配置
type SubscriberConfig struct {
	Threads      int           `mapstructure:"threads"`       // 并发拉取数
	Rate         time.Duration `mapstructure:"rate"`          // 拉取速率
	Timeout      time.Duration `mapstructure:"timeout"`       // 拉取超时
	TTR          time.Duration `mapstructure:"ttr"`           // Time-To-Run
	ErrorBackoff time.Duration `mapstructure:"error_backoff"` // 错误退避时间
}

// ProcessorConfig Processor 配置
type ProcessorConfig struct {
	Threads    int           `mapstructure:"threads"`     // 并发处理数
	BufferSize int           `mapstructure:"buffer_size"` // Channel 缓冲大小
	Timeout    time.Duration `mapstructure:"timeout"`     // 单个任务超时
}

// Load 加载配置文件
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config failed: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}

	return &cfg, nil
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}
	if c.Store.StoreID == "" {
		return fmt.Errorf("store.store_id is required")
	}
	if c.Rabbit.URL == "" {
		return fmt.Errorf("rabbit.url is required")
	}
	if c.Lmstfy.Host == "" {
		return fmt.Errorf("lmstfy.host is required")
	}
	if len(c.Workers) == 0 {
		return fmt.Errorf("at least one worker is required")
	}
	return nil
}

// ApplyDefaults 填充缺省值
func (c *Config) ApplyDefaults() {
	if c.Rabbit.OnchQueue == "" {
		c.Rabbit.OnchQueue = "onch-queue"
	}
	if c.Rabbit.CoupangQueue == "" {
		c.Rabbit.CoupangQueue = "coupang-queue"
	}
	if c.Rabbit.MailQueue == "" {
		c.Rabbit.MailQueue = "mail-queue"
	}
	if c.Rabbit.RPCTimeout <= 0 {
		c.Rabbit.RPCTimeout = 30 * time.Second
	}
	if c.Redis.RunEventChannel == "" {
		c.Redis.RunEventChannel = "invoice_upload_complete"
	}
}
