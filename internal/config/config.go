package config

import (
	"github.com/blues/cfl/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Ledger   LedgerConfig   `mapstructure:"ledger"`
	Chain    ChainConfig    `mapstructure:"chain"`
	Archive  ArchiveConfig  `mapstructure:"archive"`
	Task     TaskConfig     `mapstructure:"task"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// LedgerConfig 账本配置
type LedgerConfig struct {
	Owner         string `mapstructure:"owner"`           // 平台管理员地址
	FeeRecipient  string `mapstructure:"fee_recipient"`   // 平台费接收地址
	FeeBps        int64  `mapstructure:"fee_bps"`         // 平台费率（基点）
	MinGoalAmount int64  `mapstructure:"min_goal_amount"` // 最小目标金额
}

// ChainConfig 转账通道配置
type ChainConfig struct {
	RpcUrl     string `mapstructure:"rpc_url"`     // RPC节点URL
	PrivateKey string `mapstructure:"private_key"` // 出账私钥
	ChainId    int64  `mapstructure:"chain_id"`    // 链ID
}

// ArchiveConfig 事件归档配置
type ArchiveConfig struct {
	QueueSize int `mapstructure:"queue_size"` // 事件队列长度
	Workers   int `mapstructure:"workers"`    // 归档协程数
}

type TaskConfig struct {
	Interval int `mapstructure:"interval"` // 秒
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/cfl")

	// 设置默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "crowdfunding")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("ledger.fee_bps", 250)
	viper.SetDefault("ledger.min_goal_amount", 1)
	viper.SetDefault("archive.queue_size", 1024)
	viper.SetDefault("archive.workers", 4)
	viper.SetDefault("task.interval", 60)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
