package config

import (
	"log"

	"github.com/BurntSushi/toml"
)

type MainConfig struct {
	AppName string `toml:"appName"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
}

type MysqlConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	DatabaseName string `toml:"databaseName"`
}

type LogConfig struct {
	LogPath string `toml:"logPath"`
}

type JwtConfig struct {
	Key           string `toml:"key"`
	ExpireHours   int    `toml:"expireHours"`
	Issuer        string `toml:"issuer"`
	AdminUser     string `toml:"adminUser"`
	AdminPassword string `toml:"adminPassword"`
}

type MilvusConfig struct {
	Address    string `toml:"address"`
	Username   string `toml:"username"`
	Password   string `toml:"password"`
	DBName     string `toml:"dbName"`
	VectorDim  int    `toml:"vectorDim"`
	MetricType string `toml:"metricType"`
}

type KafkaConfig struct {
	Brokers         []string `toml:"brokers"`
	ClientID        string   `toml:"clientID"`
	IngestTopic     string   `toml:"ingestTopic"`
	ConsumerGroupID string   `toml:"consumerGroupID"`
	Partitions      int32    `toml:"partitions"`
	Replication     int16    `toml:"replication"`
}

type AIEmbeddingConfig struct {
	Provider        string `toml:"provider"`
	APIKey          string `toml:"apiKey"`
	BaseURL         string `toml:"baseURL"`
	Region          string `toml:"region"`
	Model           string `toml:"model"`
	Dimensions      int    `toml:"dimensions"`
	TimeoutSeconds  int    `toml:"timeoutSeconds"`
	RetryTimes      int    `toml:"retryTimes"`
	User            string `toml:"user"`
	ByAzure         bool   `toml:"byAzure"`
	AzureAPIVersion string `toml:"azureApiVersion"`
}

type AIConfig struct {
	Embedding AIEmbeddingConfig `toml:"embedding"`
}

// RagConfig 知识库检索相关参数
type RagConfig struct {
	ChunkSize           int     `toml:"chunkSize"`
	ChunkOverlap        int     `toml:"chunkOverlap"`
	RetrievalTopK       int     `toml:"retrievalTopK"`
	ConfidenceThreshold float64 `toml:"confidenceThreshold"`
}

// AgentConfig 对话引擎相关参数
type AgentConfig struct {
	MaxFallbackCount      int `toml:"maxFallbackCount"`
	MaxConversationLength int `toml:"maxConversationLength"`
}

type RedisConfig struct {
	Enabled      bool   `toml:"enabled"`
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	Password     string `toml:"password"`
	DB           int    `toml:"db"`
	PoolSize     int    `toml:"poolSize"`
	MinIdleConns int    `toml:"minIdleConns"`
}

type Config struct {
	MainConfig   `toml:"mainConfig"`
	MysqlConfig  `toml:"mysqlConfig"`
	JwtConfig    `toml:"jwtConfig"`
	MilvusConfig `toml:"milvusConfig"`
	KafkaConfig  `toml:"kafkaConfig"`
	AIConfig     `toml:"aiConfig"`
	RagConfig    `toml:"ragConfig"`
	AgentConfig  `toml:"agentConfig"`
	LogConfig    `toml:"logConfig"`
	RedisConfig  `toml:"redisConfig"`
}

var config *Config

func LoadConfig() error {
	configPath := "configs/config_local.toml"
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		log.Printf("加载配置文件失败: %v, 尝试使用默认设置", err)
		return err
	}
	applyDefaults(config)
	return nil
}

// applyDefaults 未配置项回落到内置缺省值
func applyDefaults(c *Config) {
	if c.RagConfig.ChunkSize <= 0 {
		c.RagConfig.ChunkSize = 800
	}
	if c.RagConfig.ChunkOverlap <= 0 {
		c.RagConfig.ChunkOverlap = 100
	}
	if c.RagConfig.RetrievalTopK <= 0 {
		c.RagConfig.RetrievalTopK = 5
	}
	if c.RagConfig.ConfidenceThreshold <= 0 {
		c.RagConfig.ConfidenceThreshold = 0.7
	}
	if c.AgentConfig.MaxFallbackCount <= 0 {
		c.AgentConfig.MaxFallbackCount = 3
	}
	if c.AgentConfig.MaxConversationLength <= 0 {
		c.AgentConfig.MaxConversationLength = 20
	}
	if c.MilvusConfig.VectorDim <= 0 {
		c.MilvusConfig.VectorDim = 384
	}
	if c.MilvusConfig.MetricType == "" {
		c.MilvusConfig.MetricType = "L2"
	}
}

func GetConfig() *Config {
	if config == nil {
		config = new(Config)
		_ = LoadConfig()
	}
	return config
}
