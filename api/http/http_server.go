package http

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/warrior-ram/demo-ai-chatbot/internal/config"
	"github.com/warrior-ram/demo-ai-chatbot/internal/initial"
	jwtMiddleware "github.com/warrior-ram/demo-ai-chatbot/internal/middleware/jwt"
	aiService "github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/application/service"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/domain/repository"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/infrastructure/chunking"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/infrastructure/embedding"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/infrastructure/llm"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/infrastructure/mq"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/infrastructure/mq/kafka"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/infrastructure/pipeline"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/infrastructure/queue"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/infrastructure/state"
	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/infrastructure/vectordb"
	botService "github.com/warrior-ram/demo-ai-chatbot/internal/modules/bot/application/service"
	botPersistence "github.com/warrior-ram/demo-ai-chatbot/internal/modules/bot/infrastructure/persistence"
	botHandler "github.com/warrior-ram/demo-ai-chatbot/internal/modules/bot/interface/http"
	chatService "github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/application/service"
	chatPersistence "github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/infrastructure/persistence"
	chatHandler "github.com/warrior-ram/demo-ai-chatbot/internal/modules/chat/interface/http"
	redisClient "github.com/warrior-ram/demo-ai-chatbot/pkg/redis"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/ssl"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/util"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/ws"
	"github.com/warrior-ram/demo-ai-chatbot/pkg/zlog"

	cors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	mentity "github.com/milvus-io/milvus-sdk-go/v2/entity"
	"go.uber.org/zap"
)

var GE *gin.Engine

func init() {
	conf := config.GetConfig()

	GE = gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	GE.Use(cors.New(corsConfig))
	GE.Use(ssl.TlsHandler(fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port)))

	wsHub := ws.NewHub()

	// 仓储层
	botRepo := botPersistence.NewBotRepository(initial.GormDB)
	docRepo := botPersistence.NewDocumentRepository(initial.GormDB)
	sessionRepo := chatPersistence.NewSessionRepository(initial.GormDB)
	messageRepo := chatPersistence.NewMessageRepository(initial.GormDB)
	leadRepo := chatPersistence.NewLeadRepository(initial.GormDB)

	// 向量库：Milvus 不可用时退化为进程内存储
	var vectorStore repository.VectorStore
	if initial.MilvusClient != nil {
		ms, err := vectordb.NewMilvusStore(initial.MilvusClient, conf.MilvusConfig.VectorDim, mentity.MetricType(conf.MilvusConfig.MetricType))
		if err != nil {
			zlog.Fatal("Milvus 向量库初始化失败: " + err.Error())
		}
		vectorStore = ms
	} else {
		vectorStore = vectordb.NewMemoryStore(conf.MilvusConfig.VectorDim)
	}

	// 嵌入与检索/入库管道
	embedder, meta, err := embedding.NewEmbedderFromConfig(context.Background(), conf)
	if err != nil {
		zlog.Fatal("嵌入模型初始化失败: " + err.Error())
	}
	zlog.Info("embedding provider ready", zap.String("provider", meta.Provider), zap.Int("dim", meta.Dim))

	chunker := chunking.NewRecursiveChunker(conf.RagConfig.ChunkSize, conf.RagConfig.ChunkOverlap)
	ingestPipeline, err := pipeline.NewIngestPipeline(vectorStore, embedder, chunker, meta.Dim)
	if err != nil {
		zlog.Fatal("入库管道初始化失败: " + err.Error())
	}
	retrievePipeline, err := pipeline.NewRetrievePipeline(vectorStore, embedder, meta.Dim)
	if err != nil {
		zlog.Fatal("检索管道初始化失败: " + err.Error())
	}

	// 会话生成状态：Redis 可用时跨实例共享
	var stateStore state.Store
	if redisClient.IsConnected() {
		stateStore = state.NewRedisStore(redisClient.GetClient())
	} else {
		stateStore = state.NewMemoryStore()
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	engine := llm.NewDemoEngine(stateStore, rng, conf.AgentConfig.MaxFallbackCount, conf.AgentConfig.MaxConversationLength)

	// Kafka 配置了 broker 才走异步入库
	var publisher mq.Publisher
	ingestTopic := conf.KafkaConfig.IngestTopic
	if len(conf.KafkaConfig.Brokers) > 0 {
		if ingestTopic == "" {
			ingestTopic = "kb-ingest"
		}
		clientID := conf.KafkaConfig.ClientID
		if clientID == "" {
			// 每个实例一个唯一 clientID，便于 broker 侧排查
			clientID = conf.MainConfig.AppName + "-" + util.GenerateShortUUID()
		}
		kafkaConf := kafka.Config{
			Brokers:  conf.KafkaConfig.Brokers,
			ClientID: clientID,
			GroupID:  conf.KafkaConfig.ConsumerGroupID,
			Topics:   []string{ingestTopic},
		}
		if err := kafka.EnsureTopic(kafkaConf, ingestTopic, conf.KafkaConfig.Partitions, conf.KafkaConfig.Replication); err != nil {
			zlog.Warn("kafka topic 初始化失败，退化为同步入库", zap.Error(err))
		} else if p, err := kafka.NewPublisher(kafkaConf); err != nil {
			zlog.Warn("kafka 生产者初始化失败，退化为同步入库", zap.Error(err))
		} else {
			publisher = p
			if consumer, err := kafka.NewConsumer(kafkaConf); err != nil {
				zlog.Warn("kafka 消费者初始化失败", zap.Error(err))
			} else {
				worker := queue.NewIngestConsumerWorker(consumer, docRepo, ingestPipeline)
				go func() {
					if err := worker.Run(context.Background()); err != nil {
						zlog.Error("kb ingest worker exited: " + err.Error())
					}
				}()
			}
		}
	}

	// 应用服务
	ingestSvc := aiService.NewIngestService(ingestPipeline, vectorStore, docRepo, publisher, ingestTopic)
	ragSvc := aiService.NewRAGService(retrievePipeline, engine, conf.RagConfig.RetrievalTopK, conf.RagConfig.ConfidenceThreshold)

	botSvc := botService.NewBotService(botRepo)
	docSvc := botService.NewDocumentService(botRepo, docRepo, ingestSvc)
	sessionSvc := chatService.NewSessionService(sessionRepo, messageRepo, botRepo)
	leadSvc := chatService.NewLeadService(leadRepo, sessionRepo)
	chatSvc := chatService.NewChatService(sessionRepo, messageRepo, leadRepo, ragSvc)
	statsSvc := chatService.NewStatsService(sessionRepo, leadRepo, botRepo, docRepo)
	authSvc := chatService.NewAuthService(conf)

	// 接口层
	botH := botHandler.NewBotHandler(botSvc)
	docH := botHandler.NewDocumentHandler(docSvc)
	sessionH := chatHandler.NewSessionHandler(sessionSvc)
	chatH := chatHandler.NewChatHandler(chatSvc)
	leadH := chatHandler.NewLeadHandler(leadSvc)
	adminH := chatHandler.NewAdminHandler(authSvc, statsSvc)
	wsH := chatHandler.NewWsHandler(wsHub, sessionSvc, chatSvc, botSvc)

	healthInfo := gin.H{
		"status":  "healthy",
		"service": conf.MainConfig.AppName,
		"version": "1.0.0",
	}
	GE.GET("/", func(c *gin.Context) { c.JSON(200, healthInfo) })
	GE.GET("/health", func(c *gin.Context) { c.JSON(200, healthInfo) })

	GE.GET("/ws/chat/:session_id", wsH.Chat)

	v1 := GE.Group("/api/v1")
	v1.POST("/login", adminH.Login)

	v1.POST("/bots", botH.Create)
	v1.GET("/bots", botH.List)
	v1.GET("/bots/:id", botH.Get)
	v1.PUT("/bots/:id", botH.Update)
	v1.DELETE("/bots/:id", botH.Delete)

	v1.POST("/chat/session", sessionH.CreateOrGet)
	v1.GET("/chat/session/:session_id/history", sessionH.History)
	v1.POST("/chat/message", chatH.SendMessage)

	v1.POST("/leads", leadH.Capture)
	v1.GET("/leads", leadH.List)
	v1.GET("/leads/session/:session_id", leadH.GetBySession)

	v1.POST("/documents/upload", docH.Upload)
	v1.POST("/documents/text", docH.AddText)
	v1.GET("/documents/bot/:bot_id", docH.ListByBot)

	authed := v1.Group("/")
	authed.Use(jwtMiddleware.Auth())
	authed.GET("/admin/stats", adminH.Stats)
	authed.DELETE("/documents/:id", docH.Delete)
}
