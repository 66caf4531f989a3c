package bootstrap

import (
	"context"
	"fmt"

	"codal-docs-be/internal/config"
	"codal-docs-be/internal/controller"
	"codal-docs-be/internal/entity"
	"codal-docs-be/internal/feed"
	"codal-docs-be/internal/handler"
	"codal-docs-be/internal/pkg/logger"
	"codal-docs-be/internal/render"
	"codal-docs-be/internal/repository/memory"
	"codal-docs-be/internal/repository/unitofwork"
	"codal-docs-be/internal/selection"
	"codal-docs-be/internal/service"
	"codal-docs-be/internal/websocket"
	"codal-docs-be/pkg/events"
	pktNats "codal-docs-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SubjectController   controller.ISubjectController
	DocumentController  controller.IDocumentController
	RenderController    controller.IRenderController
	ArticleController   controller.IArticleController
	DashboardController controller.IDashboardController

	// Sync sessions
	SyncHandler  *handler.SyncHandler
	WebSocketHub *websocket.Hub
	Feed         *feed.Feed

	TaxonomyService service.ITaxonomyService
	Logger          logger.ILogger

	cfg     *config.Config
	ctx     context.Context
	cancel  context.CancelFunc
	pubSub  *gochannel.GoChannel
	rdb     *redis.Client
	relay   *feed.Relay
	natsPub *pktNats.Publisher
	natsSub *pktNats.Subscriber
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	ctx, cancel := context.WithCancel(context.Background())

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	syncLogger := logger.NewIsolatedLogger(cfg.App.SyncLogFilePath)

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)

	// 3. Infrastructure, all optional
	var eventPublisher events.Publisher = events.NopPublisher{}
	var natsPub *pktNats.Publisher
	var natsSub *pktNats.Subscriber
	if cfg.App.NatsURL != "" {
		pub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("Container", "Failed to connect to NATS Publisher", map[string]interface{}{"error": err.Error()})
		} else {
			natsPub = pub
			eventPublisher = pub
		}

		sub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("Container", "Failed to connect to NATS Subscriber", map[string]interface{}{"error": err.Error()})
		} else {
			natsSub = sub
		}
	}

	// Feed first: the relay and the publisher need it.
	loader := &documentLoader{}
	f := feed.New(loader, syncLogger, cfg.Sync.FetchTimeout)

	rdb, relay := newRelay(ctx, cfg, f, sysLogger)
	var noticeRelay service.NoticeRelay
	if relay != nil {
		noticeRelay = relay
	}

	// 4. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Sync.ChangeTopic, cfg.Sync.TaxonomyTopic, noticeRelay, sysLogger)
	documentService := service.NewDocumentService(uowFactory, publisherService, eventPublisher, sysLogger)
	loader.service = documentService
	taxonomyService := service.NewTaxonomyService(
		uowFactory,
		memory.NewTaxonomyCache(),
		publisherService,
		eventPublisher,
		cfg.Sync.PrimarySubject,
		sysLogger,
	)
	articleService := service.NewArticleService(uowFactory, eventPublisher, sysLogger)
	dashboardService := service.NewDashboardService(uowFactory)

	pipeline := render.Default()

	// 5. Sync sessions
	wsHub := websocket.NewHub(syncLogger)
	sessionOpts := selection.Options{FetchTimeout: cfg.Sync.FetchTimeout}
	newSession := func() websocket.Session {
		return selection.New(taxonomyService, documentService, f, pipeline, syncLogger, sessionOpts)
	}

	// 6. Controllers
	return &Container{
		SubjectController:   controller.NewSubjectController(taxonomyService),
		DocumentController:  controller.NewDocumentController(documentService),
		RenderController:    controller.NewRenderController(pipeline),
		ArticleController:   controller.NewArticleController(articleService),
		DashboardController: controller.NewDashboardController(dashboardService),

		SyncHandler:  handler.NewSyncHandler(ctx, wsHub, f, newSession, syncLogger),
		WebSocketHub: wsHub,
		Feed:         f,

		TaxonomyService: taxonomyService,
		Logger:          sysLogger,

		cfg:     cfg,
		ctx:     ctx,
		cancel:  cancel,
		pubSub:  pubSub,
		rdb:     rdb,
		relay:   relay,
		natsPub: natsPub,
		natsSub: natsSub,
	}
}

// documentLoader lets the feed read through the document service, which is
// built after the feed.
type documentLoader struct {
	service service.IDocumentService
}

func (l *documentLoader) List(ctx context.Context, filter entity.DocumentFilter) ([]*entity.Document, error) {
	return l.service.List(ctx, filter)
}

func newRelay(ctx context.Context, cfg *config.Config, f *feed.Feed, log logger.ILogger) (*redis.Client, *feed.Relay) {
	if cfg.App.RedisURL == "" {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Warn("Container", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("Container", "Failed to connect to Redis, running single instance", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
		return nil, nil
	}
	return rdb, feed.NewRelay(rdb, cfg.Sync.RedisChannel, cfg.App.InstanceID, f, log)
}

// Start runs the background workers: the bus consumer, the cross-instance
// relay, the websocket hub and the NATS taxonomy listener.
func (c *Container) Start() error {
	if err := feed.Consume(c.ctx, c.pubSub, c.Feed, c.Logger, c.cfg.Sync.ChangeTopic, c.cfg.Sync.TaxonomyTopic); err != nil {
		return fmt.Errorf("consume change notices: %w", err)
	}

	if c.relay != nil {
		if err := c.relay.Start(c.ctx); err != nil {
			return err
		}
	}

	go c.WebSocketHub.Run(c.ctx)

	if c.natsSub != nil {
		durable := "codal-sync-" + c.cfg.App.InstanceID
		if err := c.natsSub.Subscribe(c.ctx, events.SUBJECTS_CHANGED, durable, c.onSubjectsChanged); err != nil {
			c.Logger.Warn("Container", "Failed to subscribe to subject changes", map[string]interface{}{"error": err.Error()})
		}
	}
	return nil
}

// onSubjectsChanged reloads the subject list after an external edit and
// tells every session.
func (c *Container) onSubjectsChanged(ctx context.Context, _ events.Event) error {
	if _, err := c.TaxonomyService.RefreshSubjects(ctx); err != nil {
		return err
	}
	c.Feed.Notify(feed.Notice{Kind: feed.SubjectsChanged})
	return nil
}

// Close stops the workers and releases the connections.
func (c *Container) Close() {
	c.cancel()
	_ = c.pubSub.Close()
	if c.natsSub != nil {
		c.natsSub.Close()
	}
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	if c.rdb != nil {
		_ = c.rdb.Close()
	}
}
