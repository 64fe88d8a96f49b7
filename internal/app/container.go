package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resume-match/internal/config"
	"resume-match/internal/database"
	"resume-match/internal/database/migration"
	dbpostgres "resume-match/internal/database/postgres"
	"resume-match/internal/extractor"
	"resume-match/internal/infrastructure/cache"
	"resume-match/internal/infrastructure/queue"
	"resume-match/internal/infrastructure/storage"
	"resume-match/internal/pipeline"
	"resume-match/internal/pkg/jwt"
	"resume-match/internal/repository"
	"resume-match/internal/tagger"
	"resume-match/internal/usecase"
	"resume-match/internal/ws"
	"resume-match/migrations"

	"go.uber.org/zap"
)

// Container owns every long-lived dependency of a process. Server, worker and CLI all build
// one; Close releases them in reverse order.
type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Cache  *cache.Redis
	Queue  *queue.RabbitMQ
	Hub    *ws.Hub
	JWT    *jwt.HMACService

	Documents    repository.DocumentRepository
	Analyses     repository.AnalysisRepository
	Jobs         repository.JobRepository
	Applications repository.ApplicationRepository
	Matches      repository.MatchRepository
	SavedJobs    repository.SavedJobRepository
	Skills       repository.SkillRepository

	Pipeline   *pipeline.ResumePipeline
	Dispatcher pipeline.Dispatcher
	inProcess  *pipeline.InProcessDispatcher

	DocumentUC    *usecase.Documents
	AnalysisUC    *usecase.Analysis
	JobUC         *usecase.Jobs
	MatchingUC    *usecase.Matching
	ApplicationUC *usecase.Applications
	SavedJobUC    *usecase.SavedJobs
	SkillUC       *usecase.Skills
}

func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		JWT:    jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiresIn),
		Hub:    ws.NewHub(logger.Named("ws")),
	}

	if err := (migration.Runner{FS: migrations.FS}).Run(ctx, db.SQLDB()); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	c.Cache = cache.NewRedis(cfg.Redis, logger.Named("cache"))

	if cfg.Pipeline.Dispatch == config.DispatchAMQP {
		q, err := queue.NewRabbitMQ(cfg.AMQP, logger.Named("queue"))
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("connect amqp: %w", err)
		}
		c.Queue = q
	}

	c.Documents = repository.NewPostgresDocumentRepository(db)
	c.Analyses = repository.NewPostgresAnalysisRepository(db)
	c.Jobs = repository.NewPostgresJobRepository(db)
	c.Applications = repository.NewPostgresApplicationRepository(db)
	c.Matches = repository.NewPostgresMatchRepository(db)
	c.SavedJobs = repository.NewPostgresSavedJobRepository(db)
	c.Skills = repository.NewPostgresSkillRepository(db)

	tg, err := c.buildTagger(ctx)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	c.MatchingUC = usecase.NewMatchingUsecase(c.Documents, c.Analyses, c.Jobs, c.Applications, c.Matches, logger.Named("matching"))

	var notifier pipeline.StatusNotifier = c.Hub
	if c.Queue != nil {
		// runs happen in cmd/worker; events travel back through Redis
		notifier = ws.NewRelayNotifier(c.Cache, cache.StatusChannel, logger.Named("relay"))
	}

	c.Pipeline = pipeline.NewResumePipeline(pipeline.ResumePipelineDeps{
		Documents: c.Documents,
		Analyses:  c.Analyses,
		Extractor: extractor.New(),
		Tagger:    tg,
		Cache:     c.Cache,
		Notifier:  notifier,
		Matcher:   c.MatchingUC,
	}, cfg.Pipeline.RunTimeout, logger.Named("pipeline"))

	if c.Queue != nil {
		c.Dispatcher = pipeline.NewAMQPDispatcher(c.Queue)
	} else {
		pool := pipeline.NewWorkerPool(cfg.Pipeline.Workers, cfg.Pipeline.QueueSize)
		pool.SetRateLimit(cfg.Pipeline.RateLimit)
		c.inProcess = pipeline.NewInProcessDispatcher(pool, c.Pipeline, logger.Named("dispatch"))
		c.Dispatcher = c.inProcess
	}

	files, err := storage.NewLocal(cfg.App.UploadDir)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	c.DocumentUC = usecase.NewDocumentUsecase(c.Documents, files, c.Dispatcher, logger.Named("documents"))
	c.AnalysisUC = usecase.NewAnalysisUsecase(c.DocumentUC, c.Analyses, c.Cache, logger.Named("analysis"))
	c.JobUC = usecase.NewJobUsecase(c.Jobs, c.Cache, logger.Named("jobs"))
	c.SkillUC = usecase.NewSkillUsecase(c.Skills, logger.Named("skills"))
	c.ApplicationUC = usecase.NewApplicationUsecase(c.DocumentUC, c.JobUC, c.Analyses, c.Applications, c.MatchingUC, c.Dispatcher, logger.Named("applications"))
	c.SavedJobUC = usecase.NewSavedJobUsecase(c.SavedJobs, c.JobUC, logger.Named("saved_jobs"))

	return c, nil
}

// buildTagger loads the skill vocabulary once; the tagger is read-only afterwards.
func (c *Container) buildTagger(ctx context.Context) (*tagger.Tagger, error) {
	skills, err := c.Skills.GetAllSkills(ctx)
	if err != nil {
		return nil, fmt.Errorf("load skills: %w", err)
	}
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	if len(names) == 0 {
		c.Logger.Warn("skill vocabulary is empty, run `resumectl seed`")
	}

	opts := []tagger.Option{tagger.WithSkillLabel(c.Config.Pipeline.SkillLabel)}
	if dir := c.Config.Pipeline.TaggerModelDir; dir != "" {
		m, err := tagger.LoadModel(dir)
		if err != nil {
			return nil, err
		}
		opts = append(opts, tagger.WithModel(m))
	}

	c.Logger.Info("tagger ready", zap.Int("skills", len(names)))
	return tagger.New(names, opts...), nil
}

// Start runs the background parts of a serving process: the websocket hub, the in-process
// workers and, with AMQP dispatch, the status relay subscription.
func (c *Container) Start(ctx context.Context) {
	go c.Hub.Run(ctx)
	go c.Pipeline.SweepStaleRuns(ctx, 0)

	if c.inProcess != nil {
		c.inProcess.Start(ctx)
	}

	if c.Queue != nil {
		go func() {
			err := c.Cache.Subscribe(ctx, cache.StatusChannel, c.Hub.Broadcast)
			if err != nil && !errors.Is(err, context.Canceled) {
				c.Logger.Warn("status relay stopped", zap.Error(err))
			}
		}()
	}
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.inProcess != nil {
		c.inProcess.Close()
	}
	if c.Queue != nil {
		errs = append(errs, c.Queue.Close())
	}
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
