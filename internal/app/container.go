package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"career-compass/internal/config"
	"career-compass/internal/database"
	dbpostgres "career-compass/internal/database/postgres"
	"career-compass/internal/domain/catalog"
	"career-compass/internal/domain/classifier"
	"career-compass/internal/domain/profile"
	"career-compass/internal/infrastructure/cache"
	"career-compass/internal/infrastructure/datasource"
	"career-compass/internal/infrastructure/events"
	"career-compass/internal/infrastructure/linkcheck"
	"career-compass/internal/repository"
	"career-compass/internal/usecase"
	"career-compass/internal/ws"
)

const trainTimeout = 5 * time.Minute

// Container owns the process-wide artifacts. Everything in it is built once
// and shared read-only by request handlers.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	Events *events.AMQPPublisher
	Links  *linkcheck.Scheduler

	Catalog   catalog.Catalog
	Extractor *profile.Extractor
	Models    *usecase.ModelProvider
}

func NewContainer(ctx context.Context, cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}
	c := &Container{Config: cfg, Logger: logger}

	if err := c.connectDB(ctx); err != nil {
		return nil, err
	}

	cat, err := c.loadCatalog(ctx)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Catalog = cat

	kw, err := config.LoadKeywords(cfg.Keywords.File)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Extractor = profile.NewExtractor(kw, cat)

	source, err := c.trainingSource(ctx)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	c.Cache = cache.NewRedis(cfg.Redis, logger)
	c.Hub = ws.NewHub(logger)

	publishers := events.Fanout{ws.NewNotifier(c.Hub)}
	if cfg.Events.AMQPURL != "" {
		pub, err := events.NewAMQPPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange, logger)
		if err != nil {
			logger.Printf("[Events] RabbitMQ unavailable, model events stay local: %v", err)
		} else {
			c.Events = pub
			publishers = append(publishers, pub)
		}
	}

	c.Models = usecase.NewModelProvider(source, classifier.DefaultOptions(), publishers, logger).
		WithTrainTimeout(trainTimeout)

	if cfg.LinkCheck.Schedule != "" {
		checker := linkcheck.NewChecker(linkcheck.Options{
			Workers: cfg.LinkCheck.Workers,
			RPS:     cfg.LinkCheck.RPS,
		}, logger)
		links, err := linkcheck.NewScheduler(cfg.LinkCheck.Schedule, checker, cat.LookupAll(), logger)
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		c.Links = links
	}
	return c, nil
}

func (c *Container) connectDB(ctx context.Context) error {
	needDB := c.Config.Dataset.Source == config.DatasetSourcePostgres ||
		c.Config.Catalog.Source == config.CatalogSourcePostgres

	if !c.Config.Database.Enabled() {
		return nil
	}

	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	db, err := dbpostgres.Connect(dbCtx, c.Config.Database, c.Logger)
	if err != nil {
		if needDB {
			return fmt.Errorf("connect postgres: %w", err)
		}
		c.Logger.Printf("[DB] unavailable, continuing without postgres: %v", err)
		return nil
	}
	c.DB = db
	return nil
}

func (c *Container) loadCatalog(ctx context.Context) (catalog.Catalog, error) {
	if c.Config.Catalog.Source != config.CatalogSourcePostgres {
		return catalog.Default(), nil
	}
	if c.DB == nil {
		return catalog.Catalog{}, errors.New("catalog source postgres requires a database")
	}
	entries, err := repository.NewPostgresSkillResourceRepository(c.DB).ListResources(ctx)
	if err != nil {
		return catalog.Catalog{}, fmt.Errorf("load skill resources: %w", err)
	}
	cat := catalog.New(entries)
	if cat.Len() == 0 {
		return catalog.Catalog{}, errors.New("skill_resources table is empty")
	}
	c.Logger.Printf("[Catalog] loaded | source=postgres entries=%d", cat.Len())
	return cat, nil
}

func (c *Container) trainingSource(ctx context.Context) (usecase.TrainingSource, error) {
	switch c.Config.Dataset.Source {
	case config.DatasetSourceS3:
		client, err := datasource.NewS3Client(ctx, c.Config.Dataset.S3)
		if err != nil {
			return nil, err
		}
		return datasource.S3{Client: client, Bucket: c.Config.Dataset.S3.Bucket, Key: c.Config.Dataset.S3.Key}, nil
	case config.DatasetSourcePostgres:
		if c.DB == nil {
			return nil, errors.New("dataset source postgres requires a database")
		}
		return datasource.Postgres{Repo: repository.NewPostgresTrainingRecordRepository(c.DB)}, nil
	default:
		return datasource.File{Path: c.Config.Dataset.Path}, nil
	}
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Links != nil {
		c.Links.Stop()
	}
	if c.Events != nil {
		errs = append(errs, c.Events.Close())
	}
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
