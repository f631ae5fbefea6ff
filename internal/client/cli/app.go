package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"

	"github.com/arefyev/sealmsg/internal/client/cache"
	"github.com/arefyev/sealmsg/internal/client/config"
	"github.com/arefyev/sealmsg/internal/client/courier"
	"github.com/arefyev/sealmsg/internal/client/db"
	"github.com/arefyev/sealmsg/internal/client/imaging"
	"github.com/arefyev/sealmsg/internal/client/models"
	"github.com/arefyev/sealmsg/internal/client/queue"
	"github.com/arefyev/sealmsg/internal/client/repositories/metadata"
	"github.com/arefyev/sealmsg/internal/client/services"
	"github.com/arefyev/sealmsg/internal/client/taskreg"
	"github.com/arefyev/sealmsg/internal/client/transfer"
	"github.com/arefyev/sealmsg/internal/cryptox"
	"github.com/arefyev/sealmsg/internal/logging"
)

// messageService is the slice of MessageService the commands use.
type messageService interface {
	Send(ctx context.Context, m *models.Message) (*models.Message, error)
	PrepareAttachment(ctx context.Context, conversationID string, raw models.RawAsset, public bool, retention string, caption string) (*models.Message, error)
	CancelUpload(ctx context.Context, uploadID string) error
	DeleteMessage(ctx context.Context, id string) error
}

// assetService is the slice of AssetService the commands use.
type assetService interface {
	LoadContent(ctx context.Context, a *models.Asset) (io.ReadCloser, error)
}

// App is the interactive sealmsg client: it owns the wired service graph and
// the REPL session state.
type App struct {
	config *config.Config
	repos  *db.Repositories

	assets   assetService
	messages messageService

	currentConv string
	reader      *bufio.Reader
	log         logging.Logger
}

// NewApp wires the client from configuration: local database, object
// storage, courier, background queue and the two services.
func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	repos, err := db.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	storage, err := transfer.NewObjectStorage(transfer.ObjectStorageConfig{
		Endpoint:  cfg.StorageEndpoint,
		AccessKey: cfg.StorageAccessKey,
		SecretKey: cfg.StorageSecretKey,
		Bucket:    cfg.StorageBucket,
		UseSSL:    cfg.StorageUseSSL,
	})
	if err != nil {
		return nil, err
	}

	// the device registration doubles as the courier bearer token; an empty
	// token means the device has not registered yet and sends will come back
	// forbidden until it does
	var token string
	if reg, err := repos.Metadata.Get(ctx, metadata.KeyDeviceRegistration); err == nil && reg != nil {
		token = string(reg)
	}
	msgCourier := courier.NewHTTPCourier(cfg.CourierEndpoint, token, cfg.RequestTimeout)

	var enricher queue.Enricher
	if cfg.RedisAddr != "" {
		enricher = queue.NewClient(asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr}))
	}

	contentCache, err := openCache(ctx, cfg, repos)
	if err != nil {
		return nil, err
	}

	assetSvc := services.NewAssetService(repos.Assets, contentCache, storage, logger)
	messageSvc := services.NewMessageService(services.MessageDeps{
		Messages:      repos.Messages,
		Conversations: repos.Conversations,
		Uploads:       repos.Uploads,
		Assets:        repos.Assets,
		Uploader:      assetSvc,
		Courier:       msgCourier,
		Imaging:       imaging.Disabled{},
		Registry:      taskreg.New(),
		Metadata:      repos.Metadata,
		Enricher:      enricher,
		Logger:        logger,
	})

	return &App{
		config:   cfg,
		repos:    repos,
		assets:   assetSvc,
		messages: messageSvc,
		reader:   bufio.NewReader(os.Stdin),
		log:      logger,
	}, nil
}

// openCache derives the cache master key from the user's passphrase. The
// argon2 salt is stored in client metadata; the first run generates it.
func openCache(ctx context.Context, cfg *config.Config, repos *db.Repositories) (*cache.Cache, error) {
	pw, err := GetPassword(os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("reading passphrase: %w", err)
	}
	defer cryptox.Wipe(pw)

	salt, err := repos.Metadata.Get(ctx, metadata.KeyCacheSalt)
	if err != nil {
		return nil, err
	}
	if salt == nil {
		salt, err = cryptox.NewSalt()
		if err != nil {
			return nil, err
		}
		if err := repos.Metadata.Set(ctx, metadata.KeyCacheSalt, salt); err != nil {
			return nil, err
		}
	}

	key := cryptox.DeriveMasterKey(pw, salt)
	return cache.New(cfg.CacheDir, key)
}

func (a *App) hasConversation() bool {
	return a.currentConv != ""
}

// Run drives the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, func() string {
		if a.currentConv == "" {
			return "no conversation"
		}
		return a.currentConv
	}, scanner)
	_ = a.repos.DB.Close()
}
