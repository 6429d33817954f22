package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/divyadrishti/internal/client/breaker"
	"github.com/dmitrijs2005/divyadrishti/internal/client/client"
	"github.com/dmitrijs2005/divyadrishti/internal/client/config"
	"github.com/dmitrijs2005/divyadrishti/internal/client/kv"
	"github.com/dmitrijs2005/divyadrishti/internal/client/localstore"
	"github.com/dmitrijs2005/divyadrishti/internal/client/metrics"
	"github.com/dmitrijs2005/divyadrishti/internal/client/models"
	"github.com/dmitrijs2005/divyadrishti/internal/client/services"
	"github.com/dmitrijs2005/divyadrishti/internal/client/session"
	"github.com/dmitrijs2005/divyadrishti/internal/filex"
	"github.com/dmitrijs2005/divyadrishti/internal/logging"
)

type Mode string

const (
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
	ModeDisabled Mode = "disabled"
)

const pingTimeout = 3 * time.Second

type activityLogger interface {
	Log(ctx context.Context, typ models.ActivityType, title string)
}

type nameHistory interface {
	List(ctx context.Context) ([]string, error)
	Add(ctx context.Context, name string) ([]string, error)
}

type App struct {
	config         *config.Config
	authService    services.AuthService
	contentService services.ContentService
	activityLogger activityLogger
	names          nameHistory
	metrics        *metrics.Recorder
	log            logging.Logger
	closer         io.Closer

	modeMu sync.RWMutex
	Mode   Mode

	// chat keeps the conversation with the astrologer for the current session.
	chat   []models.ChatTurn
	reader *bufio.Reader
}

// NewApp opens the local database and wires the remote client, the local
// stores and the services built on top of them.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.New(os.Stderr, c.LogLevel, c.LogFormat)

	if err := filex.EnsureParentDir(c.DBPath); err != nil {
		log.Error(ctx, "error preparing database directory", "path", c.DBPath, "err", err)
		return nil, err
	}

	db, err := kv.OpenSQLite(ctx, c.DBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DBPath, "err", err)
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(c.APIURL, client.WithTimeout(c.RequestTimeout))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := newApp(c, apiClient, kv.NewSQLiteStore(db), log)
	a.closer = db
	return a, nil
}

func newApp(c *config.Config, api client.Client, store kv.Store, log logging.Logger) *App {
	rec := metrics.New()
	qb := breaker.New(c.QuotaCooldown, breaker.WithOnReset(func() {
		rec.BreakerReset()
		log.Info(context.Background(), "quota cooldown elapsed, AI calls resumed")
	}))

	deps := &services.Deps{
		Client:   api,
		Local:    localstore.New(store, log.With("component", "localstore")),
		Sessions: session.NewStore(store),
		Names:    session.NewNameHistory(store),
		Breaker:  qb,
		Metrics:  rec,
		Log:      log.With("component", "services"),
		Language: c.Language,
	}

	return &App{
		config:         c,
		authService:    services.NewAuthService(deps),
		contentService: services.NewContentService(deps),
		activityLogger: services.NewActivityLogger(deps),
		names:          deps.Names,
		metrics:        rec,
		log:            log,
		reader:         bufio.NewReader(os.Stdin),
	}
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	changed := a.Mode != mode
	a.Mode = mode
	a.modeMu.Unlock()

	if changed {
		a.logger().Info(context.Background(), "switched mode", "mode", mode)
	}
}

func (a *App) mode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.Mode
}

func (a *App) logger() logging.Logger {
	if a.log == nil {
		return logging.Nop()
	}
	return a.log
}

// Run serves metrics when configured, then blocks in the REPL until the user
// leaves. The database is closed on return.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.closer != nil {
		defer a.closer.Close()
	}

	if a.config.MetricsAddr != "" {
		go func() {
			if err := a.metrics.Serve(ctx, a.config.MetricsAddr); err != nil {
				a.logger().Error(ctx, "metrics listener stopped", "addr", a.config.MetricsAddr, "err", err)
			}
		}()
	}

	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.authService != nil && a.authService.Current() != nil
}

// StartOnlineStatusWatcher pings the backend every interval and flips the
// mode between online and offline. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.authService.Ping(pingCtx)
	cancel()

	if err != nil {
		if a.mode() == ModeOnline {
			a.setMode(ModeOffline)
		}
		return
	}
	if a.mode() != ModeOnline {
		a.setMode(ModeOnline)
	}
}
