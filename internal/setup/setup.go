package setup

import (
	"github.com/talkboard/talkboard/internal/cache"
	"github.com/talkboard/talkboard/internal/config"
	"github.com/talkboard/talkboard/internal/handler"
	"github.com/talkboard/talkboard/internal/jwt"
	"github.com/talkboard/talkboard/internal/logger"
	"github.com/talkboard/talkboard/internal/middleware"
	"github.com/talkboard/talkboard/internal/search"
	"github.com/talkboard/talkboard/internal/service"
	"github.com/talkboard/talkboard/internal/storage/pg"
	"github.com/talkboard/talkboard/internal/utils"
)

// Dependencies holds all initialized collaborators of the API binary.
type Dependencies struct {
	Storage        *pg.Storage
	Search         *search.Meili
	Counts         *cache.CategoryCounts
	Handler        *handler.Handler
	AuthMiddleware *middleware.Auth
	Config         *config.Config
}

// SetupDependencies wires the application. Redis and Meilisearch are
// optional collaborators: when unconfigured the listing falls back to SQL
// counts and search answers 503.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	var counts *cache.CategoryCounts
	if cfg.Public.RedisURL != "" {
		counts, err = cache.New(cfg.Public.RedisURL)
		if err != nil {
			logger.Log.Warn("redis unavailable, listing counts uncached", "err", err)
			counts = nil
		}
	}

	var meili *search.Meili
	if cfg.Public.SearchURL != "" {
		meili = search.NewMeili(cfg.Public.SearchURL, cfg.Private.SearchAPIKey)
	}

	// cache.CategoryCounts and *search.Meili may be nil typed pointers;
	// keep the interfaces nil in that case.
	var indexer service.ThreadIndexer
	if meili != nil {
		indexer = service.NewIndexer(meili)
	}
	var counter service.CategoryCounter
	var countsCache service.CountsCache
	if counts != nil {
		counter = counts
		countsCache = counts
	}

	thread := service.NewThread(storage, &utils.ThreadTitleValidator{}, service.StaffAuthorizer{}, indexer, counter)
	reply := service.NewReply(storage, indexer)
	listing := service.NewListing(storage, countsCache, cfg.Public)
	searchSvc := service.NewSearch(meiliOrNil(meili), storage, cfg.Public)
	repairer := service.NewRepairer(storage)

	h := handler.New(thread, reply, listing, searchSvc, repairer, cfg)

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())
	authMw := middleware.NewAuth(jwtService)

	return &Dependencies{
		Storage:        storage,
		Search:         meili,
		Counts:         counts,
		Handler:        h,
		AuthMiddleware: authMw,
		Config:         cfg,
	}, nil
}

func meiliOrNil(m *search.Meili) service.Searcher {
	if m == nil {
		return nil
	}
	return m
}

// Cleanup releases held connections.
func (d *Dependencies) Cleanup() {
	if d.Storage != nil {
		d.Storage.Cleanup()
	}
	if d.Search != nil {
		d.Search.Close()
	}
	if d.Counts != nil {
		d.Counts.Close()
	}
}
