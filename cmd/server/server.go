package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Aym0707/aymstore/internal/eventengine"
	"github.com/Aym0707/aymstore/internal/features/bill"
	"github.com/Aym0707/aymstore/internal/features/cart"
	"github.com/Aym0707/aymstore/internal/features/catalog"
	"github.com/Aym0707/aymstore/internal/features/wishlist"
	"github.com/Aym0707/aymstore/internal/middlewares"
	"github.com/Aym0707/aymstore/internal/storage"
	"github.com/go-chi/chi"
	chimiddleware "github.com/go-chi/chi/middleware"
	"golang.org/x/sync/errgroup"
)

type ServerConfig struct {
	Addr           string
	Cache          *storage.Cache
	Fetcher        *catalog.FetcherConfig
	WhatsAppNumber string
}

type server struct {
	*ServerConfig

	doneCh        chan struct{}   // used to signal internal go routines to shutdown
	internalSrvWG *sync.WaitGroup // used to wait for all internal go routines to finish before shutting down the server.

	eventEngine eventengine.SubscribeRegisterPublisher
	srv         *http.Server
}

func NewServer(serverConfig *ServerConfig) *server {
	srv := &server{
		ServerConfig:  serverConfig,
		doneCh:        make(chan struct{}),
		internalSrvWG: &sync.WaitGroup{},
	}

	return srv
}

func (s *server) Run() {
	router := chi.NewRouter()

	// strip trailing slashes at the end of the url
	// e.g. /products/1/ -> /products/1
	router.Use(chimiddleware.StripSlashes)

	middleware := middlewares.NewMiddleware("GET, POST, PATCH, DELETE, OPTIONS")
	router.Use(middleware.CORS)

	s.prep()

	router.Mount("/api/v1", s.v1Router()) // api version 1 subrouter

	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.Addr),
		Handler: router,
	}

	// start server and listen for [os.Signal] signals to graceful shutdown server.
	s.listenAndServe()
}

func (s *server) listenAndServe() {
	shutdownCtx, shutdownCancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer shutdownCancel()

	errGrp, shutdownCtx := errgroup.WithContext(shutdownCtx)

	errGrp.Go(
		func() error {
			log.Printf("server started and is listening at port %s...\n", s.Addr)

			if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) && err != nil {
				return fmt.Errorf("failed to start server: %w", err)
			}

			return nil
		},
	)

	errGrp.Go(
		func() error {
			<-shutdownCtx.Done() // block and listen shutdown signals
			println()
			log.Println("hold and wait, server is gracefully shutting down...")

			ctx, cancel := context.WithTimeout(
				context.Background(),
				(20 * time.Second),
			)
			defer cancel()

			log.Println("server has stopped receiving new requests")
			log.Println("waiting for all pending requests to finish....")
			if err := s.srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("server failed shutdown gracefully: %w", err)
			}

			return nil
		},
	)

	if err := errGrp.Wait(); err != nil {
		log.Fatal(err.Error())
	}
	log.Println("all pending requests completed!")

	log.Println("waiting for all internal pending go routines....")
	close(s.doneCh)
	s.internalSrvWG.Wait()
	log.Println("all internal go routines are done")

	log.Println("closing other resources...")
	if err := s.Cache.Close(); err != nil {
		log.Println("server failed to close local cache for shutdown")
	}

	log.Println("server has been gracefully shutdown")
	os.Exit(0)
}

// prep prepares server dependencies needed for server to function
func (s *server) prep() {
	s.eventEngine = eventengine.NewEventEngine(
		&eventengine.EventEngineConfig{
			DoneCh:        s.doneCh,
			InternalSrvWG: s.internalSrvWG,
		},
	)
}

func (s *server) v1Router() *chi.Mux {
	r := chi.NewRouter()

	// health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		log.Println("health check")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// catalog feature
	fetcher := catalog.NewFetcher(s.Fetcher)
	catalogService := catalog.NewService(fetcher, s.eventEngine)
	catalogHandler := catalog.NewHandler(catalogService)
	catalogHandler.RegisterRoutes(r)

	// cart feature
	cartService := cart.NewService(catalogService, s.eventEngine)
	cartHandler := cart.NewHandler(cartService)
	cartHandler.RegisterRoutes(r)

	// wishlist feature
	wishlistService := wishlist.NewService(catalogService, s.eventEngine)
	wishlistHandler := wishlist.NewHandler(wishlistService)
	wishlistHandler.RegisterRoutes(r)

	// bill feature
	billService := bill.NewService(cartService, s.Cache, s.WhatsAppNumber)
	billHandler := bill.NewHandler(billService)
	billHandler.RegisterRoutes(r)

	// the cache writer subscribes to the snapshot events, so every service
	// must have registered its events with the engine before this point.
	storage.NewHandlerEvents(
		&storage.HandlerEventsConfig{
			DoneCh:        s.doneCh,
			InternalSrvWG: s.internalSrvWG,
			EventEngine:   s.eventEngine,
			Cache:         s.Cache,
		},
	)

	s.seedCatalog(catalogService)
	s.seedWishlist(wishlistService)

	return r
}

type catalogSeeder interface {
	Refresh(ctx context.Context) ([]catalog.Product, error)
	Restore(products []catalog.Product)
	Count() int
}

// seedCatalog does the boot-time catalog load: upstream first, the cached
// snapshot as fallback. Both failing leaves an empty catalog the client can
// retry via the refresh endpoint.
func (s *server) seedCatalog(catalogService catalogSeeder) {
	_, err := catalogService.Refresh(context.Background())
	if err == nil {
		log.Printf("catalog loaded from upstream: %d products\n", catalogService.Count())
		return
	}
	log.Printf("upstream catalog load failed, trying cache: %v\n", err)

	var products []catalog.Product
	found, err := s.Cache.Load(storage.ProductsKey, &products)
	if err != nil {
		log.Printf("cached catalog load failed: %v\n", err)
		return
	}
	if !found {
		log.Println("no cached catalog, starting empty")
		return
	}

	catalogService.Restore(products)
	log.Printf("catalog restored from cache: %d products\n", len(products))
}

type wishlistSeeder interface {
	Restore(productIDs []string)
}

func (s *server) seedWishlist(wishlistService wishlistSeeder) {
	var productIDs []string
	found, err := s.Cache.Load(storage.WishlistKey, &productIDs)
	if err != nil {
		log.Printf("cached wishlist load failed: %v\n", err)
		return
	}
	if !found {
		return
	}

	wishlistService.Restore(productIDs)
	log.Printf("wishlist restored from cache: %d products\n", len(productIDs))
}
