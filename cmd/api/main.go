package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Abarrotes-api/internal/application/ordering"
	"github.com/jhoicas/Abarrotes-api/internal/application/query"
	"github.com/jhoicas/Abarrotes-api/internal/application/usecase"
	"github.com/jhoicas/Abarrotes-api/internal/domain/repository"
	"github.com/jhoicas/Abarrotes-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Abarrotes-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Abarrotes-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Abarrotes-api/internal/interfaces/http"
	"github.com/jhoicas/Abarrotes-api/pkg/config"
	"github.com/jhoicas/Abarrotes-api/pkg/logger"
)

// stores repositorios y runner de transacciones del backend elegido.
type stores struct {
	products repository.ProductRepository
	clients  repository.ClientRepository
	orders   repository.OrderRepository
	queries  repository.QueryRepository
	txRunner ordering.TxRunner
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st := openStores(ctx, cfg, log)
	defer st.close()

	productUC := usecase.NewProductUseCase(st.products)
	clientUC := usecase.NewClientUseCase(st.clients)
	orderUC := usecase.NewOrderUseCase(st.orders)
	queries := query.NewFacade(st.products, st.clients, st.queries)
	ledger := ordering.NewLoggingLedger(ordering.NewLedger(st.txRunner), log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", httpRouter.Health(cfg.App.Name))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC: productUC,
		ClientUC:  clientUC,
		OrderUC:   orderUC,
		Ledger:    ledger,
		Queries:   queries,
		Restock:   infrapdf.NewRestockReportGenerator(cfg.App.Name),
		Log:       log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStores abre el backend configurado. Los errores de arranque terminan el proceso.
func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) stores {
	if cfg.Store.Driver == config.StoreDriverMemory {
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return stores{
			products: store.Products(),
			clients:  store.Clients(),
			orders:   store.Orders(),
			queries:  store.Queries(),
			txRunner: store,
			close:    func() {},
		}
	}

	if cfg.DB.Migrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones PostgreSQL")
		}
		log.Info().Msg("migraciones aplicadas")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	return stores{
		products: postgres.NewProductRepository(pool),
		clients:  postgres.NewClientRepository(pool),
		orders:   postgres.NewOrderRepository(pool),
		queries:  postgres.NewQueryRepository(pool),
		txRunner: postgres.NewTxRunner(pool),
		close:    pool.Close,
	}
}
