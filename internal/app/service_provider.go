package app

import (
	adminAPI "gachapon_backend/internal/api/admin"
	authAPI "gachapon_backend/internal/api/auth"
	cabinetAPI "gachapon_backend/internal/api/cabinet"
	escrowAPI "gachapon_backend/internal/api/escrow"
	paymentAPI "gachapon_backend/internal/api/payment"
	playAPI "gachapon_backend/internal/api/play"
	revenueAPI "gachapon_backend/internal/api/revenue"
	tokenAPI "gachapon_backend/internal/api/tokenomics"
	"gachapon_backend/internal/config"
	"gachapon_backend/internal/config/env"
	"gachapon_backend/internal/middleware"
	"gachapon_backend/internal/repository"
	"gachapon_backend/internal/repository/asset_repo"
	"gachapon_backend/internal/repository/auth_repo"
	"gachapon_backend/internal/repository/cabinet_repo"
	"gachapon_backend/internal/repository/escrow_repo"
	"gachapon_backend/internal/repository/platform_state_repo"
	"gachapon_backend/internal/repository/revenue_repo"
	"gachapon_backend/internal/repository/rng_state_repo"
	"gachapon_backend/internal/repository/stats_cache"
	"gachapon_backend/internal/repository/token_repo"
	"gachapon_backend/internal/repository/user_repo"
	"gachapon_backend/internal/service"
	"gachapon_backend/internal/service/admin"
	"gachapon_backend/internal/service/auth"
	"gachapon_backend/internal/service/cabinet"
	"gachapon_backend/internal/service/escrow"
	"gachapon_backend/internal/service/payment"
	"gachapon_backend/internal/service/play"
	"gachapon_backend/internal/service/random"
	"gachapon_backend/internal/service/revenue"
	"gachapon_backend/internal/service/token"
	"context"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type ServiceProvider struct {
	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Redis
	redisConfig config.RedisConfig
	redisClient *redis.Client

	// Configs
	gachaCfg config.GachaConfig
	tokenCfg config.TokenConfig
	jwtCfg   config.JWTConfig

	// In-memory state
	rngStateRepo      repository.RandomStateRepository
	platformStateRepo repository.PlatformStateRepository

	// Auth bits
	authRepo repository.AuthRepository
	authServ service.AuthService
	authHand *authAPI.Handler

	// User bits
	userRepo    repository.UserRepository
	paymentServ service.PaymentService
	paymentHand *paymentAPI.Handler

	// Cabinet bits
	cabinetRepo repository.CabinetRepository
	cabinetServ service.CabinetService
	cabinetHand *cabinetAPI.Handler

	// Escrow bits
	escrowRepo repository.EscrowRepository
	assetRepo  repository.AssetRepository
	escrowServ service.EscrowService
	escrowHand *escrowAPI.Handler

	// Token bits
	tokenRepo repository.TokenRepository
	tokenServ service.TokenService
	tokenHand *tokenAPI.Handler

	// Revenue bits
	revenueRepo repository.RevenueRepository
	revenueServ service.RevenueService
	revenueHand *revenueAPI.Handler

	// Random bits
	randomServ service.RandomService

	// Admin bits
	adminServ service.AdminService
	adminHand *adminAPI.Handler

	// Play bits
	statsCache repository.StatsCache
	playServ   service.PlayService
	playHand   *playAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) RedisConfig() config.RedisConfig {
	if sp.redisConfig == nil {
		cfg, err := env.NewRedisConfig()
		if err != nil {
			panic("failed to get redis config: " + err.Error())
		}
		sp.redisConfig = cfg
	}
	return sp.redisConfig
}

func (sp *ServiceProvider) RedisClient() *redis.Client {
	if sp.redisClient == nil {
		sp.redisClient = redis.NewClient(&redis.Options{
			Addr:     sp.RedisConfig().Addr(),
			Password: sp.RedisConfig().Password(),
			DB:       sp.RedisConfig().DB(),
		})
	}
	return sp.redisClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) GachaCfg() config.GachaConfig {
	if sp.gachaCfg == nil {
		cfg, err := env.NewGachaConfigFromYAML("config.yaml")
		if err != nil {
			panic("failed to get gacha config: " + err.Error())
		}
		sp.gachaCfg = cfg
	}
	return sp.gachaCfg
}

func (sp *ServiceProvider) TokenCfg() config.TokenConfig {
	if sp.tokenCfg == nil {
		cfg, err := env.NewTokenConfigFromYAML("config.yaml")
		if err != nil {
			panic("failed to get token config: " + err.Error())
		}
		sp.tokenCfg = cfg
	}
	return sp.tokenCfg
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) RandomStateRepo() repository.RandomStateRepository {
	if sp.rngStateRepo == nil {
		// Игровая операция разрешена как потребитель с самого старта
		sp.rngStateRepo = rng_state_repo.NewRandomStateRepository(play.RandomConsumerName)
	}
	return sp.rngStateRepo
}

func (sp *ServiceProvider) PlatformStateRepo() repository.PlatformStateRepository {
	if sp.platformStateRepo == nil {
		sp.platformStateRepo = platform_state_repo.NewPlatformStateRepository()
	}
	return sp.platformStateRepo
}

func (sp *ServiceProvider) AuthRepo(ctx context.Context) repository.AuthRepository {
	if sp.authRepo == nil {
		sp.authRepo = auth_repo.NewAuthRepository(sp.DBClient(ctx))
	}
	return sp.authRepo
}

func (sp *ServiceProvider) UserRepo(ctx context.Context) repository.UserRepository {
	if sp.userRepo == nil {
		sp.userRepo = user_repo.NewUserRepository(sp.DBClient(ctx))
	}
	return sp.userRepo
}

func (sp *ServiceProvider) CabinetRepo(ctx context.Context) repository.CabinetRepository {
	if sp.cabinetRepo == nil {
		sp.cabinetRepo = cabinet_repo.NewCabinetRepository(sp.DBClient(ctx))
	}
	return sp.cabinetRepo
}

func (sp *ServiceProvider) EscrowRepo(ctx context.Context) repository.EscrowRepository {
	if sp.escrowRepo == nil {
		sp.escrowRepo = escrow_repo.NewEscrowRepository(sp.DBClient(ctx))
	}
	return sp.escrowRepo
}

func (sp *ServiceProvider) AssetRepo(ctx context.Context) repository.AssetRepository {
	if sp.assetRepo == nil {
		sp.assetRepo = asset_repo.NewAssetRepository(sp.DBClient(ctx))
	}
	return sp.assetRepo
}

func (sp *ServiceProvider) TokenRepo(ctx context.Context) repository.TokenRepository {
	if sp.tokenRepo == nil {
		sp.tokenRepo = token_repo.NewTokenRepository(sp.DBClient(ctx))
	}
	return sp.tokenRepo
}

func (sp *ServiceProvider) RevenueRepo(ctx context.Context) repository.RevenueRepository {
	if sp.revenueRepo == nil {
		sp.revenueRepo = revenue_repo.NewRevenueRepository(sp.DBClient(ctx))
	}
	return sp.revenueRepo
}

func (sp *ServiceProvider) StatsCache() repository.StatsCache {
	if sp.statsCache == nil {
		sp.statsCache = stats_cache.NewStatsCache(sp.RedisClient())
	}
	return sp.statsCache
}

func (sp *ServiceProvider) AuthService(ctx context.Context) service.AuthService {
	if sp.authServ == nil {
		sp.authServ = auth.NewService(sp.TXManager(ctx), sp.UserRepo(ctx), sp.AuthRepo(ctx), sp.JWTCfg())
	}
	return sp.authServ
}

func (sp *ServiceProvider) AuthHandler(ctx context.Context) *authAPI.Handler {
	if sp.authHand == nil {
		sp.authHand = authAPI.NewHandler(authAPI.HandlerDeps{Serv: sp.AuthService(ctx)})
	}
	return sp.authHand
}

func (sp *ServiceProvider) PaymentService(ctx context.Context) service.PaymentService {
	if sp.paymentServ == nil {
		sp.paymentServ = payment.NewPaymentService(sp.UserRepo(ctx), sp.PlatformStateRepo())
	}
	return sp.paymentServ
}

func (sp *ServiceProvider) PaymentHandler(ctx context.Context) *paymentAPI.Handler {
	if sp.paymentHand == nil {
		sp.paymentHand = paymentAPI.NewHandler(paymentAPI.HandlerDeps{
			Serv:      sp.PaymentService(ctx),
			TokenServ: sp.TokenService(ctx),
		})
	}
	return sp.paymentHand
}

func (sp *ServiceProvider) CabinetService(ctx context.Context) service.CabinetService {
	if sp.cabinetServ == nil {
		sp.cabinetServ = cabinet.NewCabinetService(sp.CabinetRepo(ctx), sp.EscrowRepo(ctx), sp.PlatformStateRepo())
	}
	return sp.cabinetServ
}

func (sp *ServiceProvider) CabinetHandler(ctx context.Context) *cabinetAPI.Handler {
	if sp.cabinetHand == nil {
		sp.cabinetHand = cabinetAPI.NewHandler(cabinetAPI.HandlerDeps{Serv: sp.CabinetService(ctx)})
	}
	return sp.cabinetHand
}

func (sp *ServiceProvider) EscrowService(ctx context.Context) service.EscrowService {
	if sp.escrowServ == nil {
		sp.escrowServ = escrow.NewEscrowService(
			sp.EscrowRepo(ctx),
			sp.AssetRepo(ctx),
			sp.CabinetRepo(ctx),
			sp.PlatformStateRepo(),
			sp.TXManager(ctx),
		)
	}
	return sp.escrowServ
}

func (sp *ServiceProvider) EscrowHandler(ctx context.Context) *escrowAPI.Handler {
	if sp.escrowHand == nil {
		sp.escrowHand = escrowAPI.NewHandler(escrowAPI.HandlerDeps{Serv: sp.EscrowService(ctx)})
	}
	return sp.escrowHand
}

func (sp *ServiceProvider) TokenService(ctx context.Context) service.TokenService {
	if sp.tokenServ == nil {
		sp.tokenServ = token.NewTokenService(sp.TokenRepo(ctx), sp.PlatformStateRepo(), sp.TXManager(ctx), sp.TokenCfg())
	}
	return sp.tokenServ
}

func (sp *ServiceProvider) TokenHandler(ctx context.Context) *tokenAPI.Handler {
	if sp.tokenHand == nil {
		sp.tokenHand = tokenAPI.NewHandler(tokenAPI.HandlerDeps{Serv: sp.TokenService(ctx)})
	}
	return sp.tokenHand
}

func (sp *ServiceProvider) RevenueService(ctx context.Context) service.RevenueService {
	if sp.revenueServ == nil {
		sp.revenueServ = revenue.NewRevenueService(
			sp.RevenueRepo(ctx),
			sp.CabinetRepo(ctx),
			sp.UserRepo(ctx),
			sp.PlatformStateRepo(),
			sp.TXManager(ctx),
		)
	}
	return sp.revenueServ
}

func (sp *ServiceProvider) RevenueHandler(ctx context.Context) *revenueAPI.Handler {
	if sp.revenueHand == nil {
		sp.revenueHand = revenueAPI.NewHandler(revenueAPI.HandlerDeps{Serv: sp.RevenueService(ctx)})
	}
	return sp.revenueHand
}

func (sp *ServiceProvider) RandomService() service.RandomService {
	if sp.randomServ == nil {
		sp.randomServ = random.NewRandomService(sp.RandomStateRepo(), sp.PlatformStateRepo())
	}
	return sp.randomServ
}

func (sp *ServiceProvider) AdminService() service.AdminService {
	if sp.adminServ == nil {
		sp.adminServ = admin.NewAdminService(sp.PlatformStateRepo())
	}
	return sp.adminServ
}

func (sp *ServiceProvider) AdminHandler() *adminAPI.Handler {
	if sp.adminHand == nil {
		sp.adminHand = adminAPI.NewHandler(adminAPI.HandlerDeps{
			Serv:       sp.AdminService(),
			RandomServ: sp.RandomService(),
		})
	}
	return sp.adminHand
}

func (sp *ServiceProvider) PlayService(ctx context.Context) service.PlayService {
	if sp.playServ == nil {
		sp.playServ = play.NewPlayService(
			sp.CabinetRepo(ctx),
			sp.UserRepo(ctx),
			sp.EscrowService(ctx),
			sp.TokenService(ctx),
			sp.RevenueService(ctx),
			sp.RandomService(),
			sp.PlatformStateRepo(),
			sp.StatsCache(),
			sp.TXManager(ctx),
			sp.GachaCfg(),
		)
	}
	return sp.playServ
}

func (sp *ServiceProvider) PlayHandler(ctx context.Context) *playAPI.Handler {
	if sp.playHand == nil {
		sp.playHand = playAPI.NewHandler(playAPI.HandlerDeps{Serv: sp.PlayService(ctx)})
	}
	return sp.playHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		// Auth endpoints, открыты без токена
		authHandler := sp.AuthHandler(ctx)
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/refresh", authHandler.Refresh)
		r.Post("/logout", authHandler.Logout)

		// Все остальное за access токеном
		r.Group(func(rr chi.Router) {
			rr.Use(middleware.Auth(sp.JWTCfg()))

			playHandler := sp.PlayHandler(ctx)
			rr.Post("/play", playHandler.Play)

			paymentHandler := sp.PaymentHandler(ctx)
			rr.Post("/wallet/deposit", paymentHandler.Deposit)
			rr.Get("/wallet", paymentHandler.Wallet)

			cabinetHandler := sp.CabinetHandler(ctx)
			escrowHandler := sp.EscrowHandler(ctx)
			rr.Route("/cabinets", func(cr chi.Router) {
				cr.Post("/", cabinetHandler.Create)
				cr.Get("/{cabinetID}", cabinetHandler.Get)
				cr.Put("/{cabinetID}/price", cabinetHandler.SetPrice)
				cr.Put("/{cabinetID}/max-items", cabinetHandler.SetMaxItems)
				cr.Put("/{cabinetID}/fee-rate", cabinetHandler.SetFeeRate)
				cr.Put("/{cabinetID}/maintenance", cabinetHandler.SetMaintenance)
				cr.Put("/{cabinetID}/active", cabinetHandler.SetActive)

				cr.Route("/{cabinetID}/items", func(er chi.Router) {
					er.Get("/", escrowHandler.Items)
					er.Post("/", escrowHandler.Deposit)
					er.Post("/withdraw", escrowHandler.Withdraw)
					er.Put("/toggle", escrowHandler.ToggleActive)
				})
			})

			revenueHandler := sp.RevenueHandler(ctx)
			rr.Route("/revenue", func(vr chi.Router) {
				vr.Get("/cabinets/{cabinetID}", revenueHandler.Revenue)
				vr.Get("/cabinets/{cabinetID}/forecast", revenueHandler.Forecast)
				vr.Post("/cabinets/{cabinetID}/withdraw", revenueHandler.Withdraw)
				vr.Post("/batch-withdraw", revenueHandler.BatchWithdraw)
				vr.Post("/platform/withdraw", revenueHandler.WithdrawPlatform)
				vr.Put("/platform/recipient", revenueHandler.SetPlatformRecipient)
			})

			tokenHandler := sp.TokenHandler(ctx)
			rr.Route("/token", func(tr chi.Router) {
				tr.Get("/stats", tokenHandler.Stats)
				tr.Post("/burn", tokenHandler.Burn)
				tr.Post("/mint", tokenHandler.Mint)
				tr.Post("/batch-mint", tokenHandler.BatchMint)
				tr.Post("/cabinets", tokenHandler.RegisterCabinet)
				tr.Put("/cabinets/active", tokenHandler.SetCabinetActive)
				tr.Put("/emission", tokenHandler.SetEmissionConfig)
			})

			adminHandler := sp.AdminHandler()
			rr.Route("/admin", func(ar chi.Router) {
				ar.Post("/pause", adminHandler.Pause)
				ar.Post("/unpause", adminHandler.Unpause)
				ar.Get("/status", adminHandler.Status)
				ar.Get("/random/consumers", adminHandler.Consumers)
				ar.Post("/random/consumers", adminHandler.AddConsumer)
				ar.Delete("/random/consumers", adminHandler.RemoveConsumer)
			})
		})

		sp.router = r
	}

	return sp.router
}
