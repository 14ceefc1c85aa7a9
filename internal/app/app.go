// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: создаёт БД-пул, репозитории, сервисы,
// обработчики и собирает всё в HTTP-сервер с планировщиком.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/oasis-backend/internal/config"
	"serotonyl.ru/oasis-backend/internal/db/postgres"
	"serotonyl.ru/oasis-backend/internal/features/adminquery"
	"serotonyl.ru/oasis-backend/internal/features/auth"
	"serotonyl.ru/oasis-backend/internal/features/avatar"
	"serotonyl.ru/oasis-backend/internal/features/economy"
	"serotonyl.ru/oasis-backend/internal/features/friends"
	"serotonyl.ru/oasis-backend/internal/features/plans"
	"serotonyl.ru/oasis-backend/internal/features/ugc"
	"serotonyl.ru/oasis-backend/internal/features/users"
	"serotonyl.ru/oasis-backend/internal/features/world"
	"serotonyl.ru/oasis-backend/internal/httpserver"
	"serotonyl.ru/oasis-backend/internal/httpserver/middleware"
	"serotonyl.ru/oasis-backend/internal/jobs"
)

// App содержит все компоненты приложения.
type App struct {
	Server       *http.Server
	Scheduler    *jobs.Scheduler
	DB           *pgxpool.Pool
	LoginLimiter *middleware.RateLimiter
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. База данных ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	if err := runMigrations(ctx, pool); err != nil {
		return nil, fmt.Errorf("ошибка миграций: %w", err)
	}

	// === 2. Репозитории ===
	userRepo := users.NewRepository(pool)
	planRepo := plans.NewRepository(pool)
	worldRepo := world.NewRepository(pool)
	economyRepo := economy.NewRepository(pool)
	ugcRepo := ugc.NewRepository(pool)
	avatarRepo := avatar.NewRepository(pool)
	friendRepo := friends.NewRepository(pool)
	adminRepo := adminquery.NewRepository(pool)

	// === 3. Сервисы ===
	tokens := auth.NewTokenManager(cfg)
	authService := auth.NewService(userRepo, planRepo, tokens, cfg)
	userService := users.NewService(userRepo)
	worldService := world.NewService(worldRepo, cfg)
	economyService := economy.NewService(economyRepo)
	ugcService := ugc.NewService(ugcRepo)
	avatarService := avatar.NewService(avatarRepo)
	friendService := friends.NewService(friendRepo, userRepo)

	// === 4. Обработчики ===
	handlers := &httpserver.Handlers{
		Auth:       auth.NewHandler(authService),
		Users:      users.NewHandler(userService),
		Plans:      plans.NewHandler(planRepo),
		World:      world.NewHandler(worldService),
		Economy:    economy.NewHandler(economyService, economyRepo),
		UGC:        ugc.NewHandler(ugcService, ugcRepo),
		Avatar:     avatar.NewHandler(avatarService),
		Friends:    friends.NewHandler(friendService),
		AdminQuery: adminquery.NewHandler(adminRepo),
	}

	// === 5. HTTP-сервер ===
	loginLimiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	router := httpserver.NewRouter(cfg, tokens, handlers, loginLimiter)
	server := httpserver.NewServer(cfg, router)

	// === 6. Планировщик задач ===
	scheduler := jobs.NewScheduler(worldService)

	log.Info("Приложение инициализировано")

	return &App{
		Server:       server,
		Scheduler:    scheduler,
		DB:           pool,
		LoginLimiter: loginLimiter,
	}, nil
}

// runMigrations выполняет все SQL-миграции по порядку.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	return postgres.Apply(ctx, pool, []postgres.Migration{
		{Version: 1, SQL: migration001PlansUsers},
		{Version: 2, SQL: migration002Assets},
		{Version: 3, SQL: migration003Avatars},
		{Version: 4, SQL: migration004Worlds},
		{Version: 5, SQL: migration005Friendships},
		{Version: 6, SQL: migration006Currencies},
	})
}

// SQL-миграции встроены в код для упрощения деплоя.

var migration001PlansUsers = `
CREATE TABLE IF NOT EXISTS subscription_plans (
    plan_id SERIAL PRIMARY KEY,
    plan_name VARCHAR(100) UNIQUE NOT NULL,
    max_assets_allowed INTEGER NOT NULL DEFAULT 0,
    max_poly_count INTEGER NOT NULL DEFAULT 0,
    max_texture_size_mb NUMERIC(10,2) NOT NULL DEFAULT 0,
    price_monthly NUMERIC(18,2) NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS users (
    user_id SERIAL PRIMARY KEY,
    username VARCHAR(100) UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    email VARCHAR(255) NOT NULL DEFAULT '',
    status VARCHAR(32) NOT NULL DEFAULT 'active',
    role VARCHAR(32) NOT NULL DEFAULT 'gamer',
    plan_id INTEGER REFERENCES subscription_plans(plan_id) ON DELETE RESTRICT,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_users_username ON users(username);

INSERT INTO subscription_plans (plan_name, max_assets_allowed, max_poly_count, max_texture_size_mb, price_monthly)
VALUES ('Basic', 10, 50000, 16, 0)
ON CONFLICT (plan_name) DO NOTHING;
`

var migration002Assets = `
CREATE TABLE IF NOT EXISTS user_assets (
    asset_id SERIAL PRIMARY KEY,
    asset_name VARCHAR(255) NOT NULL,
    asset_type VARCHAR(100),
    storage_path TEXT NOT NULL,
    poly_count INTEGER NOT NULL DEFAULT 0,
    file_size_mb NUMERIC(10,2) NOT NULL DEFAULT 0,
    status VARCHAR(32) NOT NULL DEFAULT 'Private',
    is_public BOOLEAN NOT NULL DEFAULT FALSE,
    ip_owner_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE RESTRICT,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_user_assets_owner ON user_assets(ip_owner_id);
CREATE INDEX IF NOT EXISTS idx_user_assets_catalog ON user_assets(status, is_public);

CREATE TABLE IF NOT EXISTS player_asset_inventory (
    inventory_id SERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    master_asset_id INTEGER NOT NULL REFERENCES user_assets(asset_id) ON DELETE RESTRICT,
    custom_properties JSONB NOT NULL DEFAULT '{}'::jsonb,
    UNIQUE (user_id, master_asset_id)
);
CREATE INDEX IF NOT EXISTS idx_inventory_user ON player_asset_inventory(user_id);
`

var migration003Avatars = `
CREATE TABLE IF NOT EXISTS avatar_configs (
    config_id SERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    config_name VARCHAR(100) NOT NULL,
    UNIQUE (user_id, config_name)
);

CREATE TABLE IF NOT EXISTS avatar_asset_mapping (
    mapping_id SERIAL PRIMARY KEY,
    config_id INTEGER NOT NULL REFERENCES avatar_configs(config_id) ON DELETE CASCADE,
    inventory_id INTEGER NOT NULL REFERENCES player_asset_inventory(inventory_id) ON DELETE RESTRICT,
    slot VARCHAR(100) NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_mapping_config ON avatar_asset_mapping(config_id);
`

var migration004Worlds = `
CREATE TABLE IF NOT EXISTS world_configs (
    world_id SERIAL PRIMARY KEY,
    world_name VARCHAR(100) NOT NULL,
    scene_path TEXT NOT NULL,
    gravity REAL NOT NULL DEFAULT -9.81,
    max_players INTEGER NOT NULL DEFAULT 100
);

CREATE TABLE IF NOT EXISTS world_instances (
    instance_id SERIAL PRIMARY KEY,
    world_id INTEGER NOT NULL REFERENCES world_configs(world_id) ON DELETE CASCADE,
    ip_address VARCHAR(45) NOT NULL,
    port INTEGER NOT NULL,
    current_players INTEGER NOT NULL DEFAULT 0 CHECK (current_players >= 0),
    started_at TIMESTAMP NOT NULL DEFAULT NOW(),
    last_seen_at TIMESTAMP NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_instances_world_load ON world_instances(world_id, current_players);
CREATE INDEX IF NOT EXISTS idx_instances_last_seen ON world_instances(last_seen_at);
`

var migration005Friendships = `
CREATE TABLE IF NOT EXISTS user_friendships (
    friendship_id SERIAL PRIMARY KEY,
    requester_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    target_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    status VARCHAR(32) NOT NULL DEFAULT 'Pending',
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    accepted_at TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_friendships_pair
    ON user_friendships (LEAST(requester_id, target_id), GREATEST(requester_id, target_id));
`

var migration006Currencies = `
CREATE TABLE IF NOT EXISTS currency_types (
    currency_id SERIAL PRIMARY KEY,
    currency_name VARCHAR(100) UNIQUE NOT NULL,
    abbreviation VARCHAR(10) NOT NULL DEFAULT '',
    is_premium BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS user_balances (
    balance_id SERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    currency_id INTEGER NOT NULL REFERENCES currency_types(currency_id) ON DELETE RESTRICT,
    amount NUMERIC(18,2) NOT NULL DEFAULT 0,
    UNIQUE (user_id, currency_id)
);

INSERT INTO currency_types (currency_name, abbreviation, is_premium) VALUES
    ('Gold', 'GLD', FALSE),
    ('Gems', 'GEM', TRUE)
ON CONFLICT (currency_name) DO NOTHING;
`
