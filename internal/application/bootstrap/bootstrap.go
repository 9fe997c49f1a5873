// Package bootstrap inicializa el sistema una sola vez al arrancar el proceso:
// migraciones, operador administrador y catálogo inicial.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/techstore-pos/internal/domain"
	"github.com/jhoicas/techstore-pos/internal/domain/entity"
	"github.com/jhoicas/techstore-pos/internal/domain/repository"
	"github.com/jhoicas/techstore-pos/pkg/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Migrator aplica el esquema de base de datos (goose en producción).
type Migrator interface {
	Up(ctx context.Context) error
}

// Options qué pasos ejecutar.
type Options struct {
	AdminUsername string
	AdminPassword string
	SeedCatalog   bool
}

// Bootstrapper ejecuta la inicialización explícita.
type Bootstrapper struct {
	migrator    Migrator
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	log         *logger.Logger
	opts        Options
}

// New construye el bootstrapper. migrator puede ser nil (sin migraciones automáticas).
func New(
	migrator Migrator,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	log *logger.Logger,
	opts Options,
) *Bootstrapper {
	return &Bootstrapper{
		migrator:    migrator,
		userRepo:    userRepo,
		productRepo: productRepo,
		log:         log,
		opts:        opts,
	}
}

// Run aplica migraciones, crea el admin si no existe y siembra el catálogo si está vacío.
// Es idempotente: ejecutarlo de nuevo no duplica datos.
func (b *Bootstrapper) Run(ctx context.Context) error {
	if b.migrator != nil {
		if err := b.migrator.Up(ctx); err != nil {
			return fmt.Errorf("bootstrap: migraciones: %w", err)
		}
		b.log.Info().Msg("migraciones aplicadas")
	}
	if err := b.ensureAdmin(ctx); err != nil {
		return err
	}
	if b.opts.SeedCatalog {
		if err := b.seedCatalog(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bootstrapper) ensureAdmin(ctx context.Context) error {
	if b.opts.AdminUsername == "" {
		return nil
	}
	existing, err := b.userRepo.GetByUsername(ctx, b.opts.AdminUsername)
	if err != nil {
		return fmt.Errorf("bootstrap: buscar admin: %w", err)
	}
	if existing != nil {
		return nil
	}
	if b.opts.AdminPassword == "" {
		return fmt.Errorf("bootstrap: %w: BOOTSTRAP_ADMIN_PASSWORD vacío", domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(b.opts.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("bootstrap: hash admin: %w", err)
	}
	now := time.Now()
	admin := &entity.User{
		ID:           uuid.New().String(),
		Username:     b.opts.AdminUsername,
		PasswordHash: string(hash),
		Name:         "Administrador",
		Role:         entity.RoleAdmin,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := b.userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("bootstrap: crear admin: %w", err)
	}
	b.log.Info().Str("username", admin.Username).Msg("operador admin creado")
	return nil
}

func (b *Bootstrapper) seedCatalog(ctx context.Context) error {
	n, err := b.productRepo.CountActive(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap: contar productos: %w", err)
	}
	if n > 0 {
		return nil
	}
	now := time.Now()
	for _, seed := range initialCatalog {
		p := &entity.Product{
			ID:                uuid.New().String(),
			Name:              seed.name,
			Category:          seed.category,
			Price:             decimal.RequireFromString(seed.price),
			Stock:             seed.stock,
			LowStockThreshold: seed.threshold,
			Active:            true,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := b.productRepo.Create(ctx, p); err != nil {
			return fmt.Errorf("bootstrap: crear producto %s: %w", seed.name, err)
		}
	}
	b.log.Info().Int("count", len(initialCatalog)).Msg("catálogo inicial creado")
	return nil
}
