package handlers

import (
	"bazaar/internal/config"
	"bazaar/internal/repos"
	"bazaar/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Auth *services.AuthService

	AuthHandler     *AuthHandler
	ProductHandler  *ProductHandler
	PurchaseHandler *PurchaseHandler
	CommentHandler  *CommentHandler
	UserHandler     *UserHandler
	StoreHandler    *StoreHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	store := repos.NewStore(db)
	authSvc := &services.AuthService{Users: store.UserRepo}

	return &Deps{
		Auth:            authSvc,
		AuthHandler:     &AuthHandler{Auth: authSvc},
		ProductHandler:  &ProductHandler{Catalog: services.NewCatalogService(store, cfg.EnrichWorkers)},
		PurchaseHandler: &PurchaseHandler{Purchases: services.NewPurchaseService(store)},
		CommentHandler:  &CommentHandler{Comments: services.NewCommentService(store)},
		UserHandler:     &UserHandler{Dashboard: services.NewDashboardService(store)},
		StoreHandler:    &StoreHandler{DB: db},
	}
}
