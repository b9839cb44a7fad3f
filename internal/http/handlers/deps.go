package handlers

import (
	"lumina/internal/config"
	"lumina/internal/repos"
	"lumina/internal/services"
	"lumina/internal/storage"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	CatalogHandler  *CatalogHandler
	CartHandler     *CartHandler
	OrderHandler    *OrderHandler
	ResellerHandler *ResellerHandler
	B2BHandler      *B2BHandler
	AdminHandler    *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	appRepo := repos.NewApplicationRepo(db)
	userRepo := repos.NewUserRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	orderSvc := services.NewOrderService(cartRepo, orderRepo, cfg.WhatsAppNumber)
	resellerSvc := services.NewResellerService(appRepo, userRepo, auth)
	media := storage.NewMediaStore(cfg.MediaDir)

	return &Deps{
		CatalogHandler:  &CatalogHandler{Catalog: catalogSvc, Cart: cartSvc},
		CartHandler:     &CartHandler{Cart: cartSvc},
		OrderHandler:    &OrderHandler{Cart: cartSvc, Order: orderSvc, Repo: orderRepo, StoreName: cfg.StoreName},
		ResellerHandler: &ResellerHandler{Reseller: resellerSvc},
		B2BHandler:      &B2BHandler{Orders: orderRepo, Cart: cartSvc},
		AdminHandler: &AdminHandler{
			Cats: catRepo, Prods: prodRepo, Orders: orderRepo,
			Reseller: resellerSvc, Media: media,
		},
	}
}
