package services

import (
	"lumina/internal/domain"
	"lumina/internal/repos"
)

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

// PricedProduct pairs a product with the price and quantity floor the current
// viewer sees. The wholesale view keeps the retail price around so the
// discount can be shown struck through.
type PricedProduct struct {
	domain.Product
	Price     float64
	MinQty    int
	Wholesale bool
}

// PriceFor resolves the unit price and minimum quantity for a viewer.
// Approved B2B accounts get the wholesale price and the product's B2B floor;
// everyone else gets retail with a floor of 1.
func PriceFor(p domain.Product, u *domain.User) PricedProduct {
	if u.Wholesale() {
		return PricedProduct{Product: p, Price: p.B2BPrice, MinQty: p.MinQtyB2B, Wholesale: true}
	}
	return PricedProduct{Product: p, Price: p.B2CPrice, MinQty: 1}
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

// ListProducts returns viewer-priced products, optionally filtered by
// category and search keyword.
func (s *CatalogService) ListProducts(catID, q string, u *domain.User, page, pageSize int) ([]PricedProduct, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 24
	}
	offset := (page - 1) * pageSize
	prods, err := s.Prods.List(catID, q, pageSize, offset)
	if err != nil {
		return nil, err
	}
	out := make([]PricedProduct, 0, len(prods))
	for _, p := range prods {
		out = append(out, PriceFor(p, u))
	}
	return out, nil
}

func (s *CatalogService) GetProduct(id string) (domain.Product, error) {
	return s.Prods.Get(id)
}
