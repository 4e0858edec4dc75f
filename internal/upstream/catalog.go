package upstream

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tallerpro/booking-api/internal/model"
)

// CatalogClient reads the brand/model catalog, {id, nombre} pairs only.
type CatalogClient struct {
	c *client
}

func NewCatalogClient(baseURL string, timeout time.Duration) *CatalogClient {
	return &CatalogClient{c: newClient("catalog", baseURL, timeout)}
}

func (cc *CatalogClient) Marcas(ctx context.Context) ([]model.Marca, error) {
	var marcas []model.Marca
	if err := cc.c.do(ctx, "marcas", http.MethodGet, "/marcas", nil, &marcas); err != nil {
		return nil, err
	}
	return marcas, nil
}

func (cc *CatalogClient) Modelos(ctx context.Context, marcaID int64) ([]model.Modelo, error) {
	var modelos []model.Modelo
	if err := cc.c.do(ctx, "modelos", http.MethodGet, fmt.Sprintf("/modelos/%d", marcaID), nil, &modelos); err != nil {
		return nil, err
	}
	return modelos, nil
}
