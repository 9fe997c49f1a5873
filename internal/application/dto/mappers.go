package dto

import "github.com/jhoicas/techstore-pos/internal/domain/entity"

// FromProduct convierte la entidad en su respuesta (incluye LowStock derivado).
func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		Category:          p.Category,
		Description:       p.Description,
		Price:             p.Price,
		Stock:             p.Stock,
		LowStockThreshold: p.LowStockThreshold,
		LowStock:          p.IsLowStock(),
		CreatedAt:         p.CreatedAt,
	}
}

// FromProducts convierte una lista; nunca devuelve nil para serializar [] en JSON.
func FromProducts(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, FromProduct(p))
	}
	return out
}

// FromCustomer convierte la entidad cliente.
func FromCustomer(c *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:           c.ID,
		Name:         c.Name,
		DocumentID:   c.DocumentID,
		DocumentType: c.DocumentType,
		Phone:        c.Phone,
		Email:        c.Email,
		Address:      c.Address,
		CreatedAt:    c.CreatedAt,
	}
}

// FromSale convierte cabecera y (opcionalmente) líneas de una venta.
func FromSale(s *entity.Sale, items []*entity.SaleItem) SaleResponse {
	resp := SaleResponse{
		ID:         s.ID,
		Date:       s.Date,
		CustomerID: s.CustomerID,
		UserID:     s.UserID,
		Subtotal:   s.Subtotal,
		TaxAmount:  s.TaxAmount,
		Total:      s.Total,
		Status:     s.Status,
		Notes:      s.Notes,
	}
	if len(items) > 0 {
		resp.Items = make([]SaleItemResponse, 0, len(items))
		for _, it := range items {
			resp.Items = append(resp.Items, SaleItemResponse{
				ID:          it.ID,
				ProductID:   it.ProductID,
				ProductName: it.ProductName,
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
				Subtotal:    it.Subtotal,
			})
		}
	}
	return resp
}

// FromSales convierte solo cabeceras.
func FromSales(list []*entity.Sale) []SaleResponse {
	out := make([]SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, FromSale(s, nil))
	}
	return out
}

// FromUser convierte un operador sin exponer el hash.
func FromUser(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}
