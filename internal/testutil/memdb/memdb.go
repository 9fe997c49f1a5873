// Package memdb implementa los puertos de repositorio en memoria para tests.
// RunSale serializa las transacciones con un mutex y trabaja sobre una copia del estado:
// si fn falla, la copia se descarta (rollback).
package memdb

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/techstore-pos/internal/domain"
	"github.com/jhoicas/techstore-pos/internal/domain/entity"
	"github.com/jhoicas/techstore-pos/internal/domain/repository"
	"github.com/shopspring/decimal"
)

type state struct {
	products  map[string]entity.Product
	customers map[string]entity.Customer
	users     map[string]entity.User
	sales     []entity.Sale
	items     map[string][]entity.SaleItem
}

func (s *state) clone() *state {
	c := &state{
		products:  make(map[string]entity.Product, len(s.products)),
		customers: make(map[string]entity.Customer, len(s.customers)),
		users:     make(map[string]entity.User, len(s.users)),
		sales:     append([]entity.Sale(nil), s.sales...),
		items:     make(map[string][]entity.SaleItem, len(s.items)),
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.items {
		c.items[k] = append([]entity.SaleItem(nil), v...)
	}
	return c
}

// DB base de datos en memoria.
type DB struct {
	mu    sync.Mutex
	state *state

	// FailAppend, si no es nil, lo devuelve SaleRepo.Append (simula fallo de escritura).
	FailAppend error
	// TxDelay se duerme dentro de la tx antes de ejecutar fn (fuerza solapamiento en tests de concurrencia).
	TxDelay time.Duration
}

// New crea una base vacía.
func New() *DB {
	return &DB{state: &state{
		products:  map[string]entity.Product{},
		customers: map[string]entity.Customer{},
		users:     map[string]entity.User{},
		items:     map[string][]entity.SaleItem{},
	}}
}

// AddProduct inserta un producto tal cual (sin validar).
func (db *DB) AddProduct(p entity.Product) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.state.products[p.ID] = p
}

// AddCustomer inserta un cliente tal cual.
func (db *DB) AddCustomer(c entity.Customer) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.state.customers[c.ID] = c
}

// AddUser inserta un operador tal cual.
func (db *DB) AddUser(u entity.User) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.state.users[u.ID] = u
}

// AddSale inserta una venta histórica con sus líneas.
func (db *DB) AddSale(s entity.Sale, items ...entity.SaleItem) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.state.sales = append(db.state.sales, s)
	db.state.items[s.ID] = append(db.state.items[s.ID], items...)
}

// Product devuelve el estado confirmado de un producto.
func (db *DB) Product(id string) entity.Product {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.state.products[id]
}

// SaleCount número de ventas confirmadas.
func (db *DB) SaleCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.state.sales)
}

// ItemCount número total de líneas confirmadas.
func (db *DB) ItemCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	n := 0
	for _, list := range db.state.items {
		n += len(list)
	}
	return n
}

// Products repositorio fuera de transacción.
func (db *DB) Products() *ProductRepo { return &ProductRepo{db: db} }

// Customers repositorio fuera de transacción.
func (db *DB) Customers() *CustomerRepo { return &CustomerRepo{db: db} }

// Users repositorio fuera de transacción.
func (db *DB) Users() *UserRepo { return &UserRepo{db: db} }

// Sales repositorio fuera de transacción.
func (db *DB) Sales() *SaleRepo { return &SaleRepo{db: db} }

// RunSale implementa sales.TxRunner.
func (db *DB) RunSale(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.TxDelay > 0 {
		time.Sleep(db.TxDelay)
	}
	tx := db.state.clone()
	if err := fn(&ProductRepo{db: db, tx: tx}, &SaleRepo{db: db, tx: tx}); err != nil {
		return err
	}
	db.state = tx
	return nil
}

func (db *DB) with(tx *state, fn func(st *state)) {
	if tx != nil {
		fn(tx)
		return
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	fn(db.state)
}

// ── Productos ───────────────────────────────────────────────────────────────

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	db *DB
	tx *state
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.db.with(r.tx, func(st *state) { st.products[p.ID] = *p })
	return nil
}

func (r *ProductRepo) GetActiveByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.db.with(r.tx, func(st *state) {
		if p, ok := st.products[id]; ok && p.Active {
			out = &p
		}
	})
	return out, nil
}

func (r *ProductRepo) ListActive(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	r.db.with(r.tx, func(st *state) {
		for _, p := range st.products {
			if !p.Active {
				continue
			}
			if f.NameContains != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.NameContains)) {
				continue
			}
			if f.Category != "" && p.Category != f.Category {
				continue
			}
			p := p
			out = append(out, &p)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ProductRepo) ListCategories(_ context.Context) ([]string, error) {
	set := map[string]struct{}{}
	r.db.with(r.tx, func(st *state) {
		for _, p := range st.products {
			if p.Active {
				set[p.Category] = struct{}{}
			}
		}
	})
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

func (r *ProductRepo) ListLowStock(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	r.db.with(r.tx, func(st *state) {
		for _, p := range st.products {
			if p.Active && p.IsLowStock() {
				p := p
				out = append(out, &p)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Stock != out[j].Stock {
			return out[i].Stock < out[j].Stock
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *ProductRepo) CountActive(_ context.Context) (int, error) {
	n := 0
	r.db.with(r.tx, func(st *state) {
		for _, p := range st.products {
			if p.Active {
				n++
			}
		}
	})
	return n, nil
}

func (r *ProductRepo) Deactivate(_ context.Context, id string) error {
	r.db.with(r.tx, func(st *state) {
		if p, ok := st.products[id]; ok {
			p.Active = false
			st.products[id] = p
		}
	})
	return nil
}

func (r *ProductRepo) GetForUpdate(_ context.Context, ids []string) ([]*entity.Product, error) {
	var out []*entity.Product
	r.db.with(r.tx, func(st *state) {
		for _, id := range ids {
			if p, ok := st.products[id]; ok && p.Active {
				p := p
				out = append(out, &p)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ProductRepo) DecrementStock(_ context.Context, id string, quantity int) (*entity.Product, error) {
	var out *entity.Product
	var err error
	r.db.with(r.tx, func(st *state) {
		p, ok := st.products[id]
		if !ok || !p.Active {
			err = &domain.ProductNotFoundError{ProductID: id}
			return
		}
		if p.Stock < quantity {
			err = &domain.InsufficientStockError{ProductID: id, ProductName: p.Name, Requested: quantity, Available: p.Stock}
			return
		}
		p.Stock -= quantity
		st.products[id] = p
		out = &p
	})
	return out, err
}

// ── Clientes ────────────────────────────────────────────────────────────────

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación en memoria de CustomerRepository.
type CustomerRepo struct {
	db *DB
}

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	var err error
	r.db.with(nil, func(st *state) {
		for _, existing := range st.customers {
			if existing.DocumentID == c.DocumentID {
				err = domain.ErrDuplicate
				return
			}
		}
		st.customers[c.ID] = *c
	})
	return err
}

func (r *CustomerRepo) GetActiveByID(_ context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	r.db.with(nil, func(st *state) {
		if c, ok := st.customers[id]; ok && c.Active {
			out = &c
		}
	})
	return out, nil
}

func (r *CustomerRepo) GetByDocumentID(_ context.Context, documentID string) (*entity.Customer, error) {
	var out *entity.Customer
	r.db.with(nil, func(st *state) {
		for _, c := range st.customers {
			if c.DocumentID == documentID {
				c := c
				out = &c
				return
			}
		}
	})
	return out, nil
}

func (r *CustomerRepo) ListActive(_ context.Context, search string) ([]*entity.Customer, error) {
	var out []*entity.Customer
	q := strings.ToLower(search)
	r.db.with(nil, func(st *state) {
		for _, c := range st.customers {
			if !c.Active {
				continue
			}
			if q != "" && !strings.Contains(strings.ToLower(c.Name), q) && !strings.Contains(strings.ToLower(c.DocumentID), q) {
				continue
			}
			c := c
			out = append(out, &c)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CustomerRepo) CountActive(_ context.Context) (int, error) {
	n := 0
	r.db.with(nil, func(st *state) {
		for _, c := range st.customers {
			if c.Active {
				n++
			}
		}
	})
	return n, nil
}

// ── Operadores ──────────────────────────────────────────────────────────────

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct {
	db *DB
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	var err error
	r.db.with(nil, func(st *state) {
		for _, existing := range st.users {
			if existing.Username == u.Username {
				err = domain.ErrUsernameExists
				return
			}
		}
		st.users[u.ID] = *u
	})
	return err
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	r.db.with(nil, func(st *state) {
		if u, ok := st.users[id]; ok {
			out = &u
		}
	})
	return out, nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	var out *entity.User
	r.db.with(nil, func(st *state) {
		for _, u := range st.users {
			if u.Username == username {
				u := u
				out = &u
				return
			}
		}
	})
	return out, nil
}

// ── Ventas ──────────────────────────────────────────────────────────────────

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación en memoria de SaleRepository.
type SaleRepo struct {
	db *DB
	tx *state
}

func (r *SaleRepo) Append(_ context.Context, sale *entity.Sale, items []*entity.SaleItem) error {
	if r.db.FailAppend != nil {
		return r.db.FailAppend
	}
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	r.db.with(r.tx, func(st *state) {
		st.sales = append(st.sales, *sale)
		for _, it := range items {
			if it.ID == "" {
				it.ID = uuid.New().String()
			}
			it.SaleID = sale.ID
			st.items[sale.ID] = append(st.items[sale.ID], *it)
		}
	})
	return nil
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	r.db.with(r.tx, func(st *state) {
		for _, s := range st.sales {
			if s.ID == id {
				s := s
				out = &s
				return
			}
		}
	})
	return out, nil
}

func (r *SaleRepo) GetItems(_ context.Context, saleID string) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	r.db.with(r.tx, func(st *state) {
		for _, it := range st.items[saleID] {
			it := it
			if p, ok := st.products[it.ProductID]; ok {
				it.ProductName = p.Name
			}
			out = append(out, &it)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].LineNo < out[j].LineNo })
	return out, nil
}

func (r *SaleRepo) ListByDateRange(_ context.Context, start, end *time.Time) ([]*entity.Sale, error) {
	var out []*entity.Sale
	r.db.with(r.tx, func(st *state) {
		for _, s := range st.sales {
			if start != nil && s.Date.Before(*start) {
				continue
			}
			if end != nil && s.Date.After(*end) {
				continue
			}
			s := s
			out = append(out, &s)
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *SaleRepo) ListRecent(_ context.Context, limit int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	r.db.with(r.tx, func(st *state) {
		for _, s := range st.sales {
			s := s
			out = append(out, &s)
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *SaleRepo) TopSellingProducts(_ context.Context, limit int) ([]repository.ProductSales, error) {
	qty := map[string]int{}
	names := map[string]string{}
	r.db.with(r.tx, func(st *state) {
		for _, s := range st.sales {
			if s.Status != entity.SaleStatusCompleted {
				continue
			}
			for _, it := range st.items[s.ID] {
				qty[it.ProductID] += it.Quantity
				names[it.ProductID] = st.products[it.ProductID].Name
			}
		}
	})
	out := make([]repository.ProductSales, 0, len(qty))
	for id, q := range qty {
		out = append(out, repository.ProductSales{ProductID: id, ProductName: names[id], QuantitySold: q})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].QuantitySold != out[j].QuantitySold {
			return out[i].QuantitySold > out[j].QuantitySold
		}
		return out[i].ProductID < out[j].ProductID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *SaleRepo) TotalsBetween(_ context.Context, start, end time.Time) (decimal.Decimal, int, error) {
	total := decimal.Zero
	count := 0
	r.db.with(r.tx, func(st *state) {
		for _, s := range st.sales {
			if s.Status != entity.SaleStatusCompleted || s.Date.Before(start) || s.Date.After(end) {
				continue
			}
			total = total.Add(s.Total)
			count++
		}
	})
	return total, count, nil
}

func (r *SaleRepo) CustomerTotals(_ context.Context, customerID string) (decimal.Decimal, int, error) {
	total := decimal.Zero
	count := 0
	r.db.with(r.tx, func(st *state) {
		for _, s := range st.sales {
			if s.CustomerID == nil || *s.CustomerID != customerID || s.Status != entity.SaleStatusCompleted {
				continue
			}
			total = total.Add(s.Total)
			count++
		}
	})
	return total, count, nil
}
