package services

import (
	"database/sql"
	"strings"

	"stockroom/internal/apperr"
	"stockroom/internal/domain"
	"stockroom/internal/repos"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ItemService struct {
	Items      *repos.ItemRepo
	Categories *repos.CategoryRepo
	Locations  *repos.LocationRepo
	Seq        *repos.SequenceRepo
}

func NewItemService(items *repos.ItemRepo, cats *repos.CategoryRepo, locs *repos.LocationRepo, seq *repos.SequenceRepo) *ItemService {
	return &ItemService{Items: items, Categories: cats, Locations: locs, Seq: seq}
}

type ItemInput struct {
	Name       string          `json:"name"`
	SKU        string          `json:"sku"`
	CategoryID string          `json:"category_id"`
	LocationID string          `json:"location_id"`
	Type       string          `json:"type"`
	MinStock   int             `json:"min_stock"`
	Unit       string          `json:"unit"`
	Price      decimal.Decimal `json:"price"`
	Supplier   string          `json:"supplier"`
	SpecJSON   string          `json:"spec"`
	ImagesJSON string          `json:"images"`
	QRPayload  string          `json:"qr_payload"`
}

func (in *ItemInput) validate() error {
	var problems []string
	if strings.TrimSpace(in.Name) == "" {
		problems = append(problems, "name is required")
	}
	if in.CategoryID == "" {
		problems = append(problems, "category is required")
	}
	if in.LocationID == "" {
		problems = append(problems, "location is required")
	}
	if in.Type == "" {
		in.Type = domain.ItemTypeConsumable
	}
	if in.Type != domain.ItemTypeAsset && in.Type != domain.ItemTypeConsumable {
		problems = append(problems, "type must be asset or consumable")
	}
	if in.MinStock < 0 {
		problems = append(problems, "min_stock cannot be negative")
	}
	if in.Price.IsNegative() {
		problems = append(problems, "price cannot be negative")
	}
	if len(problems) > 0 {
		return apperr.Validationf("%s", strings.Join(problems, "; "))
	}
	return nil
}

// Create registers a catalog entry. Stock always starts at 0 and only
// the ledger moves it afterwards. A missing SKU is generated from the
// category prefix and the global item counter.
func (s *ItemService) Create(in ItemInput) (*domain.Item, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	cat, err := s.Categories.Get(in.CategoryID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFoundf("category not found")
		}
		return nil, err
	}
	ok, err := s.Locations.Exists(in.LocationID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFoundf("location not found")
	}

	sku := strings.TrimSpace(in.SKU)
	if sku == "" {
		n, err := s.Seq.Next("item")
		if err != nil {
			return nil, err
		}
		sku = formatSKU(skuPrefix(cat.Name), n)
	}

	it := &domain.Item{
		ID:         uuid.NewString(),
		SKU:        sku,
		Name:       strings.TrimSpace(in.Name),
		CategoryID: in.CategoryID,
		LocationID: in.LocationID,
		Type:       in.Type,
		Stock:      0,
		MinStock:   in.MinStock,
		Unit:       in.Unit,
		Price:      in.Price,
		Supplier:   in.Supplier,
		SpecJSON:   in.SpecJSON,
		ImagesJSON: in.ImagesJSON,
		QRPayload:  in.QRPayload,
	}
	if err := s.Items.Insert(it); err != nil {
		return nil, apperr.FromUnique(err)
	}
	return s.Get(it.ID)
}

func (s *ItemService) Get(id string) (*domain.Item, error) {
	it, err := s.Items.Get(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFoundf("item not found")
		}
		return nil, err
	}
	it.Derive()
	return &it, nil
}

// List returns items with derived status. Status is never stored, so a
// status filter fetches the full match set and pages in memory after
// derivation; paging in SQL first would drop matches past the page.
func (s *ItemService) List(categoryID, locationID, q, status string, limit, offset int) ([]domain.Item, error) {
	dbLimit, dbOffset := limit, offset
	if status != "" {
		dbLimit, dbOffset = -1, 0 // LIMIT -1 disables the SQL page
	}
	items, err := s.Items.List(categoryID, locationID, strings.ToLower(q), dbLimit, dbOffset)
	if err != nil {
		return nil, err
	}
	out := items[:0]
	for i := range items {
		items[i].Derive()
		if status != "" && items[i].Status != status {
			continue
		}
		out = append(out, items[i])
	}
	if status != "" {
		if offset >= len(out) {
			return []domain.Item{}, nil
		}
		out = out[offset:]
		if limit > 0 && limit < len(out) {
			out = out[:limit]
		}
	}
	return out, nil
}

// Update rewrites catalog fields. SKU and stock are immutable here:
// stock belongs to the ledger, the SKU is assigned once.
func (s *ItemService) Update(id string, in ItemInput) (*domain.Item, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	cur, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	cur.Name = strings.TrimSpace(in.Name)
	cur.CategoryID = in.CategoryID
	cur.LocationID = in.LocationID
	cur.Type = in.Type
	cur.MinStock = in.MinStock
	cur.Unit = in.Unit
	cur.Price = in.Price
	cur.Supplier = in.Supplier
	cur.SpecJSON = in.SpecJSON
	cur.ImagesJSON = in.ImagesJSON
	cur.QRPayload = in.QRPayload

	if err := s.Items.Update(cur); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFoundf("item not found")
		}
		return nil, apperr.FromUnique(err)
	}
	return s.Get(id)
}

func (s *ItemService) Delete(id string) error {
	if err := s.Items.Delete(id); err != nil {
		if err == sql.ErrNoRows {
			return apperr.NotFoundf("item not found")
		}
		return err
	}
	return nil
}
