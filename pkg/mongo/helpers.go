package mongo

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/GhaniKale/skincare-marketplace/pkg/models"
)

type categoryDoc struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Slug        string    `bson:"slug"`
	Description string    `bson:"description"`
	CreatedAt   time.Time `bson:"created_at"`
}

type productDoc struct {
	ID          string          `bson:"_id"`
	CategoryID  string          `bson:"category_id"`
	Name        string          `bson:"name"`
	Slug        string          `bson:"slug"`
	Description string          `bson:"description"`
	Price       bson.Decimal128 `bson:"price"`
	ImageURL    string          `bson:"image_url"`
	Ingredients string          `bson:"ingredients"`
	SkinType    string          `bson:"skin_type"`
	Size        string          `bson:"size"`
	InStock     bool            `bson:"in_stock"`
	Featured    bool            `bson:"featured"`
	CreatedAt   time.Time       `bson:"created_at"`
}

type cartItemDoc struct {
	ID        string      `bson:"_id"`
	SessionID string      `bson:"session_id"`
	ProductID string      `bson:"product_id"`
	Quantity  int         `bson:"quantity"`
	CreatedAt time.Time   `bson:"created_at"`
	UpdatedAt time.Time   `bson:"updated_at"`
	Product   *productDoc `bson:"product,omitempty"`
}

type lineItemDoc struct {
	ProductID   string          `bson:"product_id"`
	ProductName string          `bson:"product_name"`
	Price       bson.Decimal128 `bson:"price"`
	Quantity    int             `bson:"quantity"`
}

type orderDoc struct {
	ID              string          `bson:"_id"`
	OrderNumber     string          `bson:"order_number"`
	CustomerName    string          `bson:"customer_name"`
	CustomerEmail   string          `bson:"customer_email"`
	CustomerPhone   string          `bson:"customer_phone"`
	ShippingAddress string          `bson:"shipping_address"`
	OrderItems      []lineItemDoc   `bson:"order_items"`
	TotalAmount     bson.Decimal128 `bson:"total_amount"`
	Status          string          `bson:"status"`
	CreatedAt       time.Time       `bson:"created_at"`
}

func toDecimal128(d decimal.Decimal) bson.Decimal128 {
	v, err := bson.ParseDecimal128(d.String())
	if err != nil {
		// more than 34 significant digits; round to cents
		v, _ = bson.ParseDecimal128(d.StringFixed(2))
	}
	return v
}

func fromDecimal128(d bson.Decimal128) decimal.Decimal {
	v, err := decimal.NewFromString(d.String())
	if err != nil {
		return decimal.Zero
	}
	return v
}

func (d categoryDoc) toModel() models.Category {
	return models.Category{
		ID:          d.ID,
		Name:        d.Name,
		Slug:        d.Slug,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
	}
}

func newCategoryDoc(c models.Category) categoryDoc {
	return categoryDoc{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

func (d productDoc) toModel() models.Product {
	return models.Product{
		ID:          d.ID,
		CategoryID:  d.CategoryID,
		Name:        d.Name,
		Slug:        d.Slug,
		Description: d.Description,
		Price:       fromDecimal128(d.Price),
		ImageURL:    d.ImageURL,
		Ingredients: d.Ingredients,
		SkinType:    d.SkinType,
		Size:        d.Size,
		InStock:     d.InStock,
		Featured:    d.Featured,
		CreatedAt:   d.CreatedAt,
	}
}

func newProductDoc(p models.Product) productDoc {
	return productDoc{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       toDecimal128(p.Price),
		ImageURL:    p.ImageURL,
		Ingredients: p.Ingredients,
		SkinType:    p.SkinType,
		Size:        p.Size,
		InStock:     p.InStock,
		Featured:    p.Featured,
		CreatedAt:   p.CreatedAt,
	}
}

func (d cartItemDoc) toModel() models.CartItem {
	item := models.CartItem{
		ID:        d.ID,
		SessionID: d.SessionID,
		ProductID: d.ProductID,
		Quantity:  d.Quantity,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if d.Product != nil {
		p := d.Product.toModel()
		item.Product = &p
	}
	return item
}

func (d orderDoc) toModel() models.Order {
	items := make([]models.LineItem, 0, len(d.OrderItems))
	for _, it := range d.OrderItems {
		items = append(items, models.LineItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Price:       fromDecimal128(it.Price),
			Quantity:    it.Quantity,
		})
	}
	return models.Order{
		ID:              d.ID,
		OrderNumber:     d.OrderNumber,
		CustomerName:    d.CustomerName,
		CustomerEmail:   d.CustomerEmail,
		CustomerPhone:   d.CustomerPhone,
		ShippingAddress: d.ShippingAddress,
		Items:           items,
		TotalAmount:     fromDecimal128(d.TotalAmount),
		Status:          d.Status,
		CreatedAt:       d.CreatedAt,
	}
}

func newOrderDoc(o models.Order) orderDoc {
	items := make([]lineItemDoc, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, lineItemDoc{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Price:       toDecimal128(it.Price),
			Quantity:    it.Quantity,
		})
	}
	return orderDoc{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		CustomerPhone:   o.CustomerPhone,
		ShippingAddress: o.ShippingAddress,
		OrderItems:      items,
		TotalAmount:     toDecimal128(o.TotalAmount),
		Status:          o.Status,
		CreatedAt:       o.CreatedAt,
	}
}
