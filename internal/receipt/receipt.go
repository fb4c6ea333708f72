package receipt

import "github.com/shopspring/decimal"

// VATRate is the fixed flat tax applied to every receipt.
var VATRate = decimal.New(1, -1) // 10%

// LineItem is one product entry on the receipt. A quantity of zero keeps the
// row visible until it is removed explicitly.
type LineItem struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Amount is the line's price times its quantity.
func (li LineItem) Amount() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Receipt is the in-progress cart for one transaction: an insertion-ordered
// sequence of line items, at most one per product id. All operations are
// synchronous and total; totals are always recomputed, never cached.
type Receipt struct {
	items []LineItem
}

func New() *Receipt {
	return &Receipt{}
}

// AddOrIncrement appends a quantity-1 line for an unseen product, or bumps
// the existing line by one. Existing order is preserved; new lines go last.
func (r *Receipt) AddOrIncrement(productID, name string, unitPrice decimal.Decimal) {
	for i := range r.items {
		if r.items[i].ProductID == productID {
			r.items[i].Quantity++
			return
		}
	}
	r.items = append(r.items, LineItem{
		ProductID: productID,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  1,
	})
}

// SetQuantity overwrites the line's quantity in place. Negative quantities
// are ignored; zero keeps the row. Unknown product ids are a no-op.
func (r *Receipt) SetQuantity(productID string, quantity int) {
	if quantity < 0 {
		return
	}
	for i := range r.items {
		if r.items[i].ProductID == productID {
			r.items[i].Quantity = quantity
			return
		}
	}
}

// Remove deletes the matching line, if any.
func (r *Receipt) Remove(productID string) {
	for i := range r.items {
		if r.items[i].ProductID == productID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return
		}
	}
}

// Subtotal is the sum of every line amount.
func (r *Receipt) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range r.items {
		sum = sum.Add(item.Amount())
	}
	return sum
}

// Tax is the flat VAT over the subtotal.
func (r *Receipt) Tax() decimal.Decimal {
	return r.Subtotal().Mul(VATRate)
}

// Total is subtotal plus tax.
func (r *Receipt) Total() decimal.Decimal {
	return r.Subtotal().Add(r.Tax())
}

// Items returns a copy of the lines in display order.
func (r *Receipt) Items() []LineItem {
	out := make([]LineItem, len(r.items))
	copy(out, r.items)
	return out
}

func (r *Receipt) Len() int {
	return len(r.items)
}

func (r *Receipt) IsEmpty() bool {
	return len(r.items) == 0
}

// Clear empties the receipt.
func (r *Receipt) Clear() {
	r.items = nil
}
