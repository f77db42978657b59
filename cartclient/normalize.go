// Package cartclient is the storefront-side view of a cart: it turns whatever the
// cart API returned into one predictable shape and answers membership questions
// against it.
package cartclient

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// fallbackTaxRate only fills in a missing tax figure for display.
var fallbackTaxRate = decimal.RequireFromString("0.08")

const maxIDDepth = 8

type Item struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Weight    string  `json:"weight"`
	ImageURL  string  `json:"imageUrl"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Cart is a normalized cart snapshot. Items is never nil.
type Cart struct {
	Items      []Item  `json:"items"`
	TotalItems int     `json:"totalItems"`
	Subtotal   float64 `json:"subtotal"`
	Shipping   float64 `json:"shipping"`
	Tax        float64 `json:"tax"`
	Total      float64 `json:"total"`
}

func Empty() Cart {
	return Cart{Items: []Item{}}
}

// Normalize decodes a raw response body. Anything that is not a JSON object yields
// the empty cart.
func Normalize(raw []byte) Cart {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Empty()
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return Empty()
	}
	return NormalizeValue(v)
}

// NormalizeValue accepts a decoded cart, or a {success, cart} envelope around one.
func NormalizeValue(v any) Cart {
	m, ok := v.(map[string]any)
	if !ok {
		return Empty()
	}
	if inner, ok := m["cart"]; ok {
		if _, hasItems := m["items"]; !hasItems {
			m, ok = inner.(map[string]any)
			if !ok {
				return Empty()
			}
		}
	}

	cart := Empty()
	if rawItems, ok := m["items"].([]any); ok {
		for _, raw := range rawItems {
			if item, ok := normalizeItem(raw); ok {
				cart.Items = append(cart.Items, item)
			}
		}
	}

	if n, ok := toFloat(m["totalItems"]); ok {
		cart.TotalItems = int(math.Trunc(n))
	}
	subtotal, hasSubtotal := toFloat(m["subtotal"])
	if hasSubtotal {
		cart.Subtotal = subtotal
	}
	cart.Shipping, _ = toFloat(m["shipping"])
	cart.Total, _ = toFloat(m["total"])

	if tax, ok := toFloat(m["tax"]); ok {
		cart.Tax = tax
	} else if hasSubtotal {
		cart.Tax = decimal.NewFromFloat(subtotal).Mul(fallbackTaxRate).Round(2).InexactFloat64()
	}
	return cart
}

func normalizeItem(raw any) (Item, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		return Item{}, false
	}

	id := CanonicalID(m["productId"])
	if id == "" {
		id = CanonicalID(m["_id"])
	}
	if id == "" {
		id = CanonicalID(m["id"])
	}

	item := Item{
		ProductID: id,
		Name:      stringField(m["name"]),
		Category:  stringField(m["category"]),
		Weight:    stringField(m["weight"]),
		ImageURL:  stringField(m["imageUrl"]),
		Quantity:  1,
	}
	if price, ok := toFloat(m["price"]); ok {
		item.Price = price
	}
	if qty, ok := toFloat(m["quantity"]); ok {
		item.Quantity = int(math.Trunc(qty))
	}
	return item, true
}

// CanonicalID reduces any wire representation of an identifier to its string form:
// strings are trimmed, numbers are formatted without exponent, values with a Hex
// method (ObjectIDs) use it, and reference objects are unwrapped through their
// "$oid", "_id" or "id" keys. Unrecognized values yield "".
func CanonicalID(v any) string {
	return canonicalID(v, 0)
}

func canonicalID(v any, depth int) string {
	if depth > maxIDDepth {
		return ""
	}
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(id)
	case json.Number:
		return id.String()
	case float64:
		if math.IsNaN(id) || math.IsInf(id, 0) {
			return ""
		}
		return strconv.FormatFloat(id, 'f', -1, 64)
	case float32:
		return canonicalID(float64(id), depth)
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	case int32:
		return strconv.FormatInt(int64(id), 10)
	case uint64:
		return strconv.FormatUint(id, 10)
	case uint32:
		return strconv.FormatUint(uint64(id), 10)
	case map[string]any:
		for _, key := range []string{"$oid", "_id", "id"} {
			if inner, ok := id[key]; ok {
				if s := canonicalID(inner, depth+1); s != "" {
					return s
				}
			}
		}
		return ""
	case interface{ Hex() string }:
		return id.Hex()
	case interface{ String() string }:
		return strings.TrimSpace(id.String())
	}
	return ""
}

// IsInCart reports whether any line's product matches id after canonicalization.
func (c Cart) IsInCart(id any) bool {
	return c.indexOf(id) >= 0
}

// ItemQuantity returns the quantity of the matching line, or 0.
func (c Cart) ItemQuantity(id any) int {
	if idx := c.indexOf(id); idx >= 0 {
		return c.Items[idx].Quantity
	}
	return 0
}

func (c Cart) indexOf(id any) int {
	want := CanonicalID(id)
	if want == "" {
		return -1
	}
	for i, item := range c.Items {
		if item.ProductID == want {
			return i
		}
	}
	return -1
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func stringField(v any) string {
	s, _ := v.(string)
	return s
}
