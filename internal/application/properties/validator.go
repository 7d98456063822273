package properties

import (
	"strconv"
	"strings"

	"amlak-backend/internal/domain"
)

// Validated is a listing payload that passed every rule and had its numbers
// coerced. Pricing fields of the other transaction type are already nil.
type Validated struct {
	Type        domain.PropertyType
	Title       string
	Area        float64
	Address     *string
	Description *string
	Phone       *string
	Price       *float64
	Rent        *float64
	Deposit     *float64
	Images      []string
}

// Validate checks a raw request body against the listing rules, in order,
// first failure wins:
//
//  1. title present and non-blank
//  2. area present and > 0
//  3. type is sale or rent
//  4. sale: price present and > 0; rent and deposit forced null
//  5. rent: rent and deposit present and > 0; price forced null
//
// Numbers may arrive as JSON numbers or strings; strings are parsed with
// strconv (locale-agnostic). Optional strings normalize "" to null.
// Pure function, no side effects.
func Validate(body map[string]interface{}) (*Validated, error) {
	title := strings.TrimSpace(asString(body["title"]))
	if title == "" {
		return nil, domain.MissingField("title")
	}

	area, ok := numField(body["area"])
	if !ok {
		return nil, domain.InvalidField("area")
	}
	if area == nil || *area <= 0 {
		return nil, domain.InvalidField("area")
	}

	ptype := domain.PropertyType(asString(body["type"]))
	if !ptype.IsValid() {
		return nil, domain.InvalidField("type")
	}

	v := &Validated{
		Type:        ptype,
		Title:       title,
		Area:        *area,
		Address:     optString(body["address"]),
		Description: optString(body["description"]),
		Phone:       optString(body["phone"]),
		Images:      stringSlice(body["images"]),
	}

	switch ptype {
	case domain.TypeSale:
		price, ok := numField(body["price"])
		if !ok {
			return nil, domain.InvalidField("price")
		}
		if price == nil || *price <= 0 {
			return nil, domain.MissingField("price")
		}
		v.Price = price
	case domain.TypeRent:
		rent, ok := numField(body["rent"])
		if !ok {
			return nil, domain.InvalidField("rent")
		}
		if rent == nil || *rent <= 0 {
			return nil, domain.MissingField("rent")
		}
		deposit, ok := numField(body["deposit"])
		if !ok {
			return nil, domain.InvalidField("deposit")
		}
		if deposit == nil || *deposit <= 0 {
			return nil, domain.MissingField("deposit")
		}
		v.Rent = rent
		v.Deposit = deposit
	}
	return v, nil
}

// numField coerces a body value to a number. Returns (nil, true) for an
// absent value and (nil, false) when a present value cannot be parsed.
func numField(v interface{}) (*float64, bool) {
	switch x := v.(type) {
	case nil:
		return nil, true
	case float64:
		return &x, true
	case int:
		f := float64(x)
		return &f, true
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false
		}
		return &f, true
	default:
		return nil, false
	}
}

// optString normalizes an optional string: empty or missing becomes nil,
// never a stored "".
func optString(v interface{}) *string {
	s := strings.TrimSpace(asString(v))
	if s == "" {
		return nil
	}
	return &s
}

func asString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// stringSlice collects the URL strings out of a JSON array value.
func stringSlice(v interface{}) []string {
	arr, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
