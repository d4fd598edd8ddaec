package catalog

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist upstream.
var ErrNotFound = errors.New("product not found")

// Product is a single catalog record as served by the remote products API.
// Records are value copies: once fetched into a Snapshot they are never
// mutated locally.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Stock       int
}

// decodeProduct reads one product object from the wire. The upstream API
// uses the field names id, name, description, price, url_image and stock.
func decodeProduct(d *jx.Decoder) (Product, error) {
	var p Product
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "id":
			p.ID, err = d.Str()
		case "name":
			p.Name, err = d.Str()
		case "description":
			p.Description, err = d.Str()
		case "price":
			var num jx.Num
			if num, err = d.Num(); err == nil {
				p.Price, err = decimal.NewFromString(num.String())
			}
		case "url_image":
			p.ImageURL, err = d.Str()
		case "stock":
			p.Stock, err = d.Int()
		default:
			err = d.Skip()
		}
		return err
	}); err != nil {
		return Product{}, errors.Wrap(err, "decode product")
	}
	return p, nil
}

// decodeProducts reads the array response of the list endpoint.
func decodeProducts(data []byte) ([]Product, error) {
	d := jx.DecodeBytes(data)

	var out []Product
	if err := d.Arr(func(d *jx.Decoder) error {
		p, err := decodeProduct(d)
		if err != nil {
			return err
		}
		out = append(out, p)
		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}
	return out, nil
}
