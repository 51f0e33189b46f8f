package clinic

import (
	"math"
	"strings"
)

// PartyKind tags the billing policy applied to a party.
type PartyKind string

const (
	PartyStandard PartyKind = "standard"
	PartyVIP      PartyKind = "vip"
)

// DefaultVIPDiscount is the discount percentage applied when a VIP bill
// is generated without an explicit one.
const DefaultVIPDiscount float64 = 10

// Party is the billed entity for one bill generation. It lives only for
// the duration of that action; the rendered text is what persists.
// Discount is a percentage and only meaningful for PartyVIP.
type Party struct {
	Kind     PartyKind
	Name     string
	Phone    string
	Discount float64

	selections []Selection
}

// NewStandardParty builds a full-price party. Name and phone must be
// non-empty after trimming.
func NewStandardParty(name, phone string) (*Party, error) {
	return newParty(PartyStandard, name, phone, 0)
}

// NewVIPParty builds a discounted party. The discount is a percentage
// and must lie in [0, 100].
func NewVIPParty(name, phone string, discount float64) (*Party, error) {
	if math.IsNaN(discount) || discount < 0 || discount > 100 {
		return nil, Invalidf("discount must be between 0 and 100")
	}
	return newParty(PartyVIP, name, phone, discount)
}

func newParty(kind PartyKind, name, phone string, discount float64) (*Party, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return nil, Invalidf("patient name is required")
	}
	if phone == "" {
		return nil, Invalidf("phone number is required")
	}
	return &Party{Kind: kind, Name: name, Phone: phone, Discount: discount}, nil
}

// AddSelection appends one treatment to the bill. The name must be
// non-empty and the price a non-negative number.
func (p *Party) AddSelection(name string, price float64) error {
	if strings.TrimSpace(name) == "" {
		return Invalidf("treatment name is required")
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return Invalidf("treatment price must be a non-negative number")
	}
	p.selections = append(p.selections, Selection{Name: name, Price: price})
	return nil
}

// AddSelections appends a catalog selection in order, stopping at the
// first invalid entry.
func (p *Party) AddSelections(sels []Selection) error {
	for _, s := range sels {
		if err := p.AddSelection(s.Name, s.Price); err != nil {
			return err
		}
	}
	return nil
}

// Selections returns a copy of the selection list in insertion order.
func (p *Party) Selections() []Selection {
	return append([]Selection(nil), p.selections...)
}

// RawTotal is the exact sum of the selected prices, before any
// discount or rounding.
func (p *Party) RawTotal() float64 {
	var sum float64
	for _, s := range p.selections {
		sum += s.Price
	}
	return sum
}

// Total applies the kind's billing policy: a standard party pays the
// raw sum, a VIP party pays the discounted sum rounded to two decimals.
func (p *Party) Total() float64 {
	if p.Kind == PartyVIP {
		return Round2(p.RawTotal() * (1 - p.Discount/100))
	}
	return p.RawTotal()
}
