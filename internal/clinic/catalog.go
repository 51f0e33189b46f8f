package clinic

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// DefaultPrice is assigned to a treatment introduced by name with no
// previous price to inherit.
const DefaultPrice float64 = 1000

// Catalog is the clinic's mutable treatment list, keyed by dense
// integer ids. One instance is built at startup and handed to every
// component that needs it. The mutex covers the concurrent HTTP
// boundary; edits themselves are whole-catalog and atomic.
type Catalog struct {
	mu    sync.Mutex
	items map[int]Treatment
}

// NewCatalog returns a catalog seeded with the clinic's standard
// treatment list.
func NewCatalog() *Catalog {
	c := &Catalog{items: make(map[int]Treatment)}
	seed := []Treatment{
		{Name: "Dental Check-up & Consultation", Price: 2000},
		{Name: "Teeth Cleaning (Scaling & Polishing)", Price: 7000},
		{Name: "Tooth Extraction", Price: 2500},
		{Name: "Dental Fillings (Cavity Treatment)", Price: 5000},
		{Name: "Root Canal Treatment", Price: 15000},
		{Name: "Teeth Whitening", Price: 12000},
		{Name: "Braces Consultation", Price: 5000},
	}
	for i, t := range seed {
		t.ID = i + 1
		c.items[t.ID] = t
	}
	return c
}

// List returns all treatments ordered by id ascending.
func (c *Catalog) List() []Treatment {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listLocked()
}

func (c *Catalog) listLocked() []Treatment {
	out := make([]Treatment, 0, len(c.items))
	for _, t := range c.items {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ReplaceNames rebuilds the catalog from a list of treatment names.
// Blank entries are skipped, ids are reassigned densely from 1, and a
// name that exactly matches a current treatment keeps its price;
// anything else starts at DefaultPrice. The match is case-sensitive;
// a name the old catalog held twice carries its highest id's price.
// An edit that leaves no treatments at all is rejected and changes
// nothing.
func (c *Catalog) ReplaceNames(names []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	prices := make(map[string]float64, len(c.items))
	for _, t := range c.listLocked() {
		prices[t.Name] = t.Price
	}

	rebuilt := make(map[int]Treatment)
	id := 0
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		price, ok := prices[name]
		if !ok {
			price = DefaultPrice
		}
		id++
		rebuilt[id] = Treatment{ID: id, Name: name, Price: price}
	}
	if len(rebuilt) == 0 {
		return Invalidf("at least one treatment name is required")
	}
	c.items = rebuilt
	return nil
}

// PriceEntry is one line of a whole-catalog price edit. Price stays
// unparsed text so a bad value can be reported against its line.
type PriceEntry struct {
	Name  string
	Price string
}

// ReplacePrices rebuilds the catalog from (name, price) lines. Every
// line must carry a non-empty name and a price that parses as a
// non-negative number; the first bad line fails the whole edit, named
// by its 1-based position, and the catalog is left untouched.
func (c *Catalog) ReplacePrices(entries []PriceEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(entries) == 0 {
		return Invalidf("at least one treatment price line is required")
	}
	rebuilt := make(map[int]Treatment, len(entries))
	for i, entry := range entries {
		line := i + 1
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return Invalidf("line %d: treatment name is empty", line)
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(entry.Price), 64)
		if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
			return Invalidf("line %d: invalid price %q", line, entry.Price)
		}
		if price < 0 {
			return Invalidf("line %d: price cannot be negative", line)
		}
		rebuilt[line] = Treatment{ID: line, Name: name, Price: price}
	}
	c.items = rebuilt
	return nil
}

// Select copies the (name, price) pairs for the given catalog ids, in
// the given order. Any unknown id fails the whole selection.
func (c *Catalog) Select(ids []int) ([]Selection, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Selection, 0, len(ids))
	for _, id := range ids {
		t, ok := c.items[id]
		if !ok {
			return nil, NotFoundf("treatment %d is not in the catalog", id)
		}
		out = append(out, Selection{Name: t.Name, Price: t.Price})
	}
	return out, nil
}
