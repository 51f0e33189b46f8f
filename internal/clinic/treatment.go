package clinic

// Treatment is one catalog entry. Ids are dense (1..N) and are
// reassigned on every whole-catalog edit; nothing outside the catalog
// should hold on to them across edits.
type Treatment struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Selection is a (name, price) pair copied out of the catalog at
// selection time. Later catalog edits never touch an existing
// selection, so a bill or appointment keeps the prices it was sold at.
type Selection struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}
