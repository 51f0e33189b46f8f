package appointments

import (
	"encoding/json"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abdaljehan03-maker/clinic-project/internal/clinic"
)

// Book owns the full ordered appointment collection and its on-disk
// JSON store. Every mutation rewrites the whole file; between writes
// the in-memory collection is the source of truth.
type Book struct {
	mu    sync.Mutex
	path  string
	items []Appointment
}

// Open loads the collection from path. A missing file is simply an
// empty book. An unreadable or malformed file also yields an empty,
// usable book plus the error, so the operator learns the previous
// content was set aside rather than silently erased.
func Open(path string) (*Book, error) {
	b := &Book{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return b, nil
		}
		return b, clinic.Persistf("load appointments", err)
	}
	var items []Appointment
	if err := json.Unmarshal(data, &items); err != nil {
		return b, clinic.Persistf("load appointments", err)
	}
	b.items = items
	return b, nil
}

// Path reports the store file location.
func (b *Book) Path() string { return b.path }

// Book validates appt, assigns it a fresh ID and appends it to the
// collection, then persists. A persistence failure keeps the booking
// in memory and returns both the booked appointment and the error, so
// the caller can warn that disk may be stale.
func (b *Book) Book(appt Appointment) (Appointment, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	appt.normalize()
	if err := appt.validate(time.Now()); err != nil {
		return Appointment{}, err
	}
	appt.ID = uuid.New().String()
	b.items = append(b.items, appt)
	return appt, b.persistLocked()
}

// All returns a copy of the collection in booking order.
func (b *Book) All() []Appointment {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Appointment(nil), b.items...)
}

// Upcoming returns the derived view: appointments dated today or
// later, sorted by date ascending. The sort is stable so equal dates
// keep booking order; the stored collection is never reordered.
func (b *Book) Upcoming() []Appointment {
	b.mu.Lock()
	defer b.mu.Unlock()

	today := time.Now()
	out := make([]Appointment, 0)
	for _, a := range b.items {
		if a.IsUpcoming(today) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Get returns the appointment with the given id.
func (b *Book) Get(id string) (Appointment, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexLocked(id)
	if i < 0 {
		return Appointment{}, clinic.NotFoundf("appointment %s not found", id)
	}
	return b.items[i], nil
}

// Edit replaces every field of the appointment with the given id,
// keeping its id and its position in the collection. A validation
// failure leaves the collection untouched.
func (b *Book) Edit(id string, appt Appointment) (Appointment, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexLocked(id)
	if i < 0 {
		return Appointment{}, clinic.NotFoundf("appointment %s not found", id)
	}
	appt.normalize()
	if err := appt.validate(time.Now()); err != nil {
		return Appointment{}, err
	}
	appt.ID = id
	b.items[i] = appt
	return appt, b.persistLocked()
}

// Delete removes the appointment with the given id. Confirmation is
// the caller's concern; the book just deletes.
func (b *Book) Delete(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexLocked(id)
	if i < 0 {
		return clinic.NotFoundf("appointment %s not found", id)
	}
	b.items = append(b.items[:i], b.items[i+1:]...)
	return b.persistLocked()
}

func (b *Book) indexLocked(id string) int {
	for i := range b.items {
		if b.items[i].ID == id {
			return i
		}
	}
	return -1
}

// persistLocked rewrites the whole store file from the in-memory
// collection. The caller already holds the mutex and has applied its
// mutation; an error here means disk is behind memory, not that the
// mutation failed.
func (b *Book) persistLocked() error {
	items := b.items
	if items == nil {
		items = []Appointment{}
	}
	data, err := json.MarshalIndent(items, "", "    ")
	if err != nil {
		return clinic.Persistf("save appointments", err)
	}
	if err := os.WriteFile(b.path, append(data, '\n'), 0o644); err != nil {
		return clinic.Persistf("save appointments", err)
	}
	return nil
}
