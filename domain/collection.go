// server/domain/collection.go
package domain

import (
	"sort"
	"time"
)

// List returns a copy of all todos, newest id first.
func (d *Document) List() []Todo {
	out := make([]Todo, len(d.Todos))
	copy(out, d.Todos)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (d *Document) Find(id int) (Todo, error) {
	idx := d.indexOf(id)
	if idx < 0 {
		return Todo{}, ErrNotFound
	}
	return d.Todos[idx], nil
}

// Insert appends a new todo stamped with now and advances Seq.
func (d *Document) Insert(title string, done bool, now time.Time) (Todo, error) {
	title = NormalizeTitle(title)
	if title == "" {
		return Todo{}, invalid("title required")
	}

	t := Todo{
		ID:        d.Seq,
		Title:     title,
		Done:      done,
		CreatedAt: FormatTime(now),
	}
	d.Seq++
	d.Todos = append(d.Todos, t)
	return t, nil
}

// Update applies the fields present in p. ID and CreatedAt never change.
func (d *Document) Update(id int, p Patch) (Todo, error) {
	idx := d.indexOf(id)
	if idx < 0 {
		return Todo{}, ErrNotFound
	}

	var title string
	if p.Title != nil {
		title = NormalizeTitle(*p.Title)
		if title == "" {
			return Todo{}, invalid("title empty")
		}
	}
	if p.Title == nil && p.Done == nil {
		return Todo{}, invalid("nothing to update")
	}

	t := &d.Todos[idx]
	if p.Title != nil {
		t.Title = title
	}
	if p.Done != nil {
		t.Done = *p.Done
	}
	return *t, nil
}

// Delete removes the todo, keeping the order of the rest.
func (d *Document) Delete(id int) error {
	idx := d.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	d.Todos = append(d.Todos[:idx], d.Todos[idx+1:]...)
	return nil
}

// Normalize repairs a document read from disk: a nil list becomes empty and
// Seq is raised above every stored id.
func (d *Document) Normalize() {
	if d.Todos == nil {
		d.Todos = []Todo{}
	}
	if d.Seq < 1 {
		d.Seq = 1
	}
	for _, t := range d.Todos {
		if t.ID >= d.Seq {
			d.Seq = t.ID + 1
		}
	}
}

func (d *Document) indexOf(id int) int {
	for i := range d.Todos {
		if d.Todos[i].ID == id {
			return i
		}
	}
	return -1
}
