package domain

// Nested collection edits replace the relevant slice rather than mutating in
// place, mirroring how drafts are committed wholesale on save.

// UpsertArea replaces the area with a matching id, or appends it.
func (i Inspection) UpsertArea(area Area) Inspection {
	i.Areas = upsert(i.Areas, area, func(a Area) string { return a.ID })
	return i
}

// RemoveArea drops the area with the given id and all of its items.
func (i Inspection) RemoveArea(areaID string) Inspection {
	i.Areas = remove(i.Areas, areaID, func(a Area) string { return a.ID })
	return i
}

// UpsertItem replaces the item with a matching id, or appends it.
func (a Area) UpsertItem(item Item) Area {
	a.Items = upsert(a.Items, item, func(it Item) string { return it.ID })
	return a
}

// RemoveItem drops the item with the given id and all of its photos.
func (a Area) RemoveItem(itemID string) Area {
	a.Items = remove(a.Items, itemID, func(it Item) string { return it.ID })
	return a
}

// AddPhoto appends a photo; photos are append-only within a draft, removal
// goes through RemovePhoto.
func (it Item) AddPhoto(p Photo) Item {
	photos := make([]Photo, 0, len(it.Photos)+1)
	photos = append(photos, it.Photos...)
	it.Photos = append(photos, p)
	return it
}

func (it Item) RemovePhoto(photoID string) Item {
	it.Photos = remove(it.Photos, photoID, func(p Photo) string { return p.ID })
	return it
}

// UpsertProperty replaces the property with a matching id, or appends it.
func (c Client) UpsertProperty(p Property) Client {
	c.Properties = upsert(c.Properties, p, func(pr Property) string { return pr.ID })
	return c
}

func (c Client) RemoveProperty(propertyID string) Client {
	c.Properties = remove(c.Properties, propertyID, func(pr Property) string { return pr.ID })
	return c
}

// UpsertService replaces the service line with a matching id, or appends it.
// Callers must recalculate totals afterwards; see Invoice.Recalculate.
func (inv Invoice) UpsertService(line ServiceLine) Invoice {
	inv.Services = upsert(inv.Services, line, func(s ServiceLine) string { return s.ID })
	return inv
}

func (inv Invoice) RemoveService(lineID string) Invoice {
	inv.Services = remove(inv.Services, lineID, func(s ServiceLine) string { return s.ID })
	return inv
}

func upsert[T any](list []T, v T, id func(T) string) []T {
	out := make([]T, 0, len(list)+1)
	replaced := false
	for _, e := range list {
		if id(e) == id(v) {
			out = append(out, v)
			replaced = true
			continue
		}
		out = append(out, e)
	}
	if !replaced {
		out = append(out, v)
	}
	return out
}

func remove[T any](list []T, idv string, id func(T) string) []T {
	out := make([]T, 0, len(list))
	for _, e := range list {
		if id(e) == idv {
			continue
		}
		out = append(out, e)
	}
	return out
}
