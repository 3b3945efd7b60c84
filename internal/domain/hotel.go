package domain

type Hotel struct {
	ID        int64
	Name      string
	Address   string
	City      string
	Lat, Lon  *float64 // nil until geocoded
	ImageURLs []string
}

// AppendImages adds urls after the existing ones; the stored order is never changed.
func (h *Hotel) AppendImages(urls []string) {
	h.ImageURLs = appendURLs(h.ImageURLs, urls)
}

func (h *Hotel) SetCoords(c Coords) {
	lat, lon := c.Lat, c.Lon
	h.Lat, h.Lon = &lat, &lon
}

func (h *Hotel) HasCoords() bool { return h.Lat != nil && h.Lon != nil }

type Coords struct{ Lat, Lon float64 }

func appendURLs(cur, add []string) []string {
	out := make([]string, 0, len(cur)+len(add))
	out = append(out, cur...)
	return append(out, add...)
}
