package cart

// SnapshotSchemaVersion identifies the persisted layout. The browser-era
// snapshots carried no version field; decoding treats a missing value as
// version 0 and still restores whatever lines survive validation.
const SnapshotSchemaVersion = 1

// SnapshotLine is the flat, JSON-compatible form of a cart line. Field names
// match the catalog sheet columns the storefront always used.
type SnapshotLine struct {
	ItemID         string `json:"id"`
	Name           string `json:"name"`
	UnitPrice      int    `json:"price"`
	MultiUnitPrice int    `json:"price_multi"`
	Quantity       int    `json:"qty"`
	BrandKey       string `json:"brand,omitempty"`
	MaxPerCustomer int    `json:"max_limit"`
	ImageRef       string `json:"img,omitempty"`
}

// Snapshot is a point-in-time representation of the cart suitable for
// persistence. It is overwritten whole on every mutation.
type Snapshot struct {
	SchemaVersion int            `json:"schema_version"`
	Lines         []SnapshotLine `json:"lines"`
}

func (c *Cart) Snapshot() Snapshot {
	snap := Snapshot{
		SchemaVersion: SnapshotSchemaVersion,
		Lines:         make([]SnapshotLine, 0, len(c.lines)),
	}

	for _, line := range c.lines {
		snap.Lines = append(snap.Lines, SnapshotLine{
			ItemID:         line.ItemID,
			Name:           line.Name,
			UnitPrice:      line.UnitPrice,
			MultiUnitPrice: line.MultiUnitPrice,
			Quantity:       line.Quantity,
			BrandKey:       line.BrandKey,
			MaxPerCustomer: line.MaxPerCustomer,
			ImageRef:       line.ImageRef,
		})
	}

	return snap
}

// Restore rebuilds a cart from a persisted snapshot. It never fails: lines
// without an item ID or a positive quantity are dropped, missing numeric
// fields default through normalize, and quantities are clamped to the
// per-item ceiling. A snapshot that yields nothing restores an empty cart.
func Restore(snap Snapshot) *Cart {
	c := New()

	for _, sl := range snap.Lines {
		if sl.ItemID == "" || sl.Quantity <= 0 {
			continue
		}

		line := normalize(Line{
			ItemID:         sl.ItemID,
			Name:           sl.Name,
			UnitPrice:      sl.UnitPrice,
			MultiUnitPrice: sl.MultiUnitPrice,
			Quantity:       sl.Quantity,
			BrandKey:       sl.BrandKey,
			MaxPerCustomer: sl.MaxPerCustomer,
			ImageRef:       sl.ImageRef,
		})

		if line.Quantity > line.MaxPerCustomer {
			line.Quantity = line.MaxPerCustomer
		}

		c.lines = append(c.lines, line)
	}

	return c
}
