package scheduler

// ResourceKind identifies which resource an occupancy entry reserves.
type ResourceKind string

const (
	ResourceTeacher ResourceKind = "teacher"
	ResourceClass   ResourceKind = "class"
	ResourceRoom    ResourceKind = "room"
)

type occupancyKey struct {
	Kind ResourceKind
	ID   int64
	Day  string
	Slot string
}

// Occupancy records which (resource, day, slot) triples are already
// committed during a single generation run. It is owned exclusively by
// that run and discarded afterwards; sharing one across runs corrupts
// results.
type Occupancy struct {
	used map[occupancyKey]struct{}
}

// NewOccupancy returns an empty tracker.
func NewOccupancy() *Occupancy {
	return &Occupancy{used: make(map[occupancyKey]struct{})}
}

// IsFree reports whether the triple has not been committed yet.
func (o *Occupancy) IsFree(kind ResourceKind, id int64, day, slot string) bool {
	_, taken := o.used[occupancyKey{Kind: kind, ID: id, Day: day, Slot: slot}]
	return !taken
}

// Mark commits the triple. Marking an already-occupied triple is a no-op.
func (o *Occupancy) Mark(kind ResourceKind, id int64, day, slot string) {
	o.used[occupancyKey{Kind: kind, ID: id, Day: day, Slot: slot}] = struct{}{}
}
