package domain

// Item is a single entry of an item pool.
// Pools hand out items from GetItem; callers mutate them with Set and hand
// them back through Save or SaveDeferred.
type Item struct {
	key   string
	value []byte
	hit   bool
}

// NewItem returns an item for key. A nil value with hit=false is a miss.
func NewItem(key string, value []byte, hit bool) *Item {
	return &Item{key: key, value: value, hit: hit}
}

// Key returns the key of the item.
func (i *Item) Key() string {
	return i.key
}

// IsHit reports whether the pool had a value for the key when the item was fetched.
func (i *Item) IsHit() bool {
	return i.hit
}

// Get returns the value of the item, nil on a miss.
func (i *Item) Get() []byte {
	return i.value
}

// Set replaces the value that will be persisted when the item is saved.
func (i *Item) Set(value []byte) {
	i.value = value
}
