package clients

// Cache is the ordered list of clients mirrored from the server, keyed by id.
// The zero value is an empty cache.
type Cache struct {
	items []Client
}

// Load replaces the contents with list, keeping its order.
func (c *Cache) Load(list []Client) {
	c.items = append(make([]Client, 0, len(list)), list...)
}

// Prepend inserts a newly created client at the front.
func (c *Cache) Prepend(client Client) {
	c.items = append([]Client{client}, c.items...)
}

// Replace swaps the entry with the given id for client, keeping its position.
// It reports false when no such entry exists.
func (c *Cache) Replace(id int64, client Client) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	if client.ID == 0 {
		client.ID = id
	}
	c.items[i] = client
	return true
}

// Remove deletes the entry with the given id and reports whether it existed.
func (c *Cache) Remove(id int64) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return true
}

// Find returns the entry with the given id.
func (c *Cache) Find(id int64) (Client, bool) {
	i := c.index(id)
	if i < 0 {
		return Client{}, false
	}
	return c.items[i], true
}

// All returns a copy of the entries in cache order.
func (c *Cache) All() []Client {
	return append([]Client(nil), c.items...)
}

func (c *Cache) Len() int {
	return len(c.items)
}

func (c *Cache) index(id int64) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}
