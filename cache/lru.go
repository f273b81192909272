package cache

// lruNode is a node in a doubly-linked LRU list. It stores its key so the
// owning map entry can be deleted when the node is evicted.
type lruNode struct {
	key  string
	prev *lruNode
	next *lruNode
}

// lruList orders keys by recency. The head is the most recently used.
// It is not safe for concurrent use; the owning shard locks around it.
type lruList struct {
	head *lruNode
	tail *lruNode
	len  int
}

func (l *lruList) Len() int { return l.len }

// PushFront adds key as the most recently used entry.
func (l *lruList) PushFront(key string) *lruNode {
	node := &lruNode{key: key, next: l.head}
	if l.head != nil {
		l.head.prev = node
	} else {
		l.tail = node
	}
	l.head = node
	l.len++
	return node
}

// MoveToFront marks node as the most recently used entry.
func (l *lruList) MoveToFront(node *lruNode) {
	if node == nil || node == l.head {
		return
	}
	l.unlink(node)
	node.next = l.head
	if l.head != nil {
		l.head.prev = node
	}
	l.head = node
	if l.tail == nil {
		l.tail = node
	}
	l.len++
}

// Remove unlinks node.
func (l *lruList) Remove(node *lruNode) {
	if node != nil {
		l.unlink(node)
	}
}

// RemoveOldest unlinks the least recently used key and returns it.
func (l *lruList) RemoveOldest() (string, bool) {
	if l.tail == nil {
		return "", false
	}
	node := l.tail
	l.unlink(node)
	return node.key, true
}

func (l *lruList) unlink(node *lruNode) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}
	node.prev, node.next = nil, nil
	l.len--
}
