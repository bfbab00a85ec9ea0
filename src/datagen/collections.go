package datagen

type linkedListNode[T any] struct {
	value T
	next  *linkedListNode[T]
}

type linkedList[T any] struct {
	head *linkedListNode[T]
	tail *linkedListNode[T]
	size int
}

// Queue is a FIFO used to hold one size group of shuffled subsets.
type Queue[T any] struct {
	list *linkedList[T]
}

func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{
		list: &linkedList[T]{},
	}
}

func (q *Queue[T]) Push(e T) {
	newNode := &linkedListNode[T]{value: e}
	if q.list.size == 0 {
		q.list.head = newNode
		q.list.tail = newNode
	} else {
		q.list.tail.next = newNode
		q.list.tail = newNode
	}
	q.list.size++
}

func (q *Queue[T]) Pop() T {
	if q.list.size == 0 {
		var zero T
		return zero
	}
	node := q.list.head
	q.list.head = q.list.head.next
	q.list.size--
	if q.list.size == 0 {
		q.list.tail = nil
	}
	return node.value
}

func (q *Queue[T]) Size() int {
	return q.list.size
}

// DrainTo appends every queued element to dst in insertion order and leaves
// the queue empty.
func (q *Queue[T]) DrainTo(dst []T) []T {
	for q.Size() > 0 {
		dst = append(dst, q.Pop())
	}
	return dst
}
