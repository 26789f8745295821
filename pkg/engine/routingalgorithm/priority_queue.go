package routingalgorithm

import (
	"errors"

	"golang.org/x/exp/constraints"
)

var (
	ErrHeapEmpty       = errors.New("heap is empty")
	ErrItemNotInHeap   = errors.New("item not in heap")
	ErrRankNotDecrease = errors.New("new rank greater than current rank")
)

type Item interface {
	constraints.Integer
}

type PriorityQueueNode[T Item] struct {
	Rank float64
	Item T
}

// MinHeap binary heap priorityqueue dengan index posisi item, jadi decrease key O(logN).
// rank yang sama diurutkan berdasarkan item terkecil.
type MinHeap[T Item] struct {
	heap []PriorityQueueNode[T]
	pos  map[T]int
}

func NewMinHeap[T Item]() *MinHeap[T] {
	return &MinHeap[T]{
		heap: make([]PriorityQueueNode[T], 0),
		pos:  make(map[T]int),
	}
}

// parent get index dari parent
func (h *MinHeap[T]) parent(index int) int {
	return (index - 1) / 2
}

// leftChild get index dari left child
func (h *MinHeap[T]) leftChild(index int) int {
	return 2*index + 1
}

// rightChild get index dari right child
func (h *MinHeap[T]) rightChild(index int) int {
	return 2*index + 2
}

func (h *MinHeap[T]) less(i, j int) bool {
	if h.heap[i].Rank != h.heap[j].Rank {
		return h.heap[i].Rank < h.heap[j].Rank
	}
	return h.heap[i].Item < h.heap[j].Item
}

func (h *MinHeap[T]) swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]
	h.pos[h.heap[i].Item] = i
	h.pos[h.heap[j].Item] = j
}

// heapifyUp mempertahankan heap property. check apakah parent dari index lebih besar kalau iya swap, then lanjut ke parent.  O(logN) tree height.
func (h *MinHeap[T]) heapifyUp(index int) {
	for index != 0 && h.less(index, h.parent(index)) {
		h.swap(index, h.parent(index))
		index = h.parent(index)
	}
}

// heapifyDown mempertahankan heap property. check apakah nilai salah satu children dari index lebih kecil kalau iya swap, then lanjut ke children yang kecil tadi.  O(logN) tree height.
func (h *MinHeap[T]) heapifyDown(index int) {
	for {
		smallest := index
		left := h.leftChild(index)
		right := h.rightChild(index)

		if left < len(h.heap) && h.less(left, smallest) {
			smallest = left
		}
		if right < len(h.heap) && h.less(right, smallest) {
			smallest = right
		}
		if smallest == index {
			return
		}
		h.swap(index, smallest)
		index = smallest
	}
}

func (h *MinHeap[T]) isEmpty() bool {
	return len(h.heap) == 0
}

func (h *MinHeap[T]) Size() int {
	return len(h.heap)
}

func (h *MinHeap[T]) Contains(item T) bool {
	_, ok := h.pos[item]
	return ok
}

// Insert item baru. kalau item sudah ada di heap, ranknya di update.
func (h *MinHeap[T]) Insert(key PriorityQueueNode[T]) {
	if index, ok := h.pos[key.Item]; ok {
		h.heap[index] = key
		h.heapifyUp(index)
		h.heapifyDown(h.pos[key.Item])
		return
	}
	h.heap = append(h.heap, key)
	index := h.Size() - 1
	h.pos[key.Item] = index
	h.heapifyUp(index)
}

// ExtractMin ambil nilai minimum dari min-heap (index 0) & pop dari heap. O(logN)
func (h *MinHeap[T]) ExtractMin() (PriorityQueueNode[T], error) {
	if h.isEmpty() {
		return PriorityQueueNode[T]{}, ErrHeapEmpty
	}
	root := h.heap[0]
	last := h.Size() - 1
	h.swap(0, last)
	h.heap = h.heap[:last]
	delete(h.pos, root.Item)
	h.heapifyDown(0)
	return root, nil
}

// DecreaseKey update Rank dari item min-heap. O(logN) heapify.
func (h *MinHeap[T]) DecreaseKey(item PriorityQueueNode[T]) error {
	index, ok := h.pos[item.Item]
	if !ok {
		return ErrItemNotInHeap
	}
	if item.Rank > h.heap[index].Rank {
		return ErrRankNotDecrease
	}
	h.heap[index] = item
	h.heapifyUp(index)
	return nil
}

func (h *MinHeap[T]) GetItem(item T) (PriorityQueueNode[T], bool) {
	index, ok := h.pos[item]
	if !ok {
		return PriorityQueueNode[T]{}, false
	}
	return h.heap[index], true
}
