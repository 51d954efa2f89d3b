package store

import (
	"math"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/atelierline/storefront-api/models"
)

// CartStore holds the in-progress purchase lines and the cart-panel
// visibility flag for one browsing session. It is pure in-memory state,
// never persisted. No two lines share the same (productID, size) pair:
// adding an existing pair increments its quantity instead.
type CartStore struct {
	mu    sync.Mutex
	lines []models.CartLine
	open  bool
}

func NewCartStore() *CartStore {
	return &CartStore{}
}

// AddLine merges by (product.ID, size): an existing line gains quantity 1,
// otherwise a new line with quantity 1 is appended. Always succeeds.
func (s *CartStore) AddLine(p models.Product, size string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].Product.ID == p.ID && s.lines[i].SelectedSize == size {
			s.lines[i].Quantity++
			return
		}
	}
	s.lines = append(s.lines, models.CartLine{
		Product:      p,
		Quantity:     1,
		SelectedSize: size,
	})
}

// RemoveLine deletes the matching line; no-op when absent.
func (s *CartStore) RemoveLine(productID, size string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(productID, size)
}

func (s *CartStore) removeLocked(productID, size string) {
	kept := s.lines[:0]
	for _, line := range s.lines {
		if !(line.Product.ID == productID && line.SelectedSize == size) {
			kept = append(kept, line)
		}
	}
	s.lines = kept
}

// SetQuantity sets the line's quantity. A quantity below 1 removes the line
// instead of clamping; there is no upper bound.
func (s *CartStore) SetQuantity(productID, size string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		s.removeLocked(productID, size)
		return
	}
	for i := range s.lines {
		if s.lines[i].Product.ID == productID && s.lines[i].SelectedSize == size {
			s.lines[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the line list.
func (s *CartStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}

// Open, Close and Toggle drive the cart-panel visibility flag. Purely
// presentational.
func (s *CartStore) Open() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = true
}

func (s *CartStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
}

func (s *CartStore) Toggle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = !s.open
}

func (s *CartStore) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Lines returns a copy of the lines in insertion order.
func (s *CartStore) Lines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Len returns the number of distinct (productID, size) lines.
func (s *CartStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// Total derives the cart total lazily: sum of parsed price × quantity over
// all lines. A price string without a parseable numeric prefix contributes
// NaN, which poisons the sum; no error is raised.
func (s *CartStore) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, line := range s.lines {
		total += ParsePrice(line.Price) * float64(line.Quantity)
	}
	return total
}

// ParsePrice strips a single leading currency symbol and parses the longest
// numeric prefix of what remains, returning NaN when there is none.
func ParsePrice(price string) float64 {
	v := strings.TrimSpace(price)
	if v != "" {
		r := []rune(v)[0]
		if r == '$' || unicode.Is(unicode.Sc, r) {
			v = strings.TrimSpace(v[len(string(r)):])
		}
	}

	end := 0
	seenDot := false
	for end < len(v) {
		ch := v[end]
		if ch >= '0' && ch <= '9' {
			end++
			continue
		}
		if ch == '.' && !seenDot {
			seenDot = true
			end++
			continue
		}
		if (ch == '-' || ch == '+') && end == 0 {
			end++
			continue
		}
		break
	}

	f, err := strconv.ParseFloat(v[:end], 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
