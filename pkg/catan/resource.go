package catan

import (
	"fmt"
	"sort"
	"strings"
)

// Resource is one of the five tradeable goods.
type Resource string

const (
	Brick  Resource = "brick"
	Lumber Resource = "lumber"
	Wool   Resource = "wool"
	Grain  Resource = "grain"
	Ore    Resource = "ore"
)

// AllResources lists the resources in canonical order.
func AllResources() []Resource {
	return []Resource{Brick, Lumber, Wool, Grain, Ore}
}

// Valid reports whether r names a known resource.
func (r Resource) Valid() bool {
	switch r {
	case Brick, Lumber, Wool, Grain, Ore:
		return true
	}
	return false
}

// Hand is a multiset of resources. A nil Hand is empty.
type Hand map[Resource]int

// Building and purchase costs.
var (
	RoadCost       = Hand{Brick: 1, Lumber: 1}
	SettlementCost = Hand{Brick: 1, Lumber: 1, Wool: 1, Grain: 1}
	CityCost       = Hand{Ore: 3, Grain: 2}
	DevCardCost    = Hand{Ore: 1, Grain: 1, Wool: 1}
)

// NewHand returns an empty hand with every resource present at zero.
func NewHand() Hand {
	h := make(Hand, 5)
	for _, r := range AllResources() {
		h[r] = 0
	}
	return h
}

// Total returns the number of cards in the hand.
func (h Hand) Total() int {
	n := 0
	for _, c := range h {
		n += c
	}
	return n
}

// Covers reports whether h holds at least every amount in want.
func (h Hand) Covers(want Hand) bool {
	for r, n := range want {
		if h[r] < n {
			return false
		}
	}
	return true
}

// Add adds every amount in o to h.
func (h Hand) Add(o Hand) {
	for r, n := range o {
		h[r] += n
	}
}

// Sub removes every amount in o from h. Callers check Covers first.
func (h Hand) Sub(o Hand) {
	for r, n := range o {
		h[r] -= n
	}
}

// Clone returns an independent copy.
func (h Hand) Clone() Hand {
	c := make(Hand, len(h))
	for r, n := range h {
		c[r] = n
	}
	return c
}

// Held returns the resource types with a positive count, in canonical order.
func (h Hand) Held() []Resource {
	var out []Resource
	for _, r := range AllResources() {
		if h[r] > 0 {
			out = append(out, r)
		}
	}
	return out
}

// validate checks that every key is a known resource and no amount is negative.
func (h Hand) validate() error {
	for r, n := range h {
		if !r.Valid() {
			return errorf(KindRule, "unknown resource %q", r)
		}
		if n < 0 {
			return errorf(KindRule, "negative amount for %s", r)
		}
	}
	return nil
}

func (h Hand) String() string {
	keys := make([]string, 0, len(h))
	for r, n := range h {
		if n != 0 {
			keys = append(keys, fmt.Sprintf("%s:%d", r, n))
		}
	}
	sort.Strings(keys)
	return "{" + strings.Join(keys, " ") + "}"
}
