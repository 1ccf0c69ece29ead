package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/freeeve/hexhaven/api/pkg/catan"
)

// Difficulties lists the strategy names StrategyForDifficulty understands.
var Difficulties = []string{"easy", "random"}

// ParseSeats parses a seat list like "easy,random,easy" or "4*easy" into one
// difficulty per seat.
func ParseSeats(s string, mode catan.Mode) ([]string, error) {
	var seats []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n := 1
		if i := strings.IndexByte(part, '*'); i >= 0 {
			count, err := strconv.Atoi(part[:i])
			if err != nil || count < 1 {
				return nil, fmt.Errorf("bad seat count in %q", part)
			}
			n, part = count, part[i+1:]
		}
		if !validDifficulty(part) {
			return nil, fmt.Errorf("unknown difficulty %q (want one of %s)", part, strings.Join(Difficulties, ", "))
		}
		for range n {
			seats = append(seats, part)
		}
	}
	if len(seats) < 2 || len(seats) > mode.MaxPlayers() {
		return nil, fmt.Errorf("%s games seat 2 to %d players, got %d", mode, mode.MaxPlayers(), len(seats))
	}
	return seats, nil
}

func validDifficulty(s string) bool {
	for _, d := range Difficulties {
		if d == s {
			return true
		}
	}
	return false
}

// seatName labels a bot seat for logs and the results archive.
func seatName(seat int, difficulty string) string {
	return fmt.Sprintf("Bot %d (%s)", seat+1, difficulty)
}

func seatID(seat int) string {
	return "bot-" + strconv.Itoa(seat+1)
}
