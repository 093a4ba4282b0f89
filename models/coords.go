package models

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

const BoardSize = 10

var ErrInvalidCoord = errors.New("invalid coordinate")

var coordPattern = regexp.MustCompile(`^[A-J](10|[1-9])$`)

// ValidCoord reports whether coord uses the A1..J10 form accepted by the server.
func ValidCoord(coord string) bool {
	return coordPattern.MatchString(coord)
}

// ParseCoord returns zero-based row (letter) and column (number) indexes.
func ParseCoord(coord string) (int, int, error) {
	if !ValidCoord(coord) {
		return -1, -1, fmt.Errorf("%w: %q", ErrInvalidCoord, coord)
	}
	row := int(coord[0] - 'A')
	col, err := strconv.Atoi(coord[1:])
	if err != nil {
		return -1, -1, fmt.Errorf("%w: %q", ErrInvalidCoord, coord)
	}
	return row, col - 1, nil
}

func FormatCoord(row, col int) string {
	return fmt.Sprintf("%c%d", 'A'+row, col+1)
}
