// Package version checks the running build against the latest published release.
package version

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Compare orders two semantic versions ("v" prefix optional).
// It returns 1 if a is newer, -1 if b is newer and 0 when they match.
func Compare(a, b string) (int, error) {
	av, err := parse(a)
	if err != nil {
		return 0, err
	}

	bv, err := parse(b)
	if err != nil {
		return 0, err
	}

	for _, pair := range lo.Zip2(av[:], bv[:]) {
		switch {
		case pair.A > pair.B:
			return 1, nil
		case pair.A < pair.B:
			return -1, nil
		}
	}

	return 0, nil
}

func parse(s string) (v [3]int, err error) {
	_, err = fmt.Sscanf(strings.TrimPrefix(s, "v"), "%d.%d.%d", &v[0], &v[1], &v[2])
	if err != nil {
		err = fmt.Errorf("invalid version %q: %w", s, err)
	}
	return
}
