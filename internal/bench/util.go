package bench

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"strconv"
	"strings"

	"moVRP/internal/cvrp"
)

func randForSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// RandomCase parses "NxQ" (customers x vehicle capacity) and generates the instance
// from seed. Demands are drawn from [1, Q/4].
func RandomCase(pair string, seed int64) (Case, error) {
	a, b, ok := strings.Cut(strings.ToLower(strings.TrimSpace(pair)), "x")
	if !ok {
		return Case{}, fmt.Errorf("неверный формат экземпляра %q, ожидается NxQ", pair)
	}
	n, err1 := strconv.Atoi(strings.TrimSpace(a))
	q, err2 := strconv.Atoi(strings.TrimSpace(b))
	if err1 != nil || err2 != nil || n <= 0 || q <= 0 {
		return Case{}, fmt.Errorf("неверные значения в %q", pair)
	}
	return Case{Instance: cvrp.RandomInstance(n, q, max(1, q/4), randForSeed(seed))}, nil
}

func dirOf(path string) string {
	d := filepath.Dir(path)
	if d == "." {
		return ""
	}
	return d
}

func itoa(v int) string { return strconv.Itoa(v) }

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
