package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounterFormat(t *testing.T) {
	cases := []struct {
		name    string
		counter Counter
		number  int64
		want    string
	}{
		{"padded with prefix", Counter{Prefix: "FT-", PadWidth: 5}, 42, "FT-00042"},
		{"no padding", Counter{Prefix: "FT-"}, 42, "FT-42"},
		{"bare", Counter{}, 7, "7"},
		{"suffix", Counter{Prefix: "NC-", Suffix: "/A", PadWidth: 4}, 3, "NC-0003/A"},
		{"wider than pad is not truncated", Counter{PadWidth: 3}, 12345, "12345"},
		{"exact pad width", Counter{PadWidth: 5}, 99999, "99999"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.counter.Format(tc.number))
		})
	}
}
