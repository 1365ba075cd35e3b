package bytefmt

import "testing"

func TestHuman(t *testing.T) {
	cases := []struct {
		n    uint64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1023, "1023 B"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{114688, "112 KB"},
		{542720, "530 KB"},
		{1024 * 1024, "1 MB"},
		{5*1024*1024 + 256*1024, "5.2 MB"},
		{3 * 1024 * 1024 * 1024, "3 GB"},
		{2 * 1024 * 1024 * 1024 * 1024, "2 TB"},
		// выше TB единицы не растут
		{5000 * 1024 * 1024 * 1024 * 1024, "5000 TB"},
	}

	for _, tc := range cases {
		if got := Human(tc.n); got != tc.want {
			t.Errorf("Human(%d): want %q, got %q", tc.n, tc.want, got)
		}
	}
}
