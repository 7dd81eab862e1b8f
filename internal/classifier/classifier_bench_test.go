package classifier

import "testing"

func BenchmarkClassify(b *testing.B) {
	c := New()
	lines := []string{
		"2024-01-15 10:00:00 [STEP:Extract] ERROR: connection refused by upstream host",
		"2024-01-15 10:00:01 INFO: processed 1000 records in 12ms",
		"2024-01-15 10:00:02 WARNING: slow query detected",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Classify(lines[i%len(lines)], i+1)
	}
}
