package classifier

import (
	"testing"

	"github.com/vburojevic/convlog/internal/domain"
)

func FuzzClassify(f *testing.F) {
	f.Add("[STEP:Load] ERROR: failed")
	f.Add("CRITICAL ERROR WARNING")
	f.Add("ERRORCODE")
	f.Add("[STEP:]] warning")
	f.Add("\xff\xfe not utf8 error")

	c := New()
	f.Fuzz(func(t *testing.T, s string) {
		rec, ok := c.Classify(s, 1)
		if !ok {
			return
		}
		if rec.Level.Priority() == 0 {
			t.Fatalf("classified with unknown level %q", rec.Level)
		}
		if rec.Level != domain.LevelCritical && c.levels[0].pattern.MatchString(s) {
			t.Fatalf("line with CRITICAL marker classified as %s", rec.Level)
		}
	})
}
