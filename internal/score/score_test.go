package score

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"guidescan/internal/guide"
)

func TestGCContent(t *testing.T) {
	assert.Equal(t, 0.0, GCContent([]byte(strings.Repeat("A", 20))))
	assert.Equal(t, 100.0, GCContent([]byte(strings.Repeat("GC", 10))))
	assert.Equal(t, 50.0, GCContent([]byte(strings.Repeat("AG", 10))))
	assert.Equal(t, 25.0, GCContent([]byte("ACTT")))
	assert.Equal(t, 0.0, GCContent(nil))
}

func TestEfficiency_Boundaries(t *testing.T) {
	assert.Equal(t, 1.0, Efficiency(50))
	assert.Equal(t, 0.0, Efficiency(0))
	assert.Equal(t, 0.0, Efficiency(100))
	assert.InDelta(t, 0.5, Efficiency(25), 1e-12)
	assert.InDelta(t, 0.5, Efficiency(75), 1e-12)
	assert.Equal(t, 0.0, Efficiency(150)) // clamped
}

func TestAnnotate_DoesNotTouchInput(t *testing.T) {
	in := []guide.Candidate{
		{Guide: strings.Repeat("AG", 10)},
		{Guide: strings.Repeat("A", 20)},
	}
	out := Annotate(in)
	assert.Equal(t, 1.0, out[0].Score)
	assert.Equal(t, 50.0, out[0].GC)
	assert.Equal(t, 0.0, out[1].Score)
	assert.Zero(t, in[0].GC)
}
