package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	gen := New()

	id := gen.Generate()
	assert.Regexp(t, `^cko_[0-9a-f]{32}$`, id)

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		seen[gen.Generate()] = struct{}{}
	}
	assert.Len(t, seen, 1000)
}
