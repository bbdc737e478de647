package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "agua-mineral-500ml", Slugify("Água Mineral 500ml"))
	assert.Equal(t, "cerveja-litrao-1l", Slugify("  Cerveja Litrão  1L "))
	assert.Equal(t, "cerv-lata-350", Slugify("CERV-LATA-350"))
}

func TestGenerateReferenceNo(t *testing.T) {
	ref := GenerateReferenceNo("NF")
	assert.True(t, strings.HasPrefix(ref, "NF-"))
	assert.Len(t, ref, len("NF-")+8)
	assert.NotEqual(t, ref, GenerateReferenceNo("NF"))
}
