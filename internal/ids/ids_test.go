package ids

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyIdIsZeroValue(t *testing.T) {
	var id Id
	assert.True(t, id.IsEmpty())
	assert.Equal(t, Empty, id)
}

func TestUUIDGeneratorNeverProducesEmpty(t *testing.T) {
	gen := UUIDGenerator{}
	for i := 0; i < 100; i++ {
		id := gen.NewId()
		assert.False(t, id.IsEmpty())
	}
}

func TestCompareIsBytewise(t *testing.T) {
	a, err := ParseId("00000000-0000-0000-0000-000000000001")
	require.NoError(t, err)
	b, err := ParseId("00000000-0000-0000-0000-000000000002")
	require.NoError(t, err)

	assert.Equal(t, -1, Compare(a, b))
	assert.Equal(t, 1, Compare(b, a))
	assert.Equal(t, 0, Compare(a, a))
}

func TestStringViewSlicesWithoutCopying(t *testing.T) {
	backing := "hello-world-content"
	view := SliceStringView(&backing, 6, 5)
	assert.Equal(t, "world", view.String())
	assert.Equal(t, 5, view.Len())
}

func TestSomePrivilegeValueClamps(t *testing.T) {
	assert.Equal(t, int16(MaxPrivilegeValue), SomePrivilegeValue(50000).Value)
	assert.Equal(t, int16(MinPrivilegeValue), SomePrivilegeValue(-50000).Value)
	assert.True(t, SomePrivilegeValue(5).Ok)
	assert.False(t, NoPrivilegeValue.Ok)
}
