package catalog

import (
	"testing"

	"storefront/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EmbeddedCatalog(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	all := c.All()
	require.Len(t, all, 18)
	assert.Equal(t, 1, all[0].ID)
	assert.Equal(t, 18, all[17].ID)

	p, ok := c.GetByID(7)
	require.True(t, ok)
	assert.Equal(t, "Non-Stick Pan Set", p.Title)
	assert.Equal(t, entity.CategoryCookware, p.Category)
	assert.Equal(t, int64(2499), p.Price)
	assert.True(t, p.Featured)

	_, ok = c.GetByID(99)
	assert.False(t, ok)
}

func TestAll_ReturnsCopy(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	all := c.All()
	all[0].Title = "changed"

	p, _ := c.GetByID(1)
	assert.Equal(t, "Airtight Storage Containers Set", p.Title)
}

func TestLoad_RejectsBadData(t *testing.T) {
	_, err := Load([]byte(`[{"id":1,"category":"storage"},{"id":1,"category":"storage"}]`))
	require.Error(t, err)

	_, err = Load([]byte(`[{"id":1,"category":"garden"}]`))
	require.Error(t, err)

	_, err = Load([]byte(`{`))
	require.Error(t, err)
}
