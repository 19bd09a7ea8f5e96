package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeRegion records every full-content render.
type fakeRegion struct {
	renders []string
}

func (r *fakeRegion) Set(content string) {
	r.renders = append(r.renders, content)
}

// fakeDisplay hands out named fake regions and counts region creation.
type fakeDisplay struct {
	regions map[string]*fakeRegion
	created []string
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{regions: make(map[string]*fakeRegion)}
}

func (d *fakeDisplay) Region(name string) Region {
	d.created = append(d.created, name)
	r := &fakeRegion{}
	d.regions[name] = r
	return r
}

func TestHandlerInitialization(t *testing.T) {
	d := newFakeDisplay()
	h := NewHandler(d, "test")

	assert.Equal(t, "test", h.Text())
	assert.Equal(t, "test", h.ToolLog())
	assert.Equal(t, []string{RegionAnswer, RegionToolLog}, d.created)
}

func TestHandlerNewToken(t *testing.T) {
	d := newFakeDisplay()
	h := NewHandler(d, "")

	h.NewToken("Hello ")
	h.NewToken("World")

	assert.Equal(t, "Hello World", h.Text())
	assert.Equal(t, []string{"Hello ", "Hello World"}, d.regions[RegionAnswer].renders)
	assert.Empty(t, d.regions[RegionToolLog].renders)
}

func TestHandlerNewStatus(t *testing.T) {
	d := newFakeDisplay()
	h := NewHandler(d, "")

	h.NewStatus("Tool started")
	h.NewStatus("Tool completed")

	assert.Equal(t, "Tool startedTool completed", h.ToolLog())
	assert.Equal(t, []string{"Tool started", "Tool startedTool completed"}, d.regions[RegionToolLog].renders)
	assert.Empty(t, d.regions[RegionAnswer].renders)
}

func TestHandlerTokenBoundariesPreserved(t *testing.T) {
	d := newFakeDisplay()
	h := NewHandler(d, "")

	tokens := []string{"a", "", "b\n", " c"}
	for _, tok := range tokens {
		h.NewToken(tok)
	}

	assert.Equal(t, "ab\n c", h.Text())
	assert.Len(t, d.regions[RegionAnswer].renders, len(tokens))
}

func TestHandlerInitialTextPrefixesBothBuffers(t *testing.T) {
	d := newFakeDisplay()
	h := NewHandler(d, "seed:")

	h.NewToken("tok")
	h.NewStatus("st")

	assert.Equal(t, "seed:tok", h.Text())
	assert.Equal(t, "seed:st", h.ToolLog())
}
