package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dialoq/internal/adapters/translate/factory"
)

type stubProvider struct{ err error }

func (p *stubProvider) Translate(_ context.Context, text, _, _ string) (string, error) {
	return text, p.err
}

func (p *stubProvider) Test(context.Context) error { return p.err }

func TestRegisterAndGet(t *testing.T) {
	r := New()
	p := &stubProvider{}
	r.Register("stub", p)

	got, ok := r.Get("stub")
	require.True(t, ok)
	assert.Same(t, p, got)

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestMustGetPanicsOnMissing(t *testing.T) {
	r := New()
	assert.Panics(t, func() { r.MustGet("missing") })
}

func TestHealthCheck(t *testing.T) {
	r := New()
	r.Register("ok", &stubProvider{})
	r.Register("bad", &stubProvider{err: errors.New("down")})

	res := r.HealthCheck(context.Background())
	assert.NoError(t, res["ok"])
	assert.Error(t, res["bad"])
}

func TestFactoryKnownTypes(t *testing.T) {
	for _, typ := range []string{"libretranslate", "mymemory"} {
		p, ok := factory.FromType(typ, "", "")
		require.True(t, ok, typ)
		assert.NotNil(t, p)
	}
	_, ok := factory.FromType("deepfake", "", "")
	assert.False(t, ok)
}
