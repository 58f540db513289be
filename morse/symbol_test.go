package morse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSymbolString(t *testing.T) {
	req := require.New(t)
	req.Equal(".", Dot.String())
	req.Equal("-", Dash.String())
}

func TestCodeString(t *testing.T) {
	req := require.New(t)
	req.Equal("", Code{}.String())
	req.Equal(".-", Code{Dot, Dash}.String())
	req.Equal("-...", Code{Dash, Dot, Dot, Dot}.String())
}

func TestCodeIsEmpty(t *testing.T) {
	req := require.New(t)
	req.True(Code{}.IsEmpty())
	req.True(Code(nil).IsEmpty())
	req.False(Code{Dot}.IsEmpty())
}
