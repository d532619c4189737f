//go:build unit
// +build unit

package imaging

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/users"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvatarProcessor_FillsSquarePNG(t *testing.T) {
	processor := NewAvatarProcessor(testutil.SetupTestLogger(t))

	out, contentType, err := processor.Process(bytes.NewReader(testutil.CreateTestPNG(t, 640, 480)), nil)
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)

	decoded, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, users.AvatarSize, users.AvatarSize), decoded.Bounds())
}

func TestAvatarProcessor_Crop(t *testing.T) {
	processor := NewAvatarProcessor(testutil.SetupTestLogger(t))
	src := testutil.CreateTestPNG(t, 300, 200)

	_, _, err := processor.Process(bytes.NewReader(src), &users.CropRect{X: 50, Y: 0, Width: 200, Height: 200})
	require.NoError(t, err)

	_, _, err = processor.Process(bytes.NewReader(src), &users.CropRect{X: 200, Y: 0, Width: 200, Height: 200})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestAvatarProcessor_RejectsInvalidInput(t *testing.T) {
	processor := NewAvatarProcessor(testutil.SetupTestLogger(t))

	_, _, err := processor.Process(strings.NewReader("definitely not an image"), nil)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	oversized := bytes.Repeat([]byte{0}, users.MaxAvatarBytes+1)
	_, _, err = processor.Process(bytes.NewReader(oversized), nil)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
