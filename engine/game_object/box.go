package game_object

import (
	"github.com/Carmen-Shannon/oxy-scroll/common"
	"github.com/Carmen-Shannon/oxy-scroll/engine/model"
	"github.com/Carmen-Shannon/oxy-scroll/engine/renderer/material"
)

// BoxDepth is the Z position of the textured box.
const BoxDepth float32 = 15

// NewBox creates the 2x2x2 textured box at z = BoxDepth. The first texture is the base layer,
// the second the detail layer sampled at a tenth of the base frequency.
//
// Parameters:
//   - base: decoded base texture
//   - detail: decoded detail texture
//   - options: functional options applied after the defaults
//
// Returns:
//   - GameObject: the newly created box
func NewBox(base, detail common.TextureStagingData, options ...GameObjectBuilderOption) GameObject {
	defaults := []GameObjectBuilderOption{
		WithName("box"),
		WithModel(model.NewBox(model.DefaultBoxSize, model.DefaultBoxSize, model.DefaultBoxSize)),
		WithMaterial(material.NewMaterial(
			material.WithName("box"),
			material.WithTextures(base, detail),
		)),
		WithPosition(0, 0, BoxDepth),
	}
	return newGameObject(append(defaults, options...)...)
}
