// Package builtin registers the standard modules with module.Default.
//
// Import it for its side effect:
//
//	import _ "github.com/yyyoichi/playuver/module/builtin"
package builtin

import "github.com/yyyoichi/playuver/module"

const (
	categoryProcessing  = "Processing"
	categoryGeometry    = "Geometry"
	categoryFormat      = "Format"
	categoryDifference  = "Difference"
	categoryTransform   = "Transform"
	categoryMeasurement = "Measurement"
	categoryQuality     = "Quality"
)

func init() {
	RegisterAll(module.Default)
}

// RegisterAll adds every built-in module to r.
func RegisterAll(r *module.Registry) {
	r.Register("binarize", NewBinarize)
	r.Register("shift", NewShift)
	r.Register("crop", NewCrop)
	r.Register("rotate", NewRotate)
	r.Register("scale", NewScale)
	r.Register("mirror", NewMirror)
	r.Register("component", NewComponent)
	r.Register("bitdepth", NewBitDepth)
	r.Register("dctfilter", NewDCTFilter)
	r.Register("haar", NewHaar)
	r.Register("difference", NewDifference)
	r.Register("absdifference", NewAbsDifference)
	r.Register("lumaaverage", NewLumaAverage)
	r.Register("mse", NewMSE)
	r.Register("psnr", NewPSNR)
	r.Register("ssim", NewSSIM)
}
